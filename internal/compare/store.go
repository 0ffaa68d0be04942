// Package compare keeps the per-session course compare list.
package compare

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/coursekart/coursekart-api/internal/kv"
	"github.com/coursekart/coursekart-api/internal/pubsub"
)

var ErrFull = errors.New("compare list is full")

// MaxItems mirrors what the compare UI can lay out side by side.
const MaxItems = 4

type Store struct {
	kv     kv.Store
	bus    *pubsub.Bus
	prefix string
	ttl    time.Duration
}

func NewStore(store kv.Store, bus *pubsub.Bus, prefix string, ttl time.Duration) *Store {
	return &Store{kv: store, bus: bus, prefix: prefix, ttl: ttl}
}

func (s *Store) key(sessionID string) string { return s.prefix + ":" + sessionID }

func (s *Store) List(ctx context.Context, sessionID string) []int64 {
	raw, err := s.kv.Get(ctx, s.key(sessionID))
	if err != nil {
		return []int64{}
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		log.Printf("[compare] corrupt compare list for sid=%s, resetting", sessionID)
		return []int64{}
	}
	return ids
}

// Toggle removes the course when present, otherwise appends it; appending
// beyond MaxItems returns ErrFull. Successful mutations publish
// compare.changed.
func (s *Store) Toggle(ctx context.Context, sessionID string, courseID int64) ([]int64, error) {
	ids := s.List(ctx, sessionID)
	out := make([]int64, 0, len(ids)+1)
	removed := false
	for _, id := range ids {
		if id == courseID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		if len(out) >= MaxItems {
			return nil, ErrFull
		}
		out = append(out, courseID)
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, s.key(sessionID), raw, s.ttl); err != nil {
		return nil, err
	}
	s.bus.Publish(pubsub.TopicCompareChanged, sessionID)
	return out, nil
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.key(sessionID)); err != nil {
		return err
	}
	s.bus.Publish(pubsub.TopicCompareChanged, sessionID)
	return nil
}
