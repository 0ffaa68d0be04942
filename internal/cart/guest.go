package cart

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/coursekart/coursekart-api/internal/kv"
	"github.com/coursekart/coursekart-api/internal/pubsub"
)

// GuestStore persists the cart of an unauthenticated session. Reads fail
// soft: a missing or corrupt blob is an empty cart, never an error.
type GuestStore struct {
	kv     kv.Store
	bus    *pubsub.Bus
	prefix string
	ttl    time.Duration
}

func NewGuestStore(store kv.Store, bus *pubsub.Bus, prefix string, ttl time.Duration) *GuestStore {
	return &GuestStore{kv: store, bus: bus, prefix: prefix, ttl: ttl}
}

func (s *GuestStore) key(sessionID string) string { return s.prefix + ":" + sessionID }

func (s *GuestStore) Read(ctx context.Context, sessionID string) []Item {
	raw, err := s.kv.Get(ctx, s.key(sessionID))
	if err != nil {
		return []Item{}
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[cart] corrupt guest cart for sid=%s, resetting", sessionID)
		return []Item{}
	}
	return Normalize(items)
}

// Write normalizes, persists and returns the stored items. Every successful
// write publishes cart.changed so other UI regions re-read.
func (s *GuestStore) Write(ctx context.Context, sessionID string, items []Item) ([]Item, error) {
	norm := Normalize(items)
	raw, err := json.Marshal(norm)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, s.key(sessionID), raw, s.ttl); err != nil {
		return nil, err
	}
	s.bus.Publish(pubsub.TopicCartChanged, sessionID)
	return norm, nil
}

func (s *GuestStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.key(sessionID)); err != nil {
		return err
	}
	s.bus.Publish(pubsub.TopicCartChanged, sessionID)
	return nil
}
