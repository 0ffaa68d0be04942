package checkout

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/coursekart/coursekart-api/internal/kv"
)

// PendingOrder lets an interrupted payment flow resume. At most one pending
// order per course per session; a later Put replaces the earlier one.
type PendingOrder struct {
	OrderID   string    `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PendingStore struct {
	kv     kv.Store
	prefix string
	ttl    time.Duration
}

func NewPendingStore(store kv.Store, prefix string, ttl time.Duration) *PendingStore {
	return &PendingStore{kv: store, prefix: prefix, ttl: ttl}
}

func (s *PendingStore) key(sessionID string, courseID int64) string {
	return s.prefix + ":" + sessionID + ":" + strconv.FormatInt(courseID, 10)
}

func (s *PendingStore) Put(ctx context.Context, sessionID string, courseID int64, p PendingOrder) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key(sessionID, courseID), raw, s.ttl)
}

// Get treats a corrupt blob the same as an absent one.
func (s *PendingStore) Get(ctx context.Context, sessionID string, courseID int64) (*PendingOrder, error) {
	raw, err := s.kv.Get(ctx, s.key(sessionID, courseID))
	if err != nil {
		return nil, kv.ErrNotFound
	}
	var p PendingOrder
	if err := json.Unmarshal(raw, &p); err != nil {
		_ = s.kv.Del(ctx, s.key(sessionID, courseID))
		return nil, kv.ErrNotFound
	}
	return &p, nil
}

func (s *PendingStore) Del(ctx context.Context, sessionID string, courseID int64) error {
	return s.kv.Del(ctx, s.key(sessionID, courseID))
}
