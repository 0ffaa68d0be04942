// Package checkout holds the multi-step checkout state and the pure pricing
// functions used both for the live quote and for server-side recomputation at
// order submission.
package checkout

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/coursekart/coursekart-api/internal/cart"
	"github.com/coursekart/coursekart-api/internal/kv"
)

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Note    string `json:"note,omitempty"`
}

// Draft is the in-progress checkout form, persisted across reloads until the
// order is confirmed or abandoned.
type Draft struct {
	Customer     Customer    `json:"customer"`
	ShippingType string      `json:"shipping_type"`
	PayMethod    string      `json:"pay_method"`
	PromoCode    string      `json:"promo_code,omitempty"`
	Items        []cart.Item `json:"items,omitempty"`
}

// DraftStore is pure persistence: no validation happens here.
type DraftStore struct {
	kv     kv.Store
	prefix string
	ttl    time.Duration
}

func NewDraftStore(store kv.Store, prefix string, ttl time.Duration) *DraftStore {
	return &DraftStore{kv: store, prefix: prefix, ttl: ttl}
}

func (s *DraftStore) key(sessionID string) string { return s.prefix + ":" + sessionID }

// Load returns the stored draft, or the zero draft when nothing usable is
// stored. Corrupt JSON is replaced, never surfaced.
func (s *DraftStore) Load(ctx context.Context, sessionID string) Draft {
	raw, err := s.kv.Get(ctx, s.key(sessionID))
	if err != nil {
		return Draft{}
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Printf("[checkout] corrupt draft for sid=%s, resetting", sessionID)
		return Draft{}
	}
	return d
}

func (s *DraftStore) Save(ctx context.Context, sessionID string, d Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key(sessionID), raw, s.ttl)
}

func (s *DraftStore) Clear(ctx context.Context, sessionID string) error {
	return s.kv.Del(ctx, s.key(sessionID))
}
