package review

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/coursekart/coursekart-api/internal/kv"
)

// VoteStore keeps one helpful-vote boolean per (session, review). The stored
// flag guards the aggregate: asking for a state the session is already in
// yields a zero delta, so voting twice without unvoting never double-counts.
type VoteStore struct {
	kv     kv.Store
	prefix string
	ttl    time.Duration
}

func NewVoteStore(store kv.Store, prefix string, ttl time.Duration) *VoteStore {
	return &VoteStore{kv: store, prefix: prefix, ttl: ttl}
}

func (s *VoteStore) key(sessionID string) string { return s.prefix + ":" + sessionID }

func (s *VoteStore) read(ctx context.Context, sessionID string) map[string]bool {
	raw, err := s.kv.Get(ctx, s.key(sessionID))
	if err != nil {
		return map[string]bool{}
	}
	var votes map[string]bool
	if err := json.Unmarshal(raw, &votes); err != nil || votes == nil {
		log.Printf("[review] corrupt vote map for sid=%s, resetting", sessionID)
		return map[string]bool{}
	}
	return votes
}

// Voted reports whether the session currently marks the review helpful.
func (s *VoteStore) Voted(ctx context.Context, sessionID, reviewID string) bool {
	return s.read(ctx, sessionID)[reviewID]
}

// Toggle sets the vote to want and returns the helpfulCount delta to apply:
// +1 on false→true, -1 on true→false, 0 when already in the wanted state.
func (s *VoteStore) Toggle(ctx context.Context, sessionID, reviewID string, want bool) (int, error) {
	votes := s.read(ctx, sessionID)
	if votes[reviewID] == want {
		return 0, nil
	}
	delta := -1
	if want {
		delta = 1
		votes[reviewID] = true
	} else {
		delete(votes, reviewID)
	}
	raw, err := json.Marshal(votes)
	if err != nil {
		return 0, err
	}
	if err := s.kv.Set(ctx, s.key(sessionID), raw, s.ttl); err != nil {
		return 0, err
	}
	return delta, nil
}
