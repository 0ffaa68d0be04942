package cart

import (
	"context"
	"log"
)

// MergeService moves a guest cart into the signed-in user's server cart at
// login. The transfer is one-shot: after the server lines are written the
// guest blob is cleared. If the clear fails the merge still succeeds and the
// failure is logged; a retry with the stale guest cart double-counts
// quantities, which is the caller's responsibility to avoid.
type MergeService struct {
	repo  Repository
	guest *GuestStore
}

func NewMergeService(repo Repository, guest *GuestStore) *MergeService {
	return &MergeService{repo: repo, guest: guest}
}

func (m *MergeService) Merge(ctx context.Context, userID, sessionID string) (*Response, error) {
	for _, it := range m.guest.Read(ctx, sessionID) {
		if err := m.repo.AddItem(ctx, userID, it); err != nil {
			return nil, err
		}
	}
	if err := m.guest.Clear(ctx, sessionID); err != nil {
		log.Printf("[cart] guest clear after merge failed sid=%s: %v", sessionID, err)
	}
	items, err := m.repo.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildResponse(items), nil
}
