package memory

import (
	"context"

	"github.com/riskibarqy/lft-board/internal/domain/profile"
)

type ProfileRepository struct {
	store *Store
}

func NewProfileRepository(store *Store) *ProfileRepository {
	return &ProfileRepository{store: store}
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (profile.Profile, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.profiles[userID]
	if !ok {
		return profile.Profile{}, false, nil
	}
	return cloneProfile(item), true, nil
}

// GetByUserIDs skips unknown ids and keeps input order.
func (r *ProfileRepository) GetByUserIDs(_ context.Context, userIDs []string) ([]profile.Profile, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]profile.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if item, ok := s.profiles[id]; ok {
			out = append(out, cloneProfile(item))
		}
	}
	return out, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, item profile.Profile) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.UserID == "" {
		return profile.ErrUserIDRequired
	}
	s.profiles[item.UserID] = cloneProfile(item)
	return nil
}

func cloneProfile(p profile.Profile) profile.Profile {
	copied := p
	copied.TrackerRaw = append([]byte(nil), p.TrackerRaw...)
	return copied
}
