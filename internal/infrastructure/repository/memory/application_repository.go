package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/lft-board/internal/domain/application"
)

type ApplicationRepository struct {
	store *Store
}

func NewApplicationRepository(store *Store) *ApplicationRepository {
	return &ApplicationRepository{store: store}
}

func (r *ApplicationRepository) Create(_ context.Context, item application.Application) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[item.ListingID]; !ok {
		return fmt.Errorf("listing %s not found", item.ListingID)
	}
	key := pairKey(item.ListingID, item.ApplicantUserID)
	if _, exists := s.applications[key]; exists {
		return application.ErrDuplicateApplication
	}
	s.applications[key] = item
	return nil
}

func (r *ApplicationRepository) GetByListingAndApplicant(_ context.Context, listingID, applicantUserID string) (application.Application, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.applications[pairKey(listingID, applicantUserID)]
	return item, ok, nil
}

// ListByListing returns applications oldest first.
func (r *ApplicationRepository) ListByListing(_ context.Context, listingID string) ([]application.Application, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]application.Application, 0)
	for _, item := range s.applications {
		if item.ListingID == listingID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ApplicationRepository) ListListingIDsByApplicant(_ context.Context, applicantUserID string) ([]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0)
	for _, item := range s.applications {
		if item.ApplicantUserID == applicantUserID {
			out = append(out, item.ListingID)
		}
	}
	sort.Strings(out)
	return out, nil
}
