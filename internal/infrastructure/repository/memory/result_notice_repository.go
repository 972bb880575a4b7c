package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
)

type ResultNoticeRepository struct {
	store *Store
}

func NewResultNoticeRepository(store *Store) *ResultNoticeRepository {
	return &ResultNoticeRepository{store: store}
}

func (r *ResultNoticeRepository) ListByApplicant(_ context.Context, applicantUserID string) ([]resultnotice.Notice, error) {
	return r.list(func(n resultnotice.Notice) bool { return n.ApplicantUserID == applicantUserID }), nil
}

func (r *ResultNoticeRepository) ListByListing(_ context.Context, listingID string) ([]resultnotice.Notice, error) {
	return r.list(func(n resultnotice.Notice) bool { return n.ListingID == listingID }), nil
}

// list returns matching notices newest first.
func (r *ResultNoticeRepository) list(keep func(resultnotice.Notice) bool) []resultnotice.Notice {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]resultnotice.Notice, 0)
	for _, item := range s.notices {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
