package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/player"
)

type ListingRepository struct {
	store *Store
}

func NewListingRepository(store *Store) *ListingRepository {
	return &ListingRepository{store: store}
}

func (r *ListingRepository) Create(_ context.Context, item listing.Listing) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[item.ID]; exists {
		return fmt.Errorf("listing %s already exists", item.ID)
	}
	if !item.IsClosed && s.ownerHoldsSlotLocked(item.OwnerUserID, "") {
		return listing.ErrOwnerHasOpenListing
	}

	item.ApplicationCount = 0
	s.listings[item.ID] = cloneListing(item)
	s.listingOrder = append(s.listingOrder, item.ID)
	return nil
}

func (r *ListingRepository) GetByID(_ context.Context, listingID string) (listing.Listing, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.listings[listingID]
	if !ok {
		return listing.Listing{}, false, nil
	}
	return s.withCountLocked(item), true, nil
}

func (r *ListingRepository) GetOpenByOwner(_ context.Context, ownerUserID string) (listing.Listing, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.listingOrder {
		item := s.listings[id]
		if item.OwnerUserID == ownerUserID && item.HoldsOwnerSlot() {
			return s.withCountLocked(item), true, nil
		}
	}
	return listing.Listing{}, false, nil
}

// ListNotClosed returns non-closed listings newest first.
func (r *ListingRepository) ListNotClosed(_ context.Context) ([]listing.Listing, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]listing.Listing, 0, len(s.listingOrder))
	for i := len(s.listingOrder) - 1; i >= 0; i-- {
		item := s.listings[s.listingOrder[i]]
		if item.IsClosed {
			continue
		}
		out = append(out, s.withCountLocked(item))
	}
	return out, nil
}

func (r *ListingRepository) Close(_ context.Context, listingID, winnerUserID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closeLocked(listingID, winnerUserID)
}

func (r *ListingRepository) Reopen(_ context.Context, listingID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.listings[listingID]
	if !ok {
		return fmt.Errorf("listing %s not found", listingID)
	}
	if s.ownerHoldsSlotLocked(item.OwnerUserID, listingID) {
		return listing.ErrOwnerHasOpenListing
	}
	item.IsClosed = false
	item.WinnerUserID = ""
	s.listings[listingID] = item
	return nil
}

// Delete removes the listing and its applications. Notices are kept.
func (r *ListingRepository) Delete(_ context.Context, listingID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listingID]; !ok {
		return nil
	}
	delete(s.listings, listingID)
	s.listingOrder = removeID(s.listingOrder, listingID)
	for key, app := range s.applications {
		if app.ListingID == listingID {
			delete(s.applications, key)
		}
	}
	return nil
}

// Finalize upserts every notice and closes the listing under one lock.
func (r *ListingRepository) Finalize(_ context.Context, commit listing.Commit) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[commit.ListingID]; !ok {
		return fmt.Errorf("listing %s not found", commit.ListingID)
	}
	if err := s.takeWriteFailure(); err != nil {
		return fmt.Errorf("write result notices: %w", err)
	}

	for _, notice := range commit.Notices {
		key := pairKey(notice.ListingID, notice.ApplicantUserID)
		if existing, ok := s.notices[key]; ok {
			notice.ID = existing.ID
		}
		s.notices[key] = notice
	}
	item := s.listings[commit.ListingID]
	item.IsClosed = true
	item.WinnerUserID = commit.WinnerUserID
	s.listings[commit.ListingID] = item
	return nil
}

func (s *Store) closeLocked(listingID, winnerUserID string) error {
	item, ok := s.listings[listingID]
	if !ok {
		return fmt.Errorf("listing %s not found", listingID)
	}
	item.IsClosed = true
	item.WinnerUserID = winnerUserID
	s.listings[listingID] = item
	return nil
}

func (s *Store) ownerHoldsSlotLocked(ownerUserID, exceptID string) bool {
	for id, item := range s.listings {
		if id != exceptID && item.OwnerUserID == ownerUserID && item.HoldsOwnerSlot() {
			return true
		}
	}
	return false
}

func (s *Store) withCountLocked(item listing.Listing) listing.Listing {
	out := cloneListing(item)
	out.ApplicationCount = 0
	for _, app := range s.applications {
		if app.ListingID == item.ID {
			out.ApplicationCount++
		}
	}
	return out
}

func cloneListing(item listing.Listing) listing.Listing {
	copied := item
	copied.PlayStyles = append([]string(nil), item.PlayStyles...)
	copied.AllowedAgeGroups = append([]player.AgeGroup(nil), item.AllowedAgeGroups...)
	return copied
}

var _ listing.Finalizer = (*ListingRepository)(nil)
