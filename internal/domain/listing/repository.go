package listing

import (
	"context"

	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
)

// Repository describes listing persistence needs from use cases.
// Create and Reopen report ErrOwnerHasOpenListing when the owner already
// holds a non-closed listing.
type Repository interface {
	Create(ctx context.Context, item Listing) error
	GetByID(ctx context.Context, listingID string) (Listing, bool, error)
	GetOpenByOwner(ctx context.Context, ownerUserID string) (Listing, bool, error)
	ListNotClosed(ctx context.Context) ([]Listing, error)
	Close(ctx context.Context, listingID, winnerUserID string) error
	Reopen(ctx context.Context, listingID string) error
	Delete(ctx context.Context, listingID string) error
}

// Commit is everything one finalize writes.
type Commit struct {
	ListingID    string
	WinnerUserID string
	Notices      []resultnotice.Notice
}

// Finalizer writes all result notices and closes the listing atomically.
// Notices are written first; on any error the listing stays open.
type Finalizer interface {
	Finalize(ctx context.Context, commit Commit) error
}
