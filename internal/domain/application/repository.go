package application

import "context"

// Repository describes application persistence needs from use cases.
// Create reports ErrDuplicateApplication for a repeated (listing, applicant).
type Repository interface {
	Create(ctx context.Context, item Application) error
	GetByListingAndApplicant(ctx context.Context, listingID, applicantUserID string) (Application, bool, error)
	ListByListing(ctx context.Context, listingID string) ([]Application, error)
	ListListingIDsByApplicant(ctx context.Context, applicantUserID string) ([]string, error)
}
