package resultnotice

import "context"

// Repository describes result notice persistence. Notices are keyed by
// (listing, applicant); writes go through listing.Finalizer.
type Repository interface {
	ListByApplicant(ctx context.Context, applicantUserID string) ([]Notice, error)
	ListByListing(ctx context.Context, listingID string) ([]Notice, error)
}
