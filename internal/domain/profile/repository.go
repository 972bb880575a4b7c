package profile

import "context"

// Repository describes profile persistence. Upsert is keyed by user id.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]Profile, error)
	Upsert(ctx context.Context, item Profile) error
}
