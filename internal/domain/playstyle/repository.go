package playstyle

import "context"

// Repository describes play style tag persistence.
// Create reports ErrDuplicateName when the name is taken.
type Repository interface {
	ListActive(ctx context.Context) ([]Tag, error)
	ListAll(ctx context.Context) ([]Tag, error)
	GetByID(ctx context.Context, tagID string) (Tag, bool, error)
	Create(ctx context.Context, item Tag) error
	SetActive(ctx context.Context, tagID string, active bool) error
	Delete(ctx context.Context, tagID string) error
}
