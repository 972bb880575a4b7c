package memory

import (
	"context"
	"errors"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
)

// SeedPlayStyleTags is the starter tag set for memory-backed runs.
func SeedPlayStyleTags() []playstyle.Tag {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	names := []string{"エンジョイ", "ガチ", "初心者歓迎", "長時間OK", "まったり", "フルパ希望"}

	out := make([]playstyle.Tag, 0, len(names))
	for i, name := range names {
		out = append(out, playstyle.Tag{
			ID:        "seed-tag-" + string(rune('a'+i)),
			Name:      name,
			IsActive:  true,
			CreatedAt: createdAt,
		})
	}
	return out
}

// Seed loads tags into the store, skipping names that already exist.
func Seed(ctx context.Context, store *Store, tags []playstyle.Tag) error {
	repo := NewPlayStyleTagRepository(store)
	for _, tag := range tags {
		if err := repo.Create(ctx, tag); err != nil && !errors.Is(err, playstyle.ErrDuplicateName) {
			return err
		}
	}
	return nil
}
