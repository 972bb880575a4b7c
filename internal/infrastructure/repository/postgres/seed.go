package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
)

// BootstrapSeed inserts the starter play-style tags into an empty table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, tags []playstyle.Tag) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM play_style_tags`); err != nil {
		return fmt.Errorf("count play style tags for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, tag := range tags {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO play_style_tags (public_id, name, is_active, created_at)
VALUES (:public_id, :name, :is_active, :created_at)
ON CONFLICT DO NOTHING`, playStyleTagInsertModel{
			PublicID:  tag.ID,
			Name:      tag.Name,
			IsActive:  tag.IsActive,
			CreatedAt: tag.CreatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed play style tag %s query: %w", tag.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed play style tag %s: %w", tag.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
