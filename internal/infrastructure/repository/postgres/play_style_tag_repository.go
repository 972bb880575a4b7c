package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	qb "github.com/riskibarqy/lft-board/internal/platform/querybuilder"
)

type PlayStyleTagRepository struct {
	db *sqlx.DB
}

func NewPlayStyleTagRepository(db *sqlx.DB) *PlayStyleTagRepository {
	return &PlayStyleTagRepository{db: db}
}

func (r *PlayStyleTagRepository) ListActive(ctx context.Context) ([]playstyle.Tag, error) {
	return r.list(ctx, "list active play style tags", qb.Expr("is_active"))
}

func (r *PlayStyleTagRepository) ListAll(ctx context.Context) ([]playstyle.Tag, error) {
	return r.list(ctx, "list play style tags")
}

func (r *PlayStyleTagRepository) GetByID(ctx context.Context, tagID string) (playstyle.Tag, bool, error) {
	query, args, err := qb.Select("*").
		From("play_style_tags").
		Where(qb.Eq("public_id", tagID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return playstyle.Tag{}, false, fmt.Errorf("build get play style tag query: %w", err)
	}

	var row playStyleTagTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playstyle.Tag{}, false, nil
		}
		return playstyle.Tag{}, false, fmt.Errorf("get play style tag: %w", err)
	}
	return tagFromRow(row), true, nil
}

func (r *PlayStyleTagRepository) Create(ctx context.Context, item playstyle.Tag) error {
	query, args, err := qb.InsertModel("play_style_tags", playStyleTagInsertModel{
		PublicID:  item.ID,
		Name:      strings.TrimSpace(item.Name),
		IsActive:  item.IsActive,
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create play style tag query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, playStyleTagNameIndex) {
			return playstyle.ErrDuplicateName
		}
		return fmt.Errorf("create play style tag: %w", err)
	}
	return nil
}

func (r *PlayStyleTagRepository) SetActive(ctx context.Context, tagID string, active bool) error {
	query, args, err := qb.Update("play_style_tags").
		Set("is_active", active).
		Where(qb.Eq("public_id", tagID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set play style tag active query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set play style tag active: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("set play style tag active: tag %s not found", tagID)
	}
	return nil
}

func (r *PlayStyleTagRepository) Delete(ctx context.Context, tagID string) error {
	query, args, err := qb.DeleteFrom("play_style_tags").
		Where(qb.Eq("public_id", tagID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete play style tag query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete play style tag: %w", err)
	}
	return nil
}

func (r *PlayStyleTagRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]playstyle.Tag, error) {
	query, args, err := qb.Select("*").
		From("play_style_tags").
		Where(conditions...).
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []playStyleTagTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]playstyle.Tag, 0, len(rows))
	for _, row := range rows {
		out = append(out, tagFromRow(row))
	}
	return out, nil
}

func tagFromRow(row playStyleTagTableModel) playstyle.Tag {
	return playstyle.Tag{
		ID:        row.PublicID,
		Name:      row.Name,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}
}
