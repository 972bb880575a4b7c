package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
	qb "github.com/riskibarqy/lft-board/internal/platform/querybuilder"
)

type ResultNoticeRepository struct {
	db *sqlx.DB
}

func NewResultNoticeRepository(db *sqlx.DB) *ResultNoticeRepository {
	return &ResultNoticeRepository{db: db}
}

func (r *ResultNoticeRepository) ListByApplicant(ctx context.Context, applicantUserID string) ([]resultnotice.Notice, error) {
	return r.list(ctx, "list result notices by applicant", qb.Eq("applicant_user_id", applicantUserID))
}

func (r *ResultNoticeRepository) ListByListing(ctx context.Context, listingID string) ([]resultnotice.Notice, error) {
	return r.list(ctx, "list result notices by listing", qb.Eq("listing_public_id", listingID))
}

func (r *ResultNoticeRepository) list(ctx context.Context, op string, condition qb.Condition) ([]resultnotice.Notice, error) {
	query, args, err := qb.Select("*").
		From("result_notices").
		Where(condition).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []resultNoticeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]resultnotice.Notice, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultnotice.Notice{
			ID:              row.PublicID,
			ListingID:       row.ListingPublicID,
			ListingTitle:    row.ListingTitle,
			VoiceChat:       row.VoiceChat,
			OwnerUserID:     row.OwnerUserID,
			ApplicantUserID: row.ApplicantUserID,
			Status:          resultnotice.Status(row.Status),
			AccountName:     row.AccountName.String,
			InviteLink:      row.InviteLink.String,
			Message:         row.Message,
			CreatedAt:       row.CreatedAt,
		})
	}
	return out, nil
}
