package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lft-board/internal/domain/application"
	qb "github.com/riskibarqy/lft-board/internal/platform/querybuilder"
)

type ApplicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, item application.Application) error {
	query, args, err := qb.InsertModel("applications", applicationInsertModel{
		PublicID:        item.ID,
		ListingPublicID: item.ListingID,
		ApplicantUserID: item.ApplicantUserID,
		CreatedAt:       item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create application query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err, applicationPairConstraint):
			return application.ErrDuplicateApplication
		case isForeignKeyViolation(err):
			return fmt.Errorf("create application: listing %s not found", item.ListingID)
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) GetByListingAndApplicant(ctx context.Context, listingID, applicantUserID string) (application.Application, bool, error) {
	query, args, err := qb.Select("*").
		From("applications").
		Where(
			qb.Eq("listing_public_id", listingID),
			qb.Eq("applicant_user_id", applicantUserID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return application.Application{}, false, fmt.Errorf("build get application query: %w", err)
	}

	var row applicationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return application.Application{}, false, nil
		}
		return application.Application{}, false, fmt.Errorf("get application: %w", err)
	}
	return applicationFromRow(row), true, nil
}

func (r *ApplicationRepository) ListByListing(ctx context.Context, listingID string) ([]application.Application, error) {
	query, args, err := qb.Select("*").
		From("applications").
		Where(qb.Eq("listing_public_id", listingID)).
		OrderBy("created_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list applications query: %w", err)
	}

	var rows []applicationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list applications by listing: %w", err)
	}

	out := make([]application.Application, 0, len(rows))
	for _, row := range rows {
		out = append(out, applicationFromRow(row))
	}
	return out, nil
}

func (r *ApplicationRepository) ListListingIDsByApplicant(ctx context.Context, applicantUserID string) ([]string, error) {
	query, args, err := qb.Select("listing_public_id").
		From("applications").
		Where(qb.Eq("applicant_user_id", applicantUserID)).
		OrderBy("listing_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list applied listing ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list applied listing ids: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func applicationFromRow(row applicationTableModel) application.Application {
	return application.Application{
		ID:              row.PublicID,
		ListingID:       row.ListingPublicID,
		ApplicantUserID: row.ApplicantUserID,
		CreatedAt:       row.CreatedAt,
	}
}
