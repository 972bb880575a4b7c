package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
	qb "github.com/riskibarqy/lft-board/internal/platform/querybuilder"
)

const listingWithCountFrom = `listings l
LEFT JOIN applications a ON a.listing_public_id = l.public_id`

var listingWithCountColumns = []string{"l.*", "COUNT(a.id) AS application_count"}

type ListingRepository struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, item listing.Listing) error {
	query, args, err := qb.InsertModel("listings", listingInsertFromDomain(item), "")
	if err != nil {
		return fmt.Errorf("build create listing query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, listingOneOpenPerOwner) {
			return listing.ErrOwnerHasOpenListing
		}
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, listingID string) (listing.Listing, bool, error) {
	return r.getOne(ctx, "get listing", qb.Eq("l.public_id", listingID))
}

func (r *ListingRepository) GetOpenByOwner(ctx context.Context, ownerUserID string) (listing.Listing, bool, error) {
	return r.getOne(ctx, "get open listing by owner",
		qb.Eq("l.owner_user_id", ownerUserID),
		qb.Expr("NOT l.is_closed"),
	)
}

func (r *ListingRepository) ListNotClosed(ctx context.Context) ([]listing.Listing, error) {
	query, args, err := qb.Select(listingWithCountColumns...).
		From(listingWithCountFrom).
		Where(qb.Expr("NOT l.is_closed")).
		GroupBy("l.id").
		OrderBy("l.created_at DESC", "l.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list listings query: %w", err)
	}

	var rows []listingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	out := make([]listing.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, listingFromRow(row))
	}
	return out, nil
}

func (r *ListingRepository) Close(ctx context.Context, listingID, winnerUserID string) error {
	query, args, err := qb.Update("listings").
		Set("is_closed", true).
		Set("winner_user_id", optionalString(winnerUserID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", listingID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build close listing query: %w", err)
	}
	return r.execOne(ctx, r.db, "close listing", query, args)
}

func (r *ListingRepository) Reopen(ctx context.Context, listingID string) error {
	query, args, err := qb.Update("listings").
		Set("is_closed", false).
		Set("winner_user_id", nil).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", listingID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reopen listing query: %w", err)
	}

	err = r.execOne(ctx, r.db, "reopen listing", query, args)
	if isUniqueViolation(err, listingOneOpenPerOwner) {
		return listing.ErrOwnerHasOpenListing
	}
	return err
}

// Delete relies on the applications foreign key to cascade.
func (r *ListingRepository) Delete(ctx context.Context, listingID string) error {
	query, args, err := qb.DeleteFrom("listings").
		Where(qb.Eq("public_id", listingID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete listing query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// Finalize writes the notices and closes the listing in one transaction.
func (r *ListingRepository) Finalize(ctx context.Context, commit listing.Commit) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for finalize: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if len(commit.Notices) > 0 {
		models := make([]resultNoticeInsertModel, 0, len(commit.Notices))
		for _, notice := range commit.Notices {
			models = append(models, resultNoticeInsertFromDomain(notice))
		}
		query, args, err := qb.InsertModels("result_notices", models, `ON CONFLICT (listing_public_id, applicant_user_id)
DO UPDATE SET
    listing_title = EXCLUDED.listing_title,
    vc = EXCLUDED.vc,
    status = EXCLUDED.status,
    account_name = EXCLUDED.account_name,
    invite_link = EXCLUDED.invite_link,
    message = EXCLUDED.message`)
		if err != nil {
			return fmt.Errorf("build upsert result notices query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert result notices: %w", err)
		}
	}

	query, args, err := qb.Update("listings").
		Set("is_closed", true).
		Set("winner_user_id", optionalString(commit.WinnerUserID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", commit.ListingID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build finalize listing query: %w", err)
	}
	if err := r.execOne(ctx, tx, "close finalized listing", query, args); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finalize tx: %w", err)
	}
	return nil
}

func (r *ListingRepository) getOne(ctx context.Context, op string, conditions ...qb.Condition) (listing.Listing, bool, error) {
	query, args, err := qb.Select(listingWithCountColumns...).
		From(listingWithCountFrom).
		Where(conditions...).
		GroupBy("l.id").
		Limit(1).
		ToSQL()
	if err != nil {
		return listing.Listing{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row listingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return listing.Listing{}, false, nil
		}
		return listing.Listing{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return listingFromRow(row), true, nil
}

func (r *ListingRepository) execOne(ctx context.Context, exec sqlx.ExecerContext, op, query string, args []any) error {
	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: listing not found", op)
	}
	return nil
}

func listingInsertFromDomain(item listing.Listing) listingInsertModel {
	minTier, minDivision := rankColumns(item.MinRequirement)
	curTier, curDivision := rankColumns(item.CurrentRank)
	maxTier, maxDivision := rankColumns(item.MaxRank)

	ageGroups := make(pq.StringArray, 0, len(item.AllowedAgeGroups))
	for _, group := range item.AllowedAgeGroups {
		ageGroups = append(ageGroups, group.String())
	}

	return listingInsertModel{
		PublicID:            item.ID,
		Title:               strings.TrimSpace(item.Title),
		OwnerUserID:         item.OwnerUserID,
		RecruitCount:        item.RecruitCount,
		Mode:                string(item.Mode),
		VoiceChat:           string(item.VoiceChat),
		PlayStyles:          pq.StringArray(append([]string(nil), item.PlayStyles...)),
		MinRankTier:         minTier,
		MinRankDivision:     minDivision,
		AllowedAgeGroups:    ageGroups,
		OtherText:           item.OtherText,
		CurrentRankTier:     curTier,
		CurrentRankDivision: curDivision,
		MaxRankTier:         maxTier,
		MaxRankDivision:     maxDivision,
		OwnerAgeGroup:       optionalString(item.OwnerAgeGroup.String()),
		OwnerPlatform:       optionalString(item.OwnerPlatform.String()),
		IsClosed:            item.IsClosed,
		WinnerUserID:        optionalString(item.WinnerUserID),
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

func listingFromRow(row listingTableModel) listing.Listing {
	ageGroups := make([]player.AgeGroup, 0, len(row.AllowedAgeGroups))
	for _, raw := range row.AllowedAgeGroups {
		if group, ok := player.ParseAgeGroup(raw); ok {
			ageGroups = append(ageGroups, group)
		}
	}
	ownerAge, _ := player.ParseAgeGroup(row.OwnerAgeGroup.String)
	ownerPlatform, _ := player.ParsePlatform(row.OwnerPlatform.String)
	mode, _ := listing.ParseMode(row.Mode)
	vc, _ := listing.ParseVoiceChat(row.VoiceChat)

	return listing.Listing{
		ID:               row.PublicID,
		Title:            row.Title,
		OwnerUserID:      row.OwnerUserID,
		RecruitCount:     row.RecruitCount,
		Mode:             mode,
		VoiceChat:        vc,
		PlayStyles:       append([]string(nil), row.PlayStyles...),
		MinRequirement:   rankFromColumns(row.MinRankTier, row.MinRankDivision),
		AllowedAgeGroups: ageGroups,
		OtherText:        row.OtherText,
		CurrentRank:      rankFromColumns(row.CurrentRankTier, row.CurrentRankDivision),
		MaxRank:          rankFromColumns(row.MaxRankTier, row.MaxRankDivision),
		OwnerAgeGroup:    ownerAge,
		OwnerPlatform:    ownerPlatform,
		IsClosed:         row.IsClosed,
		WinnerUserID:     row.WinnerUserID.String,
		ApplicationCount: row.ApplicationCount,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func resultNoticeInsertFromDomain(notice resultnotice.Notice) resultNoticeInsertModel {
	return resultNoticeInsertModel{
		PublicID:        notice.ID,
		ListingPublicID: notice.ListingID,
		ListingTitle:    notice.ListingTitle,
		VoiceChat:       notice.VoiceChat,
		OwnerUserID:     notice.OwnerUserID,
		ApplicantUserID: notice.ApplicantUserID,
		Status:          string(notice.Status),
		AccountName:     optionalString(notice.AccountName),
		InviteLink:      optionalString(notice.InviteLink),
		Message:         notice.Message,
		CreatedAt:       notice.CreatedAt,
	}
}

var _ listing.Finalizer = (*ListingRepository)(nil)
