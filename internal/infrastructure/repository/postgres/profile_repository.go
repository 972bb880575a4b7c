package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	qb "github.com/riskibarqy/lft-board/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").
		From("profiles").
		Where(qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	return profileFromRow(row), true, nil
}

// GetByUserIDs skips unknown ids and keeps input order.
func (r *ProfileRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]profile.Profile, error) {
	if len(userIDs) == 0 {
		return []profile.Profile{}, nil
	}

	values := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		values = append(values, id)
	}
	query, args, err := qb.Select("*").
		From("profiles").
		Where(qb.In("user_id", values)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}

	byID := make(map[string]profile.Profile, len(rows))
	for _, row := range rows {
		byID[row.UserID] = profileFromRow(row)
	}
	out := make([]profile.Profile, 0, len(rows))
	for _, id := range userIDs {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) error {
	if err := item.Validate(); err != nil {
		return err
	}

	curTier, curDivision := rankColumns(item.CurrentRank)
	maxTier, maxDivision := rankColumns(item.MaxRank)
	var raw *string
	if len(item.TrackerRaw) > 0 {
		value := string(item.TrackerRaw)
		raw = &value
	}
	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query, args, err := qb.InsertModel("profiles", profileInsertModel{
		UserID:              item.UserID,
		TrackerPlatform:     optionalString(item.TrackerPlatform.String()),
		TrackerHandle:       optionalString(item.TrackerHandle),
		DisplayName:         optionalString(item.DisplayName),
		AvatarURL:           optionalString(item.AvatarURL),
		CurrentRankTier:     curTier,
		CurrentRankDivision: curDivision,
		MaxRankTier:         maxTier,
		MaxRankDivision:     maxDivision,
		Level:               item.Level.Ptr(),
		RankScore:           item.RankScore.Ptr(),
		Kills:               item.Kills.Ptr(),
		Damage:              item.Damage.Ptr(),
		AgeGroup:            optionalString(item.AgeGroup.String()),
		TrackerRaw:          raw,
		UpdatedAt:           updatedAt,
	}, `ON CONFLICT (user_id)
DO UPDATE SET
    tracker_platform = EXCLUDED.tracker_platform,
    tracker_handle = EXCLUDED.tracker_handle,
    display_name = EXCLUDED.display_name,
    avatar_url = EXCLUDED.avatar_url,
    current_rank_tier = EXCLUDED.current_rank_tier,
    current_rank_division = EXCLUDED.current_rank_division,
    max_rank_tier = EXCLUDED.max_rank_tier,
    max_rank_division = EXCLUDED.max_rank_division,
    level = EXCLUDED.level,
    rank_score = EXCLUDED.rank_score,
    kills = EXCLUDED.kills,
    damage = EXCLUDED.damage,
    age_group = EXCLUDED.age_group,
    tracker_raw = EXCLUDED.tracker_raw,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert profile query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func profileFromRow(row profileTableModel) profile.Profile {
	platform, _ := player.ParsePlatform(row.TrackerPlatform.String)
	ageGroup, _ := player.ParseAgeGroup(row.AgeGroup.String)

	out := profile.Profile{
		UserID:          row.UserID,
		TrackerPlatform: platform,
		TrackerHandle:   row.TrackerHandle.String,
		DisplayName:     row.DisplayName.String,
		AvatarURL:       row.AvatarURL.String,
		CurrentRank:     rankFromColumns(row.CurrentRankTier, row.CurrentRankDivision),
		MaxRank:         rankFromColumns(row.MaxRankTier, row.MaxRankDivision),
		Level:           nullStat(row.Level),
		RankScore:       nullStat(row.RankScore),
		Kills:           nullStat(row.Kills),
		Damage:          nullStat(row.Damage),
		AgeGroup:        ageGroup,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.TrackerRaw.Valid {
		out.TrackerRaw = []byte(row.TrackerRaw.String)
	}
	return out
}
