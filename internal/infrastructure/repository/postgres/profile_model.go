package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	UserID              string         `db:"user_id"`
	TrackerPlatform     sql.NullString `db:"tracker_platform"`
	TrackerHandle       sql.NullString `db:"tracker_handle"`
	DisplayName         sql.NullString `db:"display_name"`
	AvatarURL           sql.NullString `db:"avatar_url"`
	CurrentRankTier     sql.NullString `db:"current_rank_tier"`
	CurrentRankDivision sql.NullInt16  `db:"current_rank_division"`
	MaxRankTier         sql.NullString `db:"max_rank_tier"`
	MaxRankDivision     sql.NullInt16  `db:"max_rank_division"`
	Level               sql.NullInt64  `db:"level"`
	RankScore           sql.NullInt64  `db:"rank_score"`
	Kills               sql.NullInt64  `db:"kills"`
	Damage              sql.NullInt64  `db:"damage"`
	AgeGroup            sql.NullString `db:"age_group"`
	TrackerRaw          sql.NullString `db:"tracker_raw"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

type profileInsertModel struct {
	UserID              string    `db:"user_id"`
	TrackerPlatform     *string   `db:"tracker_platform"`
	TrackerHandle       *string   `db:"tracker_handle"`
	DisplayName         *string   `db:"display_name"`
	AvatarURL           *string   `db:"avatar_url"`
	CurrentRankTier     *string   `db:"current_rank_tier"`
	CurrentRankDivision *int16    `db:"current_rank_division"`
	MaxRankTier         *string   `db:"max_rank_tier"`
	MaxRankDivision     *int16    `db:"max_rank_division"`
	Level               *int64    `db:"level"`
	RankScore           *int64    `db:"rank_score"`
	Kills               *int64    `db:"kills"`
	Damage              *int64    `db:"damage"`
	AgeGroup            *string   `db:"age_group"`
	TrackerRaw          *string   `db:"tracker_raw"`
	UpdatedAt           time.Time `db:"updated_at"`
}
