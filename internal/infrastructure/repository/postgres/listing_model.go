package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

const (
	listingOneOpenPerOwner    = "listings_one_open_per_owner"
	applicationPairConstraint = "applications_listing_applicant_key"
	playStyleTagNameIndex     = "play_style_tags_name_key"
)

type listingTableModel struct {
	ID                  int64          `db:"id"`
	PublicID            string         `db:"public_id"`
	Title               string         `db:"title"`
	OwnerUserID         string         `db:"owner_user_id"`
	RecruitCount        int            `db:"recruit_count"`
	Mode                string         `db:"mode"`
	VoiceChat           string         `db:"vc"`
	PlayStyles          pq.StringArray `db:"play_styles"`
	MinRankTier         sql.NullString `db:"min_rank_tier"`
	MinRankDivision     sql.NullInt16  `db:"min_rank_division"`
	AllowedAgeGroups    pq.StringArray `db:"allowed_age_groups"`
	OtherText           string         `db:"other_text"`
	CurrentRankTier     sql.NullString `db:"current_rank_tier"`
	CurrentRankDivision sql.NullInt16  `db:"current_rank_division"`
	MaxRankTier         sql.NullString `db:"max_rank_tier"`
	MaxRankDivision     sql.NullInt16  `db:"max_rank_division"`
	OwnerAgeGroup       sql.NullString `db:"owner_age_group"`
	OwnerPlatform       sql.NullString `db:"owner_platform"`
	IsClosed            bool           `db:"is_closed"`
	WinnerUserID        sql.NullString `db:"winner_user_id"`
	ApplicationCount    int            `db:"application_count"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

type listingInsertModel struct {
	PublicID            string         `db:"public_id"`
	Title               string         `db:"title"`
	OwnerUserID         string         `db:"owner_user_id"`
	RecruitCount        int            `db:"recruit_count"`
	Mode                string         `db:"mode"`
	VoiceChat           string         `db:"vc"`
	PlayStyles          pq.StringArray `db:"play_styles"`
	MinRankTier         *string        `db:"min_rank_tier"`
	MinRankDivision     *int16         `db:"min_rank_division"`
	AllowedAgeGroups    pq.StringArray `db:"allowed_age_groups"`
	OtherText           string         `db:"other_text"`
	CurrentRankTier     *string        `db:"current_rank_tier"`
	CurrentRankDivision *int16         `db:"current_rank_division"`
	MaxRankTier         *string        `db:"max_rank_tier"`
	MaxRankDivision     *int16         `db:"max_rank_division"`
	OwnerAgeGroup       *string        `db:"owner_age_group"`
	OwnerPlatform       *string        `db:"owner_platform"`
	IsClosed            bool           `db:"is_closed"`
	WinnerUserID        *string        `db:"winner_user_id"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}
