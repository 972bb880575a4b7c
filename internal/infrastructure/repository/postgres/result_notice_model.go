package postgres

import (
	"database/sql"
	"time"
)

type resultNoticeTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	ListingPublicID string         `db:"listing_public_id"`
	ListingTitle    string         `db:"listing_title"`
	VoiceChat       string         `db:"vc"`
	OwnerUserID     string         `db:"owner_user_id"`
	ApplicantUserID string         `db:"applicant_user_id"`
	Status          string         `db:"status"`
	AccountName     sql.NullString `db:"account_name"`
	InviteLink      sql.NullString `db:"invite_link"`
	Message         string         `db:"message"`
	CreatedAt       time.Time      `db:"created_at"`
}

type resultNoticeInsertModel struct {
	PublicID        string    `db:"public_id"`
	ListingPublicID string    `db:"listing_public_id"`
	ListingTitle    string    `db:"listing_title"`
	VoiceChat       string    `db:"vc"`
	OwnerUserID     string    `db:"owner_user_id"`
	ApplicantUserID string    `db:"applicant_user_id"`
	Status          string    `db:"status"`
	AccountName     *string   `db:"account_name"`
	InviteLink      *string   `db:"invite_link"`
	Message         string    `db:"message"`
	CreatedAt       time.Time `db:"created_at"`
}
