package postgres

import "time"

type applicationTableModel struct {
	ID              int64     `db:"id"`
	PublicID        string    `db:"public_id"`
	ListingPublicID string    `db:"listing_public_id"`
	ApplicantUserID string    `db:"applicant_user_id"`
	CreatedAt       time.Time `db:"created_at"`
}

type applicationInsertModel struct {
	PublicID        string    `db:"public_id"`
	ListingPublicID string    `db:"listing_public_id"`
	ApplicantUserID string    `db:"applicant_user_id"`
	CreatedAt       time.Time `db:"created_at"`
}
