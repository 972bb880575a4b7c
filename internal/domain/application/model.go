package application

import (
	"errors"
	"time"
)

var ErrDuplicateApplication = errors.New("applicant already applied to this listing")

// Application is one player's request to join a listing.
type Application struct {
	ID              string
	ListingID       string
	ApplicantUserID string
	CreatedAt       time.Time
}
