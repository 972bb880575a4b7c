package resultnotice

import (
	"errors"
	"strings"
	"time"
)

// DefaultRejectionMessage is sent to every applicant who was not selected.
const DefaultRejectionMessage = "今回は選考外となりました。"

// Status is the outcome of an application.
type Status string

const (
	StatusSelected Status = "selected"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	return s == StatusSelected || s == StatusRejected
}

var (
	ErrInvalidStatus       = errors.New("invalid result status")
	ErrAccountNameRequired = errors.New("account name is required for the selected applicant")
	ErrMessageRequired     = errors.New("result message is required")
	ErrRejectedWithContact = errors.New("rejected notices must not carry contact details")
)

// Notice is the per-applicant outcome written when a listing is finalized.
// Listing title and voice chat are snapshots taken at finalize time.
type Notice struct {
	ID              string
	ListingID       string
	ListingTitle    string
	VoiceChat       string
	OwnerUserID     string
	ApplicantUserID string
	Status          Status
	AccountName     string
	InviteLink      string
	Message         string
	CreatedAt       time.Time
}

func (n Notice) Validate() error {
	if !n.Status.IsValid() {
		return ErrInvalidStatus
	}
	if strings.TrimSpace(n.Message) == "" {
		return ErrMessageRequired
	}
	switch n.Status {
	case StatusSelected:
		if strings.TrimSpace(n.AccountName) == "" {
			return ErrAccountNameRequired
		}
	case StatusRejected:
		if n.AccountName != "" || n.InviteLink != "" {
			return ErrRejectedWithContact
		}
	}
	return nil
}
