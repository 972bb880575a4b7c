package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/application"
	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
	idgen "github.com/riskibarqy/lft-board/internal/platform/id"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// FinalizeInput is the owner's choice of winner plus the contact details
// sent to them.
type FinalizeInput struct {
	ActorUserID  string
	ListingID    string
	WinnerUserID string
	AccountName  string
	InviteLink   string
	Message      string
}

type FinalizeResult struct {
	Listing listing.Listing
	Notices []resultnotice.Notice
}

type FinalizeService struct {
	listingRepo     listing.Repository
	applicationRepo application.Repository
	finalizer       listing.Finalizer
	idGen           idgen.Generator
	logger          *logging.Logger
	now             func() time.Time
}

func NewFinalizeService(
	listingRepo listing.Repository,
	applicationRepo application.Repository,
	finalizer listing.Finalizer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *FinalizeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FinalizeService{
		listingRepo:     listingRepo,
		applicationRepo: applicationRepo,
		finalizer:       finalizer,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

// Finalize selects the winner, writes one notice per applicant and closes the
// listing in a single commit. Every precondition is checked before anything
// is written.
func (s *FinalizeService) Finalize(ctx context.Context, input FinalizeInput) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinalizeService.Finalize")
	defer span.End()

	input.ActorUserID = strings.TrimSpace(input.ActorUserID)
	input.ListingID = strings.TrimSpace(input.ListingID)
	input.WinnerUserID = strings.TrimSpace(input.WinnerUserID)
	input.AccountName = strings.TrimSpace(input.AccountName)
	input.InviteLink = strings.TrimSpace(input.InviteLink)
	input.Message = strings.TrimSpace(input.Message)

	if input.ActorUserID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: actor is required", ErrUnauthorized)
	}
	if input.ListingID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: listing id is required", ErrInvalidInput)
	}
	if input.WinnerUserID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: winner user id is required", ErrInvalidInput)
	}
	if input.AccountName == "" {
		return FinalizeResult{}, fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}
	if input.Message == "" {
		return FinalizeResult{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	item, exists, err := s.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("get listing: %w", err)
	}
	if !exists {
		return FinalizeResult{}, fmt.Errorf("%w: listing=%s", ErrNotFound, input.ListingID)
	}
	if !item.IsOwnedBy(input.ActorUserID) {
		return FinalizeResult{}, fmt.Errorf("%w: only the owner can finalize a listing", ErrForbidden)
	}
	if item.IsClosed && item.WinnerUserID != input.WinnerUserID {
		return FinalizeResult{}, fmt.Errorf("%w: listing=%s is already closed, reopen it before choosing another winner", ErrConflict, item.ID)
	}
	if item.VoiceChat.RequiresInvite() && input.InviteLink == "" {
		return FinalizeResult{}, fmt.Errorf("%w: invite link is required for %s voice chat", ErrInvalidInput, item.VoiceChat.Label())
	}

	apps, err := s.applicationRepo.ListByListing(ctx, item.ID)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("list applications: %w", err)
	}
	if len(apps) == 0 {
		return FinalizeResult{}, fmt.Errorf("%w: listing=%s has no applicants", ErrInvalidInput, item.ID)
	}

	notices, err := s.buildNotices(item, apps, input)
	if err != nil {
		return FinalizeResult{}, err
	}

	commit := listing.Commit{
		ListingID:    item.ID,
		WinnerUserID: input.WinnerUserID,
		Notices:      notices,
	}
	if err := s.finalizer.Finalize(ctx, commit); err != nil {
		s.logger.WarnContext(ctx, "finalize commit failed",
			"listing_id", item.ID,
			"error", err,
		)
		return FinalizeResult{}, failSpan(span, fmt.Errorf("finalize listing: %w", err))
	}

	item.IsClosed = true
	item.WinnerUserID = input.WinnerUserID
	item.UpdatedAt = s.now().UTC()

	span.SetAttributes(
		attribute.String("listing.id", item.ID),
		attribute.Int("finalize.notice_count", len(notices)),
	)
	s.logger.InfoContext(ctx, "listing finalized",
		"listing_id", item.ID,
		"winner_user_id", input.WinnerUserID,
		"notice_count", len(notices),
	)

	return FinalizeResult{Listing: item, Notices: notices}, nil
}

func (s *FinalizeService) buildNotices(item listing.Listing, apps []application.Application, input FinalizeInput) ([]resultnotice.Notice, error) {
	now := s.now().UTC()
	notices := make([]resultnotice.Notice, 0, len(apps))
	seen := make(map[string]struct{}, len(apps))
	winnerFound := false

	for _, app := range apps {
		if _, dup := seen[app.ApplicantUserID]; dup {
			continue
		}
		seen[app.ApplicantUserID] = struct{}{}

		noticeID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate notice id: %w", err)
		}

		notice := resultnotice.Notice{
			ID:              noticeID,
			ListingID:       item.ID,
			ListingTitle:    item.DisplayTitle(),
			VoiceChat:       string(item.VoiceChat),
			OwnerUserID:     item.OwnerUserID,
			ApplicantUserID: app.ApplicantUserID,
			Status:          resultnotice.StatusRejected,
			Message:         resultnotice.DefaultRejectionMessage,
			CreatedAt:       now,
		}
		if app.ApplicantUserID == input.WinnerUserID {
			winnerFound = true
			notice.Status = resultnotice.StatusSelected
			notice.AccountName = input.AccountName
			notice.Message = input.Message
			if item.VoiceChat.RequiresInvite() {
				notice.InviteLink = input.InviteLink
			}
		}
		if err := notice.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		notices = append(notices, notice)
	}

	if !winnerFound {
		return nil, fmt.Errorf("%w: winner %s did not apply to listing=%s", ErrInvalidInput, input.WinnerUserID, item.ID)
	}
	return notices, nil
}
