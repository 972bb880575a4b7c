package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
	"github.com/riskibarqy/lft-board/internal/domain/user"
	idgen "github.com/riskibarqy/lft-board/internal/platform/id"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// CreateListingInput is the incoming payload for a new listing. Divisions
// are 1..4 with 0 meaning unset.
type CreateListingInput struct {
	OwnerUserID         string
	Title               string
	RecruitCount        int
	Mode                string
	VoiceChat           string
	PlayStyles          []string
	MinRankTier         string
	MinRankDivision     int
	AllowedAgeGroups    []string
	OtherText           string
	CurrentRankTier     string
	CurrentRankDivision int
	MaxRankTier         string
	MaxRankDivision     int
	OwnerAgeGroup       string
	OwnerPlatform       string
}

// ListingView is a listing with its derived lifecycle state.
type ListingView struct {
	listing.Listing
	State     listing.State
	ExpiresAt time.Time
}

type ListingService struct {
	listingRepo  listing.Repository
	tagRepo      playstyle.Repository
	idGen        idgen.Generator
	expiryWindow time.Duration
	logger       *logging.Logger
	now          func() time.Time
}

func NewListingService(
	listingRepo listing.Repository,
	tagRepo playstyle.Repository,
	idGen idgen.Generator,
	expiryWindow time.Duration,
	logger *logging.Logger,
) *ListingService {
	if logger == nil {
		logger = logging.Default()
	}
	if expiryWindow <= 0 {
		expiryWindow = listing.DefaultExpiryWindow
	}

	return &ListingService{
		listingRepo:  listingRepo,
		tagRepo:      tagRepo,
		idGen:        idGen,
		expiryWindow: expiryWindow,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ListingService) ExpiryWindow() time.Duration {
	return s.expiryWindow
}

func (s *ListingService) Create(ctx context.Context, input CreateListingInput) (ListingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListingService.Create")
	defer span.End()

	item, err := s.buildListing(input)
	if err != nil {
		return ListingView{}, err
	}

	if err := s.ensureActiveTags(ctx, item.PlayStyles); err != nil {
		return ListingView{}, err
	}

	_, holdsSlot, err := s.listingRepo.GetOpenByOwner(ctx, item.OwnerUserID)
	if err != nil {
		return ListingView{}, fmt.Errorf("get open listing by owner: %w", err)
	}
	if holdsSlot {
		return ListingView{}, fmt.Errorf("%w: owner already has an open listing, delete it before posting again", ErrConflict)
	}

	item.ID, err = s.idGen.NewID()
	if err != nil {
		return ListingView{}, fmt.Errorf("generate listing id: %w", err)
	}
	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := item.Validate(); err != nil {
		return ListingView{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.listingRepo.Create(ctx, item); err != nil {
		if errors.Is(err, listing.ErrOwnerHasOpenListing) {
			return ListingView{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return ListingView{}, fmt.Errorf("create listing: %w", err)
	}

	span.SetAttributes(attribute.String("listing.id", item.ID))
	s.logger.InfoContext(ctx, "listing created",
		"listing_id", item.ID,
		"owner_user_id", item.OwnerUserID,
		"mode", string(item.Mode),
	)

	return s.view(item), nil
}

func (s *ListingService) Get(ctx context.Context, listingID string) (ListingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListingService.Get")
	defer span.End()

	item, err := s.load(ctx, listingID)
	if err != nil {
		return ListingView{}, err
	}
	return s.view(item), nil
}

// ActiveForOwner returns the listing holding the owner's slot, which may be
// expired but not yet closed or deleted.
func (s *ListingService) ActiveForOwner(ctx context.Context, ownerUserID string) (ListingView, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListingService.ActiveForOwner")
	defer span.End()

	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return ListingView{}, false, fmt.Errorf("%w: owner user id is required", ErrInvalidInput)
	}

	item, exists, err := s.listingRepo.GetOpenByOwner(ctx, ownerUserID)
	if err != nil {
		return ListingView{}, false, fmt.Errorf("get open listing by owner: %w", err)
	}
	if !exists {
		return ListingView{}, false, nil
	}
	return s.view(item), true, nil
}

// Browse returns the visible listings matching spec, viewer's own first.
func (s *ListingService) Browse(ctx context.Context, viewerID string, spec listing.FilterSpec) ([]ListingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListingService.Browse")
	defer span.End()

	items, err := s.listingRepo.ListNotClosed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	filtered := listing.Filter(items, spec, strings.TrimSpace(viewerID), s.now().UTC(), s.expiryWindow)
	out := make([]ListingView, 0, len(filtered))
	for _, item := range filtered {
		out = append(out, s.view(item))
	}
	return out, nil
}

func (s *ListingService) Close(ctx context.Context, actor user.Principal, listingID string) (ListingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListingService.Close")
	defer span.End()

	item, err := s.loadForActor(ctx, actor, listingID)
	if err != nil {
		return ListingView{}, err
	}

	closed, err := item.Close("", s.now().UTC())
	if err != nil {
		return ListingView{}, fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if err := s.listingRepo.Close(ctx, closed.ID, ""); err != nil {
		return ListingView{}, fmt.Errorf("close listing: %w", err)
	}

	s.logger.InfoContext(ctx, "listing closed",
		"listing_id", closed.ID,
		"actor_user_id", actor.UserID,
		"moderator", actor.IsModerator && !item.IsOwnedBy(actor.UserID),
	)
	return s.view(closed), nil
}

func (s *ListingService) Reopen(ctx context.Context, actor user.Principal, listingID string) (ListingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListingService.Reopen")
	defer span.End()

	item, err := s.loadForActor(ctx, actor, listingID)
	if err != nil {
		return ListingView{}, err
	}

	reopened, err := item.Reopen(s.now().UTC())
	if err != nil {
		return ListingView{}, fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if err := s.listingRepo.Reopen(ctx, reopened.ID); err != nil {
		if errors.Is(err, listing.ErrOwnerHasOpenListing) {
			return ListingView{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return ListingView{}, fmt.Errorf("reopen listing: %w", err)
	}

	s.logger.InfoContext(ctx, "listing reopened",
		"listing_id", reopened.ID,
		"actor_user_id", actor.UserID,
	)
	return s.view(reopened), nil
}

// Delete removes the listing and its applications. Result notices stay.
func (s *ListingService) Delete(ctx context.Context, actor user.Principal, listingID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListingService.Delete")
	defer span.End()

	item, err := s.loadForActor(ctx, actor, listingID)
	if err != nil {
		return err
	}
	if err := s.listingRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	s.logger.InfoContext(ctx, "listing deleted",
		"listing_id", item.ID,
		"owner_user_id", item.OwnerUserID,
		"actor_user_id", actor.UserID,
	)
	return nil
}

func (s *ListingService) load(ctx context.Context, listingID string) (listing.Listing, error) {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return listing.Listing{}, fmt.Errorf("%w: listing id is required", ErrInvalidInput)
	}

	item, exists, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return listing.Listing{}, fmt.Errorf("get listing: %w", err)
	}
	if !exists {
		return listing.Listing{}, fmt.Errorf("%w: listing=%s", ErrNotFound, listingID)
	}
	return item, nil
}

func (s *ListingService) loadForActor(ctx context.Context, actor user.Principal, listingID string) (listing.Listing, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return listing.Listing{}, fmt.Errorf("%w: actor is required", ErrUnauthorized)
	}
	item, err := s.load(ctx, listingID)
	if err != nil {
		return listing.Listing{}, err
	}
	if !item.IsOwnedBy(actor.UserID) && !actor.IsModerator {
		return listing.Listing{}, fmt.Errorf("%w: listing=%s is owned by another user", ErrForbidden, item.ID)
	}
	return item, nil
}

// View attaches the derived state to a listing loaded elsewhere.
func (s *ListingService) View(item listing.Listing) ListingView {
	return s.view(item)
}

func (s *ListingService) view(item listing.Listing) ListingView {
	return ListingView{
		Listing:   item,
		State:     item.StateAt(s.now().UTC(), s.expiryWindow),
		ExpiresAt: item.ExpiresAt(s.expiryWindow),
	}
}

func (s *ListingService) ensureActiveTags(ctx context.Context, styles []string) error {
	tags, err := s.tagRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active play style tags: %w", err)
	}
	active := playstyle.ActiveNames(tags)
	for _, style := range styles {
		if _, ok := active[style]; !ok {
			return fmt.Errorf("%w: play style %q is not an active tag", ErrInvalidInput, style)
		}
	}
	return nil
}

func (s *ListingService) buildListing(input CreateListingInput) (listing.Listing, error) {
	item := listing.Listing{
		OwnerUserID:  strings.TrimSpace(input.OwnerUserID),
		Title:        strings.TrimSpace(input.Title),
		RecruitCount: input.RecruitCount,
		OtherText:    strings.TrimSpace(input.OtherText),
	}
	if item.OwnerUserID == "" {
		return listing.Listing{}, fmt.Errorf("%w: owner user id is required", ErrInvalidInput)
	}

	var ok bool
	if item.Mode, ok = listing.ParseMode(input.Mode); !ok {
		return listing.Listing{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, listing.ErrInvalidMode, input.Mode)
	}
	if item.VoiceChat, ok = listing.ParseVoiceChat(input.VoiceChat); !ok {
		return listing.Listing{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, listing.ErrInvalidVoiceChat, input.VoiceChat)
	}

	item.PlayStyles = make([]string, 0, len(input.PlayStyles))
	for _, style := range input.PlayStyles {
		item.PlayStyles = append(item.PlayStyles, strings.TrimSpace(style))
	}

	var err error
	if item.MinRequirement, err = parseRankInput("min rank", input.MinRankTier, input.MinRankDivision); err != nil {
		return listing.Listing{}, err
	}
	if item.CurrentRank, err = parseRankInput("current rank", input.CurrentRankTier, input.CurrentRankDivision); err != nil {
		return listing.Listing{}, err
	}
	if item.MaxRank, err = parseRankInput("max rank", input.MaxRankTier, input.MaxRankDivision); err != nil {
		return listing.Listing{}, err
	}

	seenAge := make(map[player.AgeGroup]struct{}, len(input.AllowedAgeGroups))
	for _, raw := range input.AllowedAgeGroups {
		group, ok := player.ParseAgeGroup(raw)
		if !ok {
			return listing.Listing{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, listing.ErrInvalidAgeGroup, raw)
		}
		if _, dup := seenAge[group]; dup {
			continue
		}
		seenAge[group] = struct{}{}
		item.AllowedAgeGroups = append(item.AllowedAgeGroups, group)
	}

	if strings.TrimSpace(input.OwnerAgeGroup) != "" {
		if item.OwnerAgeGroup, ok = player.ParseAgeGroup(input.OwnerAgeGroup); !ok {
			return listing.Listing{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, listing.ErrInvalidAgeGroup, input.OwnerAgeGroup)
		}
	}
	if strings.TrimSpace(input.OwnerPlatform) != "" {
		if item.OwnerPlatform, ok = player.ParsePlatform(input.OwnerPlatform); !ok {
			return listing.Listing{}, fmt.Errorf("%w: unsupported platform %q", ErrInvalidInput, input.OwnerPlatform)
		}
	}

	return item, nil
}

// parseRankInput rejects unknown tier labels and out-of-range divisions. A
// divisioned tier without a division gets the weakest one.
func parseRankInput(field, tierLabel string, division int) (rank.Rank, error) {
	if strings.TrimSpace(tierLabel) == "" || strings.EqualFold(strings.TrimSpace(tierLabel), "none") {
		return rank.Rank{}, nil
	}
	tier := rank.NormalizeTier(tierLabel)
	if !tier.IsSet() {
		return rank.Rank{}, fmt.Errorf("%w: %s tier %q is not recognized", ErrInvalidInput, field, tierLabel)
	}
	if division != 0 && tier.HasDivisions() && !rank.DivisionFromInt(division).IsSet() {
		return rank.Rank{}, fmt.Errorf("%w: %s division must be between 1 and 4", ErrInvalidInput, field)
	}
	return rank.New(tier, rank.DivisionFromInt(division)).WithDefaultDivision(), nil
}
