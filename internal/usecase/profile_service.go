package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"github.com/riskibarqy/lft-board/internal/platform/ratelimit"
)

const maxTrackerPlayerIDLength = 64

// TrackerProvider fetches a player's profile from the external stat source.
type TrackerProvider interface {
	FetchProfile(ctx context.Context, platform player.Platform, playerID string) (profile.External, error)
}

// RateLimiter admits or rejects one hit for a key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

type FetchTrackerInput struct {
	UserID   string
	ClientIP string
	Platform string
	PlayerID string
}

// TrackerPreview is a fetched stat-source profile with ranks already mapped.
type TrackerPreview struct {
	profile.External
	CurrentRank rank.Rank
	MaxRank     rank.Rank
}

// SaveProfileInput updates the user-entered fields. When PlayerID is set the
// stat-source fields are refreshed from the tracker before saving.
type SaveProfileInput struct {
	UserID              string
	ClientIP            string
	AgeGroup            string
	CurrentRankTier     string
	CurrentRankDivision int
	MaxRankTier         string
	MaxRankDivision     int
	TrackerPlatform     string
	TrackerPlayerID     string
}

type ProfileService struct {
	profileRepo profile.Repository
	tracker     TrackerProvider
	limiter     RateLimiter
	logger      *logging.Logger
	now         func() time.Time
}

func NewProfileService(
	profileRepo profile.Repository,
	tracker TrackerProvider,
	limiter RateLimiter,
	logger *logging.Logger,
) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ProfileService{
		profileRepo: profileRepo,
		tracker:     tracker,
		limiter:     limiter,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (profile.Profile, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, false, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	return item, exists, nil
}

// ListingDefaults projects the stored profile into listing form defaults.
// A user without a profile gets all-unset defaults.
func (s *ProfileService) ListingDefaults(ctx context.Context, userID string) (profile.ListingDefaults, error) {
	item, exists, err := s.Get(ctx, userID)
	if err != nil {
		return profile.ListingDefaults{}, err
	}
	if !exists {
		return profile.ListingDefaults{}, nil
	}
	return profile.DefaultsFor(item), nil
}

// FetchFromTracker returns a normalized preview without saving it. Calls are
// rate limited per user and client address.
func (s *ProfileService) FetchFromTracker(ctx context.Context, input FetchTrackerInput) (TrackerPreview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.FetchFromTracker")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.ClientIP = strings.TrimSpace(input.ClientIP)
	input.PlayerID = strings.TrimSpace(input.PlayerID)

	if input.UserID == "" {
		return TrackerPreview{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	platform, ok := player.ParsePlatform(input.Platform)
	if !ok {
		return TrackerPreview{}, fmt.Errorf("%w: platform must be one of origin, xbl, psn", ErrInvalidInput)
	}
	if input.PlayerID == "" {
		return TrackerPreview{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(input.PlayerID) > maxTrackerPlayerIDLength {
		return TrackerPreview{}, fmt.Errorf("%w: player id must be at most %d characters", ErrInvalidInput, maxTrackerPlayerIDLength)
	}
	if s.tracker == nil {
		return TrackerPreview{}, fmt.Errorf("%w: tracker is not configured", ErrDependencyUnavailable)
	}

	if err := s.allow(ctx, input.UserID, input.ClientIP); err != nil {
		return TrackerPreview{}, err
	}

	ext, err := s.tracker.FetchProfile(ctx, platform, input.PlayerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDependencyUnavailable) || errors.Is(err, ErrInvalidInput) {
			return TrackerPreview{}, failSpan(span, err)
		}
		return TrackerPreview{}, failSpan(span, fmt.Errorf("%w: fetch tracker profile: %w", ErrDependencyUnavailable, err))
	}
	if !ext.Platform.IsSet() {
		ext.Platform = platform
	}
	if strings.TrimSpace(ext.Handle) == "" {
		ext.Handle = input.PlayerID
	}

	s.logger.InfoContext(ctx, "tracker profile fetched",
		"user_id", input.UserID,
		"platform", string(ext.Platform),
	)

	return TrackerPreview{
		External:    ext,
		CurrentRank: profile.ToInternalRank(ext),
		MaxRank:     profile.ToInternalMaxRank(ext),
	}, nil
}

func (s *ProfileService) Save(ctx context.Context, input SaveProfileInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Save")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	existing, _, err := s.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	item := existing
	item.UserID = input.UserID

	if raw := strings.TrimSpace(input.AgeGroup); raw != "" {
		group, ok := player.ParseAgeGroup(raw)
		if !ok {
			return profile.Profile{}, fmt.Errorf("%w: unsupported age group %q", ErrInvalidInput, raw)
		}
		item.AgeGroup = group
	} else {
		item.AgeGroup = player.AgeGroupUnset
	}

	if item.CurrentRank, err = parseRankInput("current rank", input.CurrentRankTier, input.CurrentRankDivision); err != nil {
		return profile.Profile{}, err
	}
	if item.MaxRank, err = parseRankInput("max rank", input.MaxRankTier, input.MaxRankDivision); err != nil {
		return profile.Profile{}, err
	}

	if strings.TrimSpace(input.TrackerPlayerID) != "" {
		preview, err := s.FetchFromTracker(ctx, FetchTrackerInput{
			UserID:   input.UserID,
			ClientIP: input.ClientIP,
			Platform: input.TrackerPlatform,
			PlayerID: input.TrackerPlayerID,
		})
		if err != nil {
			return profile.Profile{}, err
		}
		item = item.ApplyExternal(preview.External)
	}

	item.UpdatedAt = s.now().UTC()
	if err := item.Validate(); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.profileRepo.Upsert(ctx, item); err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile saved",
		"user_id", item.UserID,
		"tracker_linked", item.TrackerHandle != "",
	)
	return item, nil
}

func (s *ProfileService) allow(ctx context.Context, userID, clientIP string) error {
	if s.limiter == nil {
		return nil
	}
	decision, err := s.limiter.Allow(ctx, ratelimit.Key(userID, clientIP))
	if err != nil {
		return fmt.Errorf("%w: rate limiter: %w", ErrDependencyUnavailable, err)
	}
	if !decision.Allowed {
		s.logger.WarnContext(ctx, "tracker fetch rate limited",
			"user_id", userID,
			"retry_after", decision.RetryAfter.String(),
		)
		return &RateLimitError{RetryAfter: decision.RetryAfter}
	}
	return nil
}
