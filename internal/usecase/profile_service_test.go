package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
	profilemock "github.com/riskibarqy/lft-board/internal/mocks/domain/profile"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"github.com/riskibarqy/lft-board/internal/platform/ratelimit"
	"github.com/stretchr/testify/mock"
)

type stubTracker struct {
	ext   profile.External
	err   error
	calls int
}

func (s *stubTracker) FetchProfile(_ context.Context, platform player.Platform, playerID string) (profile.External, error) {
	s.calls++
	if s.err != nil {
		return profile.External{}, s.err
	}
	ext := s.ext
	if ext.Handle == "" {
		ext.Handle = playerID
	}
	return ext, nil
}

type stubLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func newTestProfileService(repo profile.Repository, tracker TrackerProvider, limiter RateLimiter) *ProfileService {
	svc := NewProfileService(repo, tracker, limiter, logging.NewNop())
	svc.now = func() time.Time { return serviceNow }
	return svc
}

func TestProfileService_FetchFromTracker_MapsRanks(t *testing.T) {
	t.Parallel()

	tracker := &stubTracker{ext: profile.External{DisplayName: "Wraith main", RankLabel: "Platinum II", MaxRankLabel: "Diamond IV"}}
	limiter := &stubLimiter{decision: ratelimit.Decision{Allowed: true}}
	svc := newTestProfileService(profilemock.NewRepository(t), tracker, limiter)

	got, err := svc.FetchFromTracker(context.Background(), FetchTrackerInput{
		UserID:   "user-1",
		ClientIP: "203.0.113.7",
		Platform: "origin",
		PlayerID: " wraith_main ",
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.CurrentRank != rank.New(rank.TierPlatinum, rank.Division2) {
		t.Fatalf("unexpected current rank: %+v", got.CurrentRank)
	}
	if got.MaxRank != rank.New(rank.TierDiamond, rank.Division4) {
		t.Fatalf("unexpected max rank: %+v", got.MaxRank)
	}
	if got.Platform != player.PlatformOrigin || got.Handle != "wraith_main" {
		t.Fatalf("expected platform and handle filled, got %+v", got.External)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != ratelimit.Key("user-1", "203.0.113.7") {
		t.Fatalf("unexpected limiter keys: %v", limiter.keys)
	}
}

func TestProfileService_FetchFromTracker_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       FetchTrackerInput
		tracker     *stubTracker
		limiter     *stubLimiter
		wantErr     error
		wantTracker int
	}{
		{
			name:    "unknown platform",
			input:   FetchTrackerInput{UserID: "u", Platform: "switch", PlayerID: "x"},
			tracker: &stubTracker{},
			limiter: &stubLimiter{decision: ratelimit.Decision{Allowed: true}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty player id",
			input:   FetchTrackerInput{UserID: "u", Platform: "psn", PlayerID: " "},
			tracker: &stubTracker{},
			limiter: &stubLimiter{decision: ratelimit.Decision{Allowed: true}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing user",
			input:   FetchTrackerInput{Platform: "psn", PlayerID: "x"},
			tracker: &stubTracker{},
			limiter: &stubLimiter{decision: ratelimit.Decision{Allowed: true}},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "rate limited",
			input:   FetchTrackerInput{UserID: "u", Platform: "xbl", PlayerID: "x"},
			tracker: &stubTracker{},
			limiter: &stubLimiter{decision: ratelimit.Decision{Allowed: false, RetryAfter: time.Minute}},
			wantErr: ErrRateLimited,
		},
		{
			name:    "limiter store down",
			input:   FetchTrackerInput{UserID: "u", Platform: "xbl", PlayerID: "x"},
			tracker: &stubTracker{},
			limiter: &stubLimiter{err: errors.New("redis timeout")},
			wantErr: ErrDependencyUnavailable,
		},
		{
			name:        "player not found",
			input:       FetchTrackerInput{UserID: "u", Platform: "origin", PlayerID: "ghost"},
			tracker:     &stubTracker{err: ErrNotFound},
			limiter:     &stubLimiter{decision: ratelimit.Decision{Allowed: true}},
			wantErr:     ErrNotFound,
			wantTracker: 1,
		},
		{
			name:        "upstream failure",
			input:       FetchTrackerInput{UserID: "u", Platform: "origin", PlayerID: "x"},
			tracker:     &stubTracker{err: errors.New("connection reset")},
			limiter:     &stubLimiter{decision: ratelimit.Decision{Allowed: true}},
			wantErr:     ErrDependencyUnavailable,
			wantTracker: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestProfileService(profilemock.NewRepository(t), tc.tracker, tc.limiter)
			_, err := svc.FetchFromTracker(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.tracker.calls != tc.wantTracker {
				t.Fatalf("tracker calls got=%d want=%d", tc.tracker.calls, tc.wantTracker)
			}
		})
	}
}

func TestProfileService_FetchFromTracker_RateLimitCarriesRetryAfter(t *testing.T) {
	t.Parallel()

	limiter := &stubLimiter{decision: ratelimit.Decision{Allowed: false, RetryAfter: 90 * time.Second}}
	svc := newTestProfileService(profilemock.NewRepository(t), &stubTracker{}, limiter)

	_, err := svc.FetchFromTracker(context.Background(), FetchTrackerInput{UserID: "u", Platform: "psn", PlayerID: "x"})
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rateErr.RetryAfter != 90*time.Second {
		t.Fatalf("unexpected retry after: %s", rateErr.RetryAfter)
	}
}

func TestProfileService_FetchFromTracker_NoTrackerConfigured(t *testing.T) {
	t.Parallel()

	svc := newTestProfileService(profilemock.NewRepository(t), nil, nil)
	_, err := svc.FetchFromTracker(context.Background(), FetchTrackerInput{UserID: "u", Platform: "psn", PlayerID: "x"})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestProfileService_Save_ManualFields(t *testing.T) {
	t.Parallel()

	repo := profilemock.NewRepository(t)
	svc := newTestProfileService(repo, nil, nil)

	repo.On("GetByUserID", mock.Anything, "user-1").Return(profile.Profile{}, false, nil).Once()
	repo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(p profile.Profile) bool {
			return p.UserID == "user-1" &&
				p.AgeGroup == player.AgeGroup20s &&
				p.CurrentRank == rank.New(rank.TierGold, rank.Division4) &&
				p.UpdatedAt.Equal(serviceNow)
		})).
		Return(nil).
		Once()

	got, err := svc.Save(context.Background(), SaveProfileInput{
		UserID:          "user-1",
		AgeGroup:        "20s",
		CurrentRankTier: "gold",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got.MaxRank.IsSet() {
		t.Fatalf("expected max rank unset, got %+v", got.MaxRank)
	}
}

func TestProfileService_Save_WithTrackerKeepsAgeGroup(t *testing.T) {
	t.Parallel()

	repo := profilemock.NewRepository(t)
	tracker := &stubTracker{ext: profile.External{DisplayName: "Bloodhound", RankLabel: "Diamond I", Kills: profile.NewStat(4200)}}
	svc := newTestProfileService(repo, tracker, &stubLimiter{decision: ratelimit.Decision{Allowed: true}})

	repo.On("GetByUserID", mock.Anything, "user-1").Return(profile.Profile{UserID: "user-1", AgeGroup: player.AgeGroup30s}, true, nil).Once()
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.Save(context.Background(), SaveProfileInput{
		UserID:          "user-1",
		AgeGroup:        "30s",
		TrackerPlatform: "origin",
		TrackerPlayerID: "hound",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got.AgeGroup != player.AgeGroup30s || got.DisplayName != "Bloodhound" || got.TrackerHandle != "hound" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if got.CurrentRank != rank.New(rank.TierDiamond, rank.Division1) {
		t.Fatalf("expected tracker rank to overlay manual rank, got %+v", got.CurrentRank)
	}
}

func TestProfileService_Save_RejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input SaveProfileInput
	}{
		{name: "unknown age group", input: SaveProfileInput{UserID: "user-1", AgeGroup: "90s"}},
		{name: "unknown tier", input: SaveProfileInput{UserID: "user-1", CurrentRankTier: "mythic"}},
		{name: "division out of range", input: SaveProfileInput{UserID: "user-1", MaxRankTier: "gold", MaxRankDivision: 7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := profilemock.NewRepository(t)
			repo.On("GetByUserID", mock.Anything, "user-1").Return(profile.Profile{}, false, nil).Once()
			svc := newTestProfileService(repo, nil, nil)

			if _, err := svc.Save(context.Background(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestProfileService_ListingDefaults(t *testing.T) {
	t.Parallel()

	repo := profilemock.NewRepository(t)
	svc := newTestProfileService(repo, nil, nil)

	repo.On("GetByUserID", mock.Anything, "new-user").Return(profile.Profile{}, false, nil).Once()
	got, err := svc.ListingDefaults(context.Background(), "new-user")
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if got != (profile.ListingDefaults{}) {
		t.Fatalf("expected empty defaults, got %+v", got)
	}

	repo.
		On("GetByUserID", mock.Anything, "user-1").
		Return(profile.Profile{UserID: "user-1", AgeGroup: player.AgeGroup20s, TrackerPlatform: player.PlatformPSN}, true, nil).
		Once()
	got, err = svc.ListingDefaults(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if got.AgeGroup != player.AgeGroup20s || got.Platform != player.PlatformPSN {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}
