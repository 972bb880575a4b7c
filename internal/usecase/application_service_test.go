package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/application"
	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
	"github.com/riskibarqy/lft-board/internal/domain/user"
	applicationmock "github.com/riskibarqy/lft-board/internal/mocks/domain/application"
	listingmock "github.com/riskibarqy/lft-board/internal/mocks/domain/listing"
	profilemock "github.com/riskibarqy/lft-board/internal/mocks/domain/profile"
	idgen "github.com/riskibarqy/lft-board/internal/platform/id"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type applicationFixture struct {
	listings     *listingmock.Repository
	applications *applicationmock.Repository
	profiles     *profilemock.Repository
	svc          *ApplicationService
}

func newApplicationFixture(t *testing.T, workers int) applicationFixture {
	t.Helper()

	f := applicationFixture{
		listings:     listingmock.NewRepository(t),
		applications: applicationmock.NewRepository(t),
		profiles:     profilemock.NewRepository(t),
	}
	f.svc = NewApplicationService(
		f.listings,
		f.applications,
		f.profiles,
		&idgen.SequenceGenerator{Prefix: "app-"},
		listing.DefaultExpiryWindow,
		workers,
		logging.NewNop(),
	)
	f.svc.now = func() time.Time { return serviceNow }
	return f
}

func openListing() listing.Listing {
	return listing.Listing{ID: "lst-1", OwnerUserID: "owner-1", CreatedAt: serviceNow.Add(-time.Hour)}
}

func TestApplicationService_Apply_Success(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t, 2)
	f.listings.On("GetByID", mock.Anything, "lst-1").Return(openListing(), true, nil).Once()
	f.applications.On("GetByListingAndApplicant", mock.Anything, "lst-1", "player-1").Return(application.Application{}, false, nil).Once()
	f.applications.
		On("Create", mock.Anything, application.Application{ID: "app-1", ListingID: "lst-1", ApplicantUserID: "player-1", CreatedAt: serviceNow}).
		Return(nil).
		Once()

	got, err := f.svc.Apply(context.Background(), " lst-1 ", "player-1")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.ID != "app-1" || got.ListingID != "lst-1" {
		t.Fatalf("unexpected application: %+v", got)
	}
}

func TestApplicationService_Apply_Rejections(t *testing.T) {
	t.Parallel()

	closed := openListing()
	closed.IsClosed = true
	expired := openListing()
	expired.CreatedAt = serviceNow.Add(-listing.DefaultExpiryWindow)

	tests := []struct {
		name      string
		applicant string
		stored    listing.Listing
		exists    bool
		applied   bool
		createErr error
		wantErr   error
	}{
		{name: "missing listing", applicant: "player-1", exists: false, wantErr: ErrNotFound},
		{name: "own listing", applicant: "owner-1", stored: openListing(), exists: true, wantErr: ErrInvalidInput},
		{name: "closed listing", applicant: "player-1", stored: closed, exists: true, wantErr: ErrConflict},
		{name: "expired at the boundary", applicant: "player-1", stored: expired, exists: true, wantErr: ErrConflict},
		{name: "already applied", applicant: "player-1", stored: openListing(), exists: true, applied: true, wantErr: ErrConflict},
		{name: "duplicate race at insert", applicant: "player-1", stored: openListing(), exists: true, createErr: application.ErrDuplicateApplication, wantErr: ErrConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newApplicationFixture(t, 2)
			f.listings.On("GetByID", mock.Anything, "lst-1").Return(tc.stored, tc.exists, nil).Once()
			reachesLookup := tc.exists && tc.applicant != "owner-1" && !tc.stored.IsClosed && tc.stored.IsVisible(serviceNow, listing.DefaultExpiryWindow)
			if reachesLookup {
				f.applications.
					On("GetByListingAndApplicant", mock.Anything, "lst-1", tc.applicant).
					Return(application.Application{}, tc.applied, nil).
					Once()
			}
			if reachesLookup && !tc.applied {
				f.applications.On("Create", mock.Anything, mock.Anything).Return(tc.createErr).Once()
			}

			_, err := f.svc.Apply(context.Background(), "lst-1", tc.applicant)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestApplicationService_Apply_RequiresApplicant(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t, 2)
	if _, err := f.svc.Apply(context.Background(), "lst-1", " "); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestApplicationService_ListApplicants_JoinsProfilesInOrder(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t, 2)
	apps := []application.Application{
		{ID: "app-1", ListingID: "lst-1", ApplicantUserID: "p1", CreatedAt: serviceNow.Add(-3 * time.Minute)},
		{ID: "app-2", ListingID: "lst-1", ApplicantUserID: "p2", CreatedAt: serviceNow.Add(-2 * time.Minute)},
		{ID: "app-3", ListingID: "lst-1", ApplicantUserID: "p3", CreatedAt: serviceNow.Add(-1 * time.Minute)},
	}
	f.listings.On("GetByID", mock.Anything, "lst-1").Return(openListing(), true, nil).Once()
	f.applications.On("ListByListing", mock.Anything, "lst-1").Return(apps, nil).Once()
	f.profiles.
		On("GetByUserID", mock.Anything, "p1").
		Return(profile.Profile{UserID: "p1", DisplayName: "Wraith main", CurrentRank: rank.New(rank.TierGold, rank.Division2)}, true, nil).
		Once()
	f.profiles.On("GetByUserID", mock.Anything, "p2").Return(profile.Profile{}, false, nil).Once()
	f.profiles.On("GetByUserID", mock.Anything, "p3").Return(profile.Profile{UserID: "p3", DisplayName: "Bloodhound"}, true, nil).Once()

	got, err := f.svc.ListApplicants(context.Background(), user.Principal{UserID: "owner-1"}, "lst-1")
	if err != nil {
		t.Fatalf("list applicants: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 applicants, got %d", len(got))
	}
	for i, want := range []string{"app-1", "app-2", "app-3"} {
		if got[i].ID != want {
			t.Fatalf("position %d: got=%s want=%s", i, got[i].ID, want)
		}
	}
	if !got[0].HasProfile || got[0].Profile.DisplayName != "Wraith main" {
		t.Fatalf("expected joined profile for p1, got %+v", got[0])
	}
	if got[1].HasProfile {
		t.Fatalf("expected p2 without profile")
	}
}

func TestApplicationService_ListApplicants_ProfileErrorFails(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t, 1)
	f.listings.On("GetByID", mock.Anything, "lst-1").Return(openListing(), true, nil).Once()
	f.applications.
		On("ListByListing", mock.Anything, "lst-1").
		Return([]application.Application{{ID: "app-1", ListingID: "lst-1", ApplicantUserID: "p1"}}, nil).
		Once()
	f.profiles.On("GetByUserID", mock.Anything, "p1").Return(profile.Profile{}, false, errors.New("db down")).Once()

	if _, err := f.svc.ListApplicants(context.Background(), user.Principal{UserID: "owner-1"}, "lst-1"); err == nil {
		t.Fatalf("expected profile lookup error")
	}
}

func TestApplicationService_ListApplicants_Authorization(t *testing.T) {
	t.Parallel()

	t.Run("stranger forbidden", func(t *testing.T) {
		t.Parallel()

		f := newApplicationFixture(t, 2)
		f.listings.On("GetByID", mock.Anything, "lst-1").Return(openListing(), true, nil).Once()
		_, err := f.svc.ListApplicants(context.Background(), user.Principal{UserID: "stranger"}, "lst-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("moderator allowed with no applicants", func(t *testing.T) {
		t.Parallel()

		f := newApplicationFixture(t, 2)
		f.listings.On("GetByID", mock.Anything, "lst-1").Return(openListing(), true, nil).Once()
		f.applications.On("ListByListing", mock.Anything, "lst-1").Return(nil, nil).Once()
		got, err := f.svc.ListApplicants(context.Background(), user.Principal{UserID: "mod", IsModerator: true}, "lst-1")
		if err != nil {
			t.Fatalf("list applicants: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})
}

func TestApplicationService_ListMine(t *testing.T) {
	t.Parallel()

	f := newApplicationFixture(t, 2)
	f.applications.On("ListListingIDsByApplicant", mock.Anything, "player-1").Return([]string{"lst-1", "lst-2"}, nil).Once()

	got, err := f.svc.ListMine(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(got) != 2 || got[0] != "lst-1" {
		t.Fatalf("unexpected ids: %+v", got)
	}

	if _, err := f.svc.ListMine(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
