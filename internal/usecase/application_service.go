package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/lft-board/internal/domain/application"
	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/domain/user"
	idgen "github.com/riskibarqy/lft-board/internal/platform/id"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
)

const defaultApplicantLookupWorkers = 4

// ApplicantView is one application joined with the applicant's profile.
type ApplicantView struct {
	application.Application
	Profile    profile.Profile
	HasProfile bool
}

type ApplicationService struct {
	listingRepo     listing.Repository
	applicationRepo application.Repository
	profileRepo     profile.Repository
	idGen           idgen.Generator
	expiryWindow    time.Duration
	lookupWorkers   int
	logger          *logging.Logger
	now             func() time.Time
}

func NewApplicationService(
	listingRepo listing.Repository,
	applicationRepo application.Repository,
	profileRepo profile.Repository,
	idGen idgen.Generator,
	expiryWindow time.Duration,
	lookupWorkers int,
	logger *logging.Logger,
) *ApplicationService {
	if logger == nil {
		logger = logging.Default()
	}
	if expiryWindow <= 0 {
		expiryWindow = listing.DefaultExpiryWindow
	}
	if lookupWorkers < 1 {
		lookupWorkers = defaultApplicantLookupWorkers
	}

	return &ApplicationService{
		listingRepo:     listingRepo,
		applicationRepo: applicationRepo,
		profileRepo:     profileRepo,
		idGen:           idGen,
		expiryWindow:    expiryWindow,
		lookupWorkers:   lookupWorkers,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *ApplicationService) Apply(ctx context.Context, listingID, applicantUserID string) (application.Application, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ApplicationService.Apply")
	defer span.End()

	listingID = strings.TrimSpace(listingID)
	applicantUserID = strings.TrimSpace(applicantUserID)
	if listingID == "" {
		return application.Application{}, fmt.Errorf("%w: listing id is required", ErrInvalidInput)
	}
	if applicantUserID == "" {
		return application.Application{}, fmt.Errorf("%w: applicant user id is required", ErrUnauthorized)
	}

	item, exists, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return application.Application{}, fmt.Errorf("get listing: %w", err)
	}
	if !exists {
		return application.Application{}, fmt.Errorf("%w: listing=%s", ErrNotFound, listingID)
	}
	if item.IsOwnedBy(applicantUserID) {
		return application.Application{}, fmt.Errorf("%w: cannot apply to your own listing", ErrInvalidInput)
	}

	now := s.now().UTC()
	switch item.StateAt(now, s.expiryWindow) {
	case listing.StateClosed:
		return application.Application{}, fmt.Errorf("%w: listing=%s is closed", ErrConflict, listingID)
	case listing.StateExpired:
		return application.Application{}, fmt.Errorf("%w: listing=%s has expired", ErrConflict, listingID)
	}

	_, applied, err := s.applicationRepo.GetByListingAndApplicant(ctx, listingID, applicantUserID)
	if err != nil {
		return application.Application{}, fmt.Errorf("get application: %w", err)
	}
	if applied {
		return application.Application{}, fmt.Errorf("%w: %w", ErrConflict, application.ErrDuplicateApplication)
	}

	applicationID, err := s.idGen.NewID()
	if err != nil {
		return application.Application{}, fmt.Errorf("generate application id: %w", err)
	}
	created := application.Application{
		ID:              applicationID,
		ListingID:       listingID,
		ApplicantUserID: applicantUserID,
		CreatedAt:       now,
	}
	if err := s.applicationRepo.Create(ctx, created); err != nil {
		if errors.Is(err, application.ErrDuplicateApplication) {
			return application.Application{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return application.Application{}, fmt.Errorf("create application: %w", err)
	}

	s.logger.InfoContext(ctx, "application created",
		"listing_id", listingID,
		"applicant_user_id", applicantUserID,
	)
	return created, nil
}

// ListApplicants returns the listing's applications oldest first, each with
// the applicant's stored profile. Only the owner or a moderator may read it.
func (s *ApplicationService) ListApplicants(ctx context.Context, actor user.Principal, listingID string) ([]ApplicantView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ApplicationService.ListApplicants")
	defer span.End()

	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return nil, fmt.Errorf("%w: listing id is required", ErrInvalidInput)
	}

	item, exists, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: listing=%s", ErrNotFound, listingID)
	}
	if !item.IsOwnedBy(actor.UserID) && !actor.IsModerator {
		return nil, fmt.Errorf("%w: only the owner can review applicants", ErrForbidden)
	}

	apps, err := s.applicationRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if len(apps) == 0 {
		return []ApplicantView{}, nil
	}

	return s.joinProfiles(ctx, apps)
}

// ListMine returns the ids of listings the applicant applied to.
func (s *ApplicationService) ListMine(ctx context.Context, applicantUserID string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ApplicationService.ListMine")
	defer span.End()

	applicantUserID = strings.TrimSpace(applicantUserID)
	if applicantUserID == "" {
		return nil, fmt.Errorf("%w: applicant user id is required", ErrInvalidInput)
	}

	ids, err := s.applicationRepo.ListListingIDsByApplicant(ctx, applicantUserID)
	if err != nil {
		return nil, fmt.Errorf("list applied listing ids: %w", err)
	}
	return ids, nil
}

func (s *ApplicationService) joinProfiles(ctx context.Context, apps []application.Application) ([]ApplicantView, error) {
	out := make([]ApplicantView, len(apps))
	for i, app := range apps {
		out[i] = ApplicantView{Application: app}
	}

	workerCount := min(s.lookupWorkers, len(apps))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for i := range out {
		idx := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			userID := out[idx].ApplicantUserID
			p, exists, err := s.profileRepo.GetByUserID(ctx, userID)
			if err != nil {
				errOnce.Do(func() { firstErr = fmt.Errorf("get applicant profile user=%s: %w", userID, err) })
				return
			}
			out[idx].Profile = p
			out[idx].HasProfile = exists
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit profile lookup to worker pool: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
