package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
	"github.com/sourcegraph/conc/pool"
)

// Board is everything the main page needs for one viewer.
type Board struct {
	Listings          []ListingView
	MyListing         *ListingView
	AppliedListingIDs []string
	Notices           []resultnotice.Notice
	Tags              []playstyle.Tag
}

type BoardService struct {
	listings     *ListingService
	applications *ApplicationService
	results      *ResultNoticeService
	tags         *PlayStyleTagService
}

func NewBoardService(
	listings *ListingService,
	applications *ApplicationService,
	results *ResultNoticeService,
	tags *PlayStyleTagService,
) *BoardService {
	return &BoardService{
		listings:     listings,
		applications: applications,
		results:      results,
		tags:         tags,
	}
}

// Load runs the independent reads concurrently. The first failure cancels
// the rest.
func (s *BoardService) Load(ctx context.Context, viewerID string, spec listing.FilterSpec) (Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.Load")
	defer span.End()

	viewerID = strings.TrimSpace(viewerID)
	var board Board

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.listings.Browse(ctx, viewerID, spec)
		if err != nil {
			return fmt.Errorf("browse listings: %w", err)
		}
		board.Listings = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		tags, err := s.tags.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("list tags: %w", err)
		}
		board.Tags = tags
		return nil
	})

	if viewerID != "" {
		p.Go(func(ctx context.Context) error {
			mine, exists, err := s.listings.ActiveForOwner(ctx, viewerID)
			if err != nil {
				return fmt.Errorf("load own listing: %w", err)
			}
			if exists {
				board.MyListing = &mine
			}
			return nil
		})
		p.Go(func(ctx context.Context) error {
			ids, err := s.applications.ListMine(ctx, viewerID)
			if err != nil {
				return fmt.Errorf("list applied listings: %w", err)
			}
			board.AppliedListingIDs = ids
			return nil
		})
		p.Go(func(ctx context.Context) error {
			notices, err := s.results.ListMine(ctx, viewerID)
			if err != nil {
				return fmt.Errorf("list result notices: %w", err)
			}
			board.Notices = notices
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return Board{}, failSpan(span, err)
	}
	return board, nil
}
