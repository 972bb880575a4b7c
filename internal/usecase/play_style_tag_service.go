package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/user"
	idgen "github.com/riskibarqy/lft-board/internal/platform/id"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
)

type PlayStyleTagService struct {
	tagRepo playstyle.Repository
	idGen   idgen.Generator
	logger  *logging.Logger
	now     func() time.Time
}

func NewPlayStyleTagService(tagRepo playstyle.Repository, idGen idgen.Generator, logger *logging.Logger) *PlayStyleTagService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayStyleTagService{
		tagRepo: tagRepo,
		idGen:   idGen,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *PlayStyleTagService) ListActive(ctx context.Context) ([]playstyle.Tag, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayStyleTagService.ListActive")
	defer span.End()

	tags, err := s.tagRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active play style tags: %w", err)
	}
	return tags, nil
}

func (s *PlayStyleTagService) ListAll(ctx context.Context, actor user.Principal) ([]playstyle.Tag, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list play style tags: %w", err)
	}
	return tags, nil
}

func (s *PlayStyleTagService) Create(ctx context.Context, actor user.Principal, name string) (playstyle.Tag, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayStyleTagService.Create")
	defer span.End()

	if err := requireModerator(actor); err != nil {
		return playstyle.Tag{}, err
	}

	tag := playstyle.Tag{
		Name:      strings.TrimSpace(name),
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	if err := tag.Validate(); err != nil {
		return playstyle.Tag{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var err error
	tag.ID, err = s.idGen.NewID()
	if err != nil {
		return playstyle.Tag{}, fmt.Errorf("generate tag id: %w", err)
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, playstyle.ErrDuplicateName) {
			return playstyle.Tag{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return playstyle.Tag{}, fmt.Errorf("create play style tag: %w", err)
	}

	s.logger.InfoContext(ctx, "play style tag created", "tag_id", tag.ID, "name", tag.Name)
	return tag, nil
}

func (s *PlayStyleTagService) SetActive(ctx context.Context, actor user.Principal, tagID string, active bool) (playstyle.Tag, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayStyleTagService.SetActive")
	defer span.End()

	tag, err := s.loadForModerator(ctx, actor, tagID)
	if err != nil {
		return playstyle.Tag{}, err
	}
	if err := s.tagRepo.SetActive(ctx, tag.ID, active); err != nil {
		return playstyle.Tag{}, fmt.Errorf("set play style tag active: %w", err)
	}
	tag.IsActive = active

	s.logger.InfoContext(ctx, "play style tag updated", "tag_id", tag.ID, "active", active)
	return tag, nil
}

// Delete removes the tag. Listings keep the name they were created with.
func (s *PlayStyleTagService) Delete(ctx context.Context, actor user.Principal, tagID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayStyleTagService.Delete")
	defer span.End()

	tag, err := s.loadForModerator(ctx, actor, tagID)
	if err != nil {
		return err
	}
	if err := s.tagRepo.Delete(ctx, tag.ID); err != nil {
		return fmt.Errorf("delete play style tag: %w", err)
	}

	s.logger.InfoContext(ctx, "play style tag deleted", "tag_id", tag.ID)
	return nil
}

func (s *PlayStyleTagService) loadForModerator(ctx context.Context, actor user.Principal, tagID string) (playstyle.Tag, error) {
	if err := requireModerator(actor); err != nil {
		return playstyle.Tag{}, err
	}
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return playstyle.Tag{}, fmt.Errorf("%w: tag id is required", ErrInvalidInput)
	}

	tag, exists, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return playstyle.Tag{}, fmt.Errorf("get play style tag: %w", err)
	}
	if !exists {
		return playstyle.Tag{}, fmt.Errorf("%w: tag=%s", ErrNotFound, tagID)
	}
	return tag, nil
}

func requireModerator(actor user.Principal) error {
	if strings.TrimSpace(actor.UserID) == "" {
		return fmt.Errorf("%w: actor is required", ErrUnauthorized)
	}
	if !actor.IsModerator {
		return fmt.Errorf("%w: moderator only", ErrForbidden)
	}
	return nil
}
