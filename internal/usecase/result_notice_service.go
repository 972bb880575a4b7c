package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
)

type ResultNoticeService struct {
	noticeRepo resultnotice.Repository
}

func NewResultNoticeService(noticeRepo resultnotice.Repository) *ResultNoticeService {
	return &ResultNoticeService{noticeRepo: noticeRepo}
}

// ListMine returns the applicant's notices, newest first.
func (s *ResultNoticeService) ListMine(ctx context.Context, applicantUserID string) ([]resultnotice.Notice, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultNoticeService.ListMine")
	defer span.End()

	applicantUserID = strings.TrimSpace(applicantUserID)
	if applicantUserID == "" {
		return nil, fmt.Errorf("%w: applicant user id is required", ErrInvalidInput)
	}

	notices, err := s.noticeRepo.ListByApplicant(ctx, applicantUserID)
	if err != nil {
		return nil, fmt.Errorf("list result notices: %w", err)
	}

	sort.SliceStable(notices, func(i, j int) bool {
		return notices[i].CreatedAt.After(notices[j].CreatedAt)
	})
	return notices, nil
}
