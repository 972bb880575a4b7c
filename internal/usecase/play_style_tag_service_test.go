package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/user"
	playstylemock "github.com/riskibarqy/lft-board/internal/mocks/domain/playstyle"
	idgen "github.com/riskibarqy/lft-board/internal/platform/id"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var moderator = user.Principal{UserID: "mod-1", IsModerator: true}

func newTestTagService(repo playstyle.Repository) *PlayStyleTagService {
	svc := NewPlayStyleTagService(repo, &idgen.SequenceGenerator{Prefix: "tag-"}, logging.NewNop())
	svc.now = func() time.Time { return serviceNow }
	return svc
}

func TestPlayStyleTagService_Create(t *testing.T) {
	t.Parallel()

	repo := playstylemock.NewRepository(t)
	svc := newTestTagService(repo)
	repo.
		On("Create", mock.Anything, playstyle.Tag{ID: "tag-1", Name: "まったり", IsActive: true, CreatedAt: serviceNow}).
		Return(nil).
		Once()

	got, err := svc.Create(context.Background(), moderator, " まったり ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "tag-1" || !got.IsActive {
		t.Fatalf("unexpected tag: %+v", got)
	}
}

func TestPlayStyleTagService_Create_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		actor     user.Principal
		tagName   string
		createErr error
		callsRepo bool
		wantErr   error
	}{
		{name: "anonymous", actor: user.Principal{}, tagName: "x", wantErr: ErrUnauthorized},
		{name: "not a moderator", actor: user.Principal{UserID: "u"}, tagName: "x", wantErr: ErrForbidden},
		{name: "blank name", actor: moderator, tagName: " ", wantErr: ErrInvalidInput},
		{name: "duplicate name", actor: moderator, tagName: "ガチ", createErr: playstyle.ErrDuplicateName, callsRepo: true, wantErr: ErrConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := playstylemock.NewRepository(t)
			if tc.callsRepo {
				repo.On("Create", mock.Anything, mock.Anything).Return(tc.createErr).Once()
			}
			_, err := newTestTagService(repo).Create(context.Background(), tc.actor, tc.tagName)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestPlayStyleTagService_SetActiveAndDelete(t *testing.T) {
	t.Parallel()

	repo := playstylemock.NewRepository(t)
	svc := newTestTagService(repo)
	stored := playstyle.Tag{ID: "tag-9", Name: "エンジョイ", IsActive: true}

	repo.On("GetByID", mock.Anything, "tag-9").Return(stored, true, nil).Twice()
	repo.On("SetActive", mock.Anything, "tag-9", false).Return(nil).Once()
	repo.On("Delete", mock.Anything, "tag-9").Return(nil).Once()

	got, err := svc.SetActive(context.Background(), moderator, "tag-9", false)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if got.IsActive {
		t.Fatalf("expected inactive tag")
	}
	if err := svc.Delete(context.Background(), moderator, "tag-9"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestPlayStyleTagService_Delete_NotFound(t *testing.T) {
	t.Parallel()

	repo := playstylemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, "missing").Return(playstyle.Tag{}, false, nil).Once()

	err := newTestTagService(repo).Delete(context.Background(), moderator, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayStyleTagService_ListAll_ModeratorOnly(t *testing.T) {
	t.Parallel()

	repo := playstylemock.NewRepository(t)
	svc := newTestTagService(repo)
	if _, err := svc.ListAll(context.Background(), user.Principal{UserID: "u"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	repo.On("ListAll", mock.Anything).Return([]playstyle.Tag{{ID: "tag-1", Name: "ガチ"}, {ID: "tag-2", Name: "古い", IsActive: false}}, nil).Once()
	got, err := svc.ListAll(context.Background(), moderator)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected inactive tags included, got %d", len(got))
	}
}
