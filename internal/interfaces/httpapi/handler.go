package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/lft-board/internal/domain/user"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"github.com/riskibarqy/lft-board/internal/usecase"
)

type Handler struct {
	listingService      *usecase.ListingService
	applicationService  *usecase.ApplicationService
	finalizeService     *usecase.FinalizeService
	resultNoticeService *usecase.ResultNoticeService
	profileService      *usecase.ProfileService
	playStyleTagService *usecase.PlayStyleTagService
	boardService        *usecase.BoardService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	listingService *usecase.ListingService,
	applicationService *usecase.ApplicationService,
	finalizeService *usecase.FinalizeService,
	resultNoticeService *usecase.ResultNoticeService,
	profileService *usecase.ProfileService,
	playStyleTagService *usecase.PlayStyleTagService,
	boardService *usecase.BoardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		listingService:      listingService,
		applicationService:  applicationService,
		finalizeService:     finalizeService,
		resultNoticeService: resultNoticeService,
		profileService:      profileService,
		playStyleTagService: playStyleTagService,
		boardService:        boardService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeRequest reads a strict JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}
