package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/lft-board/internal/usecase"
)

type finalizeListingRequest struct {
	WinnerUserID string `json:"winner_user_id" validate:"required"`
	AccountName  string `json:"account_name" validate:"required,max=100"`
	InviteLink   string `json:"invite_link" validate:"omitempty,url,max=500"`
	Message      string `json:"message" validate:"required,max=1000"`
}

func (h *Handler) ApplyToListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyToListing")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	listingID := strings.TrimSpace(r.PathValue("listingID"))
	item, err := h.applicationService.Apply(ctx, listingID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "apply to listing failed", "listing_id", listingID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, applicationDTO{
		ID:              item.ID,
		ListingID:       item.ListingID,
		ApplicantUserID: item.ApplicantUserID,
		CreatedAt:       formatTime(item.CreatedAt),
	})
}

func (h *Handler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListApplicants")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	listingID := strings.TrimSpace(r.PathValue("listingID"))
	items, err := h.applicationService.ListApplicants(ctx, principal, listingID)
	if err != nil {
		h.logger.WarnContext(ctx, "list applicants failed", "listing_id", listingID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, applicantsToDTO(items))
}

func (h *Handler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyApplications")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ids, err := h.applicationService.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my applications failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string][]string{"listing_ids": ids})
}

func (h *Handler) FinalizeListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeListing")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req finalizeListingRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	listingID := strings.TrimSpace(r.PathValue("listingID"))
	result, err := h.finalizeService.Finalize(ctx, usecase.FinalizeInput{
		ActorUserID:  principal.UserID,
		ListingID:    listingID,
		WinnerUserID: req.WinnerUserID,
		AccountName:  req.AccountName,
		InviteLink:   req.InviteLink,
		Message:      req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "finalize listing failed", "listing_id", listingID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, finalizeResultDTO{
		Listing: listingToDTO(h.listingService.View(result.Listing)),
		Notices: noticesToDTO(result.Notices),
	})
}

func (h *Handler) ListMyResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyResults")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	notices, err := h.resultNoticeService.ListMine(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, noticesToDTO(notices))
}
