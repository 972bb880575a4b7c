package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/lft-board/internal/usecase"
)

type createListingRequest struct {
	Title               string   `json:"title" validate:"required,max=80"`
	RecruitCount        int      `json:"recruit_count" validate:"required,oneof=1 2"`
	Mode                string   `json:"mode" validate:"required"`
	VoiceChat           string   `json:"vc" validate:"required"`
	PlayStyles          []string `json:"play_styles" validate:"required,min=1,max=3,unique,dive,required"`
	MinRankTier         string   `json:"min_rank_tier"`
	MinRankDivision     int      `json:"min_rank_division" validate:"min=0,max=4"`
	AllowedAgeGroups    []string `json:"allowed_age_groups" validate:"omitempty,dive,required"`
	OtherText           string   `json:"other_text" validate:"max=500"`
	CurrentRankTier     string   `json:"current_rank_tier"`
	CurrentRankDivision int      `json:"current_rank_division" validate:"min=0,max=4"`
	MaxRankTier         string   `json:"max_rank_tier"`
	MaxRankDivision     int      `json:"max_rank_division" validate:"min=0,max=4"`
	OwnerAgeGroup       string   `json:"owner_age_group"`
	OwnerPlatform       string   `json:"owner_platform"`
}

func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListListings")
	defer span.End()

	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.listingService.Browse(ctx, viewerID(ctx), spec)
	if err != nil {
		h.logger.WarnContext(ctx, "browse listings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listingsToDTO(items))
}

func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetListing")
	defer span.End()

	listingID := strings.TrimSpace(r.PathValue("listingID"))
	item, err := h.listingService.Get(ctx, listingID)
	if err != nil {
		h.logger.WarnContext(ctx, "get listing failed", "listing_id", listingID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listingToDTO(item))
}

func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateListing")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createListingRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.listingService.Create(ctx, usecase.CreateListingInput{
		OwnerUserID:         principal.UserID,
		Title:               req.Title,
		RecruitCount:        req.RecruitCount,
		Mode:                req.Mode,
		VoiceChat:           req.VoiceChat,
		PlayStyles:          req.PlayStyles,
		MinRankTier:         req.MinRankTier,
		MinRankDivision:     req.MinRankDivision,
		AllowedAgeGroups:    req.AllowedAgeGroups,
		OtherText:           req.OtherText,
		CurrentRankTier:     req.CurrentRankTier,
		CurrentRankDivision: req.CurrentRankDivision,
		MaxRankTier:         req.MaxRankTier,
		MaxRankDivision:     req.MaxRankDivision,
		OwnerAgeGroup:       req.OwnerAgeGroup,
		OwnerPlatform:       req.OwnerPlatform,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create listing failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, listingToDTO(item))
}

// GetMyActiveListing returns null when the caller holds no listing slot.
func (h *Handler) GetMyActiveListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyActiveListing")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, exists, err := h.listingService.ActiveForOwner(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get active listing failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listingToDTO(item))
}

func (h *Handler) CloseListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseListing")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	listingID := strings.TrimSpace(r.PathValue("listingID"))
	item, err := h.listingService.Close(ctx, principal, listingID)
	if err != nil {
		h.logger.WarnContext(ctx, "close listing failed", "listing_id", listingID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listingToDTO(item))
}

func (h *Handler) ReopenListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReopenListing")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	listingID := strings.TrimSpace(r.PathValue("listingID"))
	item, err := h.listingService.Reopen(ctx, principal, listingID)
	if err != nil {
		h.logger.WarnContext(ctx, "reopen listing failed", "listing_id", listingID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listingToDTO(item))
}

func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteListing")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	listingID := strings.TrimSpace(r.PathValue("listingID"))
	if err := h.listingService.Delete(ctx, principal, listingID); err != nil {
		h.logger.WarnContext(ctx, "delete listing failed", "listing_id", listingID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": listingID, "status": "deleted"})
}
