package httpapi

import (
	"net/http"

	"github.com/riskibarqy/lft-board/internal/usecase"
)

type saveProfileRequest struct {
	AgeGroup            string `json:"age_group"`
	CurrentRankTier     string `json:"current_rank_tier"`
	CurrentRankDivision int    `json:"current_rank_division" validate:"min=0,max=4"`
	MaxRankTier         string `json:"max_rank_tier"`
	MaxRankDivision     int    `json:"max_rank_division" validate:"min=0,max=4"`
	TrackerPlatform     string `json:"tracker_platform" validate:"required_with=TrackerPlayerID"`
	TrackerPlayerID     string `json:"tracker_player_id" validate:"max=64"`
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, exists, err := h.profileService.Get(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveProfileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profileService.Save(ctx, usecase.SaveProfileInput{
		UserID:              principal.UserID,
		ClientIP:            quotaClientIP(r),
		AgeGroup:            req.AgeGroup,
		CurrentRankTier:     req.CurrentRankTier,
		CurrentRankDivision: req.CurrentRankDivision,
		MaxRankTier:         req.MaxRankTier,
		MaxRankDivision:     req.MaxRankDivision,
		TrackerPlatform:     req.TrackerPlatform,
		TrackerPlayerID:     req.TrackerPlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) GetListingDefaults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetListingDefaults")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	defaults, err := h.profileService.ListingDefaults(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get listing defaults failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listingDefaultsToDTO(defaults))
}

// FetchTrackerProfile previews the stat-source profile without saving it.
func (h *Handler) FetchTrackerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FetchTrackerProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	preview, err := h.profileService.FetchFromTracker(ctx, usecase.FetchTrackerInput{
		UserID:   principal.UserID,
		ClientIP: quotaClientIP(r),
		Platform: query.Get("platform"),
		PlayerID: query.Get("playerId"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "fetch tracker profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trackerPreviewToDTO(preview))
}
