package httpapi

import (
	"net/http"
	"strings"
)

type createPlayStyleTagRequest struct {
	Name string `json:"name" validate:"required,max=30"`
}

type updatePlayStyleTagRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (h *Handler) ListPlayStyleTags(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayStyleTags")
	defer span.End()

	tags, err := h.playStyleTagService.ListActive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list play style tags failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tagsToDTO(tags))
}

func (h *Handler) AdminListPlayStyleTags(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListPlayStyleTags")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tags, err := h.playStyleTagService.ListAll(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "admin list play style tags failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tagsToDTO(tags))
}

func (h *Handler) AdminCreatePlayStyleTag(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreatePlayStyleTag")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createPlayStyleTagRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	tag, err := h.playStyleTagService.Create(ctx, principal, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create play style tag failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tagToDTO(tag))
}

func (h *Handler) AdminUpdatePlayStyleTag(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdatePlayStyleTag")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updatePlayStyleTagRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	tagID := strings.TrimSpace(r.PathValue("tagID"))
	tag, err := h.playStyleTagService.SetActive(ctx, principal, tagID, *req.IsActive)
	if err != nil {
		h.logger.WarnContext(ctx, "update play style tag failed", "tag_id", tagID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tagToDTO(tag))
}

func (h *Handler) AdminDeletePlayStyleTag(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeletePlayStyleTag")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tagID := strings.TrimSpace(r.PathValue("tagID"))
	if err := h.playStyleTagService.Delete(ctx, principal, tagID); err != nil {
		h.logger.WarnContext(ctx, "delete play style tag failed", "tag_id", tagID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": tagID, "status": "deleted"})
}
