package httpapi

import "net/http"

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.boardService.Load(ctx, principal.UserID, spec)
	if err != nil {
		h.logger.WarnContext(ctx, "load board failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardToDTO(board))
}
