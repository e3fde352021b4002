package web

import (
	"net/http"

	"warehouse-manager/internal/app"

	"github.com/go-chi/chi/v5"
)

// createSupportComment handles POST /api/support/comments.
func (h *Handler) createSupportComment(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req struct {
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.CreateSupportComment(r.Context(), claims.UserID, req.Message)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Comment)
}

// listSupportComments handles GET /api/admin/comments. Admin only.
func (h *Handler) listSupportComments(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSupportComments(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if result.Comments == nil {
		result.Comments = []app.CommentView{}
	}
	writeJSON(w, result.Comments)
}

// deleteSupportComment handles DELETE /api/admin/comments/{id}. Admin only.
func (h *Handler) deleteSupportComment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSupportComment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
