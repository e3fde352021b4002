package web

import (
	"net/http"
	"strconv"
	"time"

	"warehouse-manager/internal/ai"
)

// getAnalytics handles GET /api/warehouses/{id}/analytics with optional
// period (day|week|month) and periods query parameters.
func (h *Handler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	period := r.URL.Query().Get("period")
	periods, _ := strconv.Atoi(r.URL.Query().Get("periods"))

	result, err := h.svc.GetAnalytics(r.Context(), warehouseID(r), claims.UserID, period, periods)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Analytics)
}

// getAdvice handles GET /api/warehouses/{id}/ai-advice.
func (h *Handler) getAdvice(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	result, err := h.svc.GetAdvice(r.Context(), warehouseID(r), claims.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Advice      *ai.Advice `json:"advice"`
		GeneratedAt time.Time  `json:"generatedAt"`
	}
	writeJSON(w, response{Advice: result.Advice, GeneratedAt: result.GeneratedAt})
}
