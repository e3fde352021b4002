package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"warehouse-manager/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public) ─────────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// ── Protected API routes (401 JSON if unauthenticated) ───────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		// CSV upload: multipart body, limit managed inside the handler.
		r.Post("/api/warehouses/{id}/inventory/upload", h.uploadInventoryCSV)

		// All other protected endpoints: 1 MB body limit.
		r.Group(func(r chi.Router) {
			r.Use(RequestBodyLimit(1 << 20)) // 1 MB

			r.Get("/api/auth/me", h.me)

			// Warehouses
			r.Get("/api/warehouses", h.listWarehouses)
			r.Post("/api/warehouses", h.createWarehouse)
			r.Get("/api/warehouses/{id}", h.getWarehouse)
			r.Put("/api/warehouses/{id}", h.updateWarehouse)
			r.Delete("/api/warehouses/{id}", h.deleteWarehouse)
			r.Patch("/api/warehouses/{id}/inventory", h.replaceInventory)

			// Flow ledger
			r.Get("/api/warehouses/{id}/flow", h.listFlows)
			r.Post("/api/warehouses/{id}/flow", h.recordFlow)

			// Analytics and advice
			r.Get("/api/warehouses/{id}/analytics", h.getAnalytics)
			r.Get("/api/warehouses/{id}/ai-advice", h.getAdvice)

			// Support
			r.Post("/api/support/comments", h.createSupportComment)

			// Admin
			r.Group(func(r chi.Router) {
				r.Use(h.RequireAdmin)
				r.Get("/api/admin/comments", h.listSupportComments)
				r.Delete("/api/admin/comments/{id}", h.deleteSupportComment)
			})
		})
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// warehouseID extracts the {id} URL parameter.
func warehouseID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit middleware; HTTP 400 for all
// other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
