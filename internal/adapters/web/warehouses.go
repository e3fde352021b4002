package web

import (
	"io"
	"net/http"

	"warehouse-manager/internal/app"
)

// maxCSVUploadBytes caps inventory CSV uploads at 5 MB.
const maxCSVUploadBytes = 5 << 20

// listWarehouses handles GET /api/warehouses.
func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.ListWarehouses(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if result.Warehouses == nil {
		result.Warehouses = []app.WarehouseView{}
	}
	writeJSON(w, result.Warehouses)
}

// getWarehouse handles GET /api/warehouses/{id}.
func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.GetWarehouse(r.Context(), warehouseID(r), claims.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Warehouse)
}

// createWarehouse handles POST /api/warehouses.
func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Address     string `json:"address"`
		Coordinates any    `json:"coordinates"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.CreateWarehouse(r.Context(), claims.UserID, app.CreateWarehouseRequest{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Coordinates: req.Coordinates,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Warehouse)
}

// updateWarehouse handles PUT /api/warehouses/{id}.
func (h *Handler) updateWarehouse(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Address     *string `json:"address"`
		Coordinates any     `json:"coordinates"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.UpdateWarehouse(r.Context(), warehouseID(r), claims.UserID, app.UpdateWarehouseRequest{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Coordinates: req.Coordinates,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Warehouse)
}

// deleteWarehouse handles DELETE /api/warehouses/{id}.
func (h *Handler) deleteWarehouse(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	if err := h.svc.DeleteWarehouse(r.Context(), warehouseID(r), claims.UserID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// replaceInventory handles PATCH /api/warehouses/{id}/inventory — a wholesale
// overwrite of the stock projection.
func (h *Handler) replaceInventory(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req struct {
		Inventory []app.RawInventoryItem `json:"inventory"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ReplaceInventory(r.Context(), warehouseID(r), claims.UserID, req.Inventory)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Warehouse)
}

// uploadInventoryCSV handles POST /api/warehouses/{id}/inventory/upload.
// Accepts a multipart form with a "file" part and merges its rows into the
// projection additively.
func (h *Handler) uploadInventoryCSV(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxCSVUploadBytes)
	if err := r.ParseMultipartForm(maxCSVUploadBytes); err != nil {
		writeError(w, r, "invalid multipart form", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, "CSV file is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, "failed to read uploaded file", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ImportInventoryCSV(r.Context(), warehouseID(r), claims.UserID, content)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Warehouse)
}
