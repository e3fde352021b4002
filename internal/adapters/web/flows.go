package web

import (
	"net/http"
	"strconv"

	"warehouse-manager/internal/app"
)

// recordFlow handles POST /api/warehouses/{id}/flow — appends one ledger
// entry and returns it with the updated warehouse.
func (h *Handler) recordFlow(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	var req struct {
		Operation string            `json:"operation"`
		Items     []app.RawFlowItem `json:"items"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.RecordFlow(r.Context(), warehouseID(r), claims.UserID, app.RecordFlowRequest{
		Operation:   req.Operation,
		Items:       req.Items,
		PerformedBy: claims.UserID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Flow      app.FlowView      `json:"flow"`
		Warehouse app.WarehouseView `json:"warehouse"`
	}
	writeJSONStatus(w, http.StatusCreated, response{Flow: result.Flow, Warehouse: result.Warehouse})
}

// listFlows handles GET /api/warehouses/{id}/flow with page/limit query
// parameters.
func (h *Handler) listFlows(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.svc.ListFlows(r.Context(), warehouseID(r), claims.UserID, page, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type response struct {
		Flows []app.FlowView `json:"flows"`
		Total int            `json:"total"`
		Page  int            `json:"page"`
		Limit int            `json:"limit"`
	}
	writeJSON(w, response{Flows: result.Flows, Total: result.Total, Page: result.Page, Limit: result.Limit})
}
