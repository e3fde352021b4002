package app

import "warehouse-manager/internal/core"

// RegisterRequest is the input for creating an account.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

// RawInventoryItem mirrors core.RawInventoryItem at the app boundary so web
// handlers decode request bodies without importing core coercion types.
type RawInventoryItem = core.RawInventoryItem

// RawFlowItem mirrors core.RawFlowItem at the app boundary.
type RawFlowItem = core.RawFlowItem

// CreateWarehouseRequest is the input for creating a warehouse. Coordinates
// arrive as a raw JSON value and are validated as a [lng, lat] pair.
type CreateWarehouseRequest struct {
	Name        string
	Description string
	Address     string
	Coordinates any
}

// UpdateWarehouseRequest carries optional fields; nil leaves a field
// unchanged. Coordinates, when present, is validated as a [lng, lat] pair.
type UpdateWarehouseRequest struct {
	Name        *string
	Description *string
	Address     *string
	Coordinates any
}

// RecordFlowRequest is the input for appending a flow entry.
type RecordFlowRequest struct {
	Operation   string
	Items       []RawFlowItem
	PerformedBy string
}
