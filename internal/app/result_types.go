package app

import (
	"time"

	"warehouse-manager/internal/ai"
	"warehouse-manager/internal/core"
)

// UserView is the public shape of an account.
type UserView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// UserResult is returned by Register, Authenticate, and GetUser.
type UserResult struct {
	User UserView
}

// WarehouseView is the wire shape of a warehouse. Coordinates serialize as a
// [lng, lat] pair. TotalItems and TypeCount are derived from the projection
// on every read. Inventory is omitted from list views.
type WarehouseView struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Address     string               `json:"address"`
	Coordinates [2]float64           `json:"coordinates"`
	TotalItems  int                  `json:"totalItems"`
	TypeCount   int                  `json:"typeCount"`
	Inventory   []core.InventoryItem `json:"inventory,omitzero"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// WarehouseResult is returned by single-warehouse operations.
type WarehouseResult struct {
	Warehouse WarehouseView
}

// WarehouseListResult is returned by ListWarehouses.
type WarehouseListResult struct {
	Warehouses []WarehouseView
}

// FlowView is the wire shape of one ledger entry.
type FlowView struct {
	ID          string             `json:"id"`
	WarehouseID string             `json:"warehouseId"`
	Operation   core.FlowOperation `json:"operation"`
	Items       []core.FlowItem    `json:"items"`
	PerformedBy string             `json:"performedBy,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// FlowResult is returned by RecordFlow: the appended entry plus the
// warehouse with its updated projection.
type FlowResult struct {
	Flow      FlowView
	Warehouse WarehouseView
}

// FlowListResult is one page of flow history.
type FlowListResult struct {
	Flows []FlowView
	Total int
	Page  int
	Limit int
}

// AnalyticsResult wraps the aggregated analytics view.
type AnalyticsResult struct {
	Analytics core.AnalyticsResult
}

// AdviceResult is returned by GetAdvice: the structured advice plus the
// moment it was generated.
type AdviceResult struct {
	Advice      *ai.Advice
	GeneratedAt time.Time
}

// CommentView is the wire shape of a support comment.
type CommentView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentResult is returned by CreateSupportComment.
type CommentResult struct {
	Comment CommentView
}

// CommentListResult is returned by ListSupportComments.
type CommentListResult struct {
	Comments []CommentView
}
