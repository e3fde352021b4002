package app

import (
	"context"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic: implementations contain no
// HTTP types and no display logic of any kind.
type ApplicationService interface {
	// Register creates an account and returns its profile.
	Register(ctx context.Context, req RegisterRequest) (*UserResult, error)

	// Authenticate verifies credentials and returns the user profile.
	Authenticate(ctx context.Context, email, password string) (*UserResult, error)

	// GetUser returns a user profile by ID.
	GetUser(ctx context.Context, userID string) (*UserResult, error)

	// ListWarehouses returns the caller's warehouses, newest first, as list
	// views with derived totals but without the inventory body.
	ListWarehouses(ctx context.Context, ownerID string) (*WarehouseListResult, error)

	// GetWarehouse returns one warehouse detail view, inventory included.
	GetWarehouse(ctx context.Context, id, ownerID string) (*WarehouseResult, error)

	CreateWarehouse(ctx context.Context, ownerID string, req CreateWarehouseRequest) (*WarehouseResult, error)
	UpdateWarehouse(ctx context.Context, id, ownerID string, req UpdateWarehouseRequest) (*WarehouseResult, error)
	DeleteWarehouse(ctx context.Context, id, ownerID string) error

	// ReplaceInventory overwrites the inventory projection after validating
	// and coercing the raw items.
	ReplaceInventory(ctx context.Context, id, ownerID string, items []RawInventoryItem) (*WarehouseResult, error)

	// ImportInventoryCSV merges a CSV file into the inventory projection.
	ImportInventoryCSV(ctx context.Context, id, ownerID string, content []byte) (*WarehouseResult, error)

	// RecordFlow validates a raw flow request and applies it: projection
	// update plus ledger append, atomically.
	RecordFlow(ctx context.Context, id, ownerID string, req RecordFlowRequest) (*FlowResult, error)

	// ListFlows returns one page of flow history, newest first.
	ListFlows(ctx context.Context, id, ownerID string, page, limit int) (*FlowListResult, error)

	// GetAnalytics aggregates the flow ledger over a trailing window.
	// period is day, week, or month (default month); periods clamps to
	// [1, 24] with default 6.
	GetAnalytics(ctx context.Context, id, ownerID, period string, periods int) (*AnalyticsResult, error)

	// GetAdvice runs month/6 analytics and asks the AI advisor for
	// operational advice based on them.
	GetAdvice(ctx context.Context, id, ownerID string) (*AdviceResult, error)

	// CreateSupportComment stores a support message from the given user.
	CreateSupportComment(ctx context.Context, userID, message string) (*CommentResult, error)

	// ListSupportComments returns all support comments, newest first.
	// Admin only; the caller enforces the role.
	ListSupportComments(ctx context.Context) (*CommentListResult, error)

	// DeleteSupportComment removes a comment by ID. Admin only.
	DeleteSupportComment(ctx context.Context, id string) error
}
