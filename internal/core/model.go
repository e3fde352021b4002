package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowOperation is the direction of a warehouse flow: load increases stock,
// unload decreases it.
type FlowOperation string

const (
	FlowLoad   FlowOperation = "load"
	FlowUnload FlowOperation = "unload"
)

// InventoryItem is one line of a warehouse's current stock projection.
// TypeName is unique within a warehouse's inventory; Count is always >= 0.
type InventoryItem struct {
	TypeName string `json:"typeName"`
	Count    int    `json:"count"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Warehouse owns one inventory projection and scopes all flow entries.
// Inventory is derived state: it is mutated only by flow operations, the
// inventory replace endpoint, and the CSV merge.
type Warehouse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"ownerId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	Coordinates Coordinates     `json:"coordinates"`
	Inventory   []InventoryItem `json:"inventory"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FlowItem is one line of a flow entry. Count is a non-negative integer;
// UnitPrice is a non-negative decimal.
type FlowItem struct {
	TypeName  string          `json:"typeName"`
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// FlowEntry is one immutable record in the append-only flow ledger.
// Entries are never updated or deleted after creation.
type FlowEntry struct {
	ID          string        `json:"id"`
	WarehouseID string        `json:"warehouseId"`
	Operation   FlowOperation `json:"operation"`
	Items       []FlowItem    `json:"items"`
	PerformedBy string        `json:"performedBy,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SupportComment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
