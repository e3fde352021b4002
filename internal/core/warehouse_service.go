package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WarehouseUpdate carries the optional fields of a warehouse update; nil
// means "leave unchanged".
type WarehouseUpdate struct {
	Name        *string
	Description *string
	Address     *string
	Coordinates *Coordinates
}

// WarehouseService manages warehouse records and their inventory
// projections. Every read and write is scoped by (id, owner_id): a warehouse
// belonging to another user is indistinguishable from one that does not
// exist.
type WarehouseService interface {
	List(ctx context.Context, ownerID string) ([]Warehouse, error)
	Get(ctx context.Context, id, ownerID string) (*Warehouse, error)
	Create(ctx context.Context, ownerID, name, description, address string, coords Coordinates) (*Warehouse, error)
	Update(ctx context.Context, id, ownerID string, upd WarehouseUpdate) (*Warehouse, error)
	Delete(ctx context.Context, id, ownerID string) error

	// ReplaceInventory overwrites the projection wholesale (the inventory
	// PATCH endpoint). Flow history is not touched.
	ReplaceInventory(ctx context.Context, id, ownerID string, items []InventoryItem) (*Warehouse, error)

	// ImportCSV parses CSV content and merges it additively into the
	// projection. Zero data rows is a no-op that returns the warehouse
	// unchanged.
	ImportCSV(ctx context.Context, id, ownerID string, content []byte) (*Warehouse, error)

	// RebuildInventory replays the warehouse's full flow ledger into a fresh
	// projection and stores it. Consistency-repair tool, not a hot path.
	RebuildInventory(ctx context.Context, id, ownerID string) (*Warehouse, error)
}

type warehouseService struct {
	pool *pgxpool.Pool
}

func NewWarehouseService(pool *pgxpool.Pool) WarehouseService {
	return &warehouseService{pool: pool}
}

const warehouseColumns = "id, owner_id, name, description, address, lat, lng, inventory, created_at, updated_at"

// scanWarehouse scans one warehouse row, decoding the JSONB inventory.
func scanWarehouse(row pgx.Row) (*Warehouse, error) {
	var w Warehouse
	var invJSON []byte
	err := row.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Description, &w.Address,
		&w.Coordinates.Lat, &w.Coordinates.Lng, &invJSON, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(invJSON, &w.Inventory); err != nil {
		return nil, fmt.Errorf("failed to decode inventory for warehouse %s: %w", w.ID, err)
	}
	return &w, nil
}

func (s *warehouseService) List(ctx context.Context, ownerID string) ([]Warehouse, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+warehouseColumns+`
		FROM warehouses
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan warehouse: %w", err)
		}
		warehouses = append(warehouses, *w)
	}
	return warehouses, rows.Err()
}

func (s *warehouseService) Get(ctx context.Context, id, ownerID string) (*Warehouse, error) {
	w, err := scanWarehouse(s.pool.QueryRow(ctx, `
		SELECT `+warehouseColumns+`
		FROM warehouses
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch warehouse: %w", err)
	}
	return w, nil
}

func (s *warehouseService) Create(ctx context.Context, ownerID, name, description, address string, coords Coordinates) (*Warehouse, error) {
	w, err := scanWarehouse(s.pool.QueryRow(ctx, `
		INSERT INTO warehouses (id, owner_id, name, description, address, lat, lng, inventory)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '[]')
		RETURNING `+warehouseColumns+`
	`, uuid.NewString(), ownerID, name, description, address, coords.Lat, coords.Lng))
	if err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}
	return w, nil
}

func (s *warehouseService) Update(ctx context.Context, id, ownerID string, upd WarehouseUpdate) (*Warehouse, error) {
	w, err := scanWarehouse(s.pool.QueryRow(ctx, `
		UPDATE warehouses SET
			name        = COALESCE($3, name),
			description = COALESCE($4, description),
			address     = COALESCE($5, address),
			lat         = COALESCE($6, lat),
			lng         = COALESCE($7, lng),
			updated_at  = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+warehouseColumns+`
	`, id, ownerID, upd.Name, upd.Description, upd.Address, latPtr(upd.Coordinates), lngPtr(upd.Coordinates)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update warehouse: %w", err)
	}
	return w, nil
}

func latPtr(c *Coordinates) *float64 {
	if c == nil {
		return nil
	}
	return &c.Lat
}

func lngPtr(c *Coordinates) *float64 {
	if c == nil {
		return nil
	}
	return &c.Lng
}

func (s *warehouseService) Delete(ctx context.Context, id, ownerID string) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM warehouses WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// saveInventory writes a projection and returns the refreshed warehouse.
func (s *warehouseService) saveInventory(ctx context.Context, tx pgx.Tx, id string, inventory []InventoryItem) (*Warehouse, error) {
	invJSON, err := json.Marshal(inventory)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory: %w", err)
	}
	w, err := scanWarehouse(tx.QueryRow(ctx, `
		UPDATE warehouses SET inventory = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+warehouseColumns+`
	`, id, invJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to store inventory: %w", err)
	}
	return w, nil
}

// lockWarehouse fetches a warehouse by (id, owner) inside tx with a row
// lock, so projection writes cannot interleave.
func lockWarehouse(ctx context.Context, tx pgx.Tx, id, ownerID string) (*Warehouse, error) {
	w, err := scanWarehouse(tx.QueryRow(ctx, `
		SELECT `+warehouseColumns+`
		FROM warehouses
		WHERE id = $1 AND owner_id = $2
		FOR UPDATE
	`, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock warehouse: %w", err)
	}
	return w, nil
}

func (s *warehouseService) ReplaceInventory(ctx context.Context, id, ownerID string, items []InventoryItem) (*Warehouse, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := lockWarehouse(ctx, tx, id, ownerID); err != nil {
		return nil, err
	}
	if items == nil {
		items = []InventoryItem{}
	}
	w, err := s.saveInventory(ctx, tx, id, items)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit inventory replace: %w", err)
	}
	return w, nil
}

func (s *warehouseService) ImportCSV(ctx context.Context, id, ownerID string, content []byte) (*Warehouse, error) {
	rows, err := ParseInventoryCSV(content)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	w, err := lockWarehouse(ctx, tx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// Header-only file: nothing to merge.
		return w, nil
	}

	merged := MergeInventory(w.Inventory, rows)
	w, err = s.saveInventory(ctx, tx, id, merged)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit CSV import: %w", err)
	}
	return w, nil
}

func (s *warehouseService) RebuildInventory(ctx context.Context, id, ownerID string) (*Warehouse, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := lockWarehouse(ctx, tx, id, ownerID); err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id, warehouse_id, operation, items, COALESCE(performed_by, ''), created_at
		FROM warehouse_flows
		WHERE warehouse_id = $1
		ORDER BY created_at ASC, id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query flows for rebuild: %w", err)
	}
	flows, err := collectFlows(rows)
	if err != nil {
		return nil, err
	}

	w, err := s.saveInventory(ctx, tx, id, RebuildInventory(flows))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit inventory rebuild: %w", err)
	}
	return w, nil
}
