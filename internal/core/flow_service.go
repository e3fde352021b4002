package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultFlowPageSize = 20
	MaxFlowPageSize     = 100
)

// FlowPage is one page of ledger history, newest first.
type FlowPage struct {
	Flows []FlowEntry
	Total int
	Page  int
	Limit int
}

// FlowService is the append-only ledger around warehouse stock movements.
// Record is the single write path that touches both the ledger and the
// inventory projection; entries are never updated or deleted afterwards.
type FlowService interface {
	// Record validates the operation against the current projection, updates
	// the projection, and appends the ledger entry, all inside one
	// transaction. Either both writes land or neither does.
	Record(ctx context.Context, warehouseID, ownerID string, op FlowOperation, items []FlowItem, performedBy string) (*FlowEntry, *Warehouse, error)

	// List returns one history page plus the total entry count. Page floors
	// at 1; limit defaults to DefaultFlowPageSize and clamps to
	// [1, MaxFlowPageSize].
	List(ctx context.Context, warehouseID, ownerID string, page, limit int) (*FlowPage, error)

	// Since returns all entries created at or after the given instant,
	// ascending. Analytics input.
	Since(ctx context.Context, warehouseID string, since time.Time) ([]FlowEntry, error)
}

type flowService struct {
	pool *pgxpool.Pool
}

func NewFlowService(pool *pgxpool.Pool) FlowService {
	return &flowService{pool: pool}
}

const flowColumns = "id, warehouse_id, operation, items, COALESCE(performed_by, ''), created_at"

func scanFlow(row pgx.Row) (*FlowEntry, error) {
	var f FlowEntry
	var itemsJSON []byte
	err := row.Scan(&f.ID, &f.WarehouseID, &f.Operation, &itemsJSON, &f.PerformedBy, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &f.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items for flow %s: %w", f.ID, err)
	}
	return &f, nil
}

func collectFlows(rows pgx.Rows) ([]FlowEntry, error) {
	defer rows.Close()
	var flows []FlowEntry
	for rows.Next() {
		f, err := scanFlow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flow: %w", err)
		}
		flows = append(flows, *f)
	}
	return flows, rows.Err()
}

func (s *flowService) Record(ctx context.Context, warehouseID, ownerID string, op FlowOperation, items []FlowItem, performedBy string) (*FlowEntry, *Warehouse, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	w, err := lockWarehouse(ctx, tx, warehouseID, ownerID)
	if err != nil {
		return nil, nil, err
	}

	updated, err := ApplyFlow(w.Inventory, op, items)
	if err != nil {
		return nil, nil, err
	}

	invJSON, err := json.Marshal(updated)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode inventory: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE warehouses SET inventory = $2, updated_at = NOW()
		WHERE id = $1
	`, warehouseID, invJSON); err != nil {
		return nil, nil, fmt.Errorf("failed to store inventory: %w", err)
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode flow items: %w", err)
	}
	var by *string
	if performedBy != "" {
		by = &performedBy
	}
	entry := &FlowEntry{
		ID:          uuid.NewString(),
		WarehouseID: warehouseID,
		Operation:   op,
		Items:       items,
		PerformedBy: performedBy,
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO warehouse_flows (id, warehouse_id, operation, items, performed_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, entry.ID, warehouseID, string(op), itemsJSON, by).Scan(&entry.CreatedAt); err != nil {
		return nil, nil, fmt.Errorf("failed to append flow: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit flow: %w", err)
	}

	w.Inventory = updated
	return entry, w, nil
}

func (s *flowService) List(ctx context.Context, warehouseID, ownerID string, page, limit int) (*FlowPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultFlowPageSize
	}
	if limit > MaxFlowPageSize {
		limit = MaxFlowPageSize
	}

	// Ownership gate: a foreign warehouse id must look like a missing one.
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM warehouses WHERE id = $1 AND owner_id = $2)",
		warehouseID, ownerID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check warehouse: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM warehouse_flows WHERE warehouse_id = $1",
		warehouseID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count flows: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+flowColumns+`
		FROM warehouse_flows
		WHERE warehouse_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, warehouseID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query flows: %w", err)
	}
	flows, err := collectFlows(rows)
	if err != nil {
		return nil, err
	}
	if flows == nil {
		flows = []FlowEntry{}
	}
	return &FlowPage{Flows: flows, Total: total, Page: page, Limit: limit}, nil
}

func (s *flowService) Since(ctx context.Context, warehouseID string, since time.Time) ([]FlowEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+flowColumns+`
		FROM warehouse_flows
		WHERE warehouse_id = $1 AND created_at >= $2
		ORDER BY created_at ASC, id ASC
	`, warehouseID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query flows: %w", err)
	}
	return collectFlows(rows)
}
