package core_test

import (
	"errors"
	"testing"
	"time"

	"warehouse-manager/internal/core"

	"github.com/shopspring/decimal"
)

func inv(pairs ...any) []core.InventoryItem {
	items := make([]core.InventoryItem, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		items = append(items, core.InventoryItem{TypeName: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return items
}

func flowItems(pairs ...any) []core.FlowItem {
	items := make([]core.FlowItem, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		items = append(items, core.FlowItem{
			TypeName:  pairs[i].(string),
			Count:     pairs[i+1].(int),
			UnitPrice: decimal.NewFromInt(1),
		})
	}
	return items
}

func sameInventory(a, b []core.InventoryItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyFlow_LoadThenUnload(t *testing.T) {
	after, err := core.ApplyFlow(nil, core.FlowLoad, flowItems("Widget", 10))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	after, err = core.ApplyFlow(after, core.FlowUnload, flowItems("Widget", 4))
	if err != nil {
		t.Fatalf("unload failed: %v", err)
	}
	if !sameInventory(after, inv("Widget", 6)) {
		t.Errorf("expected [{Widget 6}], got %v", after)
	}
}

func TestApplyFlow_InsufficientStock(t *testing.T) {
	current := inv("Widget", 6)

	_, err := core.ApplyFlow(current, core.FlowUnload, flowItems("Widget", 100))
	var stockErr *core.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.TypeName != "Widget" || stockErr.Available != 6 || stockErr.Requested != 100 {
		t.Errorf("unexpected error detail: %+v", stockErr)
	}
	want := `insufficient quantity for type "Widget": have 6, requested 100`
	if stockErr.Error() != want {
		t.Errorf("message = %q, want %q", stockErr.Error(), want)
	}
	if !sameInventory(current, inv("Widget", 6)) {
		t.Errorf("input inventory was mutated: %v", current)
	}
}

func TestApplyFlow_UnloadIsAllOrNothing(t *testing.T) {
	current := inv("A", 10, "B", 10, "C", 2)

	// Item 3 of 5 exceeds stock: nothing may be applied.
	items := flowItems("A", 1, "B", 1, "C", 5, "A", 1, "B", 1)
	_, err := core.ApplyFlow(current, core.FlowUnload, items)
	var stockErr *core.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.TypeName != "C" {
		t.Errorf("expected shortfall on C, got %s", stockErr.TypeName)
	}
}

func TestApplyFlow_UnloadToZeroDropsType(t *testing.T) {
	after, err := core.ApplyFlow(inv("Widget", 5, "Gadget", 3), core.FlowUnload, flowItems("Widget", 5))
	if err != nil {
		t.Fatalf("unload failed: %v", err)
	}
	if !sameInventory(after, inv("Gadget", 3)) {
		t.Errorf("expected Widget dropped, got %v", after)
	}

	// Reloading after a drop appends the type at the end.
	after, err = core.ApplyFlow(after, core.FlowLoad, flowItems("Widget", 2))
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !sameInventory(after, inv("Gadget", 3, "Widget", 2)) {
		t.Errorf("expected [{Gadget 3} {Widget 2}], got %v", after)
	}
}

func TestApplyFlow_DuplicateUnloadItemsValidateAgainstInitialStock(t *testing.T) {
	// Each batch item is checked against the stock before the batch. Two
	// unloads of 4 from a stock of 6 both pass the check, push the count
	// below zero, and remove the type.
	after, err := core.ApplyFlow(inv("Widget", 6), core.FlowUnload, flowItems("Widget", 4, "Widget", 4))
	if err != nil {
		t.Fatalf("unload failed: %v", err)
	}
	if !sameInventory(after, nil) {
		t.Errorf("expected empty inventory, got %v", after)
	}
}

func TestApplyFlow_LoadPreservesInsertionOrder(t *testing.T) {
	after, err := core.ApplyFlow(inv("B", 1), core.FlowLoad, flowItems("A", 2, "B", 3, "C", 4))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !sameInventory(after, inv("B", 4, "A", 2, "C", 4)) {
		t.Errorf("unexpected order/counts: %v", after)
	}
}

func TestRebuildInventory_MatchesIncrementalPath(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	flows := []core.FlowEntry{
		{Operation: core.FlowLoad, Items: flowItems("Widget", 10, "Gadget", 5), CreatedAt: base},
		{Operation: core.FlowUnload, Items: flowItems("Widget", 4), CreatedAt: base.Add(time.Hour)},
		{Operation: core.FlowUnload, Items: flowItems("Gadget", 5), CreatedAt: base.Add(2 * time.Hour)},
		{Operation: core.FlowLoad, Items: flowItems("Gadget", 2), CreatedAt: base.Add(3 * time.Hour)},
	}

	var incremental []core.InventoryItem
	for _, f := range flows {
		next, err := core.ApplyFlow(incremental, f.Operation, f.Items)
		if err != nil {
			t.Fatalf("incremental apply failed: %v", err)
		}
		incremental = next
	}

	rebuilt := core.RebuildInventory(flows)
	if !sameInventory(rebuilt, incremental) {
		t.Errorf("rebuild %v != incremental %v", rebuilt, incremental)
	}
}

func TestRebuildInventory_DropThenReloadMovesTypeToEnd(t *testing.T) {
	// A, then B, then A drops to zero and comes back: both paths must agree
	// that A now sits after B.
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	flows := []core.FlowEntry{
		{Operation: core.FlowLoad, Items: flowItems("A", 2), CreatedAt: base},
		{Operation: core.FlowLoad, Items: flowItems("B", 5), CreatedAt: base.Add(time.Hour)},
		{Operation: core.FlowUnload, Items: flowItems("A", 2), CreatedAt: base.Add(2 * time.Hour)},
		{Operation: core.FlowLoad, Items: flowItems("A", 2), CreatedAt: base.Add(3 * time.Hour)},
	}

	var incremental []core.InventoryItem
	for _, f := range flows {
		next, err := core.ApplyFlow(incremental, f.Operation, f.Items)
		if err != nil {
			t.Fatalf("incremental apply failed: %v", err)
		}
		incremental = next
	}
	if !sameInventory(incremental, inv("B", 5, "A", 2)) {
		t.Fatalf("incremental = %v, want [{B 5} {A 2}]", incremental)
	}

	rebuilt := core.RebuildInventory(flows)
	if !sameInventory(rebuilt, incremental) {
		t.Errorf("rebuild %v != incremental %v", rebuilt, incremental)
	}
}

func TestRebuildInventory_Empty(t *testing.T) {
	if got := core.RebuildInventory(nil); len(got) != 0 {
		t.Errorf("expected empty inventory, got %v", got)
	}
}

func TestInventoryTotals(t *testing.T) {
	totalItems, typeCount := core.InventoryTotals(inv("A", 3, "B", 7))
	if totalItems != 10 || typeCount != 2 {
		t.Errorf("got totals (%d, %d), want (10, 2)", totalItems, typeCount)
	}

	totalItems, typeCount = core.InventoryTotals(nil)
	if totalItems != 0 || typeCount != 0 {
		t.Errorf("got totals (%d, %d) for empty inventory", totalItems, typeCount)
	}
}
