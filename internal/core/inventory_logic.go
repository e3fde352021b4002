package core

// invBuilder accumulates counts per type while preserving first-insertion
// order, mirroring how the inventory sequence is stored.
type invBuilder struct {
	order  []string
	counts map[string]int
}

func newInvBuilder(current []InventoryItem) *invBuilder {
	b := &invBuilder{counts: make(map[string]int, len(current))}
	for _, it := range current {
		if _, ok := b.counts[it.TypeName]; !ok {
			b.order = append(b.order, it.TypeName)
		}
		b.counts[it.TypeName] += it.Count
	}
	return b
}

func (b *invBuilder) add(typeName string, delta int) {
	if _, ok := b.counts[typeName]; !ok {
		b.order = append(b.order, typeName)
	}
	b.counts[typeName] += delta
}

// remove deletes a type entirely, so a later add re-appends it at the end.
func (b *invBuilder) remove(typeName string) {
	delete(b.counts, typeName)
	for i, name := range b.order {
		if name == typeName {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// items returns the inventory sequence, skipping types in dropped. Types
// loaded at exactly zero are kept: the drop rule applies to unload results
// only, so callers pass the set they computed while applying unloads.
func (b *invBuilder) items(dropped map[string]bool) []InventoryItem {
	out := make([]InventoryItem, 0, len(b.order))
	for _, name := range b.order {
		if dropped[name] {
			continue
		}
		out = append(out, InventoryItem{TypeName: name, Count: b.counts[name]})
	}
	return out
}

// ApplyFlow returns the inventory that results from applying one flow
// operation to the current projection. It is pure: the input slice is never
// mutated and nothing is persisted.
//
// Unloads are all-or-nothing: every item is checked against the current
// projection before any change is applied, and the first shortfall rejects
// the whole batch with an InsufficientStockError. An unload that brings a
// type to zero (or below, which repeated batch items can do) removes the
// type from the projection entirely. Loads have no upper bound and append
// new types in item order.
func ApplyFlow(current []InventoryItem, op FlowOperation, items []FlowItem) ([]InventoryItem, error) {
	if op == FlowUnload {
		have := make(map[string]int, len(current))
		for _, it := range current {
			have[it.TypeName] = it.Count
		}
		for _, item := range items {
			if have[item.TypeName] < item.Count {
				return nil, &InsufficientStockError{
					TypeName:  item.TypeName,
					Available: have[item.TypeName],
					Requested: item.Count,
				}
			}
		}
	}

	b := newInvBuilder(current)
	dropped := make(map[string]bool)
	for _, item := range items {
		switch op {
		case FlowLoad:
			b.add(item.TypeName, item.Count)
		case FlowUnload:
			b.add(item.TypeName, -item.Count)
			if b.counts[item.TypeName] <= 0 {
				dropped[item.TypeName] = true
			}
		}
	}
	return b.items(dropped), nil
}

// RebuildInventory replays the full flow ledger (ascending CreatedAt) into a
// fresh projection. It is the consistency-repair counterpart to the
// incremental path: given a ledger written through RecordFlow the result
// equals the stored projection, including the ordering rule that a type
// unloaded to zero and loaded again re-appears at the end. Unload deltas
// that would go negative clamp to removal, the same rule the incremental
// path applies.
func RebuildInventory(flows []FlowEntry) []InventoryItem {
	b := newInvBuilder(nil)
	for _, f := range flows {
		for _, item := range f.Items {
			switch f.Operation {
			case FlowLoad:
				b.add(item.TypeName, item.Count)
			case FlowUnload:
				b.add(item.TypeName, -item.Count)
				if b.counts[item.TypeName] <= 0 {
					b.remove(item.TypeName)
				}
			}
		}
	}
	return b.items(nil)
}

// InventoryTotals returns the derived list-view numbers: the sum of all
// counts and the number of distinct types. Computed on read, never stored.
func InventoryTotals(inventory []InventoryItem) (totalItems, typeCount int) {
	for _, it := range inventory {
		totalItems += it.Count
	}
	return totalItems, len(inventory)
}
