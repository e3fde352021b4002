package core_test

import (
	"fmt"
	"testing"
	"time"

	"warehouse-manager/internal/core"

	"github.com/shopspring/decimal"
)

func priced(typeName string, count int, unitPrice string) core.FlowItem {
	return core.FlowItem{
		TypeName:  typeName,
		Count:     count,
		UnitPrice: decimal.RequireFromString(unitPrice),
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want core.Period
	}{
		{"day", core.PeriodDay},
		{"week", core.PeriodWeek},
		{"month", core.PeriodMonth},
		{"", core.PeriodMonth},
		{"year", core.PeriodMonth},
		{"Day", core.PeriodMonth},
	}
	for _, tt := range tests {
		if got := core.ParsePeriod(tt.in); got != tt.want {
			t.Errorf("ParsePeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClampPeriods(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 6}, {-3, 1}, {-100, 1}, {1, 1}, {6, 6}, {24, 24}, {25, 24}, {1000, 24},
	}
	for _, tt := range tests {
		if got := core.ClampPeriods(tt.in); got != tt.want {
			t.Errorf("ClampPeriods(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAggregate_WindowBoundaryInclusive(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	from := core.WindowStart(core.PeriodWeek, 2, now)
	if want := now.Add(-14 * 24 * time.Hour); !from.Equal(want) {
		t.Fatalf("window start = %v, want %v", from, want)
	}

	flows := []core.FlowEntry{
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("W", 1, "1")}, CreatedAt: from},
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("W", 1, "1")}, CreatedAt: from.Add(-time.Millisecond)},
	}

	result := core.Aggregate(nil, flows, core.PeriodWeek, 2, now)
	if result.Summary.TotalIncomingCount != 1 {
		t.Errorf("incoming count = %d, want 1 (boundary entry only)", result.Summary.TotalIncomingCount)
	}
}

func TestAggregate_DayBuckets(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	flows := []core.FlowEntry{
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("W", 10, "2")}, CreatedAt: time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)},
		{Operation: core.FlowUnload, Items: []core.FlowItem{priced("W", 4, "3")}, CreatedAt: time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)},
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("W", 1, "1")}, CreatedAt: time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)},
	}

	result := core.Aggregate(inv("W", 7), flows, core.PeriodDay, 7, now)

	if len(result.FlowTimeSeries) != 2 {
		t.Fatalf("series length = %d, want 2", len(result.FlowTimeSeries))
	}
	b := result.FlowTimeSeries[0]
	if b.Period != "2024-01-05" || b.PeriodLabel != "Jan 5, 24" {
		t.Errorf("bucket 0 key/label = %q / %q", b.Period, b.PeriodLabel)
	}
	if b.IncomingCount != 10 || b.OutgoingCount != 4 {
		t.Errorf("bucket 0 counts = %d/%d", b.IncomingCount, b.OutgoingCount)
	}
	if !b.IncomingValue.Equal(decimal.NewFromInt(20)) || !b.OutgoingValue.Equal(decimal.NewFromInt(12)) {
		t.Errorf("bucket 0 values = %s/%s", b.IncomingValue, b.OutgoingValue)
	}
	if result.FlowTimeSeries[1].Period != "2024-01-06" {
		t.Errorf("bucket 1 key = %q", result.FlowTimeSeries[1].Period)
	}

	s := result.Summary
	if s.TotalItems != 7 || s.TypeCount != 1 {
		t.Errorf("projection totals = %d/%d", s.TotalItems, s.TypeCount)
	}
	if s.TotalIncomingCount != 11 || s.TotalOutgoingCount != 4 {
		t.Errorf("window counts = %d/%d", s.TotalIncomingCount, s.TotalOutgoingCount)
	}
	if !s.TotalIncomingValue.Equal(decimal.NewFromInt(21)) || !s.TotalOutgoingValue.Equal(decimal.NewFromInt(12)) {
		t.Errorf("window values = %s/%s", s.TotalIncomingValue, s.TotalOutgoingValue)
	}
}

func TestAggregate_WeekKeysAnchorOnMonday(t *testing.T) {
	// 2024-01-01 was a Monday, 2024-01-07 a Sunday: same bucket.
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	flows := []core.FlowEntry{
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("W", 1, "1")}, CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("W", 2, "1")}, CreatedAt: time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC)},
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("W", 4, "1")}, CreatedAt: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
	}

	result := core.Aggregate(nil, flows, core.PeriodWeek, 4, now)
	if len(result.FlowTimeSeries) != 2 {
		t.Fatalf("series length = %d, want 2: %v", len(result.FlowTimeSeries), result.FlowTimeSeries)
	}
	if result.FlowTimeSeries[0].Period != "2024-01-01" || result.FlowTimeSeries[0].IncomingCount != 3 {
		t.Errorf("bucket 0 = %+v", result.FlowTimeSeries[0])
	}
	if result.FlowTimeSeries[1].Period != "2024-01-08" || result.FlowTimeSeries[1].IncomingCount != 4 {
		t.Errorf("bucket 1 = %+v", result.FlowTimeSeries[1])
	}
	if result.FlowTimeSeries[0].PeriodLabel != "W1 Jan" {
		t.Errorf("bucket 0 label = %q", result.FlowTimeSeries[0].PeriodLabel)
	}
	if result.FlowTimeSeries[1].PeriodLabel != "W2 Jan" {
		t.Errorf("bucket 1 label = %q", result.FlowTimeSeries[1].PeriodLabel)
	}
}

func TestAggregate_MonthKeysAreCalendarMonths(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	flows := []core.FlowEntry{
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("W", 1, "1")}, CreatedAt: time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)},
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("W", 1, "1")}, CreatedAt: time.Date(2024, 2, 1, 1, 0, 0, 0, time.UTC)},
	}

	result := core.Aggregate(nil, flows, core.PeriodMonth, 6, now)
	if len(result.FlowTimeSeries) != 2 {
		t.Fatalf("series length = %d, want 2", len(result.FlowTimeSeries))
	}
	if result.FlowTimeSeries[0].Period != "2024-01" || result.FlowTimeSeries[0].PeriodLabel != "Jan 2024" {
		t.Errorf("bucket 0 = %+v", result.FlowTimeSeries[0])
	}
	if result.FlowTimeSeries[1].Period != "2024-02" || result.FlowTimeSeries[1].PeriodLabel != "Feb 2024" {
		t.Errorf("bucket 1 = %+v", result.FlowTimeSeries[1])
	}
}

func TestAggregate_FlowByTypeTopTen(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	created := now.Add(-24 * time.Hour)

	var flows []core.FlowEntry
	// Types T01..T12 with increasing volume; T12 moves the most units.
	for i := 1; i <= 12; i++ {
		flows = append(flows, core.FlowEntry{
			Operation: core.FlowLoad,
			Items:     []core.FlowItem{priced(fmt.Sprintf("T%02d", i), i, "1")},
			CreatedAt: created,
		})
	}

	result := core.Aggregate(nil, flows, core.PeriodMonth, 6, now)
	if len(result.FlowByType) != 10 {
		t.Fatalf("flowByType length = %d, want 10", len(result.FlowByType))
	}
	if result.FlowByType[0].TypeName != "T12" || result.FlowByType[0].Loaded != 12 {
		t.Errorf("top entry = %+v", result.FlowByType[0])
	}
	if result.FlowByType[9].TypeName != "T03" {
		t.Errorf("last entry = %+v, want T03", result.FlowByType[9])
	}
}

func TestAggregate_FlowByTypeStableOnTies(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	created := now.Add(-24 * time.Hour)
	flows := []core.FlowEntry{
		{Operation: core.FlowLoad, Items: []core.FlowItem{priced("First", 5, "1")}, CreatedAt: created},
		{Operation: core.FlowUnload, Items: []core.FlowItem{priced("Second", 5, "1")}, CreatedAt: created.Add(time.Hour)},
	}

	result := core.Aggregate(inv("First", 5, "Second", 5), flows, core.PeriodMonth, 6, now)
	if len(result.FlowByType) != 2 {
		t.Fatalf("flowByType = %v", result.FlowByType)
	}
	if result.FlowByType[0].TypeName != "First" || result.FlowByType[1].TypeName != "Second" {
		t.Errorf("tie order changed: %v", result.FlowByType)
	}
	if result.FlowByType[1].Unloaded != 5 {
		t.Errorf("unloaded = %d", result.FlowByType[1].Unloaded)
	}
}

func TestAggregate_EmptyWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	result := core.Aggregate(inv("W", 3), nil, core.PeriodMonth, 6, now)

	if len(result.FlowTimeSeries) != 0 || len(result.FlowByType) != 0 {
		t.Errorf("expected empty series, got %+v", result)
	}
	if result.Summary.TotalItems != 3 || result.Summary.TypeCount != 1 {
		t.Errorf("summary = %+v", result.Summary)
	}
	if !result.Summary.TotalIncomingValue.IsZero() || !result.Summary.TotalOutgoingValue.IsZero() {
		t.Errorf("expected zero values, got %+v", result.Summary)
	}
	if len(result.InventoryByType) != 1 || result.InventoryByType[0].TypeName != "W" {
		t.Errorf("inventoryByType = %v", result.InventoryByType)
	}
}
