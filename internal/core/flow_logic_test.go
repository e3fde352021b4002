package core_test

import (
	"testing"

	"warehouse-manager/internal/core"

	"github.com/shopspring/decimal"
)

func TestValidateFlowRequest_BadOperation(t *testing.T) {
	for _, op := range []string{"", "LOAD", "transfer", "unloads"} {
		_, _, err := core.ValidateFlowRequest(op, []core.RawFlowItem{{TypeName: "W", Count: 1.0, UnitPrice: 2.0}})
		if !core.IsValidation(err) {
			t.Fatalf("op %q: expected validation error, got %v", op, err)
		}
		if err.Error() != "operation must be 'load' or 'unload'" {
			t.Errorf("op %q: message = %q", op, err.Error())
		}
	}
}

func TestValidateFlowRequest_EmptyItems(t *testing.T) {
	_, _, err := core.ValidateFlowRequest("load", nil)
	if !core.IsValidation(err) || err.Error() != "items must be a non-empty array" {
		t.Errorf("expected empty-items validation error, got %v", err)
	}
}

func TestValidateFlowRequest_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []core.RawFlowItem
		want string
	}{
		{
			name: "missing typeName",
			raw:  []core.RawFlowItem{{Count: 1.0, UnitPrice: 2.0}},
			want: "Row 1: typeName is required",
		},
		{
			name: "blank typeName",
			raw:  []core.RawFlowItem{{TypeName: "   ", Count: 1.0, UnitPrice: 2.0}},
			want: "Row 1: typeName is required",
		},
		{
			name: "negative count",
			raw:  []core.RawFlowItem{{TypeName: "W", Count: -1.0, UnitPrice: 2.0}},
			want: "Row 1: count must be a non-negative integer",
		},
		{
			name: "fractional count",
			raw:  []core.RawFlowItem{{TypeName: "W", Count: 1.5, UnitPrice: 2.0}},
			want: "Row 1: count must be a non-negative integer",
		},
		{
			name: "missing unitPrice",
			raw:  []core.RawFlowItem{{TypeName: "W", Count: 1.0}},
			want: "Row 1: unitPrice is required and must be a non-negative number",
		},
		{
			name: "negative unitPrice",
			raw:  []core.RawFlowItem{{TypeName: "W", Count: 1.0, UnitPrice: -0.5}},
			want: "Row 1: unitPrice is required and must be a non-negative number",
		},
		{
			name: "second row reported",
			raw: []core.RawFlowItem{
				{TypeName: "W", Count: 1.0, UnitPrice: 2.0},
				{TypeName: "W", Count: "many", UnitPrice: 2.0},
			},
			want: "Row 2: count must be a non-negative integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := core.ValidateFlowRequest("load", tt.raw)
			if !core.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidateFlowRequest_CoercesStringsAndNumbers(t *testing.T) {
	op, items, err := core.ValidateFlowRequest("unload", []core.RawFlowItem{
		{TypeName: " Widget ", Count: "5", UnitPrice: "2.50"},
		{TypeName: "Gadget", Count: 3.0, UnitPrice: 10.0},
		{TypeName: "Zero", Count: 0.0, UnitPrice: 0.0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != core.FlowUnload {
		t.Errorf("op = %q", op)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].TypeName != "Widget" || items[0].Count != 5 || !items[0].UnitPrice.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Count != 3 || !items[1].UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Errorf("item 1 = %+v", items[1])
	}
	if items[2].Count != 0 || !items[2].UnitPrice.IsZero() {
		t.Errorf("item 2 = %+v", items[2])
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{5.0, 5, true},
		{0.0, 0, true},
		{"7", 7, true},
		{" 7 ", 7, true},
		{5.5, 0, false},
		{-1.0, 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := core.ParseCount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCount(%v) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseUnitPrice(t *testing.T) {
	if _, ok := core.ParseUnitPrice(nil); ok {
		t.Error("nil should not parse")
	}
	if _, ok := core.ParseUnitPrice("-2"); ok {
		t.Error("negative string should not parse")
	}
	d, ok := core.ParseUnitPrice("19.99")
	if !ok || !d.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("ParseUnitPrice(\"19.99\") = (%s, %v)", d, ok)
	}
	d, ok = core.ParseUnitPrice(0.0)
	if !ok || !d.IsZero() {
		t.Errorf("ParseUnitPrice(0) = (%s, %v)", d, ok)
	}
}

func TestValidateInventoryItems(t *testing.T) {
	items, err := core.ValidateInventoryItems([]core.RawInventoryItem{
		{TypeName: "Widget", Count: 4.0},
		{TypeName: "Gadget", Count: "2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].Count != 4 || items[1].Count != 2 {
		t.Errorf("items = %v", items)
	}

	_, err = core.ValidateInventoryItems([]core.RawInventoryItem{{TypeName: "Widget", Count: -3.0}})
	if !core.IsValidation(err) || err.Error() != "Row 1: count must be a non-negative integer" {
		t.Errorf("expected row error, got %v", err)
	}
}
