package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RawFlowItem is a flow item as it arrives over the wire, before coercion.
// Count and UnitPrice may be JSON numbers or numeric strings.
type RawFlowItem struct {
	TypeName  any `json:"typeName"`
	Count     any `json:"count"`
	UnitPrice any `json:"unitPrice"`
}

// RawInventoryItem is an inventory line as it arrives on the replace
// endpoint; same coercion rules as flow items, minus the price.
type RawInventoryItem struct {
	TypeName any `json:"typeName"`
	Count    any `json:"count"`
}

// ParseTypeName coerces a raw type name to a trimmed string. Numbers are
// stringified; absent or other values yield "".
func ParseTypeName(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return strings.TrimSpace(string(s))
	default:
		return ""
	}
}

// ParseCount coerces a raw count to a non-negative integer. Accepts native
// JSON numbers (which must be integral) and numeric strings; anything else
// fails.
func ParseCount(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || n < 0 {
			return 0, false
		}
		return int(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return n, true
	case json.Number:
		return ParseCount(string(n))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || i < 0 {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// ParseUnitPrice coerces a raw unit price to a non-negative decimal. Accepts
// native JSON numbers and numeric strings; NaN, infinities, and negatives
// fail.
func ParseUnitPrice(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case json.Number:
		return ParseUnitPrice(string(n))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil || d.IsNegative() {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// ValidateFlowRequest checks a raw flow request and coerces it into typed
// items. Row numbers in error messages are 1-based.
func ValidateFlowRequest(operation string, raw []RawFlowItem) (FlowOperation, []FlowItem, error) {
	op := FlowOperation(operation)
	if op != FlowLoad && op != FlowUnload {
		return "", nil, Validationf("operation must be 'load' or 'unload'")
	}
	if len(raw) == 0 {
		return "", nil, Validationf("items must be a non-empty array")
	}

	items := make([]FlowItem, 0, len(raw))
	for i, r := range raw {
		typeName := ParseTypeName(r.TypeName)
		if typeName == "" {
			return "", nil, Validationf("Row %d: typeName is required", i+1)
		}
		count, ok := ParseCount(r.Count)
		if !ok {
			return "", nil, Validationf("Row %d: count must be a non-negative integer", i+1)
		}
		unitPrice, ok := ParseUnitPrice(r.UnitPrice)
		if !ok {
			return "", nil, Validationf("Row %d: unitPrice is required and must be a non-negative number", i+1)
		}
		items = append(items, FlowItem{TypeName: typeName, Count: count, UnitPrice: unitPrice})
	}
	return op, items, nil
}

// ValidateInventoryItems checks a raw inventory replacement and coerces it
// into typed items. Row numbers in error messages are 1-based.
func ValidateInventoryItems(raw []RawInventoryItem) ([]InventoryItem, error) {
	items := make([]InventoryItem, 0, len(raw))
	for i, r := range raw {
		typeName := ParseTypeName(r.TypeName)
		if typeName == "" {
			return nil, Validationf("Row %d: typeName is required", i+1)
		}
		count, ok := ParseCount(r.Count)
		if !ok {
			return nil, Validationf("Row %d: count must be a non-negative integer", i+1)
		}
		items = append(items, InventoryItem{TypeName: typeName, Count: count})
	}
	return items, nil
}
