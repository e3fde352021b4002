package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Period is the analytics bucket granularity.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

const (
	DefaultPeriods = 6
	MaxPeriods     = 24
)

// ParsePeriod maps a query-string value to a Period; anything unrecognized
// (including empty) falls back to month.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s)
	default:
		return PeriodMonth
	}
}

// ClampPeriods bounds the requested bucket count to [1, MaxPeriods]. Zero
// means the value was absent or unparseable and falls back to
// DefaultPeriods; an explicit negative clamps to 1.
func ClampPeriods(n int) int {
	if n == 0 {
		return DefaultPeriods
	}
	if n < 1 {
		return 1
	}
	if n > MaxPeriods {
		return MaxPeriods
	}
	return n
}

// BucketDuration is the window-sizing approximation for one bucket. The
// month value is a fixed 30 days, not calendar-accurate, even though month
// bucket keys use true calendar months. Kept as observed in the flow data
// consumers.
func BucketDuration(p Period) time.Duration {
	switch p {
	case PeriodDay:
		return 24 * time.Hour
	case PeriodWeek:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// WindowStart returns the inclusive lower bound of the analytics window.
func WindowStart(p Period, periods int, now time.Time) time.Time {
	return now.Add(-time.Duration(periods) * BucketDuration(p))
}

// PeriodBucket is one row of the flow time series. Period is the sort key
// (YYYY-MM-DD for day and week, YYYY-MM for month); PeriodLabel is the
// human-readable form.
type PeriodBucket struct {
	Period        string          `json:"period"`
	PeriodLabel   string          `json:"periodLabel"`
	IncomingCount int             `json:"incomingCount"`
	OutgoingCount int             `json:"outgoingCount"`
	IncomingValue decimal.Decimal `json:"incomingValue"`
	OutgoingValue decimal.Decimal `json:"outgoingValue"`
}

// TypeFlow accumulates loaded/unloaded unit counts for one type across the
// window.
type TypeFlow struct {
	TypeName string `json:"typeName"`
	Loaded   int    `json:"loaded"`
	Unloaded int    `json:"unloaded"`
}

type AnalyticsSummary struct {
	TotalItems         int             `json:"totalItems"`
	TypeCount          int             `json:"typeCount"`
	TotalIncomingValue decimal.Decimal `json:"totalIncomingValue"`
	TotalOutgoingValue decimal.Decimal `json:"totalOutgoingValue"`
	TotalIncomingCount int             `json:"totalIncomingCount"`
	TotalOutgoingCount int             `json:"totalOutgoingCount"`
}

type AnalyticsResult struct {
	Summary         AnalyticsSummary `json:"summary"`
	InventoryByType []InventoryItem  `json:"inventoryByType"`
	FlowTimeSeries  []PeriodBucket   `json:"flowTimeSeries"`
	FlowByType      []TypeFlow       `json:"flowByType"`
}

// periodKey derives the bucket key for a timestamp, in UTC.
// Week keys are the Monday of the week containing t (Sunday belongs to the
// previous Monday); month keys are true calendar months.
func periodKey(p Period, t time.Time) string {
	u := t.UTC()
	switch p {
	case PeriodDay:
		return u.Format("2006-01-02")
	case PeriodWeek:
		wd := int(u.Weekday())
		if wd == 0 {
			wd = 7
		}
		return u.AddDate(0, 0, 1-wd).Format("2006-01-02")
	default:
		return u.Format("2006-01")
	}
}

// periodLabel renders the chart label for a bucket key. Week labels number
// the week within its month as ceil(dayOfMonth/7) of the bucket's Monday.
func periodLabel(p Period, key string) string {
	switch p {
	case PeriodDay:
		d, err := time.Parse("2006-01-02", key)
		if err != nil {
			return key
		}
		return d.Format("Jan 2, 06")
	case PeriodWeek:
		d, err := time.Parse("2006-01-02", key)
		if err != nil {
			return key
		}
		return fmt.Sprintf("W%d %s", (d.Day()-1)/7+1, d.Format("Jan"))
	default:
		d, err := time.Parse("2006-01", key)
		if err != nil {
			return key
		}
		return d.Format("Jan 2006")
	}
}

// Aggregate derives the analytics view from the current projection and the
// flow entries inside the window. It is pure and deterministic: now is an
// explicit parameter, and the caller's slices are not mutated.
//
// An entry whose CreatedAt equals the window start is included; one
// millisecond earlier is not. Summary value/count totals are window-scoped
// (sums over the produced time series); totalItems and typeCount reflect the
// current projection regardless of the window.
func Aggregate(inventory []InventoryItem, flows []FlowEntry, p Period, periods int, now time.Time) AnalyticsResult {
	periods = ClampPeriods(periods)
	from := WindowStart(p, periods, now)

	inWindow := make([]FlowEntry, 0, len(flows))
	for _, f := range flows {
		if !f.CreatedAt.Before(from) {
			inWindow = append(inWindow, f)
		}
	}
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].CreatedAt.Before(inWindow[j].CreatedAt)
	})

	buckets := make(map[string]*PeriodBucket)
	typeAgg := make(map[string]*TypeFlow)
	var typeOrder []string

	for _, f := range inWindow {
		key := periodKey(p, f.CreatedAt)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &PeriodBucket{Period: key, PeriodLabel: periodLabel(p, key)}
			buckets[key] = bucket
		}
		for _, item := range f.Items {
			value := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Count)))
			agg, ok := typeAgg[item.TypeName]
			if !ok {
				agg = &TypeFlow{TypeName: item.TypeName}
				typeAgg[item.TypeName] = agg
				typeOrder = append(typeOrder, item.TypeName)
			}
			if f.Operation == FlowLoad {
				bucket.IncomingCount += item.Count
				bucket.IncomingValue = bucket.IncomingValue.Add(value)
				agg.Loaded += item.Count
			} else {
				bucket.OutgoingCount += item.Count
				bucket.OutgoingValue = bucket.OutgoingValue.Add(value)
				agg.Unloaded += item.Count
			}
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]PeriodBucket, 0, len(keys))
	summary := AnalyticsSummary{
		TotalIncomingValue: decimal.Zero,
		TotalOutgoingValue: decimal.Zero,
	}
	for _, k := range keys {
		b := *buckets[k]
		series = append(series, b)
		summary.TotalIncomingValue = summary.TotalIncomingValue.Add(b.IncomingValue)
		summary.TotalOutgoingValue = summary.TotalOutgoingValue.Add(b.OutgoingValue)
		summary.TotalIncomingCount += b.IncomingCount
		summary.TotalOutgoingCount += b.OutgoingCount
	}
	summary.TotalItems, summary.TypeCount = InventoryTotals(inventory)

	// Top 10 types by total moved units; stable sort keeps first-seen order
	// on ties.
	byType := make([]TypeFlow, 0, len(typeOrder))
	for _, name := range typeOrder {
		byType = append(byType, *typeAgg[name])
	}
	sort.SliceStable(byType, func(i, j int) bool {
		return byType[i].Loaded+byType[i].Unloaded > byType[j].Loaded+byType[j].Unloaded
	})
	if len(byType) > 10 {
		byType = byType[:10]
	}

	inventoryByType := make([]InventoryItem, len(inventory))
	copy(inventoryByType, inventory)

	return AnalyticsResult{
		Summary:         summary,
		InventoryByType: inventoryByType,
		FlowTimeSeries:  series,
		FlowByType:      byType,
	}
}
