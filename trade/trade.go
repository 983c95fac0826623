// Package trade defines the operation record consumed by every analyzer.
//
// A Record is one trading operation produced by a strategy ("robot"). Records
// are immutable once constructed: analyzers only read them and derive new
// aggregate structures.
package trade

import (
	"sort"
	"time"
)

// Record is a single closed (or still open) trading operation.
type Record struct {
	StrategyID string     `json:"strategy_id"`
	OpenTime   time.Time  `json:"open_time"`
	CloseTime  *time.Time `json:"close_time,omitempty"`

	// Result is the signed outcome in points. Records without a result are
	// kept for audit but excluded from every calculation.
	Result *float64 `json:"result"`

	Asset     string    `json:"asset,omitempty"`
	Quantity  float64   `json:"quantity,omitempty"`
	Direction Direction `json:"direction"`
}

// HasResult reports whether the record carries a usable numeric outcome.
func (r Record) HasResult() bool {
	return r.Result != nil
}

// Points returns the signed result, or 0 when the record has none.
// Callers that must distinguish "no result" from 0 use HasResult.
func (r Record) Points() float64 {
	if r.Result == nil {
		return 0
	}
	return *r.Result
}

// Lots returns the contract count. A record without one falls back to the
// given default, and to 1 when that is not positive either.
func (r Record) Lots(fallback float64) float64 {
	if r.Quantity > 0 {
		return r.Quantity
	}
	if fallback > 0 {
		return fallback
	}
	return 1
}

// Valid reports whether the record can enter a calculation: it needs both an
// open time (the ordering key) and a result.
func (r Record) Valid() bool {
	return !r.OpenTime.IsZero() && r.HasResult()
}

// Day returns the calendar date key ("2006-01-02") of the open time.
// Local wall-clock time, no timezone conversion.
func (r Record) Day() string {
	return r.OpenTime.Format("2006-01-02")
}

// SortByOpenTime returns a copy of recs in ascending open-time order.
// The input slice is left untouched. The sort is stable so same-timestamp
// trades keep their original relative order.
func SortByOpenTime(recs []Record) []Record {
	out := make([]Record, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OpenTime.Before(out[j].OpenTime)
	})
	return out
}

// ISOWeekday returns 1 (Monday) through 7 (Sunday) for t.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
