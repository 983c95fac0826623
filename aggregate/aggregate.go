// Package aggregate groups trade records into calendar buckets and builds
// cumulative equity sequences. Every function works on a sorted copy of its
// input; the caller's slice is never reordered or modified.
//
// Records missing an open time or a result never enter a group. They are not
// silently dropped either: each grouping function reports how many it skipped
// so callers can surface the count.
package aggregate

import (
	"sort"
	"time"

	"github.com/robdata/tradestats/trade"
)

// Valid returns the calculation-ready records sorted by open time, plus the
// number of records excluded for a missing open time or result.
func Valid(recs []trade.Record) ([]trade.Record, int) {
	out := make([]trade.Record, 0, len(recs))
	skipped := 0
	for _, r := range recs {
		if r.Valid() {
			out = append(out, r)
		} else {
			skipped++
		}
	}
	return trade.SortByOpenTime(out), skipped
}

// By groups valid records under key, preserving chronological order within
// each group.
func By(recs []trade.Record, key func(trade.Record) string) (map[string][]trade.Record, int) {
	valid, skipped := Valid(recs)
	groups := make(map[string][]trade.Record)
	for _, r := range valid {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups, skipped
}

// ByDay groups valid records by calendar date ("2006-01-02", local time).
func ByDay(recs []trade.Record) (map[string][]trade.Record, int) {
	return By(recs, trade.Record.Day)
}

// ByStrategy groups valid records by owning strategy id.
func ByStrategy(recs []trade.Record) (map[string][]trade.Record, int) {
	return By(recs, func(r trade.Record) string { return r.StrategyID })
}

// ByAsset groups valid records by asset symbol. Records without a symbol
// land under the empty key.
func ByAsset(recs []trade.Record) (map[string][]trade.Record, int) {
	return By(recs, func(r trade.Record) string { return r.Asset })
}

// DayTotal is the aggregated outcome of one trading day.
type DayTotal struct {
	Date   string  `json:"date"`
	Total  float64 `json:"total"`
	Trades int     `json:"trades"`
}

// DailyTotals returns per-day result totals in date order.
func DailyTotals(recs []trade.Record) ([]DayTotal, int) {
	groups, skipped := ByDay(recs)

	out := make([]DayTotal, 0, len(groups))
	for date, day := range groups {
		dt := DayTotal{Date: date, Trades: len(day)}
		for _, r := range day {
			dt.Total += r.Points()
		}
		out = append(out, dt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, skipped
}

// EquityCurve returns the running cumulative sum of results in chronological
// order. The initial zero is not part of the sequence: curve[0] equals the
// first valid trade's result and len(curve) equals the valid trade count.
func EquityCurve(recs []trade.Record) []float64 {
	valid, _ := Valid(recs)
	if len(valid) == 0 {
		return nil
	}

	curve := make([]float64, len(valid))
	sum := 0.0
	for i, r := range valid {
		sum += r.Points()
		curve[i] = sum
	}
	return curve
}

// EquityPoint is one step of the equity curve with enough context for charts.
type EquityPoint struct {
	Seq        int       `json:"seq"`
	Time       time.Time `json:"time"`
	Asset      string    `json:"asset,omitempty"`
	Result     float64   `json:"result"`
	Cumulative float64   `json:"cumulative"`
}

// EquityPoints returns the equity curve as chart-ready points.
func EquityPoints(recs []trade.Record) []EquityPoint {
	valid, _ := Valid(recs)
	if len(valid) == 0 {
		return nil
	}

	out := make([]EquityPoint, len(valid))
	sum := 0.0
	for i, r := range valid {
		sum += r.Points()
		out[i] = EquityPoint{
			Seq:        i + 1,
			Time:       r.OpenTime,
			Asset:      r.Asset,
			Result:     r.Points(),
			Cumulative: sum,
		}
	}
	return out
}

// Results extracts the result values of the valid records, sorted by open
// time. Most analyzers consume this shape.
func Results(recs []trade.Record) ([]float64, int) {
	valid, skipped := Valid(recs)
	out := make([]float64, len(valid))
	for i, r := range valid {
		out[i] = r.Points()
	}
	return out, skipped
}
