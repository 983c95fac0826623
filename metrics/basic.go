// Package metrics derives performance and risk statistics from trade
// outcomes. All functions are pure: they read the input slice and return new
// result structs whose JSON field names are the stable contract keys the
// dashboards depend on.
package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/robdata/tradestats/aggregate"
	"github.com/robdata/tradestats/trade"
)

// Summary is the fixed-shape basic metrics record. Every field is zero when
// the input is empty; computing on an empty set never fails.
type Summary struct {
	TotalTrades int     `json:"total_trades"`
	TotalResult float64 `json:"total_result"`
	AvgResult   float64 `json:"avg_result"`

	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	BreakEven int `json:"break_even"`

	WinRate  float64 `json:"win_rate"`
	LossRate float64 `json:"loss_rate"`

	BestTrade  float64 `json:"best_trade"`
	WorstTrade float64 `json:"worst_trade"`

	AvgGain float64 `json:"avg_gain"`
	AvgLoss float64 `json:"avg_loss"` // absolute magnitude

	GrossProfit  float64 `json:"gross_profit"`
	GrossLoss    float64 `json:"gross_loss"` // absolute magnitude
	ProfitFactor float64 `json:"profit_factor"`
	PayoffRatio  float64 `json:"payoff_ratio"`

	SkippedRecords int `json:"skipped_records"`
}

// Compute produces the basic summary for a record collection. Records without
// an open time or result are excluded and counted in SkippedRecords.
func Compute(recs []trade.Record) Summary {
	results, skipped := aggregate.Results(recs)
	s := Summarize(results)
	s.SkippedRecords = skipped
	return s
}

// Summarize produces the basic summary from raw result values.
func Summarize(results []float64) Summary {
	var s Summary
	if len(results) == 0 {
		return s
	}

	s.TotalTrades = len(results)
	s.BestTrade = results[0]
	s.WorstTrade = results[0]

	var gains, losses []float64
	for _, v := range results {
		s.TotalResult += v
		if v > s.BestTrade {
			s.BestTrade = v
		}
		if v < s.WorstTrade {
			s.WorstTrade = v
		}
		switch {
		case v > 0:
			s.Wins++
			s.GrossProfit += v
			gains = append(gains, v)
		case v < 0:
			s.Losses++
			s.GrossLoss += -v
			losses = append(losses, v)
		default:
			s.BreakEven++
		}
	}

	s.AvgResult = s.TotalResult / float64(s.TotalTrades)
	s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	s.LossRate = 100 - s.WinRate

	if len(gains) > 0 {
		s.AvgGain = stat.Mean(gains, nil)
	}
	if len(losses) > 0 {
		s.AvgLoss = -stat.Mean(losses, nil)
	}
	if s.GrossLoss > 0 {
		s.ProfitFactor = s.GrossProfit / s.GrossLoss
	}
	if s.AvgLoss > 0 {
		s.PayoffRatio = s.AvgGain / s.AvgLoss
	}
	return s
}
