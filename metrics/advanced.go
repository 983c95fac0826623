package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/robdata/tradestats/aggregate"
	"github.com/robdata/tradestats/trade"
)

// TradingDaysPerYear is the annualization convention used by Calmar and the
// portfolio ratio. 252 is the standard trading-year assumption, not a market
// fact.
const TradingDaysPerYear = 252

// minPeakForPercent is the smallest running peak (in points) against which a
// drawdown percentage is considered meaningful. Below it the percentage is
// reported as 0 with PercentMeaningful=false instead of an absurd number.
const minPeakForPercent = 1.0

// Drawdown describes the peak-to-trough behavior of an equity curve.
type Drawdown struct {
	Max        float64 `json:"max_drawdown"`
	MaxPercent float64 `json:"max_drawdown_percent"`

	// PercentMeaningful is false when the running peak at the point of
	// maximum drawdown is too small for a percentage to mean anything.
	PercentMeaningful bool    `json:"percent_meaningful"`
	PeakAtMax         float64 `json:"peak_at_max"`

	Current float64 `json:"current_drawdown"`

	// LongestRun is the longest contiguous stretch, in trades, that equity
	// spent below its most recent peak.
	LongestRun int `json:"longest_run"`
}

// Streaks reports consecutive win/loss runs. A zero result resets both
// counters. Current is signed: positive for an ongoing win streak, negative
// for an ongoing loss streak, 0 after a break-even trade or on empty input.
type Streaks struct {
	MaxWins   int `json:"max_consecutive_wins"`
	MaxLosses int `json:"max_consecutive_losses"`
	Current   int `json:"current_streak"`
}

// RiskReport is the advanced risk metrics record. When fewer than 2 valid
// trades are available the ratio fields stay 0 and InsufficientData is set;
// the summary, drawdown and streak fields are still filled.
type RiskReport struct {
	Summary

	InsufficientData bool `json:"insufficient_data"`

	StdDev  float64 `json:"std_dev"`
	Sharpe  float64 `json:"sharpe_ratio"`
	Sortino float64 `json:"sortino_ratio"`
	Calmar  float64 `json:"calmar_ratio"`

	AnnualizedReturn float64 `json:"annualized_return"`
	TradingDays      int     `json:"trading_days"`

	VaR95 float64 `json:"var_95"`
	VaR99 float64 `json:"var_99"`

	RecoveryFactor float64 `json:"recovery_factor"`

	Drawdown Drawdown `json:"drawdown"`
	Streaks  Streaks  `json:"streaks"`
}

// ComputeRisk produces the full risk report for a record collection.
func ComputeRisk(recs []trade.Record) RiskReport {
	results, skipped := aggregate.Results(recs)

	var rep RiskReport
	rep.Summary = Summarize(results)
	rep.Summary.SkippedRecords = skipped
	rep.Streaks = ComputeStreaks(results)
	rep.Drawdown = ComputeDrawdown(aggregate.EquityCurve(recs))

	days, _ := aggregate.DailyTotals(recs)
	rep.TradingDays = len(days)

	if len(results) < 2 {
		rep.InsufficientData = true
		return rep
	}

	mean, std := stat.MeanStdDev(results, nil)
	if std > 0 && !math.IsNaN(std) {
		rep.StdDev = std
		rep.Sharpe = mean / std
	}

	var downside []float64
	for _, v := range results {
		if v < 0 {
			downside = append(downside, v)
		}
	}
	if len(downside) >= 2 {
		dstd := stat.StdDev(downside, nil)
		if dstd > 0 && !math.IsNaN(dstd) {
			rep.Sortino = mean / dstd
		}
	}

	if rep.TradingDays > 0 {
		rep.AnnualizedReturn = rep.TotalResult / float64(rep.TradingDays) * TradingDaysPerYear
	}
	if rep.Drawdown.Max > 0 {
		rep.Calmar = rep.AnnualizedReturn / rep.Drawdown.Max
		rep.RecoveryFactor = rep.TotalResult / rep.Drawdown.Max
	}

	rep.VaR95 = ValueAtRisk(results, 0.95)
	rep.VaR99 = ValueAtRisk(results, 0.99)
	return rep
}

// ComputeDrawdown walks an equity curve tracking the running peak.
func ComputeDrawdown(curve []float64) Drawdown {
	var dd Drawdown
	if len(curve) == 0 {
		return dd
	}

	peak := curve[0]
	peakAtMax := curve[0]
	run := 0

	for _, v := range curve {
		if v >= peak {
			peak = v
			run = 0
		} else {
			run++
			if run > dd.LongestRun {
				dd.LongestRun = run
			}
		}
		if d := peak - v; d > dd.Max {
			dd.Max = d
			peakAtMax = peak
		}
	}

	dd.PeakAtMax = peakAtMax
	dd.Current = peak - curve[len(curve)-1]
	if peakAtMax >= minPeakForPercent {
		dd.MaxPercent = dd.Max / peakAtMax * 100
		dd.PercentMeaningful = true
	}
	return dd
}

// ValueAtRisk returns the loss magnitude not expected to be exceeded at the
// given confidence level: the (1-confidence) empirical quantile of the result
// distribution, clamped to 0 when that quantile is a gain.
func ValueAtRisk(results []float64, confidence float64) float64 {
	if len(results) == 0 || confidence <= 0 || confidence >= 1 {
		return 0
	}

	sorted := make([]float64, len(results))
	copy(sorted, results)
	sort.Float64s(sorted)

	q := stat.Quantile(1-confidence, stat.Empirical, sorted, nil)
	if q >= 0 {
		return 0
	}
	return -q
}

// ComputeStreaks scans results in order and tracks consecutive runs.
func ComputeStreaks(results []float64) Streaks {
	var s Streaks
	wins, losses := 0, 0

	for _, v := range results {
		switch {
		case v > 0:
			wins++
			losses = 0
			if wins > s.MaxWins {
				s.MaxWins = wins
			}
		case v < 0:
			losses++
			wins = 0
			if losses > s.MaxLosses {
				s.MaxLosses = losses
			}
		default:
			wins, losses = 0, 0
		}
	}

	switch {
	case wins > 0:
		s.Current = wins
	case losses > 0:
		s.Current = -losses
	}
	return s
}
