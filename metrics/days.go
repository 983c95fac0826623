package metrics

import (
	"sort"

	"github.com/robdata/tradestats/aggregate"
	"github.com/robdata/tradestats/trade"
)

// Day classification labels. Contract keys, do not rename.
const (
	DayPositive = "positive"
	DayNegative = "negative"
	DayNeutral  = "neutral"
)

// DayDetail is one classified trading day.
type DayDetail struct {
	Date   string  `json:"date"`
	Total  float64 `json:"total"`
	Trades int     `json:"trades"`
	Kind   string  `json:"kind"`
}

// DayReport classifies trading days and contrasts trade-level win rates on
// winning versus losing days.
type DayReport struct {
	DaysAnalyzed int `json:"days_analyzed"`
	PositiveDays int `json:"positive_days"`
	NegativeDays int `json:"negative_days"`
	NeutralDays  int `json:"neutral_days"`

	// DayWinRate is the share of analyzed days that closed positive.
	DayWinRate float64 `json:"day_win_rate"`

	// Win rate of individual trades that happened on positive/negative days.
	WinRatePositiveDays float64 `json:"win_rate_positive_days"`
	WinRateNegativeDays float64 `json:"win_rate_negative_days"`
	TradesPositiveDays  int     `json:"trades_positive_days"`
	TradesNegativeDays  int     `json:"trades_negative_days"`

	Detail []DayDetail `json:"detail"`
}

// ComputeDays builds the day classification report.
func ComputeDays(recs []trade.Record) DayReport {
	groups, _ := aggregate.ByDay(recs)
	days, _ := aggregate.DailyTotals(recs)

	var rep DayReport
	rep.DaysAnalyzed = len(days)
	rep.Detail = make([]DayDetail, 0, len(days))

	var posDayWins, negDayWins int

	for _, d := range days {
		det := DayDetail{Date: d.Date, Total: d.Total, Trades: d.Trades}
		switch {
		case d.Total > 0:
			det.Kind = DayPositive
			rep.PositiveDays++
		case d.Total < 0:
			det.Kind = DayNegative
			rep.NegativeDays++
		default:
			det.Kind = DayNeutral
			rep.NeutralDays++
		}
		rep.Detail = append(rep.Detail, det)

		for _, r := range groups[d.Date] {
			win := r.Points() > 0
			if d.Total > 0 {
				rep.TradesPositiveDays++
				if win {
					posDayWins++
				}
			} else if d.Total < 0 {
				rep.TradesNegativeDays++
				if win {
					negDayWins++
				}
			}
		}
	}

	if rep.DaysAnalyzed > 0 {
		rep.DayWinRate = float64(rep.PositiveDays) / float64(rep.DaysAnalyzed) * 100
	}
	if rep.TradesPositiveDays > 0 {
		rep.WinRatePositiveDays = float64(posDayWins) / float64(rep.TradesPositiveDays) * 100
	}
	if rep.TradesNegativeDays > 0 {
		rep.WinRateNegativeDays = float64(negDayWins) / float64(rep.TradesNegativeDays) * 100
	}
	return rep
}

// AssetReport is the basic summary of one traded asset.
type AssetReport struct {
	Asset   string  `json:"asset"`
	Metrics Summary `json:"metrics"`
}

// ComputeByAsset produces per-asset summaries ordered by total result,
// best first. Records without an asset symbol are not assigned to a bucket.
func ComputeByAsset(recs []trade.Record) []AssetReport {
	groups, _ := aggregate.ByAsset(recs)

	out := make([]AssetReport, 0, len(groups))
	for asset, rs := range groups {
		if asset == "" {
			continue
		}
		out = append(out, AssetReport{Asset: asset, Metrics: Compute(rs)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Metrics.TotalResult != out[j].Metrics.TotalResult {
			return out[i].Metrics.TotalResult > out[j].Metrics.TotalResult
		}
		return out[i].Asset < out[j].Asset
	})
	return out
}
