// Package correlation measures how strategy daily returns move together,
// and what the strategies look like combined into one portfolio.
package correlation

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/robdata/tradestats/aggregate"
	"github.com/robdata/tradestats/metrics"
	"github.com/robdata/tradestats/trade"
)

const (
	// MinStrategies and MinAlignedDays gate the analysis: fewer strategies
	// or fewer overlapping trading days and there is nothing to correlate.
	MinStrategies  = 2
	MinAlignedDays = 10

	// HighThreshold and LowThreshold classify pair coefficients by
	// absolute value.
	HighThreshold = 0.7
	LowThreshold  = 0.3
)

// Pair is the correlation coefficient between two strategies.
type Pair struct {
	A           string  `json:"strategy_a"`
	B           string  `json:"strategy_b"`
	Coefficient float64 `json:"coefficient"`
}

// Portfolio summarizes the strategies traded together, one combined
// return per aligned day.
type Portfolio struct {
	Days      int     `json:"days"`
	Mean      float64 `json:"mean_daily"`
	StdDev    float64 `json:"std_dev_daily"`
	BestDay   float64 `json:"best_day"`
	BestDate  string  `json:"best_date"`
	WorstDay  float64 `json:"worst_day"`
	WorstDate string  `json:"worst_date"`
	Ratio     float64 `json:"annualized_ratio"`
}

// Report is the correlation analysis result.
type Report struct {
	InsufficientData bool `json:"insufficient_data"`
	SkippedRecords   int  `json:"skipped_records"`

	Strategies  []string `json:"strategies"`
	AlignedDays int      `json:"aligned_days"`

	// Matrix[i][j] is the coefficient between Strategies[i] and
	// Strategies[j]; the diagonal is 1.
	Matrix [][]float64 `json:"matrix"`

	Pairs            []Pair `json:"pairs"`
	HighlyCorrelated []Pair `json:"highly_correlated"`
	LowlyCorrelated  []Pair `json:"lowly_correlated"`

	Portfolio Portfolio `json:"portfolio"`
}

// Analyze builds per-strategy daily return series, aligns them on the days
// where at least two strategies traded, and correlates every pair. Days a
// strategy did not trade count as zero return for that strategy.
func Analyze(recs []trade.Record) Report {
	groups, skipped := aggregate.ByStrategy(recs)
	rep := Report{SkippedRecords: skipped}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	rep.Strategies = names

	if len(names) < MinStrategies {
		rep.InsufficientData = true
		return rep
	}

	// Daily totals per strategy, computed concurrently per group.
	daily := make([]map[string]float64, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, recs []trade.Record) {
			defer wg.Done()
			daily[i] = dayTotals(recs)
		}(i, groups[name])
	}
	wg.Wait()

	dates := alignedDates(daily)
	rep.AlignedDays = len(dates)
	if len(dates) < MinAlignedDays {
		rep.InsufficientData = true
		return rep
	}

	series := make([][]float64, len(names))
	for i := range names {
		series[i] = make([]float64, len(dates))
		for j, d := range dates {
			series[i][j] = daily[i][d]
		}
	}

	rep.Matrix = correlate(series)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			p := Pair{A: names[i], B: names[j], Coefficient: rep.Matrix[i][j]}
			rep.Pairs = append(rep.Pairs, p)
			switch abs := math.Abs(p.Coefficient); {
			case abs > HighThreshold:
				rep.HighlyCorrelated = append(rep.HighlyCorrelated, p)
			case abs < LowThreshold:
				rep.LowlyCorrelated = append(rep.LowlyCorrelated, p)
			}
		}
	}

	rep.Portfolio = portfolio(series, dates)
	return rep
}

func dayTotals(recs []trade.Record) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range recs {
		totals[r.Day()] += r.Points()
	}
	return totals
}

// alignedDates returns, sorted, every date on which at least two of the
// strategies traded.
func alignedDates(daily []map[string]float64) []string {
	seen := make(map[string]int)
	for _, m := range daily {
		for d := range m {
			seen[d]++
		}
	}
	var dates []string
	for d, n := range seen {
		if n >= 2 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

func correlate(series [][]float64) [][]float64 {
	m := make([][]float64, len(series))
	for i := range series {
		m[i] = make([]float64, len(series))
		m[i][i] = 1
	}
	for i := 0; i < len(series); i++ {
		for j := i + 1; j < len(series); j++ {
			r := stat.Correlation(series[i], series[j], nil)
			if math.IsNaN(r) {
				// Constant series, no co-movement to measure.
				r = 0
			}
			m[i][j] = r
			m[j][i] = r
		}
	}
	return m
}

func portfolio(series [][]float64, dates []string) Portfolio {
	combined := make([]float64, len(dates))
	for _, s := range series {
		for j, v := range s {
			combined[j] += v
		}
	}

	p := Portfolio{Days: len(dates)}
	p.Mean, p.StdDev = stat.MeanStdDev(combined, nil)
	p.BestDay, p.WorstDay = combined[0], combined[0]
	p.BestDate, p.WorstDate = dates[0], dates[0]
	for j, v := range combined {
		if v > p.BestDay {
			p.BestDay, p.BestDate = v, dates[j]
		}
		if v < p.WorstDay {
			p.WorstDay, p.WorstDate = v, dates[j]
		}
	}
	if p.StdDev > 0 {
		p.Ratio = p.Mean / p.StdDev * math.Sqrt(metrics.TradingDaysPerYear)
	}
	return p
}
