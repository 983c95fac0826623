package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robdata/tradestats/trade"
)

func TestComputeDrawdown(t *testing.T) {
	t.Parallel()

	dd := ComputeDrawdown([]float64{100, 50, 120, 60, 90})

	assert.InDelta(t, 60.0, dd.Max, 1e-9)
	assert.InDelta(t, 120.0, dd.PeakAtMax, 1e-9)
	assert.True(t, dd.PercentMeaningful)
	assert.InDelta(t, 50.0, dd.MaxPercent, 1e-9)
	assert.InDelta(t, 30.0, dd.Current, 1e-9) // peak 120, last 90
	assert.Equal(t, 2, dd.LongestRun)
}

func TestComputeDrawdownNonDecreasingCurve(t *testing.T) {
	t.Parallel()

	dd := ComputeDrawdown([]float64{10, 20, 30})

	assert.Equal(t, 0.0, dd.Max)
	assert.Equal(t, 0.0, dd.Current)
	assert.Equal(t, 0, dd.LongestRun)
}

func TestComputeDrawdownWeakPeakNotMeaningful(t *testing.T) {
	t.Parallel()

	// curve never builds a peak of at least one point, so the percentage is
	// suppressed while the absolute drawdown is still reported
	dd := ComputeDrawdown([]float64{0.5, -40, -10})

	assert.InDelta(t, 40.5, dd.Max, 1e-9)
	assert.False(t, dd.PercentMeaningful)
	assert.Equal(t, 0.0, dd.MaxPercent)
}

func TestComputeDrawdownEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Drawdown{}, ComputeDrawdown(nil))
}

func TestComputeDrawdownNonNegativity(t *testing.T) {
	t.Parallel()

	curves := [][]float64{
		{5}, {-5, -10, -2}, {1, 1, 1}, {3, -3, 3, -3},
	}
	for _, c := range curves {
		dd := ComputeDrawdown(c)
		assert.GreaterOrEqual(t, dd.Max, 0.0)
	}
}

func TestValueAtRisk(t *testing.T) {
	t.Parallel()

	results := []float64{-10, -5, -1, 2, 8}

	// the 5% empirical quantile of the distribution is the worst loss here
	assert.InDelta(t, 10.0, ValueAtRisk(results, 0.95), 1e-9)
	assert.InDelta(t, 10.0, ValueAtRisk(results, 0.99), 1e-9)

	// a gain at the quantile clamps to zero loss
	assert.Equal(t, 0.0, ValueAtRisk([]float64{1, 2, 3}, 0.95))

	assert.Equal(t, 0.0, ValueAtRisk(nil, 0.95))
	assert.Equal(t, 0.0, ValueAtRisk(results, 1.5))
}

func TestComputeStreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []float64
		want    Streaks
	}{
		{"empty", nil, Streaks{}},
		{"wins then zero", []float64{1, 2, -1, 0, 3, 4, 5}, Streaks{MaxWins: 3, MaxLosses: 1, Current: 3}},
		{"ongoing losses", []float64{1, -1, -2}, Streaks{MaxWins: 1, MaxLosses: 2, Current: -2}},
		{"zero resets current", []float64{1, 1, 0}, Streaks{MaxWins: 2, Current: 0}},
		{"all losses", []float64{-1, -1, -1}, Streaks{MaxLosses: 3, Current: -3}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ComputeStreaks(tt.results))
		})
	}
}

func TestComputeRiskInsufficientData(t *testing.T) {
	t.Parallel()

	rep := ComputeRisk([]trade.Record{rec("s1", "2024-03-04", "09:00", 10)})

	assert.True(t, rep.InsufficientData)
	assert.Equal(t, 0.0, rep.Sharpe)
	assert.Equal(t, 0.0, rep.Sortino)
	assert.Equal(t, 0.0, rep.Calmar)
	// summary and streaks are still filled
	assert.Equal(t, 1, rep.TotalTrades)
	assert.Equal(t, 1, rep.Streaks.Current)
}

func TestComputeRiskSharpeAndCalmar(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		rec("s1", "2024-03-04", "09:00", 100),
		rec("s1", "2024-03-04", "10:00", -50),
	}

	rep := ComputeRisk(recs)

	assert.False(t, rep.InsufficientData)
	assert.Equal(t, 1, rep.TradingDays)

	// mean 25, sample std = 75*sqrt(2)
	wantStd := 75 * math.Sqrt2
	assert.InDelta(t, wantStd, rep.StdDev, 1e-9)
	assert.InDelta(t, 25/wantStd, rep.Sharpe, 1e-9)

	// single negative result: Sortino stays guarded at 0
	assert.Equal(t, 0.0, rep.Sortino)

	// total 50 over 1 trading day, annualized by the 252-day convention
	assert.InDelta(t, 50.0*252, rep.AnnualizedReturn, 1e-9)
	assert.InDelta(t, 50.0, rep.Drawdown.Max, 1e-9)
	assert.InDelta(t, 252.0, rep.Calmar, 1e-9)
	assert.InDelta(t, 1.0, rep.RecoveryFactor, 1e-9)
}

func TestComputeRiskSortino(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		rec("s1", "2024-03-04", "09:00", 10),
		rec("s1", "2024-03-04", "10:00", -5),
		rec("s1", "2024-03-05", "09:00", -15),
		rec("s1", "2024-03-05", "10:00", 20),
	}

	rep := ComputeRisk(recs)

	// mean 2.5; downside sample std of {-5,-15} is 5*sqrt(2)
	assert.InDelta(t, 2.5/(5*math.Sqrt2), rep.Sortino, 1e-9)
	assert.Equal(t, 2, rep.TradingDays)
}

func TestComputeRiskZeroVolatility(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		rec("s1", "2024-03-04", "09:00", 5),
		rec("s1", "2024-03-04", "10:00", 5),
	}

	rep := ComputeRisk(recs)

	assert.Equal(t, 0.0, rep.Sharpe) // stdev 0 resolves to 0, never NaN
	assert.False(t, math.IsNaN(rep.Sharpe))
}
