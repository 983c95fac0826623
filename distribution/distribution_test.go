package distribution

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robdata/tradestats/trade"
)

func rec(day string, result float64) trade.Record {
	open, _ := time.Parse("2006-01-02", day)
	return trade.Record{StrategyID: "s1", OpenTime: open, Result: &result}
}

func TestFromResultsInsufficient(t *testing.T) {
	t.Parallel()

	rep := FromResults([]float64{1, 2, 3})
	assert.True(t, rep.InsufficientData)
	assert.Equal(t, 3, rep.SampleSize)
	assert.Empty(t, rep.Histogram)
}

func TestFromResultsQuartiles(t *testing.T) {
	t.Parallel()

	rep := FromResults([]float64{4, 1, 3, 2})
	require.False(t, rep.InsufficientData)

	assert.Equal(t, 4, rep.SampleSize)
	assert.Equal(t, 1.0, rep.Min)
	assert.Equal(t, 4.0, rep.Max)
	assert.InDelta(t, 2.5, rep.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(5.0/3.0), rep.StdDev, 1e-9)

	// Rank selection over the sorted sample, no interpolation.
	assert.Equal(t, 1.0, rep.Q1)
	assert.Equal(t, 2.0, rep.Q2)
	assert.Equal(t, 2.0, rep.Median)
	assert.Equal(t, 3.0, rep.Q3)
	assert.InDelta(t, 2.0, rep.IQR, 1e-9)
}

func TestFromResultsNormality(t *testing.T) {
	t.Parallel()

	rep := FromResults([]float64{1, 2, 3, 4})

	assert.InDelta(t, 0.0, rep.Skewness, 1e-9)
	assert.InDelta(t, -1.2, rep.ExcessKurtosis, 1e-9)
	// JB = n/6 (S² + K²/4) = 4/6 · 0.36 = 0.24, p = exp(-0.12).
	assert.InDelta(t, 0.24, rep.JarqueBera, 1e-9)
	assert.InDelta(t, math.Exp(-0.12), rep.NormalityP, 1e-9)
}

func TestHistogramFixedBins(t *testing.T) {
	t.Parallel()

	rep := FromResults([]float64{1, 2, 3, 4})
	require.Len(t, rep.Histogram, HistogramBins)

	assert.Equal(t, 1.0, rep.Histogram[0].Low)
	assert.Equal(t, 4.0, rep.Histogram[HistogramBins-1].High)

	total := 0
	for _, b := range rep.Histogram {
		total += b.Count
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, 1, rep.Histogram[0].Count)
	assert.Equal(t, 1, rep.Histogram[HistogramBins-1].Count)
}

func TestHistogramDegenerateRange(t *testing.T) {
	t.Parallel()

	rep := FromResults([]float64{5, 5, 5, 5})
	require.Len(t, rep.Histogram, HistogramBins)
	assert.Equal(t, 4, rep.Histogram[0].Count)
	for _, b := range rep.Histogram[1:] {
		assert.Zero(t, b.Count)
	}
	assert.Zero(t, rep.StdDev)
}

func TestOutlierFences(t *testing.T) {
	t.Parallel()

	rep := FromResults([]float64{1, 2, 3, 4, 100})

	assert.Equal(t, 2.0, rep.Q1)
	assert.Equal(t, 4.0, rep.Q3)
	assert.InDelta(t, -1.0, rep.Outliers.LowFence, 1e-9)
	assert.InDelta(t, 7.0, rep.Outliers.HighFence, 1e-9)
	assert.Equal(t, []float64{100}, rep.Outliers.High)
	assert.Empty(t, rep.Outliers.Low)
	assert.Equal(t, 1, rep.Outliers.Count)
}

func TestAnalyzeSkipsInvalid(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		rec("2024-03-04", 10),
		rec("2024-03-05", -5),
		{StrategyID: "s1"}, // no open time, no result
		rec("2024-03-06", 7),
		rec("2024-03-07", 2),
	}
	rep := Analyze(recs)
	assert.False(t, rep.InsufficientData)
	assert.Equal(t, 4, rep.SampleSize)
	assert.Equal(t, 1, rep.SkippedRecords)
}
