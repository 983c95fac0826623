package seasonal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robdata/tradestats/trade"
)

func res(v float64) *float64 { return &v }

func at(ts string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", ts)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(ts string, v float64) trade.Record {
	return trade.Record{StrategyID: "s1", OpenTime: at(ts), Result: res(v)}
}

func TestAnalyzeFixedCardinality(t *testing.T) {
	t.Parallel()

	rep := Analyze([]trade.Record{rec("2024-03-04 09:00", 10)})

	assert.Len(t, rep.Hours, 24)
	assert.Len(t, rep.Weekdays, 7)
	assert.Len(t, rep.MonthsOfYear, 12)

	// empty buckets exist and are zero-valued
	assert.Equal(t, Stats{}, rep.Hours[3].Stats)
	assert.Equal(t, 3, rep.Hours[3].Hour)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	t.Parallel()

	rep := Analyze(nil)

	assert.Len(t, rep.Hours, 24)
	assert.Len(t, rep.Weekdays, 7)
	assert.Len(t, rep.MonthsOfYear, 12)
	assert.Nil(t, rep.MonthSeries)
}

func TestAnalyzeHourBuckets(t *testing.T) {
	t.Parallel()

	rep := Analyze([]trade.Record{
		rec("2024-03-04 09:10", 10),
		rec("2024-03-05 09:50", -4),
		rec("2024-03-05 14:00", 7),
	})

	nine := rep.Hours[9]
	assert.Equal(t, 2, nine.Trades)
	assert.InDelta(t, 6.0, nine.Total, 1e-9)
	assert.InDelta(t, 3.0, nine.Mean, 1e-9)
	assert.InDelta(t, 50.0, nine.WinRate, 1e-9)
	// sample std of {10, -4} is 7*sqrt(2)
	assert.InDelta(t, 7*math.Sqrt2, nine.StdDev, 1e-9)

	fourteen := rep.Hours[14]
	assert.Equal(t, 1, fourteen.Trades)
	assert.Equal(t, 0.0, fourteen.StdDev) // fewer than 2 points
}

func TestAnalyzeWeekdayBuckets(t *testing.T) {
	t.Parallel()

	rep := Analyze([]trade.Record{
		rec("2024-03-04 09:00", 5),  // Monday
		rec("2024-03-10 09:00", -2), // Sunday
	})

	mon := rep.Weekdays[0]
	assert.Equal(t, 1, mon.Weekday)
	assert.Equal(t, "Monday", mon.Name)
	assert.Equal(t, 1, mon.Trades)

	sun := rep.Weekdays[6]
	assert.Equal(t, 7, sun.Weekday)
	assert.Equal(t, "Sunday", sun.Name)
	assert.InDelta(t, -2.0, sun.Total, 1e-9)
}

func TestAnalyzeMonthSeriesContiguous(t *testing.T) {
	t.Parallel()

	rep := Analyze([]trade.Record{
		rec("2024-01-15 09:00", 5),
		rec("2024-04-02 09:00", 7), // gap: Feb and Mar have no trades
	})

	require.Len(t, rep.MonthSeries, 4)
	assert.Equal(t, "2024-01", rep.MonthSeries[0].Month)
	assert.Equal(t, "2024-02", rep.MonthSeries[1].Month)
	assert.Zero(t, rep.MonthSeries[1].Trades)
	assert.Equal(t, "2024-03", rep.MonthSeries[2].Month)
	assert.Equal(t, "2024-04", rep.MonthSeries[3].Month)
	assert.InDelta(t, 7.0, rep.MonthSeries[3].Total, 1e-9)
}

func TestAnalyzeMonthOfYearPattern(t *testing.T) {
	t.Parallel()

	rep := Analyze([]trade.Record{
		rec("2023-05-10 09:00", 3),
		rec("2024-05-11 09:00", 5), // same calendar month, different year
	})

	may := rep.MonthsOfYear[4]
	assert.Equal(t, 5, may.Month)
	assert.Equal(t, "May", may.Name)
	assert.Equal(t, 2, may.Trades)
	assert.InDelta(t, 8.0, may.Total, 1e-9)
}

func TestAnalyzeCountsSkipped(t *testing.T) {
	t.Parallel()

	rep := Analyze([]trade.Record{
		rec("2024-03-04 09:00", 1),
		{StrategyID: "s1", OpenTime: at("2024-03-04 10:00")}, // no result
	})

	assert.Equal(t, 1, rep.SkippedRecords)
}
