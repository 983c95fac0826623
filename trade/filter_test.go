package trade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sampleWeek() []Record {
	// Mon 2024-03-04 .. Sun 2024-03-10, one trade per day at 10:00,
	// plus one early and one late trade on Monday.
	return []Record{
		{StrategyID: "s1", OpenTime: at("2024-03-04", "09:00"), Result: res(1)},
		{StrategyID: "s1", OpenTime: at("2024-03-04", "10:00"), Result: res(2)},
		{StrategyID: "s1", OpenTime: at("2024-03-04", "17:30"), Result: res(3)},
		{StrategyID: "s2", OpenTime: at("2024-03-05", "10:00"), Result: res(4)},
		{StrategyID: "s2", OpenTime: at("2024-03-06", "10:00"), Result: res(5)},
		{StrategyID: "s1", OpenTime: at("2024-03-07", "10:00"), Result: res(6)},
		{StrategyID: "s1", OpenTime: at("2024-03-08", "10:00"), Result: res(7)},
		{StrategyID: "s2", OpenTime: at("2024-03-09", "10:00"), Result: res(8)},
		{StrategyID: "s2", OpenTime: at("2024-03-10", "10:00"), Result: res(9)},
	}
}

func TestFilterByStrategies(t *testing.T) {
	t.Parallel()

	recs := sampleWeek()

	assert.Len(t, FilterByStrategies(recs, "s2"), 4)
	assert.Len(t, FilterByStrategies(recs, "s1", "s2"), 9)
	assert.Len(t, FilterByStrategies(recs), 9) // no ids = no filter
	assert.Empty(t, FilterByStrategies(recs, "nope"))
}

func TestFilterByDateRange(t *testing.T) {
	t.Parallel()

	recs := sampleWeek()

	got := FilterByDateRange(recs, at("2024-03-05", "00:00"), at("2024-03-07", "23:59"))
	assert.Len(t, got, 3)

	// open-ended bounds
	assert.Len(t, FilterByDateRange(recs, at("2024-03-09", "00:00"), time.Time{}), 2)
	assert.Len(t, FilterByDateRange(recs, time.Time{}, time.Time{}), 9)
}

func TestFilterByTimeOfDay(t *testing.T) {
	t.Parallel()

	recs := sampleWeek()

	got := FilterByTimeOfDay(nil, recs, "09:30", "16:00")
	assert.Len(t, got, 7) // drops Monday 09:00 and 17:30

	// inclusive bounds
	got = FilterByTimeOfDay(nil, recs, "09:00", "09:00")
	assert.Len(t, got, 1)
}

func TestFilterByTimeOfDayInvalidIsIgnored(t *testing.T) {
	t.Parallel()

	recs := sampleWeek()

	got := FilterByTimeOfDay(zap.NewNop(), recs, "9h30", "16:00")
	assert.Len(t, got, len(recs))

	got = FilterByTimeOfDay(nil, recs, "", "16:00")
	assert.Len(t, got, len(recs))
}

func TestFilterByTimeOfDayOneSidedWarns(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	recs := sampleWeek()

	got := FilterByTimeOfDay(zap.New(core), recs, "", "16:00")
	assert.Len(t, got, len(recs))
	assert.Equal(t, 1, logs.Len())

	got = FilterByTimeOfDay(zap.New(core), recs, "09:30", "")
	assert.Len(t, got, len(recs))
	assert.Equal(t, 2, logs.Len())

	// both bounds empty means no filter was requested, nothing to warn about
	got = FilterByTimeOfDay(zap.New(core), recs, "", "")
	assert.Len(t, got, len(recs))
	assert.Equal(t, 2, logs.Len())
}

func TestFilterByWeekdays(t *testing.T) {
	t.Parallel()

	recs := sampleWeek()

	got := FilterByWeekdays(nil, recs, "1")
	assert.Len(t, got, 3) // three Monday trades

	got = FilterByWeekdays(nil, recs, "6,7")
	assert.Len(t, got, 2)

	// malformed specs disable the filter
	assert.Len(t, FilterByWeekdays(zap.NewNop(), recs, "1,8"), len(recs))
	assert.Len(t, FilterByWeekdays(zap.NewNop(), recs, "mon"), len(recs))
	assert.Len(t, FilterByWeekdays(nil, recs, ""), len(recs))
}
