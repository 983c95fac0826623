// Package seasonal breaks performance out by calendar bucket: month,
// hour-of-day, and ISO weekday.
//
// Outputs have fixed cardinality: all 24 hours, all 7 weekdays and all 12
// calendar months get a bucket even when no trade fell into it. Charting
// callers rely on complete axes.
package seasonal

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/robdata/tradestats/aggregate"
	"github.com/robdata/tradestats/trade"
)

// Stats are the per-bucket metrics. StdDev is the sample standard deviation,
// 0 when the bucket holds fewer than 2 trades.
type Stats struct {
	Trades  int     `json:"trades"`
	Total   float64 `json:"total"`
	Mean    float64 `json:"mean"`
	WinRate float64 `json:"win_rate"`
	StdDev  float64 `json:"std_dev"`
}

// HourBucket aggregates the trades opened during one hour of the day.
type HourBucket struct {
	Hour int `json:"hour"` // 0..23
	Stats
}

// WeekdayBucket aggregates the trades opened on one ISO weekday.
type WeekdayBucket struct {
	Weekday int    `json:"weekday"` // 1=Monday .. 7=Sunday
	Name    string `json:"name"`
	Stats
}

// MonthOfYearBucket aggregates trades by calendar month across years.
type MonthOfYearBucket struct {
	Month int    `json:"month"` // 1..12
	Name  string `json:"name"`
	Stats
}

// MonthBucket is one entry of the chronological month series.
type MonthBucket struct {
	Month string `json:"month"` // "2006-01"
	Stats
}

// Report is the full seasonal breakdown.
type Report struct {
	Hours        []HourBucket        `json:"hours"`
	Weekdays     []WeekdayBucket     `json:"weekdays"`
	MonthsOfYear []MonthOfYearBucket `json:"months_of_year"`

	// MonthSeries covers the contiguous range from the first to the last
	// traded month, empty months included.
	MonthSeries []MonthBucket `json:"month_series"`

	SkippedRecords int `json:"skipped_records"`
}

// Analyze buckets the records along every calendar axis.
func Analyze(recs []trade.Record) Report {
	valid, skipped := aggregate.Valid(recs)

	rep := Report{SkippedRecords: skipped}

	hours := make([][]float64, 24)
	weekdays := make([][]float64, 8) // 1-indexed
	months := make([][]float64, 13)  // 1-indexed
	series := make(map[string][]float64)

	for _, r := range valid {
		v := r.Points()
		hours[r.OpenTime.Hour()] = append(hours[r.OpenTime.Hour()], v)
		wd := trade.ISOWeekday(r.OpenTime)
		weekdays[wd] = append(weekdays[wd], v)
		m := int(r.OpenTime.Month())
		months[m] = append(months[m], v)
		key := r.OpenTime.Format("2006-01")
		series[key] = append(series[key], v)
	}

	rep.Hours = make([]HourBucket, 24)
	for h := 0; h < 24; h++ {
		rep.Hours[h] = HourBucket{Hour: h, Stats: computeStats(hours[h])}
	}

	rep.Weekdays = make([]WeekdayBucket, 7)
	for d := 1; d <= 7; d++ {
		rep.Weekdays[d-1] = WeekdayBucket{
			Weekday: d,
			Name:    time.Weekday(d % 7).String(),
			Stats:   computeStats(weekdays[d]),
		}
	}

	rep.MonthsOfYear = make([]MonthOfYearBucket, 12)
	for m := 1; m <= 12; m++ {
		rep.MonthsOfYear[m-1] = MonthOfYearBucket{
			Month: m,
			Name:  time.Month(m).String(),
			Stats: computeStats(months[m]),
		}
	}

	rep.MonthSeries = monthSeries(valid, series)
	return rep
}

func monthSeries(valid []trade.Record, series map[string][]float64) []MonthBucket {
	if len(valid) == 0 {
		return nil
	}

	first := valid[0].OpenTime
	last := valid[len(valid)-1].OpenTime

	var out []MonthBucket
	cur := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, first.Location())
	end := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, last.Location())
	for !cur.After(end) {
		key := cur.Format("2006-01")
		out = append(out, MonthBucket{Month: key, Stats: computeStats(series[key])})
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

func computeStats(values []float64) Stats {
	var s Stats
	s.Trades = len(values)
	if s.Trades == 0 {
		return s
	}

	wins := 0
	for _, v := range values {
		s.Total += v
		if v > 0 {
			wins++
		}
	}
	s.Mean = s.Total / float64(s.Trades)
	s.WinRate = float64(wins) / float64(s.Trades) * 100
	if s.Trades >= 2 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s
}
