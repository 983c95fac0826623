package trade

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Filters narrow a record collection before it is handed to an analyzer.
//
// Recovery policy for malformed optional filters: ignore the filter, keep the
// full set, and log the reason. A bad filter must never abort the request.

// FilterByStrategies keeps records owned by any of the given strategy ids.
// An empty id list means no filtering.
func FilterByStrategies(recs []Record, ids ...string) []Record {
	if len(ids) == 0 {
		return recs
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if _, ok := want[r.StrategyID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// FilterByDateRange keeps records whose open time falls in [from, to].
// Zero bounds are open-ended.
func FilterByDateRange(recs []Record, from, to time.Time) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if r.OpenTime.IsZero() {
			continue
		}
		if !from.IsZero() && r.OpenTime.Before(from) {
			continue
		}
		if !to.IsZero() && r.OpenTime.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterByTimeOfDay keeps records opened between start and end ("HH:MM",
// inclusive on both ends). A malformed bound disables the filter.
func FilterByTimeOfDay(log *zap.Logger, recs []Record, start, end string) []Record {
	if log == nil {
		log = zap.NewNop()
	}
	if start == "" && end == "" {
		return recs
	}
	if start == "" || end == "" {
		log.Warn("ignoring one-sided time-of-day filter",
			zap.String("start", start), zap.String("end", end))
		return recs
	}

	lo, err := time.Parse("15:04", start)
	if err != nil {
		log.Warn("ignoring invalid time-of-day filter", zap.String("start", start), zap.Error(err))
		return recs
	}
	hi, err := time.Parse("15:04", end)
	if err != nil {
		log.Warn("ignoring invalid time-of-day filter", zap.String("end", end), zap.Error(err))
		return recs
	}

	loMin := lo.Hour()*60 + lo.Minute()
	hiMin := hi.Hour()*60 + hi.Minute()

	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if r.OpenTime.IsZero() {
			continue
		}
		m := r.OpenTime.Hour()*60 + r.OpenTime.Minute()
		if m >= loMin && m <= hiMin {
			out = append(out, r)
		}
	}
	return out
}

// FilterByWeekdays keeps records opened on the given ISO weekdays, expressed
// as a comma-separated list like "1,2,5" (1=Monday .. 7=Sunday). A malformed
// list or an out-of-range day disables the filter.
func FilterByWeekdays(log *zap.Logger, recs []Record, spec string) []Record {
	if log == nil {
		log = zap.NewNop()
	}
	if spec == "" {
		return recs
	}

	want := make(map[int]struct{})
	for _, part := range strings.Split(spec, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 1 || d > 7 {
			log.Warn("ignoring invalid weekday filter", zap.String("spec", spec))
			return recs
		}
		want[d] = struct{}{}
	}

	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if r.OpenTime.IsZero() {
			continue
		}
		if _, ok := want[ISOWeekday(r.OpenTime)]; ok {
			out = append(out, r)
		}
	}
	return out
}
