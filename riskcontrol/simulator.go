// Package riskcontrol replays trades in chronological order applying daily
// cutoff rules: a loss limit, a profit target, and a maximum operation count.
//
// The simulator is a state machine run once per day, once per scope. A scope
// is a single strategy when per-strategy control is requested, or the union
// of all supplied strategies otherwise.
package riskcontrol

import (
	"errors"
	"fmt"
	"sort"

	"github.com/robdata/tradestats/aggregate"
	"github.com/robdata/tradestats/config"
	"github.com/robdata/tradestats/pkg/id"
	"github.com/robdata/tradestats/trade"
)

// ErrInvalidParameter marks a rejected control configuration.
var ErrInvalidParameter = errors.New("invalid risk-control parameter")

// runIDs is shared across simulations so same-millisecond runs keep
// time-sortable IDs.
var runIDs = id.NewGenerator()

// State is the terminal state of one simulated day.
type State string

const (
	Accumulating  State = "ACCUMULATING"
	StoppedLoss   State = "STOPPED_LOSS"
	StoppedProfit State = "STOPPED_PROFIT"
	StoppedMaxOps State = "STOPPED_MAX_OPS"
	DayComplete   State = "DAY_COMPLETE"
)

// AggregateScope is the scope label used when all strategies are controlled
// together.
const AggregateScope = "ALL"

// Config holds the daily cutoff parameters. Zero means unconstrained for
// that dimension, following the engine-wide "zero means none" convention.
type Config struct {
	DailyLossLimit     float64 `json:"daily_loss_limit"`
	DailyProfitTarget  float64 `json:"daily_profit_target"`
	MaxDailyOperations int     `json:"max_daily_operations"`

	// PerStrategy runs an independent state machine per strategy instead of
	// one over the union of all trades.
	PerStrategy bool `json:"per_strategy"`
}

// FromDefaults lifts configured default thresholds into a simulator config.
func FromDefaults(d config.RiskControlDefaults) Config {
	return Config{
		DailyLossLimit:     d.DailyLossLimit,
		DailyProfitTarget:  d.DailyProfitTarget,
		MaxDailyOperations: d.MaxDailyOperations,
		PerStrategy:        d.PerStrategy,
	}
}

// Validate rejects negative limits. The simulator itself trusts its input;
// this is the boundary check callers must pass first.
func (c Config) Validate() error {
	if c.DailyLossLimit < 0 {
		return fmt.Errorf("%w: daily loss limit %v is negative", ErrInvalidParameter, c.DailyLossLimit)
	}
	if c.DailyProfitTarget < 0 {
		return fmt.Errorf("%w: daily profit target %v is negative", ErrInvalidParameter, c.DailyProfitTarget)
	}
	if c.MaxDailyOperations < 0 {
		return fmt.Errorf("%w: max daily operations %d is negative", ErrInvalidParameter, c.MaxDailyOperations)
	}
	return nil
}

// Unconstrained reports whether no cutoff dimension is active.
func (c Config) Unconstrained() bool {
	return c.DailyLossLimit == 0 && c.DailyProfitTarget == 0 && c.MaxDailyOperations == 0
}

// DayResult is the outcome of one day within one scope.
type DayResult struct {
	Date  string `json:"date"`
	Scope string `json:"scope"`
	State State  `json:"state"`

	OriginalTotal   float64 `json:"original_total"`
	ControlledTotal float64 `json:"controlled_total"`

	TradesAvailable int `json:"trades_available"`
	TradesExecuted  int `json:"trades_executed"`
}

// Result is the full simulation outcome.
type Result struct {
	RunID  string `json:"run_id"`
	Config Config `json:"config"`

	Days []DayResult `json:"days"`

	TotalOriginal   float64 `json:"total_original"`
	TotalControlled float64 `json:"total_controlled"`
	Difference      float64 `json:"difference"`

	DaysStoppedLoss   int `json:"days_stopped_loss"`
	DaysStoppedProfit int `json:"days_stopped_profit"`
	DaysStoppedMaxOps int `json:"days_stopped_max_ops"`

	// Executed holds the trades actually executed under control, in
	// chronological order per scope. Downstream re-analysis of the
	// controlled scenario (Sharpe on the controlled set, etc.) starts here.
	Executed []trade.Record `json:"-"`
}

// Simulate replays the records under cfg. Records without an open time or
// result never reach the state machine; a day with zero valid trades
// produces no DayResult.
func Simulate(recs []trade.Record, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{RunID: runIDs.Next(), Config: cfg}

	scopes := map[string][]trade.Record{AggregateScope: recs}
	if cfg.PerStrategy {
		scopes, _ = aggregate.ByStrategy(recs)
	}

	scopeKeys := make([]string, 0, len(scopes))
	for k := range scopes {
		scopeKeys = append(scopeKeys, k)
	}
	sort.Strings(scopeKeys)

	for _, scope := range scopeKeys {
		days, _ := aggregate.ByDay(scopes[scope])

		dates := make([]string, 0, len(days))
		for d := range days {
			dates = append(dates, d)
		}
		sort.Strings(dates)

		for _, date := range dates {
			day, executed := runDay(scope, date, days[date], cfg)
			res.Days = append(res.Days, day)
			res.Executed = append(res.Executed, executed...)

			res.TotalOriginal += day.OriginalTotal
			res.TotalControlled += day.ControlledTotal
			switch day.State {
			case StoppedLoss:
				res.DaysStoppedLoss++
			case StoppedProfit:
				res.DaysStoppedProfit++
			case StoppedMaxOps:
				res.DaysStoppedMaxOps++
			}
		}
	}

	res.Difference = res.TotalControlled - res.TotalOriginal
	return res, nil
}

// runDay executes the per-day state machine. trades arrive valid and sorted
// by open time.
func runDay(scope, date string, trades []trade.Record, cfg Config) (DayResult, []trade.Record) {
	day := DayResult{
		Date:            date,
		Scope:           scope,
		State:           Accumulating,
		TradesAvailable: len(trades),
	}

	// No active cutoff: the day replays unchanged.
	if cfg.Unconstrained() {
		for _, t := range trades {
			day.OriginalTotal += t.Points()
		}
		day.ControlledTotal = day.OriginalTotal
		day.TradesExecuted = len(trades)
		day.State = DayComplete
		return day, trades
	}

	var executed []trade.Record
	running := 0.0
	skippedMaxOps := 0

	for _, t := range trades {
		day.OriginalTotal += t.Points()

		if day.State != Accumulating {
			continue // stopped earlier; remaining trades only feed OriginalTotal
		}

		// A trade beyond the operation cap is skipped, not executed, and the
		// stop conditions are not re-checked for it.
		if cfg.MaxDailyOperations > 0 && day.TradesExecuted >= cfg.MaxDailyOperations {
			skippedMaxOps++
			continue
		}

		running += t.Points()
		day.TradesExecuted++
		executed = append(executed, t)

		if cfg.DailyLossLimit > 0 && running <= -cfg.DailyLossLimit {
			day.State = StoppedLoss
		} else if cfg.DailyProfitTarget > 0 && running >= cfg.DailyProfitTarget {
			day.State = StoppedProfit
		}
	}

	day.ControlledTotal = running
	if day.State == Accumulating {
		if skippedMaxOps > 0 {
			day.State = StoppedMaxOps
		} else {
			day.State = DayComplete
		}
	}
	return day, executed
}
