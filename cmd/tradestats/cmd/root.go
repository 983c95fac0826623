package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robdata/tradestats/config"
	"github.com/robdata/tradestats/trade"
)

var rootCmd = &cobra.Command{
	Use:   "tradestats",
	Short: "Performance and risk analytics for trade records",
	Long: `Tradestats analyzes collections of closed trades.

It provides tools for:
  - Performance summaries, win/loss statistics and equity curves
  - Risk metrics: drawdown, Sharpe, Sortino, Calmar, value at risk
  - Day-level risk-control simulation (loss limits, profit targets, op caps)
  - Seasonal, distribution and cross-strategy correlation analysis
  - Converting point results to account currency per asset

Trades are read as a JSON array from a file or stdin.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	inputPath  string
	configPath string
	quiet      bool

	filterStrategies []string
	filterFrom       string
	filterTo         string
	filterTimeStart  string
	filterTimeEnd    string
	filterWeekdays   string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&inputPath, "input", "i", "-", "trade JSON file to read (\"-\" for stdin)")
	pf.StringVarP(&configPath, "config", "c", "", "config file with asset tables and risk-control defaults")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")

	pf.StringSliceVar(&filterStrategies, "strategies", nil, "keep only these strategy IDs")
	pf.StringVar(&filterFrom, "from", "", "keep trades opened on or after this date (2006-01-02)")
	pf.StringVar(&filterTo, "to", "", "keep trades opened on or before this date (2006-01-02)")
	pf.StringVar(&filterTimeStart, "time-start", "", "keep trades opened at or after this time of day (15:04)")
	pf.StringVar(&filterTimeEnd, "time-end", "", "keep trades opened at or before this time of day (15:04)")
	pf.StringVar(&filterWeekdays, "weekdays", "", "keep trades on these ISO weekdays, e.g. \"1,2,3\"")
}

func newLogger() *zap.Logger {
	if quiet {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// loadRecords reads the trade collection and applies the shared filter flags.
func loadRecords() ([]trade.Record, error) {
	var r io.Reader
	if inputPath == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var recs []trade.Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode trades: %w", err)
	}

	log := newLogger()
	defer log.Sync()

	if len(filterStrategies) > 0 {
		recs = trade.FilterByStrategies(recs, filterStrategies...)
	}
	from, to := parseDateRange(log, filterFrom, filterTo)
	if !from.IsZero() || !to.IsZero() {
		recs = trade.FilterByDateRange(recs, from, to)
	}
	if filterTimeStart != "" || filterTimeEnd != "" {
		recs = trade.FilterByTimeOfDay(log, recs, filterTimeStart, filterTimeEnd)
	}
	if filterWeekdays != "" {
		recs = trade.FilterByWeekdays(log, recs, filterWeekdays)
	}
	return recs, nil
}

// parseDateRange follows the filter recovery policy: a malformed bound is
// logged and dropped, it does not abort the command.
func parseDateRange(log *zap.Logger, fromStr, toStr string) (from, to time.Time) {
	if log == nil {
		log = zap.NewNop()
	}
	if fromStr != "" {
		d, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			log.Warn("ignoring invalid date filter", zap.String("from", fromStr), zap.Error(err))
		} else {
			from = d
		}
	}
	if toStr != "" {
		d, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			log.Warn("ignoring invalid date filter", zap.String("to", toStr), zap.Error(err))
		} else {
			// Inclusive day bound.
			to = d.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return from, to
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
