package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robdata/tradestats/aggregate"
	"github.com/robdata/tradestats/correlation"
	"github.com/robdata/tradestats/distribution"
	"github.com/robdata/tradestats/metrics"
	"github.com/robdata/tradestats/seasonal"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run an analysis over a trade collection",
	Long: `Analyze reads trades and prints one analysis as JSON.

Subcommands:
  metrics      - Performance summary (totals, win rate, profit factor)
  risk         - Drawdown, Sharpe, Sortino, Calmar, value at risk
  days         - Day classification and positive/negative day win rates
  assets       - Per-asset performance breakdown
  financial    - Point results converted to account currency
  equity       - Cumulative equity curve points
  daily        - Daily result totals
  seasonal     - Hour, weekday and month buckets
  distribution - Result distribution shape and normality
  correlation  - Cross-strategy correlation and combined portfolio

Example:
  tradestats analyze risk -i trades.json --strategies alpha,beta`,
}

var (
	finContracts float64
	finMargin    float64
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.AddCommand(&cobra.Command{
		Use:   "metrics",
		Short: "Performance summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			return writeJSON(metrics.Compute(recs))
		},
	})

	analyzeCmd.AddCommand(&cobra.Command{
		Use:   "risk",
		Short: "Risk metrics and drawdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			return writeJSON(metrics.ComputeRisk(recs))
		},
	})

	analyzeCmd.AddCommand(&cobra.Command{
		Use:   "days",
		Short: "Day classification statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			return writeJSON(metrics.ComputeDays(recs))
		},
	})

	analyzeCmd.AddCommand(&cobra.Command{
		Use:   "assets",
		Short: "Per-asset performance breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			return writeJSON(metrics.ComputeByAsset(recs))
		},
	})

	financialCmd := &cobra.Command{
		Use:   "financial",
		Short: "Convert point results to account currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return writeJSON(metrics.ComputeFinancial(cfg, recs, finContracts, finMargin))
		},
	}
	financialCmd.Flags().Float64Var(&finContracts, "contracts", 1, "contracts per trade when the record carries no quantity")
	financialCmd.Flags().Float64Var(&finMargin, "margin", 0, "total margin employed (0 estimates from the asset tables)")
	analyzeCmd.AddCommand(financialCmd)

	analyzeCmd.AddCommand(&cobra.Command{
		Use:   "equity",
		Short: "Cumulative equity curve points",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			return writeJSON(aggregate.EquityPoints(recs))
		},
	})

	analyzeCmd.AddCommand(&cobra.Command{
		Use:   "daily",
		Short: "Daily result totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			totals, skipped := aggregate.DailyTotals(recs)
			if skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d records without a result\n", skipped)
			}
			return writeJSON(totals)
		},
	})

	analyzeCmd.AddCommand(&cobra.Command{
		Use:   "seasonal",
		Short: "Hour, weekday and month performance buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			return writeJSON(seasonal.Analyze(recs))
		},
	})

	analyzeCmd.AddCommand(&cobra.Command{
		Use:   "distribution",
		Short: "Result distribution shape and normality",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			return writeJSON(distribution.Analyze(recs))
		},
	})

	analyzeCmd.AddCommand(&cobra.Command{
		Use:   "correlation",
		Short: "Cross-strategy correlation and combined portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadRecords()
			if err != nil {
				return err
			}
			return writeJSON(correlation.Analyze(recs))
		},
	})
}
