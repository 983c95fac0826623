package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robdata/tradestats/riskcontrol"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay trades under day-level risk-control limits",
	Long: `Simulate replays each trading day in chronological order and stops the
day when a limit is hit: daily loss limit, daily profit target or a cap on
operations per day. A limit of zero means no limit.

Flags override the risk-control defaults from the config file.

Example:
  tradestats simulate -i trades.json --loss-limit 100 --max-ops 3`,
	RunE: runSimulate,
}

var (
	simLossLimit    float64
	simProfitTarget float64
	simMaxOps       int
	simPerStrategy  bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Float64Var(&simLossLimit, "loss-limit", 0, "stop the day once running result reaches -limit (0 = none)")
	simulateCmd.Flags().Float64Var(&simProfitTarget, "profit-target", 0, "stop the day once running result reaches target (0 = none)")
	simulateCmd.Flags().IntVar(&simMaxOps, "max-ops", 0, "maximum operations per day (0 = none)")
	simulateCmd.Flags().BoolVar(&simPerStrategy, "per-strategy", false, "apply limits per strategy instead of across all trades")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	recs, err := loadRecords()
	if err != nil {
		return err
	}
	appCfg, err := loadConfig()
	if err != nil {
		return err
	}

	simCfg := riskcontrol.FromDefaults(appCfg.RiskControl)
	if cmd.Flags().Changed("loss-limit") {
		simCfg.DailyLossLimit = simLossLimit
	}
	if cmd.Flags().Changed("profit-target") {
		simCfg.DailyProfitTarget = simProfitTarget
	}
	if cmd.Flags().Changed("max-ops") {
		simCfg.MaxDailyOperations = simMaxOps
	}
	if cmd.Flags().Changed("per-strategy") {
		simCfg.PerStrategy = simPerStrategy
	}

	result, err := riskcontrol.Simulate(recs, simCfg)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	return writeJSON(result)
}
