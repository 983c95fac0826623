package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robdata/tradestats/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for the analytics engine.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  tradestats config init --output tradestats.yaml
  tradestats config validate --file tradestats.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "tradestats.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.Save(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("Created default configuration: %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Configuration valid: %s\n", configValidatePath)
	fmt.Printf("  Point values: %d assets\n", len(cfg.PointValues))
	fmt.Printf("  Margins: %d assets\n", len(cfg.Margins))
	rc := cfg.RiskControl
	fmt.Printf("  Risk control: loss %.2f, target %.2f, max ops %d, per-strategy %v\n",
		rc.DailyLossLimit, rc.DailyProfitTarget, rc.MaxDailyOperations, rc.PerStrategy)
	return nil
}
