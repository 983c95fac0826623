// Package config holds the engine configuration: per-asset point values and
// margin tables plus default risk-control thresholds. What used to be ambient
// global state travels as an explicit object into the calculators that need
// it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAssetKey is the table entry used when an asset has no own row.
const DefaultAssetKey = "DEFAULT"

// Config is the complete engine configuration.
type Config struct {
	// PointValues maps asset symbol to account-currency value of one point
	// for one contract.
	PointValues map[string]float64 `json:"point_values" yaml:"point_values"`

	// Margins maps asset symbol to the margin requirement of one contract.
	Margins map[string]float64 `json:"margins" yaml:"margins"`

	RiskControl RiskControlDefaults `json:"risk_control" yaml:"risk_control"`
}

// RiskControlDefaults seed a simulator configuration when the caller does not
// provide explicit limits. Zero means unconstrained.
type RiskControlDefaults struct {
	DailyLossLimit     float64 `json:"daily_loss_limit" yaml:"daily_loss_limit"`
	DailyProfitTarget  float64 `json:"daily_profit_target" yaml:"daily_profit_target"`
	MaxDailyOperations int     `json:"max_daily_operations" yaml:"max_daily_operations"`
	PerStrategy        bool    `json:"per_strategy" yaml:"per_strategy"`
}

// Default returns a configuration with the common B3 mini-contract tables.
func Default() Config {
	return Config{
		PointValues: map[string]float64{
			"WIN":           0.20,
			"WDO":           10.0,
			DefaultAssetKey: 0.20,
		},
		Margins: map[string]float64{
			"WIN":           150.0,
			"WDO":           1500.0,
			DefaultAssetKey: 150.0,
		},
	}
}

// PointValue returns the point value for asset, falling back to the DEFAULT
// row. Symbols are matched by prefix so contract codes like "WINM25" resolve
// to their root "WIN".
func (c Config) PointValue(asset string) float64 {
	return lookup(c.PointValues, asset)
}

// Margin returns the margin requirement for asset with the same fallback
// rules as PointValue.
func (c Config) Margin(asset string) float64 {
	return lookup(c.Margins, asset)
}

func lookup(table map[string]float64, asset string) float64 {
	if v, ok := table[asset]; ok {
		return v
	}
	up := strings.ToUpper(asset)
	for root, v := range table {
		if root != DefaultAssetKey && strings.HasPrefix(up, root) {
			return v
		}
	}
	return table[DefaultAssetKey]
}

// Load reads a configuration file. The format follows the extension:
// .json is decoded as JSON, anything else as YAML.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration to path, as JSON when the extension is
// .json and as YAML otherwise.
func (c Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects negative table entries and negative default limits.
func (c Config) Validate() error {
	for asset, v := range c.PointValues {
		if v < 0 {
			return fmt.Errorf("point value for %s is negative", asset)
		}
	}
	for asset, v := range c.Margins {
		if v < 0 {
			return fmt.Errorf("margin for %s is negative", asset)
		}
	}
	rc := c.RiskControl
	if rc.DailyLossLimit < 0 || rc.DailyProfitTarget < 0 || rc.MaxDailyOperations < 0 {
		return fmt.Errorf("risk-control defaults must be non-negative")
	}
	return nil
}
