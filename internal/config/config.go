// Package config loads the application configuration. Precedence is
// environment variables over the optional config.yaml over built-in
// defaults; the engine's business constants always travel through here,
// never through package-level state.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"wbprofit/internal/reconcile"
)

// Config represents the complete application configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
}

// EngineConfig carries the reconciliation business constants.
type EngineConfig struct {
	PackagingCostPerUnit float64 `yaml:"packaging_cost_per_unit" envconfig:"PACKAGING_COST_PER_UNIT" validate:"gte=0"`
	PartnerProfitShare   float64 `yaml:"partner_profit_share" envconfig:"PARTNER_PROFIT_SHARE" validate:"gte=0,lte=1"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// OutputConfig contains report output configuration.
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			PackagingCostPerUnit: reconcile.DefaultPackagingCostPerUnit,
			PartnerProfitShare:   reconcile.DefaultPartnerProfitShare,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/wbprofit.log",
		},
		Output: OutputConfig{
			Dir: "processed",
		},
	}
}

// Load builds the configuration: defaults, then the optional config file,
// then WBPROFIT_* environment variables, then validation.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("WBPROFIT", cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ReconcileConfig converts the loaded constants into the engine's call-time
// configuration value.
func (c *Config) ReconcileConfig() reconcile.Config {
	return reconcile.Config{
		PackagingCostPerUnit: c.Engine.PackagingCostPerUnit,
		PartnerProfitShare:   c.Engine.PartnerProfitShare,
	}
}

// configFilePath returns the first config file found in the known locations,
// or "" when only defaults and env vars apply.
func configFilePath() string {
	for _, location := range []string{"config.yaml", "configs/config.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}
