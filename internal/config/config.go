// Package config loads CLI configuration from defaults, an optional YAML
// file, and LICORPLOT_-prefixed environment variables, in that order of
// precedence (later wins). The library entry point takes everything
// through its Options struct; only the command-line tool reads config.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is the environment variable prefix, e.g. LICORPLOT_PLOT_PALETTE.
const envPrefix = "licorplot"

// Config is the full CLI configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Plot    PlotConfig    `yaml:"plot" envconfig:"PLOT"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"` // text or json
	Output string `yaml:"output" envconfig:"OUTPUT"` // stdout, file, or both
	Path   string `yaml:"path" envconfig:"PATH"`     // log file path when output includes file
}

// DataConfig locates the spreadsheet exports.
type DataConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR"`
}

// PlotConfig holds rendering defaults the flags can override.
type PlotConfig struct {
	Palette string  `yaml:"palette" envconfig:"PALETTE"`
	Output  string  `yaml:"output" envconfig:"OUTPUT"`
	Width   float64 `yaml:"width" envconfig:"WIDTH"`   // inches
	Height  float64 `yaml:"height" envconfig:"HEIGHT"` // inches
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
			Path:   "licorplot.log",
		},
		Data: DataConfig{Dir: "."},
		Plot: PlotConfig{
			Palette: "Isfahan1",
			Output:  "licorplot.png",
			Width:   7,
			Height:  5,
		},
	}
}

// Load builds the configuration. path names an optional YAML file; an
// empty path skips the file layer entirely, a named file that is missing
// or malformed is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// Env overrides only touch fields whose variable is actually set.
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("logging.output must be stdout, file, or both, got %q", c.Logging.Output)
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return fmt.Errorf("plot dimensions must be positive, got %gx%g", c.Plot.Width, c.Plot.Height)
	}
	return nil
}
