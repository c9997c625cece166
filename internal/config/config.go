// Package config defines the roster tool configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Loading layers defaults, an optional YAML file and ROSTER_ env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"

	"github.com/okian/roster/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// HistogramBins is the number of equal-width bins of the score histogram.
	HistogramBins int `koanf:"histogram_bins"`

	// Precision is the number of decimals printed in the text report.
	Precision int `koanf:"precision"`

	// PassedLabel and FailedLabel are the status literals of the roster.
	PassedLabel string `koanf:"passed_label"`
	FailedLabel string `koanf:"failed_label"`

	// MissingScoreFallback fills scores when a roster has none to average.
	MissingScoreFallback float64 `koanf:"missing_score_fallback"`

	// Sheet selects the worksheet of xlsx inputs; empty means the first one.
	Sheet string `koanf:"sheet"`

	// MetricsFile, when set, receives the Prometheus textfile dump at exit.
	MetricsFile string `koanf:"metrics_file"`
}

// Default configuration values.
const (
	defaultHistogramBins = 20
	defaultPrecision     = 2
	maxPrecision         = 10
)

// New creates a Config with defaults. Context is accepted first to satisfy the
// project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		HistogramBins:        defaultHistogramBins,
		Precision:            defaultPrecision,
		PassedLabel:          model.StatusPassed,
		FailedLabel:          model.StatusFailed,
		MissingScoreFallback: 0,
	}
}
