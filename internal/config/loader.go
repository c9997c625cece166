package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix = "ROSTER_"
	EnvFile   = "ROSTER_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if ROSTER_CONFIG is set
//  3. env (prefix ROSTER_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// ROSTER_HISTOGRAM_BINS -> histogram_bins; underscores are kept to match
	// the flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot drive a run.
func (c *Config) Validate() error {
	switch {
	case c.HistogramBins <= 0:
		return fmt.Errorf("%w: histogram_bins must be positive, got %d", ErrInvalidConfig, c.HistogramBins)
	case c.Precision < 0 || c.Precision > maxPrecision:
		return fmt.Errorf("%w: precision must be within 0..%d, got %d", ErrInvalidConfig, maxPrecision, c.Precision)
	case strings.TrimSpace(c.PassedLabel) == "" || strings.TrimSpace(c.FailedLabel) == "":
		return fmt.Errorf("%w: status labels must not be empty", ErrInvalidConfig)
	case c.PassedLabel == c.FailedLabel:
		return fmt.Errorf("%w: passed_label and failed_label must differ", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
