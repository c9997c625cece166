package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/roster/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.HistogramBins, convey.ShouldEqual, 20)
				convey.So(cfg.Precision, convey.ShouldEqual, 2)
				convey.So(cfg.PassedLabel, convey.ShouldEqual, "Passed")
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ROSTER_HISTOGRAM_BINS", "10")
			_ = os.Setenv("ROSTER_PRECISION", "3")
			_ = os.Setenv("ROSTER_PASSED_LABEL", "Сдал")
			_ = os.Setenv("ROSTER_FAILED_LABEL", "Не сдал")
			_ = os.Setenv("ROSTER_MISSING_SCORE_FALLBACK", "12.5")
			_ = os.Setenv("ROSTER_SHEET", "Grades")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.HistogramBins, convey.ShouldEqual, 10)
				convey.So(cfg.Precision, convey.ShouldEqual, 3)
				convey.So(cfg.PassedLabel, convey.ShouldEqual, "Сдал")
				convey.So(cfg.FailedLabel, convey.ShouldEqual, "Не сдал")
				convey.So(cfg.MissingScoreFallback, convey.ShouldEqual, 12.5)
				convey.So(cfg.Sheet, convey.ShouldEqual, "Grades")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
log_level: debug
log_format: json
histogram_bins: 15
precision: 1
metrics_file: /tmp/roster.prom
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ROSTER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.HistogramBins, convey.ShouldEqual, 15)
				convey.So(cfg.Precision, convey.ShouldEqual, 1)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/roster.prom")
				convey.So(cfg.PassedLabel, convey.ShouldEqual, "Passed") // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
histogram_bins: 15
precision: 1
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ROSTER_CONFIG", tmpFile)
			_ = os.Setenv("ROSTER_HISTOGRAM_BINS", "30") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.HistogramBins, convey.ShouldEqual, 30) // Overridden by env
				convey.So(cfg.Precision, convey.ShouldEqual, 1)      // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ROSTER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ROSTER_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ROSTER_HISTOGRAM_BINS", "many")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with zero bins", func() {
			_ = os.Setenv("ROSTER_HISTOGRAM_BINS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "histogram_bins")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with YAML file containing comments", func() {
			yamlContent := `
# This is a comment
precision: 4  # Inline comment
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ROSTER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should parse YAML with comments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Precision, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with Russian status labels", func() {
			yamlContent := `
passed_label: Сдал
failed_label: Не сдал
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ROSTER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the labels should be taken verbatim", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PassedLabel, convey.ShouldEqual, "Сдал")
				convey.So(cfg.FailedLabel, convey.ShouldEqual, "Не сдал")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"ROSTER_CONFIG",
		"ROSTER_LOG_LEVEL",
		"ROSTER_LOG_FORMAT",
		"ROSTER_HISTOGRAM_BINS",
		"ROSTER_PRECISION",
		"ROSTER_PASSED_LABEL",
		"ROSTER_FAILED_LABEL",
		"ROSTER_MISSING_SCORE_FALLBACK",
		"ROSTER_SHEET",
		"ROSTER_METRICS_FILE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "roster-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
