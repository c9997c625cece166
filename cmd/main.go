package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/okian/roster/internal/adapters/sheet"
	app "github.com/okian/roster/internal/app"
	"github.com/okian/roster/internal/config"
	"github.com/okian/roster/internal/domain/analyzer"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

var errMissingInput = errors.New("missing required -in flag")

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		_, _ = color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error [%s]: %v\n", app.ErrorKind(err), err)
		stop()
		os.Exit(1)
	}
}

// run executes one roster analysis. The report goes to stdout unless -out is
// given; logs and status lines go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("roster", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		in       = flags.String("in", "", "Roster file to analyze (.xlsx or .csv)")
		minScore = flags.String("min", "", "Lowest score to keep (inclusive); empty means unbounded")
		maxScore = flags.String("max", "", "Highest score to keep (inclusive); empty means unbounded")
		out      = flags.String("out", "", "Write the text report to this file instead of stdout")
		tableOut = flags.String("table-out", "", "Write the filtered, normalized roster to this .xlsx or .csv file")
		plotOut  = flags.String("plot", "", "Write the score histogram to this PNG file")
		sheetArg = flags.String("sheet", "", "Worksheet to read from xlsx inputs (default: first sheet)")
		quiet    = flags.Bool("quiet", false, "Only log errors and skip status lines")
	)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *in == "" {
		flags.Usage()
		return errMissingInput
	}

	// A .env file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if *sheetArg != "" {
		cfg.Sheet = *sheetArg
	}

	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	if *quiet {
		cfg.LogLevel = "error"
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.MetricsFile != "" {
		defer func() {
			if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
				logger.Get().Error(ctx, "metrics dump failed", logger.Error(err))
			}
		}()
	}

	svc := app.New(
		app.WithLogger(logger.Named("roster")),
		app.WithAnalyzer(analyzer.New(
			analyzer.WithStatusLabels(cfg.PassedLabel, cfg.FailedLabel),
			analyzer.WithMissingScoreFallback(cfg.MissingScoreFallback),
		)),
		app.WithSheetOptions(sheet.WithSheet(cfg.Sheet)),
		app.WithHistogramBins(cfg.HistogramBins),
		app.WithPrecision(cfg.Precision),
	)

	session, err := svc.Load(ctx, *in)
	if err != nil {
		return err
	}
	res, err := session.Apply(ctx, *minScore, *maxScore)
	if err != nil {
		return err
	}

	status := func(format string, a ...any) {
		if !*quiet {
			_, _ = color.New(color.FgGreen).Fprintf(stderr, format+"\n", a...)
		}
	}
	status("analyzed %d records from %s (run %s)", res.Table.Len(), res.Source, res.RunID)

	if *out != "" {
		if err := session.ExportReport(ctx, *out, res); err != nil {
			return err
		}
		status("report written to %s", *out)
	} else if err := session.RenderReport(ctx, stdout, res); err != nil {
		return err
	}

	if *tableOut != "" {
		if err := session.ExportTable(ctx, *tableOut, res); err != nil {
			return err
		}
		status("table written to %s", *tableOut)
	}

	if *plotOut != "" {
		if err := session.Plot(ctx, *plotOut, res); err != nil {
			return err
		}
		status("histogram written to %s", *plotOut)
	}

	return nil
}
