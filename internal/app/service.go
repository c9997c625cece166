// Package service wires roster import, analysis and export for one run of
// the command line tool.
package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/okian/roster/internal/adapters/plot"
	"github.com/okian/roster/internal/adapters/report"
	"github.com/okian/roster/internal/adapters/sheet"
	"github.com/okian/roster/internal/domain/analyzer"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
)

// Pipeline stages used as metric labels.
const (
	stageLoad    = "load"
	stageFilter  = "filter"
	stageAnalyze = "analyze"
	stageExport  = "export"
)

// Service loads rosters and produces reports. It holds only configuration.
type Service struct {
	analyzer  *analyzer.Analyzer
	sheetOpts []sheet.Option
	bins      int
	precision int

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAnalyzer replaces the default analyzer.
func WithAnalyzer(a *analyzer.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithSheetOptions sets the options passed to every sheet import and export.
func WithSheetOptions(opts ...sheet.Option) Option {
	return func(s *Service) {
		s.sheetOpts = append(s.sheetOpts, opts...)
	}
}

// WithHistogramBins sets the number of histogram bins.
func WithHistogramBins(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.bins = n
		}
	}
}

// WithPrecision sets the number of decimals printed in reports.
func WithPrecision(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.precision = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		analyzer:  analyzer.New(),
		bins:      20,
		precision: 2,
		logger:    nil, // resolved from the global logger on first use
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) log() logger.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.Get()
}

// Session keeps the roster as it was imported. Every Apply starts from this
// original table, never from a previous result.
type Session struct {
	svc      *Service
	source   string
	original model.Table
}

// Result is the outcome of one filter and analysis pass.
type Result struct {
	RunID  string
	Source string

	// Min and Max are the bounds the table was filtered with.
	Min float64
	Max float64

	// FilledScores and FilledStatuses count the cells Normalize replaced.
	FilledScores   int
	FilledStatuses int

	Table  model.Table
	Report analyzer.StatisticsReport
}

// Load imports the roster at path and checks it carries the required columns.
func (s *Service) Load(ctx context.Context, path string) (*Session, error) {
	start := time.Now()

	t, err := sheet.Load(ctx, path, s.sheetOpts...)
	if err != nil {
		return nil, s.fail(ctx, stageLoad, fmt.Errorf("load %s: %w", path, err))
	}
	metrics.RecordRecordsLoaded(t.Len())
	metrics.RecordLoadLatency(float64(time.Since(start).Microseconds()) / 1000)

	if _, err := s.analyzer.Normalize(t); err != nil {
		return nil, s.fail(ctx, stageLoad, fmt.Errorf("load %s: %w", path, err))
	}

	scores, statuses := analyzer.MissingCounts(t)
	s.log().Info(ctx, "roster loaded",
		logger.String("path", path),
		logger.Int("records", t.Len()),
		logger.Int("missingScores", scores),
		logger.Int("missingStatuses", statuses),
	)

	return &Session{svc: s, source: path, original: t}, nil
}

// Source returns the path the session was loaded from.
func (ss *Session) Source() string { return ss.source }

// Original returns a copy of the table as it was imported.
func (ss *Session) Original() model.Table { return ss.original.Clone() }

// Apply filters the original table by the textual bounds, normalizes the
// subset and analyzes it. Empty bounds leave that side open.
func (ss *Session) Apply(ctx context.Context, minText, maxText string) (Result, error) {
	s := ss.svc
	if err := ctx.Err(); err != nil {
		return Result{}, s.fail(ctx, stageFilter, err)
	}

	min, max, err := analyzer.ParseBounds(minText, maxText)
	if err != nil {
		return Result{}, s.fail(ctx, stageFilter, err)
	}

	filtered := s.analyzer.FilterByRange(ss.original, min, max)
	metrics.RecordFilter(filtered.Len())
	s.log().Debug(ctx, "filter applied",
		logger.Float64("min", min),
		logger.Float64("max", max),
		logger.Int("kept", filtered.Len()),
	)

	start := time.Now()
	scores, statuses := analyzer.MissingCounts(filtered)
	normalized, err := s.analyzer.Normalize(filtered)
	if err != nil {
		return Result{}, s.fail(ctx, stageAnalyze, err)
	}
	metrics.RecordMissingFilled(model.ColumnScore, scores)
	metrics.RecordMissingFilled(model.ColumnStatus, statuses)

	rep, err := s.analyzer.Analyze(normalized)
	if err != nil {
		return Result{}, s.fail(ctx, stageAnalyze, err)
	}
	metrics.RecordAnalysis(normalized.Len(), rep.MeanScore, float64(time.Since(start).Microseconds())/1000)

	res := Result{
		RunID:          uuid.NewString(),
		Source:         ss.source,
		Min:            min,
		Max:            max,
		FilledScores:   scores,
		FilledStatuses: statuses,
		Table:          normalized,
		Report:         rep,
	}
	s.log().Info(ctx, "roster analyzed",
		logger.String("runID", res.RunID),
		logger.Int("records", normalized.Len()),
		logger.Float64("mean", rep.MeanScore),
		logger.Float64("median", rep.MedianScore),
	)
	return res, nil
}

// RenderReport writes the text report of r to w.
func (ss *Session) RenderReport(ctx context.Context, w io.Writer, r Result) error {
	if err := report.Render(w, r.Report, ss.svc.reportOptions(r)...); err != nil {
		return ss.svc.fail(ctx, stageExport, err)
	}
	return nil
}

// ExportReport writes the text report of r to path.
func (ss *Session) ExportReport(ctx context.Context, path string, r Result) error {
	s := ss.svc
	if err := report.WriteFile(path, r.Report, s.reportOptions(r)...); err != nil {
		return s.fail(ctx, stageExport, err)
	}
	s.exported(ctx, "report", path, r)
	return nil
}

// ExportTable writes the filtered, normalized table of r to path as xlsx or csv.
func (ss *Session) ExportTable(ctx context.Context, path string, r Result) error {
	s := ss.svc
	if err := sheet.Save(ctx, path, r.Table, s.sheetOpts...); err != nil {
		return s.fail(ctx, stageExport, err)
	}
	s.exported(ctx, "table", path, r)
	return nil
}

// Plot writes the score histogram of r to path as a PNG image.
func (ss *Session) Plot(ctx context.Context, path string, r Result) error {
	s := ss.svc
	f, err := os.Create(path)
	if err != nil {
		return s.fail(ctx, stageExport, fmt.Errorf("%w: %s: %w", ErrCreateFile, path, err))
	}
	if err := plot.Histogram(f, r.Table.Scores(), plot.WithBins(s.bins)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return s.fail(ctx, stageExport, err)
	}
	if err := f.Close(); err != nil {
		return s.fail(ctx, stageExport, fmt.Errorf("%w: %s: %w", ErrCreateFile, path, err))
	}
	s.exported(ctx, "plot", path, r)
	return nil
}

func (s *Service) reportOptions(r Result) []report.Option {
	return []report.Option{
		report.WithPrecision(s.precision),
		report.WithHeader(r.RunID, r.Source),
	}
}

func (s *Service) exported(ctx context.Context, artifact, path string, r Result) {
	metrics.RecordExport(artifact)
	s.log().Info(ctx, "artifact written",
		logger.String("artifact", artifact),
		logger.String("path", path),
		logger.String("runID", r.RunID),
	)
}

// fail records err against stage and returns it unchanged.
func (s *Service) fail(ctx context.Context, stage string, err error) error {
	kind := ErrorKind(err)
	metrics.RecordError(stage, kind)
	s.log().Error(ctx, "roster "+stage+" failed",
		logger.String("kind", kind),
		logger.Error(err),
	)
	return err
}
