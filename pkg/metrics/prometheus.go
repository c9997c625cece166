// Package metrics provides Prometheus metrics for the roster tool.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the roster tool.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         *prometheus.Registry

	// Import
	recordsLoaded prometheus.Counter
	loadLatency   prometheus.Histogram

	// Normalization and filtering
	missingFilled   *prometheus.CounterVec
	filtersApplied  prometheus.Counter
	filteredRecords prometheus.Gauge

	// Analysis
	analysesTotal   prometheus.Counter
	analysisLatency prometheus.Histogram
	tableSize       prometheus.Gauge
	meanScore       prometheus.Gauge

	// Outputs and failures
	exportsTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "roster",
		subsystem:        "analyzer",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Registry returns the registry the manager's metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.recordsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_loaded_total",
		Help:        "Total number of roster records read from input files",
		ConstLabels: labels,
	})

	m.loadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_latency_milliseconds",
		Help:        "Time spent reading and decoding an input file in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.missingFilled = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "missing_values_filled_total",
			Help:        "Total number of missing cells filled during normalization by column",
			ConstLabels: labels,
		},
		[]string{"column"},
	)

	m.filtersApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "filters_applied_total",
		Help:        "Total number of score range filters applied",
		ConstLabels: labels,
	})

	m.filteredRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "filtered_records",
		Help:        "Number of records kept by the last filter",
		ConstLabels: labels,
	})

	m.analysesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analyses_total",
		Help:        "Total number of statistics reports produced",
		ConstLabels: labels,
	})

	m.analysisLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analysis_latency_milliseconds",
		Help:        "Time spent normalizing and analyzing a table in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.tableSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "table_records",
		Help:        "Number of records in the last analyzed table",
		ConstLabels: labels,
	})

	m.meanScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "mean_score",
		Help:        "Mean score of the last analyzed table",
		ConstLabels: labels,
	})

	m.exportsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "exports_total",
			Help:        "Total number of artifacts written by kind",
			ConstLabels: labels,
		},
		[]string{"artifact"},
	)

	m.errorsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_total",
			Help:        "Total number of failed operations by stage and kind",
			ConstLabels: labels,
		},
		[]string{"stage", "kind"},
	)
}

// RecordRecordsLoaded adds n to the loaded records counter.
func (m *Manager) RecordRecordsLoaded(n int) {
	if m.enabled {
		m.recordsLoaded.Add(float64(n))
	}
}

// RecordLoadLatency records input decoding latency in milliseconds.
func (m *Manager) RecordLoadLatency(latencyMs float64) {
	if m.enabled {
		m.loadLatency.Observe(latencyMs)
	}
}

// RecordMissingFilled adds n filled cells for column.
func (m *Manager) RecordMissingFilled(column string, n int) {
	if m.enabled && n > 0 {
		m.missingFilled.WithLabelValues(column).Add(float64(n))
	}
}

// RecordFilter counts one filter and the number of records it kept.
func (m *Manager) RecordFilter(kept int) {
	if m.enabled {
		m.filtersApplied.Inc()
		m.filteredRecords.Set(float64(kept))
	}
}

// RecordAnalysis counts one report and stores its table size and mean.
func (m *Manager) RecordAnalysis(records int, mean, latencyMs float64) {
	if m.enabled {
		m.analysesTotal.Inc()
		m.analysisLatency.Observe(latencyMs)
		m.tableSize.Set(float64(records))
		m.meanScore.Set(mean)
	}
}

// RecordExport counts one written artifact ("report", "table", "plot").
func (m *Manager) RecordExport(artifact string) {
	if m.enabled {
		m.exportsTotal.WithLabelValues(artifact).Inc()
	}
}

// RecordError counts one failure of stage with an error kind.
func (m *Manager) RecordError(stage, kind string) {
	if m.enabled {
		m.errorsTotal.WithLabelValues(stage, kind).Inc()
	}
}

// WriteTextfile dumps the manager's registry in the text exposition format,
// ready for a node-exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteTextfile, path, err)
	}
	return nil
}

// Package-level helpers operate on the global manager.

// RecordRecordsLoaded adds n to the loaded records counter.
func RecordRecordsLoaded(n int) { globalManager.RecordRecordsLoaded(n) }

// RecordLoadLatency records input decoding latency in milliseconds.
func RecordLoadLatency(latencyMs float64) { globalManager.RecordLoadLatency(latencyMs) }

// RecordMissingFilled adds n filled cells for column.
func RecordMissingFilled(column string, n int) { globalManager.RecordMissingFilled(column, n) }

// RecordFilter counts one filter and the number of records it kept.
func RecordFilter(kept int) { globalManager.RecordFilter(kept) }

// RecordAnalysis counts one report and stores its table size and mean.
func RecordAnalysis(records int, mean, latencyMs float64) {
	globalManager.RecordAnalysis(records, mean, latencyMs)
}

// RecordExport counts one written artifact.
func RecordExport(artifact string) { globalManager.RecordExport(artifact) }

// RecordError counts one failure of stage with an error kind.
func RecordError(stage, kind string) { globalManager.RecordError(stage, kind) }

// WriteTextfile dumps the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
