// Package analyzer computes descriptive statistics over student rosters.
package analyzer

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithStatusLabels sets the literals counted as passed and failed. The failed
// label also fills missing statuses during normalization.
func WithStatusLabels(passed, failed string) Option {
	return func(a *Analyzer) {
		if passed != "" && failed != "" && passed != failed {
			a.passed = passed
			a.failed = failed
		}
	}
}

// WithMissingScoreFallback sets the value used to fill missing scores when a
// table has no present score to average.
func WithMissingScoreFallback(v float64) Option {
	return func(a *Analyzer) {
		a.fallback = v
	}
}
