// Package report renders statistics reports as plain text.
package report

const (
	defaultPrecision = 2
	maxPrecision     = 10
)

// Option applies a configuration option to Render.
type Option func(*options)

type options struct {
	precision int
	runID     string
	source    string
}

// WithPrecision sets the number of decimals for aggregate values.
// Values outside 0..10 are ignored.
func WithPrecision(n int) Option {
	return func(o *options) {
		if n >= 0 && n <= maxPrecision {
			o.precision = n
		}
	}
}

// WithHeader prefixes the report with the run identifier and input source.
func WithHeader(runID, source string) Option {
	return func(o *options) {
		o.runID = runID
		o.source = source
	}
}

func newOptions(opts []Option) *options {
	o := &options{precision: defaultPrecision}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
