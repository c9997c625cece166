// Package plot draws score histograms as PNG images.
package plot

const (
	defaultBins   = 20
	defaultWidth  = 1024
	defaultHeight = 600
	defaultTitle  = "Score distribution"
)

// Option applies a configuration option to Histogram.
type Option func(*options)

type options struct {
	bins   int
	title  string
	width  int
	height int
}

// WithBins sets the number of equal-width bins. Non-positive values are ignored.
func WithBins(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bins = n
		}
	}
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithSize sets the image size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		bins:   defaultBins,
		title:  defaultTitle,
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
