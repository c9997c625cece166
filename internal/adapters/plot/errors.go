package plot

import "errors"

// Sentinel errors for chart rendering.
var (
	ErrNoData = errors.New("no scores to plot")
	ErrRender = errors.New("render chart failed")
)
