package plot

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

// Bin is one histogram bucket covering [Lo, Hi). The last bin also holds Hi.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Bins splits the finite scores into n equal-width bins over [min, max].
// When every score is equal a single bin is returned. n <= 0 selects the
// default. NaN and infinite scores are not counted.
func Bins(scores []float64, n int) []Bin {
	finite := make([]float64, 0, len(scores))
	for _, v := range scores {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil
	}
	if n <= 0 {
		n = defaultBins
	}

	lo, hi := floats.Min(finite), floats.Max(finite)
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(finite)}}
	}

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi

	for _, v := range finite {
		i := min(max(int((v-lo)/width), 0), n-1)
		bins[i].Count++
	}
	return bins
}

// Histogram renders the score histogram as a PNG image into w.
func Histogram(w io.Writer, scores []float64, opts ...Option) error {
	o := newOptions(opts)
	bins := Bins(scores, o.bins)
	if len(bins) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(bins))
	peak := 0
	for i, b := range bins {
		bars[i] = chart.Value{Value: float64(b.Count), Label: label(b.Lo)}
		peak = max(peak, b.Count)
	}

	barWidth := (o.width - 200) / (2 * len(bars))
	graph := chart.BarChart{
		Title:      o.title,
		Width:      o.width,
		Height:     o.height,
		BarWidth:   max(barWidth, 1),
		BarSpacing: max(barWidth, 1),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		YAxis:      chart.YAxis{Name: "Students", Range: &chart.ContinuousRange{Min: 0, Max: float64(peak)}},
		Bars:       bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
