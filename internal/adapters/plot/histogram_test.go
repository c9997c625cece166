package plot

import (
	"bytes"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestBins(t *testing.T) {
	Convey("Given scores spread over a range", t, func() {
		scores := []float64{40, 60, 60, 80}

		Convey("When split into four bins", func() {
			bins := Bins(scores, 4)

			Convey("Then edges should be equal width and the max lands in the last bin", func() {
				So(bins, ShouldResemble, []Bin{
					{Lo: 40, Hi: 50, Count: 1},
					{Lo: 50, Hi: 60, Count: 0},
					{Lo: 60, Hi: 70, Count: 2},
					{Lo: 70, Hi: 80, Count: 1},
				})
			})
		})

		Convey("When the bin count is not positive", func() {
			bins := Bins(scores, 0)

			Convey("Then the default count should be used", func() {
				So(len(bins), ShouldEqual, defaultBins)
				total := 0
				for _, b := range bins {
					total += b.Count
				}
				So(total, ShouldEqual, len(scores))
			})
		})
	})

	Convey("Given identical scores", t, func() {
		Convey("Then a single bin should hold them all", func() {
			So(Bins([]float64{70, 70, 70}, 10), ShouldResemble, []Bin{{Lo: 70, Hi: 70, Count: 3}})
		})
	})

	Convey("Given scores with non-finite values", t, func() {
		scores := []float64{10, 20, math.Inf(1), math.NaN(), math.Inf(-1)}

		Convey("Then only the finite scores should be binned", func() {
			So(Bins(scores, 2), ShouldResemble, []Bin{
				{Lo: 10, Hi: 15, Count: 1},
				{Lo: 15, Hi: 20, Count: 1},
			})
		})

		Convey("Then nothing should be binned when no score is finite", func() {
			So(Bins([]float64{math.Inf(1), math.NaN()}, 2), ShouldBeNil)
		})
	})

	Convey("Given no scores", t, func() {
		Convey("Then there should be no bins", func() {
			So(Bins(nil, 5), ShouldBeNil)
		})
	})
}

func TestHistogram(t *testing.T) {
	Convey("Given a set of scores", t, func() {
		scores := []float64{35, 40, 55, 60, 60, 72.5, 80, 95}

		Convey("When rendering the histogram", func() {
			var buf bytes.Buffer
			err := Histogram(&buf, scores, WithBins(5), WithTitle("Scores"), WithSize(640, 480))

			Convey("Then a PNG image should be written", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(buf.Bytes(), pngMagic), ShouldBeTrue)
			})
		})

		Convey("When every score is equal", func() {
			var buf bytes.Buffer
			err := Histogram(&buf, []float64{50, 50})

			Convey("Then a single bar should still render", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(buf.Bytes(), pngMagic), ShouldBeTrue)
			})
		})
	})

	Convey("Given scores with an infinite value", t, func() {
		Convey("When rendering the histogram", func() {
			var buf bytes.Buffer
			var err error
			So(func() { err = Histogram(&buf, []float64{10, 20, math.Inf(1)}) }, ShouldNotPanic)

			Convey("Then the finite scores should still be drawn", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(buf.Bytes(), pngMagic), ShouldBeTrue)
			})
		})

		Convey("When no score is finite", func() {
			var buf bytes.Buffer
			err := Histogram(&buf, []float64{math.Inf(1)})

			Convey("Then ErrNoData should be returned", func() {
				So(errors.Is(err, ErrNoData), ShouldBeTrue)
			})
		})
	})

	Convey("Given no scores", t, func() {
		var buf bytes.Buffer
		err := Histogram(&buf, nil)

		Convey("Then ErrNoData should be returned", func() {
			So(errors.Is(err, ErrNoData), ShouldBeTrue)
			So(buf.Len(), ShouldEqual, 0)
		})
	})
}
