package analyzer

import (
	"database/sql"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/roster/internal/domain/model"
)

// Default analyzer configuration constants.
const (
	defaultMissingScoreFallback = 0
)

// Summary mirrors a describe() of the score column.
type Summary struct {
	Count int
	Mean  float64
	Std   float64 // sample standard deviation; NaN when Count == 1
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

// StatusMean is the mean score of the records sharing one status.
type StatusMean struct {
	Status string
	Mean   float64
	Count  int
}

// ScoreCount is the number of records holding one distinct score.
type ScoreCount struct {
	Score float64
	Count int
}

// StatisticsReport bundles every aggregate derived from one table snapshot.
// It shares no memory with the table it was computed from.
type StatisticsReport struct {
	MeanScore         float64
	MedianScore       float64
	PassCount         int
	FailCount         int
	TopStudent        model.Record
	BottomStudent     model.Record
	ScoreSummary      Summary
	MeanScoreByStatus []StatusMean // first-seen order
	AboveAverageCount int
	BelowAverageCount int
	ScoreDistribution []ScoreCount // ascending by score
}

// Analyzer normalizes, filters and summarizes roster tables. It holds only
// configuration, so one instance may be shared between goroutines.
type Analyzer struct {
	passed   string
	failed   string
	fallback float64
}

// New creates an Analyzer with configuration options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		passed:   model.StatusPassed,
		failed:   model.StatusFailed,
		fallback: defaultMissingScoreFallback,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// PassedLabel returns the status literal counted as passed.
func (a *Analyzer) PassedLabel() string { return a.passed }

// FailedLabel returns the status literal counted as failed.
func (a *Analyzer) FailedLabel() string { return a.failed }

// Normalize fills missing scores with the mean of the present ones and missing
// statuses with the failed label. The input table is left untouched.
func (a *Analyzer) Normalize(t model.Table) (model.Table, error) {
	var missing []string
	for _, c := range model.RequiredColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return model.Table{}, &SchemaError{Missing: missing}
	}

	// The fill value is taken before any replacement so filled rows never
	// feed back into it.
	fill := a.fallback
	if present := t.Scores(); len(present) > 0 {
		fill = stat.Mean(present, nil)
	}

	out := t.Clone()
	for i := range out.Rows {
		r := &out.Rows[i]
		if !r.Score.Valid {
			r.Score = sql.NullFloat64{Float64: fill, Valid: true}
		}
		if !r.Status.Valid {
			r.Status = sql.NullString{String: a.failed, Valid: true}
		}
	}
	return out, nil
}

// MissingCounts returns how many scores and statuses Normalize would fill.
func MissingCounts(t model.Table) (scores, statuses int) {
	for _, r := range t.Rows {
		if !r.Score.Valid {
			scores++
		}
		if !r.Status.Valid {
			statuses++
		}
	}
	return scores, statuses
}

// Analyze computes the statistics report of a normalized, non-empty table.
func (a *Analyzer) Analyze(t model.Table) (StatisticsReport, error) {
	if t.Len() == 0 {
		return StatisticsReport{}, ErrEmptyDataset
	}
	if !t.Normalized() {
		return StatisticsReport{}, ErrNotNormalized
	}

	scores := t.Scores()
	mean := stat.Mean(scores, nil)
	median, err := stats.Median(scores)
	if err != nil {
		return StatisticsReport{}, ErrEmptyDataset
	}

	rep := StatisticsReport{
		MeanScore:    mean,
		MedianScore:  median,
		ScoreSummary: summarize(scores, mean),
	}

	top, bottom := 0, 0
	for i, r := range t.Rows {
		switch r.Status.String {
		case a.passed:
			rep.PassCount++
		case a.failed:
			rep.FailCount++
		}
		switch {
		case r.Score.Float64 > mean:
			rep.AboveAverageCount++
		case r.Score.Float64 < mean:
			rep.BelowAverageCount++
		}
		// Strict comparisons keep the first record on ties.
		if r.Score.Float64 > t.Rows[top].Score.Float64 {
			top = i
		}
		if r.Score.Float64 < t.Rows[bottom].Score.Float64 {
			bottom = i
		}
	}
	rep.TopStudent = t.Rows[top]
	rep.BottomStudent = t.Rows[bottom]
	rep.MeanScoreByStatus = meanByStatus(t.Rows)
	rep.ScoreDistribution = distribution(scores)

	return rep, nil
}

// FilterByRange returns the rows with min <= score <= max in their original
// order. Rows with a missing score never match.
func (a *Analyzer) FilterByRange(t model.Table, min, max float64) model.Table {
	out := model.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]model.Record, 0, len(t.Rows)),
	}
	for _, r := range t.Rows {
		if !r.Score.Valid {
			continue
		}
		if r.Score.Float64 >= min && r.Score.Float64 <= max {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

func summarize(scores []float64, mean float64) Summary {
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)

	return Summary{
		Count: len(sorted),
		Mean:  mean,
		Std:   stat.StdDev(sorted, nil),
		Min:   sorted[0],
		P25:   percentile(sorted, 0.25),
		P50:   percentile(sorted, 0.50),
		P75:   percentile(sorted, 0.75),
		Max:   sorted[len(sorted)-1],
	}
}

// percentile interpolates linearly between the order statistics around
// rank (n-1)*p. sorted must be ascending and non-empty.
func percentile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func meanByStatus(rows []model.Record) []StatusMean {
	index := make(map[string]int)
	var out []StatusMean
	sums := make([]float64, 0)
	for _, r := range rows {
		i, ok := index[r.Status.String]
		if !ok {
			i = len(out)
			index[r.Status.String] = i
			out = append(out, StatusMean{Status: r.Status.String})
			sums = append(sums, 0)
		}
		out[i].Count++
		sums[i] += r.Score.Float64
	}
	for i := range out {
		out[i].Mean = sums[i] / float64(out[i].Count)
	}
	return out
}

func distribution(scores []float64) []ScoreCount {
	counts := make(map[float64]int, len(scores))
	for _, s := range scores {
		counts[s]++
	}
	out := make([]ScoreCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, ScoreCount{Score: s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}
