package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/okian/roster/internal/domain/analyzer"
)

// Render writes the text report for r to w. The whole report is built in
// memory first so a failing writer never leaves half a table behind.
func Render(w io.Writer, r analyzer.StatisticsReport, opts ...Option) error {
	o := newOptions(opts)
	agg := func(v float64) string { return strconv.FormatFloat(v, 'f', o.precision, 64) }

	var b bytes.Buffer
	if o.runID != "" || o.source != "" {
		fmt.Fprintf(&b, "Run: %s\nSource: %s\n\n", o.runID, o.source)
	}

	fmt.Fprintf(&b, "Mean score: %s\n", agg(r.MeanScore))
	fmt.Fprintf(&b, "Median score: %s\n\n", agg(r.MedianScore))

	fmt.Fprintf(&b, "Passed: %d\n", r.PassCount)
	fmt.Fprintf(&b, "Failed: %d\n\n", r.FailCount)

	fmt.Fprintf(&b, "Top student: %s with score %s\n", r.TopStudent.Name, score(r.TopStudent.Score.Float64))
	fmt.Fprintf(&b, "Bottom student: %s with score %s\n\n", r.BottomStudent.Name, score(r.BottomStudent.Score.Float64))

	s := r.ScoreSummary
	b.WriteString("Score summary:\n")
	renderTable(&b, []string{"Statistic", "Value"}, [][]string{
		{"count", strconv.Itoa(s.Count)},
		{"mean", agg(s.Mean)},
		{"std", agg(s.Std)},
		{"min", agg(s.Min)},
		{"25%", agg(s.P25)},
		{"50%", agg(s.P50)},
		{"75%", agg(s.P75)},
		{"max", agg(s.Max)},
	})
	b.WriteString("\n")

	byStatus := make([][]string, 0, len(r.MeanScoreByStatus))
	for _, m := range r.MeanScoreByStatus {
		byStatus = append(byStatus, []string{m.Status, agg(m.Mean), strconv.Itoa(m.Count)})
	}
	b.WriteString("Mean score by status:\n")
	renderTable(&b, []string{"Status", "Mean", "Count"}, byStatus)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Above average: %d\n", r.AboveAverageCount)
	fmt.Fprintf(&b, "Below average: %d\n\n", r.BelowAverageCount)

	dist := make([][]string, 0, len(r.ScoreDistribution))
	for _, d := range r.ScoreDistribution {
		dist = append(dist, []string{score(d.Score), strconv.Itoa(d.Count)})
	}
	b.WriteString("Score distribution:\n")
	renderTable(&b, []string{"Score", "Count"}, dist)

	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// WriteFile renders r into the file at path, replacing it.
func WriteFile(path string, r analyzer.StatisticsReport, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := Render(f, r, opts...); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	t.AppendBulk(rows)
	t.Render()
}

// score prints a raw score with as many digits as it needs.
func score(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
