package sheet

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/roster/internal/domain/model"
)

// Supported file extensions.
const (
	extXLSX = ".xlsx"
	extCSV  = ".csv"
)

// Load reads the roster at path. The format follows the file extension.
// Columns the file does not provide are simply absent from the table; the
// analyzer reports them when normalizing.
func Load(ctx context.Context, path string, opts ...Option) (model.Table, error) {
	if err := ctx.Err(); err != nil {
		return model.Table{}, err
	}
	o := newOptions(opts)

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case extXLSX:
		rows, err = readXLSX(path, o.sheet)
	case extCSV:
		rows, err = readCSV(path)
	default:
		return model.Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return model.Table{}, err
	}
	return decodeRows(rows, o), nil
}

// Save writes t to path using canonical headers. Missing values are left
// empty.
func Save(ctx context.Context, path string, t model.Table, opts ...Option) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o := newOptions(opts)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case extXLSX:
		return writeXLSX(path, o.sheet, t)
	case extCSV:
		return writeCSV(path, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// decodeRows maps a header row plus data rows onto a table. Fully blank rows
// are skipped.
func decodeRows(rows [][]string, o *options) model.Table {
	if len(rows) == 0 {
		return model.Table{}
	}

	index := columnIndex(rows[0], o)
	t := model.Table{Rows: make([]model.Record, 0, len(rows)-1)}
	for _, c := range model.RequiredColumns {
		if _, ok := index[c]; ok {
			t.Columns = append(t.Columns, c)
		}
	}

	for _, row := range rows[1:] {
		name, hasName := cell(row, index, model.ColumnName)
		scoreText, hasScore := cell(row, index, model.ColumnScore)
		statusText, hasStatus := cell(row, index, model.ColumnStatus)
		if !hasName && !hasScore && !hasStatus {
			continue
		}

		var r model.Record
		r.Name = name
		if hasScore {
			if v, ok := parseScore(scoreText); ok {
				r.Score = sql.NullFloat64{Float64: v, Valid: true}
			}
		}
		if hasStatus {
			r.Status = sql.NullString{String: statusText, Valid: true}
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

// columnIndex returns the position of each canonical column in header. The
// first matching header wins.
func columnIndex(header []string, o *options) map[string]int {
	index := make(map[string]int, len(model.RequiredColumns))
	for i, h := range header {
		h = normalizeHeader(h)
		for column, aliases := range o.aliases {
			if _, taken := index[column]; taken {
				continue
			}
			for _, a := range aliases {
				if h == a {
					index[column] = i
					break
				}
			}
		}
	}
	return index
}

// cell returns the trimmed value of column in row and whether it is present.
func cell(row []string, index map[string]int, column string) (string, bool) {
	i, ok := index[column]
	if !ok || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	if isMissing(v) {
		return "", false
	}
	return v, true
}

func isMissing(v string) bool {
	switch strings.ToLower(v) {
	case "", "nan", "na", "n/a", "null", "none":
		return true
	}
	return false
}

// parseScore accepts a single decimal comma followed by one or two digits
// ("60,5"). Non-numeric, non-finite or ambiguous text ("1,000") counts as
// missing.
func parseScore(text string) (float64, bool) {
	if i := strings.IndexByte(text, ','); i >= 0 {
		frac := len(text) - i - 1
		if strings.Count(text, ",") != 1 || strings.Contains(text, ".") || frac < 1 || frac > 2 {
			return 0, false
		}
		text = text[:i] + "." + text[i+1:]
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// encodeRows renders t as a header row plus string rows.
func encodeRows(t model.Table) [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), model.RequiredColumns...))
	for _, r := range t.Rows {
		score := ""
		if r.Score.Valid {
			score = strconv.FormatFloat(r.Score.Float64, 'f', -1, 64)
		}
		status := ""
		if r.Status.Valid {
			status = r.Status.String
		}
		out = append(out, []string{r.Name, score, status})
	}
	return out
}
