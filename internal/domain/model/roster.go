// Package model contains domain models passed between layers.
package model

import "database/sql"

// Canonical column names of a roster table.
const (
	ColumnName   = "name"
	ColumnScore  = "score"
	ColumnStatus = "status"
)

// Status literals used by rosters.
const (
	StatusPassed = "Passed"
	StatusFailed = "Failed"
)

// RequiredColumns lists the columns every roster must carry, in report order.
var RequiredColumns = []string{ColumnName, ColumnScore, ColumnStatus}

// Record is one student's name/score/status triple.
// Score and Status are invalid when the source cell was missing.
type Record struct {
	Name   string
	Score  sql.NullFloat64
	Status sql.NullString
}

// NewRecord builds a record with every field present.
func NewRecord(name string, score float64, status string) Record {
	return Record{
		Name:   name,
		Score:  sql.NullFloat64{Float64: score, Valid: true},
		Status: sql.NullString{String: status, Valid: true},
	}
}

// Table is an ordered roster. Columns holds the canonical names of the
// columns the source actually provided.
type Table struct {
	Columns []string
	Rows    []Record
}

// NewTable returns a table carrying all required columns.
func NewTable(rows ...Record) Table {
	return Table{
		Columns: append([]string(nil), RequiredColumns...),
		Rows:    rows,
	}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// HasColumn reports whether the source provided the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy; mutating it never affects t.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
	}
	if t.Rows != nil {
		out.Rows = make([]Record, len(t.Rows))
		copy(out.Rows, t.Rows)
	}
	return out
}

// Scores returns the present scores in table order.
func (t Table) Scores() []float64 {
	out := make([]float64, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Score.Valid {
			out = append(out, r.Score.Float64)
		}
	}
	return out
}

// Normalized reports whether no row has a missing score or status.
func (t Table) Normalized() bool {
	for _, r := range t.Rows {
		if !r.Score.Valid || !r.Status.Valid {
			return false
		}
	}
	return true
}
