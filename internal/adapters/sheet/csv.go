package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/roster/internal/domain/model"
)

// Every column is read as text; scores are parsed by decodeRows so that
// non-numeric cells become missing instead of failing the whole column.
var csvLoadOptions = []dataframe.LoadOption{
	dataframe.HasHeader(true),
	dataframe.DetectTypes(false),
	dataframe.DefaultType(series.String),
}

func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data), csvLoadOptions...)
	if df.Err == nil {
		return df.Records(), nil
	}

	// gota refuses a frame without data rows; a lone header is still a valid,
	// empty roster.
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err == nil && len(records) == 1 {
		return records, nil
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, df.Err)
}

func writeCSV(path string, t model.Table) error {
	df := dataframe.LoadRecords(encodeRows(t), csvLoadOptions...)
	if df.Err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, df.Err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := df.WriteCSV(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}
