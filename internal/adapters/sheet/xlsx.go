package sheet

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/okian/roster/internal/domain/model"
)

const defaultSheet = "Roster"

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	switch {
	case len(sheets) == 0:
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrRead, path)
	case sheet == "":
		sheet = sheets[0]
	case !slices.Contains(sheets, sheet):
		return nil, fmt.Errorf("%w: %s: sheet %q not found", ErrRead, path, sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return rows, nil
}

func writeXLSX(path, sheet string, t model.Table) error {
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	header := make([]any, len(model.RequiredColumns))
	for i, c := range model.RequiredColumns {
		header[i] = c
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	for i, r := range t.Rows {
		row := []any{r.Name, nil, nil}
		if r.Score.Valid {
			row[1] = r.Score.Float64
		}
		if r.Status.Valid {
			row[2] = r.Status.String
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

// setRow writes values from column A; nil values leave the cell empty.
func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
