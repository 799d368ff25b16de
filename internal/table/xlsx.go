package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is the worksheet tables are written to.
const Sheet = "Sheet1"

// WriteXLSX saves t as a single sheet workbook. Numeric cells are stored as
// numbers and cells starting with "=" as formulas.
func (t *Table) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(Sheet, "A1", &header); err != nil {
		return fmt.Errorf("table: write header: %w", err)
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("table: cell name: %w", err)
			}
			if err := setCell(f, cell, v); err != nil {
				return fmt.Errorf("table: write %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("table: save workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, cell, v string) error {
	switch {
	case v == "":
		return nil
	case strings.HasPrefix(v, "="):
		return f.SetCellFormula(Sheet, cell, v[1:])
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return f.SetCellValue(Sheet, cell, i)
	}
	if x, err := strconv.ParseFloat(v, 64); err == nil && !strings.ContainsAny(v, "nN") {
		return f.SetCellValue(Sheet, cell, x)
	}
	return f.SetCellValue(Sheet, cell, v)
}

// ReadXLSX loads the first sheet of a workbook written by WriteXLSX.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("table: open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("table: read workbook: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	t := New(rows[0]...)
	for _, rec := range rows[1:] {
		row := make([]string, len(t.Header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
