// Package table reads and writes the semicolon separated datasets shared by
// the pipeline stages, and exports them to Excel workbooks.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Separator is the field separator of every dataset file.
const Separator = ';'

// ErrNoHeader indicates an input without a header row.
var ErrNoHeader = errors.New("table: missing header row")

// Table is a header plus rows of string cells. Every row has one cell per
// header column.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// New returns an empty table with the given columns.
func New(header ...string) *Table {
	t := &Table{Header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if _, ok := t.index[h]; !ok {
			t.index[h] = i
		}
	}
}

// Col returns the index of column name, or -1.
func (t *Table) Col(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the table has column name.
func (t *Table) Has(name string) bool {
	return t.Col(name) >= 0
}

// AddColumn appends column name with empty cells unless it exists, and
// returns its index.
func (t *Table) AddColumn(name string) int {
	if i := t.Col(name); i >= 0 {
		return i
	}
	t.Header = append(t.Header, name)
	t.index[name] = len(t.Header) - 1
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Header) - 1
}

// Get returns the cell of row in column name, or "" when the column is
// missing.
func (t *Table) Get(row int, name string) string {
	i := t.Col(name)
	if i < 0 {
		return ""
	}
	return t.Rows[row][i]
}

// Set writes the cell of row in column name, adding the column if needed.
func (t *Table) Set(row int, name, value string) {
	t.Rows[row][t.AddColumn(name)] = value
}

// Append adds a row from column values; missing columns stay empty and
// unknown columns are added.
func (t *Table) Append(values map[string]string) {
	for _, name := range sortedKeys(values, t) {
		t.AddColumn(name)
	}
	row := make([]string, len(t.Header))
	for name, v := range values {
		row[t.Col(name)] = v
	}
	t.Rows = append(t.Rows, row)
}

// sortedKeys returns the keys of values not yet in t, in a stable order.
func sortedKeys(values map[string]string, t *Table) []string {
	var keys []string
	for k := range values {
		if !t.Has(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Filter returns a table with the same header and the rows keep accepts.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := New(t.Header...)
	for i, r := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Read parses a semicolon separated table with a header row.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("table: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := New(header...)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table: read row %d: %w", len(t.Rows)+1, err)
		}
		row := make([]string, len(header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadFile reads a table from path, as an Excel workbook when path ends in
// .xlsx and as a semicolon separated table otherwise.
func ReadFile(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Write writes t as a semicolon separated table.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("table: write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("table: write rows: %w", err)
	}
	return nil
}

// WriteFile saves t to path, as an Excel workbook when path ends in .xlsx
// and as a semicolon separated table otherwise.
func (t *Table) WriteFile(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return t.WriteXLSX(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if err := t.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
