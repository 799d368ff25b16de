// Package merge concatenates datasets built for different kinds of conflict.
package merge

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jamesainslie/wikiedits/internal/table"
)

// ColConflictType holds the 1-based position of the input a row came from.
const ColConflictType = "ConflictType"

// ErrNoInputs is returned when there is nothing to merge.
var ErrNoInputs = errors.New("merge: no input datasets")

// Tables stacks inputs into one table. Columns are the union of the input
// headers in first-seen order; cells of columns an input lacks stay empty.
func Tables(inputs ...*table.Table) (*table.Table, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	out := table.New()
	for _, in := range inputs {
		for _, h := range in.Header {
			out.AddColumn(h)
		}
		out.AddColumn(ColConflictType)
	}

	for i, in := range inputs {
		conflict := strconv.Itoa(i + 1)
		for _, rec := range in.Rows {
			row := make([]string, len(out.Header))
			for c, h := range in.Header {
				if h == ColConflictType {
					continue
				}
				row[out.Col(h)] = rec[c]
			}
			row[out.Col(ColConflictType)] = conflict
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// Files reads every path and merges them in order.
func Files(paths ...string) (*table.Table, error) {
	inputs := make([]*table.Table, 0, len(paths))
	for _, p := range paths {
		t, err := table.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("merge: %s: %w", p, err)
		}
		inputs = append(inputs, t)
	}
	return Tables(inputs...)
}
