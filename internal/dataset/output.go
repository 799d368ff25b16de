package dataset

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jamesainslie/wikiedits/internal/table"
)

// Columns is the column order of generated datasets.
var Columns = []string{
	"Author", "Tongue", "Nationality", "ISO", "ParentID", "Series", "Title",
	"Language", "RevisionId", "Timestamp", "EditId", "UpdatedText",
	"PreviousText", "Size", "ParentTitle", "Type", "CurrentEdit",
	"PreviousEdit", "Similarity",
}

// Translation columns added when Google formulas are requested.
const (
	ColTranslateCurrent  = "Translate 1"
	ColTranslatePrevious = "Translate 2"
)

// englishVariants are the languages that need no translation.
var englishVariants = map[string]bool{"en": true, "sco": true}

// Table lays rows out in Columns order. With google set, non-English rows
// get GOOGLETRANSLATE formulas referencing their edit cells.
func Table(rows []Row, google bool) (*table.Table, error) {
	t := table.New(Columns...)
	for _, r := range rows {
		t.Rows = append(t.Rows, r.cells())
	}
	if !google {
		return t, nil
	}

	current, err := excelize.ColumnNumberToName(t.Col("CurrentEdit") + 1)
	if err != nil {
		return nil, fmt.Errorf("dataset: column name: %w", err)
	}
	previous, err := excelize.ColumnNumberToName(t.Col("PreviousEdit") + 1)
	if err != nil {
		return nil, fmt.Errorf("dataset: column name: %w", err)
	}

	t.AddColumn(ColTranslateCurrent)
	t.AddColumn(ColTranslatePrevious)
	for i, r := range rows {
		if englishVariants[r.Language] {
			continue
		}
		line := i + 2
		if r.CurrentEdit != "" {
			t.Set(i, ColTranslateCurrent, translateFormula(current, line, r.Language))
		}
		if r.PreviousEdit != "" {
			t.Set(i, ColTranslatePrevious, translateFormula(previous, line, r.Language))
		}
	}
	return t, nil
}

func translateFormula(col string, line int, lang string) string {
	return fmt.Sprintf(`=GOOGLETRANSLATE(%s%d, "%s", "en")`, col, line, lang)
}

func (r Row) cells() []string {
	itoa := func(n int64) string { return strconv.FormatInt(n, 10) }

	var kind, sim string
	if r.Classified {
		kind = strconv.Itoa(int(r.Kind))
	}
	if r.Scored {
		sim = strconv.FormatFloat(r.Similarity, 'g', -1, 64)
	}

	return []string{
		r.Author, r.Tongue, r.Nationality, r.ISO, itoa(r.ParentID), itoa(r.Series), r.Title,
		r.Language, itoa(r.RevisionID), r.Timestamp, itoa(r.EditID), r.UpdatedText,
		r.PreviousText, itoa(r.Size), r.ParentTitle, kind, r.CurrentEdit,
		r.PreviousEdit, sim,
	}
}
