// Package dataset turns the cleaned edit database into the table of edits
// annotators and the similarity scorer work from.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jamesainslie/wikiedits"
	"github.com/jamesainslie/wikiedits/internal/langs"
	"github.com/jamesainslie/wikiedits/internal/store"
)

// ErrEmptyDataset indicates no edit survived selection.
var ErrEmptyDataset = errors.New("dataset: no edits selected")

// Store is the part of the edit database the builder reads.
type Store interface {
	Validate(ctx context.Context) error
	Candidates(ctx context.Context, until time.Time) ([]store.Candidate, error)
	ArticleTitle(ctx context.Context, id int64) (string, error)
	SeriesLanguages(ctx context.Context, series int64) ([]string, error)
	Revision(ctx context.Context, id int64) (content, previous string, err error)
}

// Options configures a build.
type Options struct {
	// Until is the last revision time included.
	Until time.Time

	// Google adds GOOGLETRANSLATE formula columns for non-English rows.
	Google bool

	// Extract configures context extraction.
	Extract []wikiedits.Option

	Logger *slog.Logger
}

// Row is one candidate edit with its classification and context.
type Row struct {
	store.Candidate

	ParentTitle string

	// Classified is false when the author's tongue is not among the
	// languages of the series, or a revision lost one of its contexts.
	Classified bool
	Kind       wikiedits.Kind

	CurrentEdit  string
	PreviousEdit string

	Similarity float64
	Scored     bool
}

// EndOfDay returns the last second of day, the inclusive bound used for a
// date given on the command line.
func EndOfDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, day.Location())
}

type builder struct {
	st     Store
	opts   Options
	logger *slog.Logger
	titles map[int64]string
	series map[int64][]string
}

// Rows loads every candidate edit up to opts.Until and classifies it.
func Rows(ctx context.Context, st Store, opts Options) ([]Row, error) {
	if err := st.Validate(ctx); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	until := opts.Until
	if until.IsZero() {
		until = time.Now()
	}

	candidates, err := st.Candidates(ctx, until)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded candidates", "count", len(candidates), "until", until.Format(time.DateTime))

	b := &builder{
		st:     st,
		opts:   opts,
		logger: logger,
		titles: make(map[int64]string),
		series: make(map[int64][]string),
	}

	rows := make([]Row, 0, len(candidates))
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := b.row(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", c.EditID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (b *builder) row(ctx context.Context, c store.Candidate) (Row, error) {
	row := Row{Candidate: c, ParentTitle: c.Title}
	if c.ParentID != 0 {
		title, err := b.title(ctx, c.ParentID)
		if err != nil {
			return row, err
		}
		row.ParentTitle = title
	}

	tongue := b.tongue(c)
	if row.Tongue == "" {
		row.Tongue = tongue
	}
	languages, err := b.languages(ctx, c.Series)
	if err != nil {
		return row, err
	}
	if tongue == "" || !slices.Contains(languages, tongue) {
		return row, nil
	}

	kind := wikiedits.Classify(c.UpdatedText, c.PreviousText)
	switch kind {
	case wikiedits.Insertion:
		content, _, err := b.st.Revision(ctx, c.Identifier)
		if err != nil {
			return row, err
		}
		row.CurrentEdit = wikiedits.Extract(c.UpdatedText, content, b.opts.Extract...)
		row.Similarity, row.Scored = 0, true

	case wikiedits.Revision:
		content, previous, err := b.st.Revision(ctx, c.Identifier)
		if err != nil {
			return row, err
		}
		current := wikiedits.Extract(c.UpdatedText, content, b.opts.Extract...)
		prior := wikiedits.Extract(c.PreviousText, previous, b.opts.Extract...)
		if current == "" || prior == "" {
			return row, nil
		}
		sim, err := wikiedits.TokenOverlap(current, prior)
		if err != nil {
			return row, err
		}
		row.CurrentEdit, row.PreviousEdit = current, prior
		row.Similarity, row.Scored = sim, true

	case wikiedits.Deletion:
		_, previous, err := b.st.Revision(ctx, c.Identifier)
		if err != nil {
			return row, err
		}
		row.PreviousEdit = wikiedits.Extract(c.PreviousText, previous, b.opts.Extract...)
		row.Similarity, row.Scored = 0, true
	}

	row.Kind, row.Classified = kind, true
	return row, nil
}

// tongue resolves the author's language: the primary official language of
// their territory when known, else the language they declared.
func (b *builder) tongue(c store.Candidate) string {
	if c.ISO != "" {
		primary, err := langs.Primary(c.ISO)
		if err == nil {
			return primary
		}
		b.logger.Debug("unknown territory", "author", c.Author, "iso", c.ISO, "error", err)
	}
	if c.Tongue == "" {
		return ""
	}
	return langs.Base(c.Tongue)
}

func (b *builder) title(ctx context.Context, id int64) (string, error) {
	if t, ok := b.titles[id]; ok {
		return t, nil
	}
	t, err := b.st.ArticleTitle(ctx, id)
	if err != nil {
		return "", err
	}
	b.titles[id] = t
	return t, nil
}

func (b *builder) languages(ctx context.Context, series int64) ([]string, error) {
	if l, ok := b.series[series]; ok {
		return l, nil
	}
	l, err := b.st.SeriesLanguages(ctx, series)
	if err != nil {
		return nil, err
	}
	b.series[series] = l
	return l, nil
}

// Select keeps the rows worth annotating: edits with context, larger than
// two characters and not identical to what they replaced, made by authors
// who edited exactly two language versions of the series, and with a
// current edit.
func Select(rows []Row) []Row {
	var selection []Row
	for _, r := range rows {
		if r.CurrentEdit == "" && r.PreviousEdit == "" {
			continue
		}
		if r.Size <= 2 || !r.Scored || r.Similarity >= 1 {
			continue
		}
		selection = append(selection, r)
	}

	type key struct {
		series int64
		author string
	}
	versions := make(map[key]map[string]struct{})
	for _, r := range selection {
		k := key{r.Series, r.Author}
		if versions[k] == nil {
			versions[k] = make(map[string]struct{})
		}
		versions[k][r.Language] = struct{}{}
	}

	out := selection[:0]
	for _, r := range selection {
		if len(versions[key{r.Series, r.Author}]) != 2 || r.CurrentEdit == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Build loads, classifies and selects the dataset.
func Build(ctx context.Context, st Store, opts Options) ([]Row, error) {
	rows, err := Rows(ctx, st, opts)
	if err != nil {
		return nil, err
	}
	selected := Select(rows)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("selected edits", "candidates", len(rows), "selected", len(selected))
	if len(selected) == 0 {
		return nil, ErrEmptyDataset
	}
	return selected, nil
}
