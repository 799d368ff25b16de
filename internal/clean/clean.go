package clean

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jamesainslie/wikiedits"
	"github.com/jamesainslie/wikiedits/internal/store"
)

// MaxSamples is the largest supported sample count.
const MaxSamples = 5

// Store is the part of the edit database the cleaning stage uses.
type Store interface {
	Validate(ctx context.Context) error
	EnsureCleaningColumns(ctx context.Context) error
	AssignSeries(ctx context.Context) (int, error)
	AuthorNames(ctx context.Context) ([]string, error)
	UpdateRegisteredAuthors(ctx context.Context, authors []store.Author) (int64, error)
	UpdateAnonymousAuthors(ctx context.Context, authors []store.Author) (int64, error)
	EditsWithContent(ctx context.Context) ([]store.EditContent, error)
	SetEditFlags(ctx context.Context, valid []int64) error
}

// Options configures a cleaning run. When Users is nil authors are treated
// as anonymous and located with Locator.
type Options struct {
	Samples int
	Users   []store.Author
	Locator Locator
	Logger  *slog.Logger
}

// Report summarizes a cleaning run.
type Report struct {
	Series  int
	Authors int64
	Edits   int
	Flagged int
}

// Run cleans the database behind st.
func Run(ctx context.Context, st Store, opts Options) (Report, error) {
	var report Report

	if opts.Samples < 1 || opts.Samples > MaxSamples {
		return report, fmt.Errorf("%w: %d", ErrInvalidSamples, opts.Samples)
	}
	if opts.Users == nil && opts.Locator == nil {
		return report, errors.New("clean: either users or a locator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := st.Validate(ctx); err != nil {
		return report, err
	}
	if err := st.EnsureCleaningColumns(ctx); err != nil {
		return report, err
	}

	series, err := st.AssignSeries(ctx)
	if err != nil {
		return report, err
	}
	report.Series = series
	logger.Info("assigned series", "series", series)

	if opts.Users != nil {
		report.Authors, err = st.UpdateRegisteredAuthors(ctx, opts.Users)
	} else {
		report.Authors, err = locateAuthors(ctx, st, opts.Locator, logger)
	}
	if err != nil {
		return report, err
	}
	logger.Info("attributed authors", "authors", report.Authors)

	edits, err := st.EditsWithContent(ctx)
	if err != nil {
		return report, err
	}
	var valid []int64
	for _, e := range edits {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if wikiedits.IsMeaningful(e.Updated, e.Revision, opts.Samples) {
			valid = append(valid, e.ID)
		}
	}
	if err := st.SetEditFlags(ctx, valid); err != nil {
		return report, err
	}
	report.Edits, report.Flagged = len(edits), len(valid)
	logger.Info("flagged edits", "edits", report.Edits, "flagged", report.Flagged, "samples", opts.Samples)

	return report, nil
}

func locateAuthors(ctx context.Context, st Store, loc Locator, logger *slog.Logger) (int64, error) {
	names, err := st.AuthorNames(ctx)
	if err != nil {
		return 0, err
	}

	authors := make([]store.Author, 0, len(names))
	for _, name := range names {
		country, iso, err := loc.Locate(name)
		if errors.Is(err, ErrNotIP) {
			logger.Debug("skipping registered author", "name", name)
			continue
		}
		if err != nil {
			return 0, err
		}
		authors = append(authors, store.Author{Name: name, Country: country, ISO: iso})
	}
	return st.UpdateAnonymousAuthors(ctx, authors)
}
