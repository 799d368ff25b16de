package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// timestampLayout matches how the scraper stores DATETIME values.
const timestampLayout = "2006-01-02 15:04:05"

// EditContent pairs an edit with the revision text it was taken from.
type EditContent struct {
	ID       int64
	Updated  string
	Revision string
}

// EditsWithContent returns every edit joined with its revision content.
func (s *Store) EditsWithContent(ctx context.Context) ([]EditContent, error) {
	query, args, err := sq.Select("DISTINCT edits.id", "edits.updated_text", "revisions.content").
		From("edits").
		Join("revisions ON revisions.id = edits.revision_id").
		OrderBy("edits.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: edits with content: %w", err)
	}
	defer rows.Close()

	var out []EditContent
	for rows.Next() {
		var (
			e                 EditContent
			updated, revision sql.NullString
		)
		if err := rows.Scan(&e.ID, &updated, &revision); err != nil {
			return nil, fmt.Errorf("store: scan edit: %w", err)
		}
		e.Updated, e.Revision = updated.String, revision.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// SetEditFlags clears the flag of every edit and sets it for valid.
func (s *Store) SetEditFlags(ctx context.Context, valid []int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		query, args, err := sq.Update("edits").Set("flag", 0).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("store: reset edit flags: %w", err)
		}

		for start := 0; start < len(valid); start += 500 {
			end := min(start+500, len(valid))
			query, args, err := sq.Update("edits").
				Set("flag", 1).
				Where(sq.Eq{"id": valid[start:end]}).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("store: set edit flags: %w", err)
			}
		}
		return nil
	})
}

// Candidate is one flagged edit with its article, revision and author.
type Candidate struct {
	Author       string
	Tongue       string
	Nationality  string
	ISO          string
	ParentID     int64
	Series       int64
	Title        string
	Language     string
	Identifier   int64
	RevisionID   int64
	Timestamp    string
	EditID       int64
	UpdatedText  string
	PreviousText string
	Size         int64
}

// Candidates returns the flagged edits of flagged articles made up to and
// including until, ordered by author.
func (s *Store) Candidates(ctx context.Context, until time.Time) ([]Candidate, error) {
	query, args, err := sq.Select(
		"DISTINCT authors.name",
		"authors.language",
		"authors.country",
		"authors.iso",
		"articles.parent_id",
		"articles.series",
		"articles.title",
		"articles.language",
		"revisions.id",
		"revisions.revision_id",
		"revisions.timestamp",
		"edits.id",
		"edits.updated_text",
		"edits.previous_text",
		"edits.size",
	).
		From("articles").
		Join("revisions ON revisions.article_id = articles.id").
		Join("authors ON authors.id = revisions.author_id").
		Join("edits ON edits.revision_id = revisions.id").
		Where(sq.Eq{"articles.flag": 1, "edits.flag": 1}).
		Where(sq.LtOrEq{"revisions.timestamp": until.Format(timestampLayout)}).
		OrderBy("authors.name", "edits.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: candidates: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var (
			c                                  Candidate
			author, tongue, country, iso       sql.NullString
			title, language, updated, previous sql.NullString
			parent, series, revisionID, size   sql.NullInt64
			timestamp                          any
		)
		if err := rows.Scan(
			&author, &tongue, &country, &iso,
			&parent, &series, &title, &language,
			&c.Identifier, &revisionID, &timestamp,
			&c.EditID, &updated, &previous, &size,
		); err != nil {
			return nil, fmt.Errorf("store: scan candidate: %w", err)
		}
		c.Author, c.Tongue, c.Nationality, c.ISO = author.String, tongue.String, country.String, iso.String
		c.ParentID, c.Series, c.RevisionID, c.Size = parent.Int64, series.Int64, revisionID.Int64, size.Int64
		c.Title, c.Language = title.String, language.String
		c.UpdatedText, c.PreviousText = updated.String, previous.String
		c.Timestamp = formatTimestamp(timestamp)
		out = append(out, c)
	}
	return out, rows.Err()
}

func formatTimestamp(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format(timestampLayout)
	case string:
		return t
	case []byte:
		return string(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// Revision returns the content of revision id and the content it replaced.
func (s *Store) Revision(ctx context.Context, id int64) (content, previous string, err error) {
	query, args, err := sq.Select("content", "previous").From("revisions").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return "", "", err
	}
	var c, p sql.NullString
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&c, &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", fmt.Errorf("%w: revision %d", ErrNotFound, id)
		}
		return "", "", fmt.Errorf("store: revision %d: %w", id, err)
	}
	return c.String, p.String, nil
}
