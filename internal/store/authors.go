package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Author types written to authors.usertype.
const (
	UserRegistered = "registered"
	UserAnonymous  = "anonymous"
)

// Author carries the attribution written for one author name. Empty fields
// are stored as NULL.
type Author struct {
	Name     string
	Language string
	Country  string
	ISO      string
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// AuthorNames returns the distinct author names.
func (s *Store) AuthorNames(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("DISTINCT name").From("authors").OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: author names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: scan author: %w", err)
		}
		if name.Valid {
			names = append(names, name.String)
		}
	}
	return names, rows.Err()
}

// UpdateRegisteredAuthors writes language, country and ISO territory for
// registered authors, matched by name. It returns the number of rows updated.
func (s *Store) UpdateRegisteredAuthors(ctx context.Context, authors []Author) (int64, error) {
	return s.updateAuthors(ctx, authors, func(a Author) sq.UpdateBuilder {
		return sq.Update("authors").
			Set("language", nullable(a.Language)).
			Set("country", nullable(a.Country)).
			Set("iso", nullable(a.ISO)).
			Set("usertype", UserRegistered).
			Where(sq.Eq{"name": a.Name})
	})
}

// UpdateAnonymousAuthors writes the country located from each author's IP
// address. Language is left as is.
func (s *Store) UpdateAnonymousAuthors(ctx context.Context, authors []Author) (int64, error) {
	return s.updateAuthors(ctx, authors, func(a Author) sq.UpdateBuilder {
		return sq.Update("authors").
			Set("country", nullable(a.Country)).
			Set("iso", nullable(a.ISO)).
			Set("usertype", UserAnonymous).
			Where(sq.Eq{"name": a.Name})
	})
}

func (s *Store) updateAuthors(ctx context.Context, authors []Author, build func(Author) sq.UpdateBuilder) (int64, error) {
	var total int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, a := range authors {
			query, args, err := build(a).ToSql()
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("store: update author %q: %w", a.Name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	return total, err
}
