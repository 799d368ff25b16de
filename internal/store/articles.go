package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// AssignSeries numbers every parent article (parent_id = 0) in id order and
// writes that number to the series column of the parent and every article
// with an id between the parent and its last child. It returns the number of
// series assigned.
func (s *Store) AssignSeries(ctx context.Context) (int, error) {
	parents, err := s.int64s(ctx, sq.Select("id").From("articles").Where(sq.Eq{"parent_id": 0}).OrderBy("id"))
	if err != nil {
		return 0, fmt.Errorf("store: list parent articles: %w", err)
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		for i, parent := range parents {
			last := parent
			query, args, err := sq.Select("max(id)").From("articles").Where(sq.Eq{"parent_id": parent}).ToSql()
			if err != nil {
				return err
			}
			var child sql.NullInt64
			if err := tx.QueryRowContext(ctx, query, args...).Scan(&child); err != nil {
				return fmt.Errorf("store: last child of %d: %w", parent, err)
			}
			if child.Valid && child.Int64 > last {
				last = child.Int64
			}

			query, args, err = sq.Update("articles").
				Set("series", i+1).
				Where(sq.And{sq.GtOrEq{"id": parent}, sq.LtOrEq{"id": last}}).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("store: assign series %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("assigned series", "count", len(parents))
	return len(parents), nil
}

// ArticleTitle returns the title of article id.
func (s *Store) ArticleTitle(ctx context.Context, id int64) (string, error) {
	query, args, err := sq.Select("title").From("articles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return "", err
	}
	var title sql.NullString
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: article %d", ErrNotFound, id)
		}
		return "", fmt.Errorf("store: article title %d: %w", id, err)
	}
	return title.String, nil
}

// SeriesLanguages returns the languages of the flagged articles in series.
func (s *Store) SeriesLanguages(ctx context.Context, series int64) ([]string, error) {
	query, args, err := sq.Select("language").
		From("articles").
		Where(sq.Eq{"series": series, "flag": 1}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: series languages %d: %w", series, err)
	}
	defer rows.Close()

	var langs []string
	for rows.Next() {
		var lang sql.NullString
		if err := rows.Scan(&lang); err != nil {
			return nil, fmt.Errorf("store: scan language: %w", err)
		}
		if lang.Valid {
			langs = append(langs, lang.String)
		}
	}
	return langs, rows.Err()
}

func (s *Store) int64s(ctx context.Context, b sq.SelectBuilder) ([]int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
