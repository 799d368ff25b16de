package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"time"

	sq "github.com/Masterminds/squirrel"
	// Register modernc SQLite driver with database/sql.
	_ "modernc.org/sqlite"
)

// RequiredTables lists the tables every edit database must contain.
var RequiredTables = []string{"articles", "revisions", "edits", "authors"}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config captures how the database is opened.
type Config struct {
	// Path is the database file or ":memory:".
	Path string

	// BusyTimeout configures sqlite busy timeout via PRAGMA busy_timeout.
	BusyTimeout time.Duration

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store wraps an open edit database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func buildDSN(cfg Config) (string, error) {
	if cfg.Path == "" {
		return "", fmt.Errorf("store: empty database path")
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	if cfg.BusyTimeout > 0 {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	}
	return "file:" + cfg.Path + "?" + q.Encode(), nil
}

// Open opens the database at cfg.Path. The file is created when missing;
// call Migrate to create the schema, or Validate to check an existing one.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping database: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for fixtures and ad hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Validate checks that all RequiredTables exist.
func (s *Store) Validate(ctx context.Context) error {
	for _, table := range RequiredTables {
		query, args, err := sq.Select("count(name)").
			From("sqlite_master").
			Where(sq.Eq{"type": "table", "name": table}).
			ToSql()
		if err != nil {
			return fmt.Errorf("store: build validate query: %w", err)
		}
		var n int
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
			return fmt.Errorf("store: validate %s: %w", table, err)
		}
		if n != 1 {
			return fmt.Errorf("%w: %s", ErrInvalidDatabase, table)
		}
	}
	return nil
}

// EnsureColumn adds column to table unless it already exists. It reports
// whether the column was added.
func (s *Store) EnsureColumn(ctx context.Context, table, column, typ string) (bool, error) {
	for _, id := range []string{table, column, typ} {
		if !identifier.MatchString(id) {
			return false, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
		}
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return false, fmt.Errorf("store: table info %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf("store: scan table info: %w", err)
		}
		if name == column {
			return false, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("store: table info %s: %w", table, err)
	}
	if err := rows.Close(); err != nil {
		return false, err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, typ)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return false, fmt.Errorf("store: add column %s.%s: %w", table, column, err)
	}
	s.logger.Debug("added column", "table", table, "column", column)
	return true, nil
}

// EnsureCleaningColumns adds the columns written by the cleaning stage.
func (s *Store) EnsureCleaningColumns(ctx context.Context) error {
	columns := []struct{ table, column, typ string }{
		{"articles", "series", "INTEGER"},
		{"authors", "usertype", "TEXT"},
		{"authors", "iso", "TEXT"},
		{"edits", "flag", "BOOLEAN"},
	}
	for _, c := range columns {
		if _, err := s.EnsureColumn(ctx, c.table, c.column, c.typ); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Warn("transaction rollback failed", "error", rbErr)
			}
		} else {
			err = tx.Commit()
		}
	}()
	err = fn(tx)
	return err
}
