package clean

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/wikiedits/internal/store"
)

type fakeLocator map[string][2]string

func (f fakeLocator) Locate(name string) (string, string, error) {
	if !strings.Contains(name, ".") {
		return "", "", fmt.Errorf("%w: %q", ErrNotIP, name)
	}
	loc, ok := f[name]
	if !ok {
		return "", "", nil
	}
	return loc[0], loc[1], nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := t.Context()

	s, err := store.Open(ctx, store.Config{Path: filepath.Join(t.TempDir(), "edits.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(ctx))

	stmts := []string{
		`INSERT INTO articles(id, parent_id, title, language, flag) VALUES
			(1, 0, 'Banana', 'en', 1), (2, 1, 'Banane', 'de', 1), (3, 0, 'Pear', 'en', 1)`,
		`INSERT INTO authors(id, name) VALUES (1, 'alice'), (2, '192.0.2.1')`,
		`INSERT INTO revisions(id, article_id, author_id, content, previous) VALUES
			(1, 1, 1, 'I ate a banana today', ''),
			(2, 2, 2, 'Ich aß eine Banane', ''),
			(3, 3, 1, 'A pear', '')`,
		`INSERT INTO edits(id, revision_id, updated_text, previous_text, size) VALUES
			(1, 1, 'banana', '', 6),
			(2, 2, 'eine Banane', '', 11),
			(3, 3, 'x', '', 1),
			(4, 3, '   ', '', 3),
			(5, 3, 'apple', '', 5)`,
	}
	for _, stmt := range stmts {
		_, err := s.DB().ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	return s
}

func flags(ctx context.Context, t *testing.T, db *sql.DB) []int64 {
	t.Helper()
	rows, err := db.QueryContext(ctx, "SELECT id FROM edits WHERE flag = 1 ORDER BY id")
	require.NoError(t, err)
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	return ids
}

func TestRun_Anonymous(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(t)

	report, err := Run(ctx, s, Options{
		Samples: 1,
		Locator: fakeLocator{"192.0.2.1": {"Netherlands", "NL"}},
	})
	require.NoError(t, err)

	assert.Equal(t, Report{Series: 2, Authors: 1, Edits: 5, Flagged: 2}, report)
	assert.Equal(t, []int64{1, 2}, flags(ctx, t, s.DB()))

	var country, iso, usertype string
	require.NoError(t, s.DB().QueryRowContext(ctx,
		"SELECT country, iso, usertype FROM authors WHERE name = '192.0.2.1'",
	).Scan(&country, &iso, &usertype))
	assert.Equal(t, "Netherlands", country)
	assert.Equal(t, "NL", iso)
	assert.Equal(t, store.UserAnonymous, usertype)

	var series int64
	require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT series FROM articles WHERE id = 2").Scan(&series))
	assert.EqualValues(t, 1, series)
}

func TestRun_Registered(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(t)

	users, err := ReadUsers(strings.NewReader("Author,Language,Country\nalice,de,Germany\n"))
	require.NoError(t, err)

	report, err := Run(ctx, s, Options{Samples: 1, Users: users})
	require.NoError(t, err)
	assert.EqualValues(t, 1, report.Authors)

	var language, usertype string
	require.NoError(t, s.DB().QueryRowContext(ctx,
		"SELECT language, usertype FROM authors WHERE name = 'alice'",
	).Scan(&language, &usertype))
	assert.Equal(t, "de", language)
	assert.Equal(t, store.UserRegistered, usertype)
}

func TestRun_Rerun(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(t)
	opts := Options{Samples: 1, Users: []store.Author{}}

	_, err := Run(ctx, s, opts)
	require.NoError(t, err)
	_, err = s.DB().ExecContext(ctx, "UPDATE revisions SET content = 'nothing' WHERE id = 1")
	require.NoError(t, err)

	report, err := Run(ctx, s, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Flagged)
	assert.Equal(t, []int64{2}, flags(ctx, t, s.DB()))
}

func TestRun_InvalidOptions(t *testing.T) {
	ctx := t.Context()
	s := newTestStore(t)

	for _, samples := range []int{0, 6} {
		_, err := Run(ctx, s, Options{Samples: samples, Users: []store.Author{}})
		assert.ErrorIs(t, err, ErrInvalidSamples, "samples %d", samples)
	}

	_, err := Run(ctx, s, Options{Samples: 1})
	assert.Error(t, err)
}

func TestRun_InvalidDatabase(t *testing.T) {
	ctx := t.Context()
	s, err := store.Open(ctx, store.Config{Path: filepath.Join(t.TempDir(), "empty.db")})
	require.NoError(t, err)
	defer s.Close()

	_, err = Run(ctx, s, Options{Samples: 1, Users: []store.Author{}})
	assert.ErrorIs(t, err, store.ErrInvalidDatabase)
}

func TestReadUsers(t *testing.T) {
	t.Run("Should read required and optional columns", func(t *testing.T) {
		in := "Country,Author,Language,ISO\nGermany,alice,de,de\nFrance,,fr,FR\n"
		users, err := ReadUsers(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, []store.Author{{Name: "alice", Language: "de", Country: "Germany", ISO: "DE"}}, users)
	})

	t.Run("Should strip a byte order mark from the header", func(t *testing.T) {
		users, err := ReadUsers(strings.NewReader("\ufeffAuthor,Language,Country\nalice,de,Germany\n"))
		require.NoError(t, err)
		assert.Equal(t, []store.Author{{Name: "alice", Language: "de", Country: "Germany"}}, users)
	})

	t.Run("Should reject files without required columns", func(t *testing.T) {
		_, err := ReadUsers(strings.NewReader("Author,Language\nalice,de\n"))
		assert.ErrorIs(t, err, ErrInvalidUsers)

		_, err = ReadUsers(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrInvalidUsers)
	})
}
