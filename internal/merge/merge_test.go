package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/wikiedits/internal/table"
)

func TestTables(t *testing.T) {
	a := table.New("Author", "Language")
	a.Rows = [][]string{{"alice", "de"}, {"bob", "en"}}
	b := table.New("Language", "Author", "Extra")
	b.Rows = [][]string{{"fr", "carol", "x"}}

	got, err := Tables(a, b)
	require.NoError(t, err)

	assert.Equal(t, []string{"Author", "Language", ColConflictType, "Extra"}, got.Header)
	assert.Equal(t, [][]string{
		{"alice", "de", "1", ""},
		{"bob", "en", "1", ""},
		{"carol", "fr", "2", "x"},
	}, got.Rows)
}

func TestTables_OverwritesConflictType(t *testing.T) {
	a := table.New("Author", ColConflictType)
	a.Rows = [][]string{{"alice", "7"}}

	got, err := Tables(table.New("Author"), a)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"alice", "2"}}, got.Rows)
}

func TestTables_NoInputs(t *testing.T) {
	_, err := Tables()
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(first, []byte("Author;Size\nalice;6\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("Author;Size\nbob;11\n"), 0o600))

	got, err := Files(first, second)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"alice", "6", "1"}, {"bob", "11", "2"}}, got.Rows)

	_, err = Files(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestFiles_Workbook(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(first, []byte("Author;Size\nalice;6\n"), 0o600))

	book := table.New("Author", "Size")
	book.Rows = [][]string{{"bob", "11"}}
	second := filepath.Join(dir, "b.xlsx")
	require.NoError(t, book.WriteFile(second))

	got, err := Files(first, second)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"alice", "6", "1"}, {"bob", "11", "2"}}, got.Rows)
}
