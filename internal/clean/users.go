package clean

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jamesainslie/wikiedits/internal/store"
)

// ReadUsers parses a comma separated users file with the columns Author,
// Language and Country, plus an optional ISO territory column.
func ReadUsers(r io.Reader) ([]store.Author, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty", ErrInvalidUsers)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsers, err)
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	for _, required := range []string{"Author", "Language", "Country"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidUsers, required)
		}
	}

	get := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var users []store.Author
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUsers, err)
		}
		u := store.Author{
			Name:     get(rec, "Author"),
			Language: get(rec, "Language"),
			Country:  get(rec, "Country"),
			ISO:      strings.ToUpper(get(rec, "ISO")),
		}
		if u.Name == "" {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// ReadUsersFile reads a users file from path.
func ReadUsersFile(path string) ([]store.Author, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening users file: %w", err)
	}
	defer f.Close()
	return ReadUsers(f)
}
