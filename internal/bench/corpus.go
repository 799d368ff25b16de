// Package bench measures how well context extraction recovers known
// contexts.
package bench

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// Case is one labelled extraction: the edit, the revision text it should be
// found in, and the expected Extract output. An empty Want means the edit
// should not be found.
type Case struct {
	ID   string
	Edit string
	Text string
	Want string
}

// Suite is a loaded case file.
type Suite struct {
	ID     string // filename without extension
	Source string
	Cases  []Case
}

// ParseSuite reads a case file of the form
//
//	{"source": "...", "cases": [{"id": "...", "edit": "...", "text": "...", "want": "..."}]}
func ParseSuite(data []byte) (Suite, error) {
	if !gjson.ValidBytes(data) {
		return Suite{}, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)

	s := Suite{Source: root.Get("source").String()}
	if s.Source == "" {
		return Suite{}, errors.New("missing source")
	}

	cases := root.Get("cases")
	if !cases.IsArray() {
		return Suite{}, errors.New("cases is not a list")
	}

	var err error
	cases.ForEach(func(key, value gjson.Result) bool {
		edit := value.Get("edit")
		if edit.String() == "" {
			err = fmt.Errorf("case %d: missing edit", key.Int())
			return false
		}
		id := value.Get("id").String()
		if id == "" {
			id = fmt.Sprintf("%d", key.Int()+1)
		}
		s.Cases = append(s.Cases, Case{
			ID:   id,
			Edit: edit.String(),
			Text: value.Get("text").String(),
			Want: value.Get("want").String(),
		})
		return true
	})
	if err != nil {
		return Suite{}, err
	}
	return s, nil
}

// LoadSuite loads and parses a case file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	s, err := ParseSuite(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	base := filepath.Base(path)
	s.ID = strings.TrimSuffix(base, filepath.Ext(base))
	return &s, nil
}

// LoadCorpus loads all .json case files from a directory.
func LoadCorpus(dir string) ([]*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var suites []*Suite
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		suite, err := LoadSuite(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		suites = append(suites, suite)
	}

	return suites, nil
}

// Cases flattens the cases of every suite.
func Cases(suites []*Suite) []Case {
	var all []Case
	for _, s := range suites {
		all = append(all, s.Cases...)
	}
	return all
}
