package tokenizer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidStopwords indicates the stopwords file is not a JSON object of
// language codes to word lists.
var ErrInvalidStopwords = errors.New("tokenizer: invalid stopwords dictionary")

// Stopwords is a set of words dropped by Words.
type Stopwords map[string]struct{}

// Contains reports whether w is a stopword.
func (s Stopwords) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// LoadStopwords reads the word list for language from a stopwords-iso style
// JSON file ({"en": ["a", "about", ...], ...}). A language missing from the
// file yields an empty set.
func LoadStopwords(path, language string) (Stopwords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stopwords: %w", err)
	}
	return ParseStopwords(data, language)
}

// ParseStopwords extracts the word list for language from JSON data.
func ParseStopwords(data []byte, language string) (Stopwords, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidStopwords
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrInvalidStopwords
	}

	words := root.Get(gjson.Escape(language))
	if !words.Exists() {
		return Stopwords{}, nil
	}
	if !words.IsArray() {
		return nil, fmt.Errorf("%w: %q is not a list", ErrInvalidStopwords, language)
	}

	set := make(Stopwords)
	for _, w := range words.Array() {
		set[norm.NFC.String(w.String())] = struct{}{}
	}
	return set, nil
}

// Words splits text at whitespace and punctuation into tokens and keeps the
// ones made only of letters, dropping stopwords. Hyphens, apostrophes, slashes
// and periods do not split a token, so "well-known" and "abc123" are dropped
// whole rather than broken into words. Periods and quotes at either end of a
// token are trimmed first.
func Words(text string, stop Stopwords) []string {
	fields := strings.FieldsFunc(norm.NFC.String(text), splitsWords)

	words := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".'’")
		if f == "" || !alphabetic(f) || stop.Contains(f) {
			continue
		}
		words = append(words, f)
	}
	return words
}

func splitsWords(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '-', '\'', '’', '/', '.', '_':
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func alphabetic(s string) bool {
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.Is(unicode.M, r) {
			return false
		}
	}
	return true
}
