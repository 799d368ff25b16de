package tokenizer

import (
	"errors"
	"slices"
	"testing"
)

const stopwordsJSON = `{
  "en": ["the", "a", "of", "in"],
  "de": ["der", "die", "das"],
  "bad": "not a list"
}`

func TestParseStopwords(t *testing.T) {
	stop, err := ParseStopwords([]byte(stopwordsJSON), "en")
	if err != nil {
		t.Fatalf("ParseStopwords failed: %v", err)
	}
	if len(stop) != 4 || !stop.Contains("the") || stop.Contains("der") {
		t.Errorf("unexpected english stopwords: %v", stop)
	}

	missing, err := ParseStopwords([]byte(stopwordsJSON), "xx")
	if err != nil {
		t.Fatalf("ParseStopwords failed: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("expected no stopwords for unknown language, got %v", missing)
	}
}

func TestParseStopwords_Invalid(t *testing.T) {
	for _, input := range []string{`not json`, `["a", "b"]`} {
		if _, err := ParseStopwords([]byte(input), "en"); !errors.Is(err, ErrInvalidStopwords) {
			t.Errorf("ParseStopwords(%q) error = %v, want ErrInvalidStopwords", input, err)
		}
	}
	if _, err := ParseStopwords([]byte(stopwordsJSON), "bad"); !errors.Is(err, ErrInvalidStopwords) {
		t.Errorf("expected ErrInvalidStopwords for non-list entry, got %v", err)
	}
}

func TestWords(t *testing.T) {
	stop := Stopwords{"the": {}, "of": {}}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"punctuation and stopwords", "The capital of France, Paris.", []string{"The", "capital", "France", "Paris"}},
		{"numbers dropped", "In 1990 the war ended", []string{"In", "war", "ended"}},
		{"markup dropped", "...ate a <b>banana</b>", []string{"ate", "a", "b", "banana"}},
		{"mixed letters and digits dropped", "abc123 and x2 stay out", []string{"and", "stay", "out"}},
		{"hyphenated words dropped whole", "a well-known fact", []string{"a", "fact"}},
		{"contractions dropped whole", "it isn't over", []string{"it", "over"}},
		{"quotes trimmed", "'hello' said Ann.", []string{"hello", "said", "Ann"}},
		{"non latin", "Москва — столица России", []string{"Москва", "столица", "России"}},
		{"empty", "", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Words(tc.input, stop)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Words(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
