package wikiedits

import (
	"math"
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// Extract returns edit wrapped in the configured markers, surrounded by up to
// the configured number of characters of text on either side. It returns an
// empty string when edit cannot be anchored in text, when edit is empty, or
// when the configured length is not positive.
func Extract(edit, text string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if edit == "" || cfg.length <= 0 {
		return ""
	}

	prefix, suffix, ok := cutLast(text, edit)
	if !ok {
		prefix, _ = matchPrefix(edit, text, cfg.tolerance)
		suffix, _ = matchSuffix(edit, text, cfg.tolerance)
		if prefix == "" && suffix == "" {
			return ""
		}
	}

	prefix = dropFirstWord(lastRunes(prefix, cfg.length))
	suffix = dropLastWord(firstRunes(suffix, cfg.length))

	var b strings.Builder
	b.Grow(len(prefix) + len(cfg.open) + len(edit) + len(cfg.close) + len(suffix) + 2*len(ellipsis))
	if prefix != "" {
		b.WriteString(ellipsis)
		b.WriteString(prefix)
	}
	b.WriteString(cfg.open)
	b.WriteString(edit)
	b.WriteString(cfg.close)
	if suffix != "" {
		b.WriteString(suffix)
		b.WriteString(ellipsis)
	}
	return b.String()
}

// matchPrefix shrinks the leading part of edit from 99% of its length down to
// (100-tolerance)% and returns the text preceding the rightmost occurrence of
// the first candidate found in text.
func matchPrefix(edit, text string, tolerance int) (string, bool) {
	runes := []rune(edit)
	for i := 100; i > 100-tolerance; i-- {
		n := fractionOf(len(runes), i-1)
		if n == 0 {
			break
		}
		if before, _, ok := cutLast(text, string(runes[:n])); ok {
			return before, true
		}
	}
	return "", false
}

// matchSuffix drops 1% up to tolerance% of the leading characters of edit and
// returns the text following the rightmost occurrence of the first remaining
// tail found in text.
func matchSuffix(edit, text string, tolerance int) (string, bool) {
	runes := []rune(edit)
	for i := 0; i < tolerance; i++ {
		n := fractionOf(len(runes), i+1)
		if n == 0 || n >= len(runes) {
			break
		}
		if _, after, ok := cutLast(text, string(runes[n:])); ok {
			return after, true
		}
	}
	return "", false
}

// fractionOf returns pct percent of n rounded half to even.
func fractionOf(n, pct int) int {
	return int(math.RoundToEven(float64(n) * (float64(pct) / 100)))
}

// cutLast slices s around the last instance of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return "", "", false
}

// lastRunes returns at most the last n runes of s.
func lastRunes(s string, n int) string {
	i := len(s)
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return s[i:]
}

// firstRunes returns at most the first n runes of s.
func firstRunes(s string, n int) string {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

// dropFirstWord removes everything up to and including the first space.
func dropFirstWord(s string) string {
	if _, rest, ok := strings.Cut(s, " "); ok {
		return rest
	}
	return ""
}

// dropLastWord removes the last space and everything after it.
func dropLastWord(s string) string {
	if i := strings.LastIndex(s, " "); i >= 0 {
		return s[:i]
	}
	return ""
}
