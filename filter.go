package wikiedits

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsMeaningful reports whether edit is worth keeping for the revision it
// belongs to. Edits of a single character or only whitespace never are.
//
// With samples <= 1 the edit must occur verbatim in revision. Otherwise edit
// is wrapped into lines of ceil(len/samples) characters and at least half of
// those lines must occur in revision.
func IsMeaningful(edit, revision string, samples int) bool {
	n := utf8.RuneCountInString(edit)
	if n <= 1 || isSpace(edit) {
		return false
	}

	if samples <= 1 {
		return strings.Contains(revision, edit)
	}

	width := (n + samples - 1) / samples
	found := 0
	for _, line := range wrap(edit, width) {
		if strings.Contains(revision, line) {
			found++
		}
	}
	return 2*found >= samples
}

func isSpace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// wrap greedily fills lines of at most width runes from the whitespace
// separated words of s, joining words with a single space. Words longer than
// width are broken, first filling whatever room is left on the current line.
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}

	var (
		lines []string
		line  []rune
	)
	flush := func() {
		if len(line) > 0 {
			lines = append(lines, string(line))
			line = line[:0]
		}
	}

	for _, word := range strings.Fields(s) {
		w := []rune(word)
		sep := 0
		if len(line) > 0 {
			sep = 1
		}

		if len(line)+sep+len(w) <= width {
			if sep == 1 {
				line = append(line, ' ')
			}
			line = append(line, w...)
			continue
		}

		if len(w) <= width {
			flush()
			line = append(line, w...)
			continue
		}

		// Long word: split across lines.
		if room := width - len(line) - sep; room > 0 {
			if sep == 1 {
				line = append(line, ' ')
			}
			line = append(line, w[:room]...)
			w = w[room:]
		}
		flush()
		for len(w) > width {
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		line = append(line, w...)
	}
	flush()

	return lines
}
