package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var boldEdit = regexp.MustCompile(`>(.+?)<`)

// editText returns the first marked-up run of a context string, the edit
// itself. Spreadsheet error values and contexts without markup yield false.
func editText(context string) (string, bool) {
	if context == "" || strings.Contains(context, "#VALUE") {
		return "", false
	}
	m := boldEdit.FindStringSubmatch(context)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// formatList renders scores as a bracketed list, NaN for missing values.
func formatList(xs []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range xs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatFloat(x))
	}
	b.WriteByte(']')
	return b.String()
}

func formatFloat(x float64) string {
	if math.IsNaN(x) {
		return "nan"
	}
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eI") {
		s += ".0"
	}
	return s
}
