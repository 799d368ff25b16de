package wikiedits

import "strings"

// TokenOverlap returns the Jaccard index of the whitespace-delimited token
// sets of a and b. Duplicate tokens count once. ErrEmptyUnion is returned
// when neither input contains a token.
func TokenOverlap(a, b string) (float64, error) {
	left := tokenSet(a)
	right := tokenSet(b)

	common := 0
	for tok := range left {
		if _, ok := right[tok]; ok {
			common++
		}
	}

	union := len(left) + len(right) - common
	if union == 0 {
		return 0, ErrEmptyUnion
	}
	return float64(common) / float64(union), nil
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
