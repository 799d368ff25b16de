package wikiedits

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrEmptyUnion indicates both inputs to a set similarity were empty.
	ErrEmptyUnion = errors.New("wikiedits: both token sets are empty")
)
