// Package wikiedits locates Wikipedia edits inside the revision text they
// were taken from and packages them as bounded, marked-up context windows.
//
// # Quick Start
//
//	ctx := wikiedits.Extract("banana", "I ate a banana today",
//	    wikiedits.WithLength(10),
//	)
//	// ctx == "...ate a <b>banana</b>"
//
//	score, err := wikiedits.TokenOverlap("a b c", "b c d")
//	// score == 0.5
//
// # Matching
//
// Extract prefers the rightmost verbatim occurrence of the edit. When the
// edit does not occur verbatim, a prefix-anchored pass shrinks the leading
// part of the edit and a suffix-anchored pass shrinks the trailing part, each
// down to the configured overlap tolerance. Either pass may supply context on
// its own side. An edit that cannot be anchored yields an empty string.
//
// Lengths are counted in Unicode code points, so right-to-left and CJK
// revisions are cut on character boundaries.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package wikiedits
