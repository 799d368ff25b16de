package tokenizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const sentencePieceSpace = "▁" // U+2581 LOWER ONE EIGHTH BLOCK

// normalize maps text to SentencePiece surface form: optional NFKC, runs of
// whitespace collapsed to one ▁, leading and trailing whitespace dropped and
// a ▁ prefixed to the first word.
func normalize(text string, nfkc bool) string {
	if nfkc {
		text = norm.NFKC.String(text)
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	return sentencePieceSpace + strings.Join(words, sentencePieceSpace)
}
