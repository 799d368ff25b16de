package tokenizer

import "slices"

const negInf = -1e9

// EncodeIDs returns HuggingFace-compatible token IDs for the input text.
func (t *Tokenizer) EncodeIDs(text string) []int32 {
	tokens := t.Encode(text)
	ids := make([]int32, len(tokens))
	for i, tok := range tokens {
		ids[i] = tok.ID
	}
	return ids
}

// EncodeSequence returns model input IDs wrapped in <s> and </s>, truncated
// so the whole sequence holds at most maxLen IDs. maxLen < 3 disables
// truncation.
func (t *Tokenizer) EncodeSequence(text string, maxLen int) []int64 {
	ids := t.EncodeIDs(text)
	if maxLen >= 3 && len(ids) > maxLen-2 {
		ids = ids[:maxLen-2]
	}

	seq := make([]int64, 0, len(ids)+2)
	seq = append(seq, int64(t.bosID))
	for _, id := range ids {
		seq = append(seq, int64(id))
	}
	seq = append(seq, int64(t.eosID))
	return seq
}

// lattice node: the best segmentation of the runes before this position
// ends with piece, which starts at start.
type node struct {
	score float64
	start int
	piece string
}

// Encode tokenizes text using the Viterbi algorithm, returning tokens with
// offsets into the normalized text.
func (t *Tokenizer) Encode(text string) []TokenInfo {
	runes := []rune(normalize(text, t.nfkc))
	n := len(runes)
	if n == 0 {
		return nil
	}

	unkScore := float64(t.scores[t.idToPiece[t.hfIDToSPIndex(t.unkID)]])

	lattice := make([]node, n+1)
	for end := 1; end <= n; end++ {
		best := node{score: negInf, start: -1}
		for start := end - 1; start >= max(0, end-t.maxTokenLen); start-- {
			piece := string(runes[start:end])
			if !t.usable(piece) {
				continue
			}
			if s := lattice[start].score + float64(t.scores[piece]); s > best.score {
				best = node{score: s, start: start, piece: piece}
			}
		}
		// No piece ends here: the last rune becomes <unk>.
		if best.start < 0 {
			best = node{score: lattice[end-1].score + unkScore, start: end - 1, piece: string(runes[end-1])}
		}
		lattice[end] = best
	}

	var tokens []TokenInfo
	for end := n; end > 0; end = lattice[end].start {
		nd := lattice[end]
		spIndex, ok := t.pieces[nd.piece]
		if !ok {
			spIndex = 0 // <unk>
		}
		tokens = append(tokens, TokenInfo{
			ID:    t.spIndexToHFID(spIndex),
			Text:  nd.piece,
			Start: nd.start,
			End:   end,
		})
	}
	slices.Reverse(tokens)
	return tokens
}

// usable reports whether piece is a normal vocabulary piece.
func (t *Tokenizer) usable(piece string) bool {
	if _, ok := t.scores[piece]; !ok {
		return false
	}
	typ := t.pieceToType[piece]
	return typ != PieceControl && typ != PieceUnused
}
