// Package tokenizer splits text for the similarity metrics: SentencePiece
// unigram pieces for the multilingual embedding model, and filtered word
// lists for the bag-of-words metrics.
package tokenizer

import (
	"fmt"
)

// Tokenizer implements XLM-RoBERTa compatible SentencePiece Unigram
// tokenization, the vocabulary shared by the multilingual sentence-embedding
// models.
//
// Token IDs are remapped from SentencePiece indices to the HuggingFace
// XLM-RoBERTa convention:
//   - HF[0] = <s>   (SP[1])
//   - HF[1] = <pad> (not in SentencePiece)
//   - HF[2] = </s>  (SP[2])
//   - HF[3] = <unk> (SP[0])
//   - HF[n+1] = SP[n] for n >= 3
type Tokenizer struct {
	pieces      map[string]int32   // token string -> SentencePiece index
	scores      map[string]float32 // token string -> log probability
	idToPiece   []string           // SentencePiece index -> token string
	pieceToType map[string]PieceType
	nfkc        bool

	bosID int32
	padID int32
	eosID int32
	unkID int32

	maxTokenLen int
}

// TokenInfo represents a token with its position in the normalized text.
type TokenInfo struct {
	ID    int32
	Text  string
	Start int // rune offset in normalized text
	End   int // rune offset in normalized text
}

// New loads a tokenizer from a SentencePiece .model file.
func New(modelPath string) (*Tokenizer, error) {
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	return FromModel(model)
}

// FromModel builds a tokenizer from an already parsed model.
func FromModel(model *Model) (*Tokenizer, error) {
	if model.Type != ModelUnigram {
		return nil, fmt.Errorf("%w: model type %d is not unigram", ErrMalformedModel, model.Type)
	}

	t := &Tokenizer{
		pieces:      make(map[string]int32, len(model.Pieces)),
		scores:      make(map[string]float32, len(model.Pieces)),
		idToPiece:   make([]string, len(model.Pieces)),
		pieceToType: make(map[string]PieceType, len(model.Pieces)),
		nfkc:        model.Normalizer == "" || model.Normalizer == "nmt_nfkc" || model.Normalizer == "nfkc",
		bosID:       0, // <s>
		padID:       1, // <pad>
		eosID:       2, // </s>
		unkID:       3, // <unk>
	}

	for i, piece := range model.Pieces {
		s := piece.Piece

		t.pieces[s] = int32(i)
		t.scores[s] = piece.Score
		t.idToPiece[i] = s
		t.pieceToType[s] = piece.Type

		if n := len([]rune(s)); n > t.maxTokenLen {
			t.maxTokenLen = n
		}
	}

	return t, nil
}

// spIndexToHFID converts a SentencePiece index to a HuggingFace XLM-RoBERTa token ID.
func (t *Tokenizer) spIndexToHFID(spIndex int32) int32 {
	switch spIndex {
	case 0: // <unk>
		return 3
	case 1: // <s>
		return 0
	case 2: // </s>
		return 2
	default:
		return spIndex + 1
	}
}

// hfIDToSPIndex is the inverse of spIndexToHFID. <pad> has no SentencePiece
// index and maps to <unk>.
func (t *Tokenizer) hfIDToSPIndex(id int32) int32 {
	switch id {
	case 0:
		return 1
	case 1, 3:
		return 0
	case 2:
		return 2
	default:
		return id - 1
	}
}

// Close releases tokenizer resources.
func (t *Tokenizer) Close() error {
	return nil
}

// VocabSize returns the HuggingFace vocabulary size: SentencePiece pieces
// plus the inserted <pad> and the trailing <mask> tokens.
func (t *Tokenizer) VocabSize() int {
	return len(t.idToPiece) + 2
}

// BOSID returns the beginning-of-sentence token ID.
func (t *Tokenizer) BOSID() int32 { return t.bosID }

// PadID returns the padding token ID.
func (t *Tokenizer) PadID() int32 { return t.padID }

// EOSID returns the end-of-sentence token ID.
func (t *Tokenizer) EOSID() int32 { return t.eosID }

// UnkID returns the unknown token ID.
func (t *Tokenizer) UnkID() int32 { return t.unkID }
