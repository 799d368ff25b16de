package tokenizer

import (
	"errors"
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// PieceType mirrors sentencepiece.ModelProto.SentencePiece.Type.
type PieceType int32

const (
	PieceNormal      PieceType = 1
	PieceUnknown     PieceType = 2
	PieceControl     PieceType = 3
	PieceUserDefined PieceType = 4
	PieceUnused      PieceType = 5
	PieceByte        PieceType = 6
)

// ModelType mirrors sentencepiece.TrainerSpec.ModelType.
type ModelType int32

const (
	ModelUnigram ModelType = 1
	ModelBPE     ModelType = 2
	ModelWord    ModelType = 3
	ModelChar    ModelType = 4
)

// Field numbers from sentencepiece_model.proto.
const (
	fieldModelPieces     protowire.Number = 1
	fieldModelTrainer    protowire.Number = 2
	fieldModelNormalizer protowire.Number = 3

	fieldPiecePiece protowire.Number = 1
	fieldPieceScore protowire.Number = 2
	fieldPieceType  protowire.Number = 3

	fieldTrainerModelType protowire.Number = 3

	fieldNormalizerName protowire.Number = 1
)

// ErrMalformedModel indicates the model file is not a SentencePiece protobuf.
var ErrMalformedModel = errors.New("tokenizer: malformed sentencepiece model")

// Piece represents a vocabulary piece from the model.
type Piece struct {
	Piece string
	Score float32
	Type  PieceType
}

// Model represents a loaded SentencePiece model.
type Model struct {
	Pieces     []Piece
	Type       ModelType
	Normalizer string // normalization rule name, e.g. "nmt_nfkc"
}

// LoadModel loads a SentencePiece model from a .model file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	model, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("parsing protobuf: %w", err)
	}
	return model, nil
}

// ParseModel decodes the wire form of a sentencepiece.ModelProto. Fields the
// tokenizer does not use are skipped.
func ParseModel(data []byte) (*Model, error) {
	model := &Model{Type: ModelUnigram}

	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldModelPieces && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			piece, err := parsePiece(v)
			if err != nil {
				return 0, err
			}
			model.Pieces = append(model.Pieces, piece)
			return n, nil

		case num == fieldModelTrainer && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			mt, err := parseModelType(v)
			if err != nil {
				return 0, err
			}
			if mt != 0 {
				model.Type = mt
			}
			return n, nil

		case num == fieldModelNormalizer && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			name, err := parseNormalizerName(v)
			if err != nil {
				return 0, err
			}
			model.Normalizer = name
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return nil, err
	}

	if len(model.Pieces) == 0 {
		return nil, fmt.Errorf("%w: no pieces", ErrMalformedModel)
	}
	return model, nil
}

func parsePiece(data []byte) (Piece, error) {
	p := Piece{Type: PieceNormal}
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldPiecePiece && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			p.Piece = string(v)
			return n, nil
		case num == fieldPieceScore && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			p.Score = math.Float32frombits(v)
			return n, nil
		case num == fieldPieceType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			p.Type = PieceType(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return p, err
}

func parseModelType(data []byte) (ModelType, error) {
	var mt ModelType
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == fieldTrainerModelType && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			mt = ModelType(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return mt, err
}

func parseNormalizerName(data []byte) (string, error) {
	var name string
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == fieldNormalizerName && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			name = string(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return name, err
}

// walkFields calls fn for every field in a protobuf message. fn returns the
// number of bytes it consumed after the tag, negative on a wire error.
func walkFields(data []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedModel, protowire.ParseError(n))
		}
		data = data[n:]

		m, err := fn(num, typ, data)
		if err != nil {
			return err
		}
		if m < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformedModel, num, protowire.ParseError(m))
		}
		data = data[m:]
	}
	return nil
}
