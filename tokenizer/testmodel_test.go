package tokenizer

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

type testPiece struct {
	piece string
	score float32
	typ   PieceType
}

// testPieces is a tiny unigram vocabulary laid out like XLM-RoBERTa:
// <unk>, <s>, </s>, then normal pieces.
var testPieces = []testPiece{
	{"<unk>", 0, PieceUnknown},
	{"<s>", 0, PieceControl},
	{"</s>", 0, PieceControl},
	{"▁", -3, PieceNormal},
	{"▁Hello", -1, PieceNormal},
	{"▁world", -1, PieceNormal},
	{"▁wor", -2, PieceNormal},
	{"ld", -2, PieceNormal},
	{"H", -5, PieceNormal},
	{"e", -5, PieceNormal},
	{"l", -5, PieceNormal},
	{"o", -5, PieceNormal},
}

func encodeTestModel(pieces []testPiece, modelType ModelType, normalizer string) []byte {
	var b []byte
	for _, p := range pieces {
		var pb []byte
		pb = protowire.AppendTag(pb, fieldPiecePiece, protowire.BytesType)
		pb = protowire.AppendString(pb, p.piece)
		pb = protowire.AppendTag(pb, fieldPieceScore, protowire.Fixed32Type)
		pb = protowire.AppendFixed32(pb, math.Float32bits(p.score))
		pb = protowire.AppendTag(pb, fieldPieceType, protowire.VarintType)
		pb = protowire.AppendVarint(pb, uint64(p.typ))

		b = protowire.AppendTag(b, fieldModelPieces, protowire.BytesType)
		b = protowire.AppendBytes(b, pb)
	}

	var trainer []byte
	trainer = protowire.AppendTag(trainer, 1, protowire.BytesType) // input, skipped
	trainer = protowire.AppendString(trainer, "corpus.txt")
	trainer = protowire.AppendTag(trainer, fieldTrainerModelType, protowire.VarintType)
	trainer = protowire.AppendVarint(trainer, uint64(modelType))
	b = protowire.AppendTag(b, fieldModelTrainer, protowire.BytesType)
	b = protowire.AppendBytes(b, trainer)

	var normSpec []byte
	normSpec = protowire.AppendTag(normSpec, fieldNormalizerName, protowire.BytesType)
	normSpec = protowire.AppendString(normSpec, normalizer)
	b = protowire.AppendTag(b, fieldModelNormalizer, protowire.BytesType)
	b = protowire.AppendBytes(b, normSpec)

	return b
}

func writeTestModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.model")
	if err := os.WriteFile(path, encodeTestModel(testPieces, ModelUnigram, "nmt_nfkc"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
