package tokenizer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadModel(t *testing.T) {
	model, err := LoadModel(writeTestModel(t))
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}

	if len(model.Pieces) != len(testPieces) {
		t.Fatalf("expected %d pieces, got %d", len(testPieces), len(model.Pieces))
	}
	for i, want := range testPieces {
		got := model.Pieces[i]
		if got.Piece != want.piece || got.Score != want.score || got.Type != want.typ {
			t.Errorf("piece[%d] = %+v, want %+v", i, got, want)
		}
	}
	if model.Type != ModelUnigram {
		t.Errorf("expected UNIGRAM model type, got %d", model.Type)
	}
	if model.Normalizer != "nmt_nfkc" {
		t.Errorf("expected normalizer nmt_nfkc, got %q", model.Normalizer)
	}
}

func TestLoadModel_FileNotFound(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nonexistent.model"))
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoadModel_InvalidProtobuf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	if err := os.WriteFile(path, []byte(`{"not": "a model"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadModel(path)
	if !errors.Is(err, ErrMalformedModel) {
		t.Errorf("expected ErrMalformedModel, got %v", err)
	}
}

func TestParseModel_Truncated(t *testing.T) {
	data := encodeTestModel(testPieces, ModelUnigram, "nmt_nfkc")
	if _, err := ParseModel(data[:len(data)-1]); !errors.Is(err, ErrMalformedModel) {
		t.Errorf("expected ErrMalformedModel for truncated data, got %v", err)
	}
}

func TestFromModel_RejectsBPE(t *testing.T) {
	model, err := ParseModel(encodeTestModel(testPieces, ModelBPE, "nmt_nfkc"))
	if err != nil {
		t.Fatalf("ParseModel failed: %v", err)
	}
	if _, err := FromModel(model); !errors.Is(err, ErrMalformedModel) {
		t.Errorf("expected ErrMalformedModel for BPE model, got %v", err)
	}
}
