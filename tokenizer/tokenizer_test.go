package tokenizer

import (
	"slices"
	"testing"
)

func newTestTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := New(writeTestModel(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() {
		if err := tok.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return tok
}

func TestNew(t *testing.T) {
	tok := newTestTokenizer(t)

	if tok.VocabSize() != len(testPieces)+2 {
		t.Errorf("expected vocab size = %d, got %d", len(testPieces)+2, tok.VocabSize())
	}
	if tok.BOSID() != 0 || tok.PadID() != 1 || tok.EOSID() != 2 || tok.UnkID() != 3 {
		t.Errorf("unexpected special IDs: bos=%d pad=%d eos=%d unk=%d",
			tok.BOSID(), tok.PadID(), tok.EOSID(), tok.UnkID())
	}
}

func TestTokenizer_Encode(t *testing.T) {
	tok := newTestTokenizer(t)

	tokens := tok.Encode("Hello world")
	var texts []string
	for _, tk := range tokens {
		texts = append(texts, tk.Text)
	}
	if want := []string{"▁Hello", "▁world"}; !slices.Equal(texts, want) {
		t.Fatalf("Encode pieces = %q, want %q", texts, want)
	}
	if tokens[1].Start != 6 || tokens[1].End != 12 {
		t.Errorf("second token offsets = [%d,%d), want [6,12)", tokens[1].Start, tokens[1].End)
	}
}

func TestTokenizer_EncodeIDs(t *testing.T) {
	tok := newTestTokenizer(t)

	tests := []struct {
		name  string
		input string
		want  []int32
	}{
		{"known pieces", "Hello world", []int32{5, 6}},
		{"unknown character", "Hello!", []int32{5, 3}},
		{"fullwidth folded by nfkc", "Ｈello", []int32{5}},
		{"empty", "", []int32{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tok.EncodeIDs(tc.input)
			if !slices.Equal(got, tc.want) {
				t.Errorf("EncodeIDs(%q) = %v, want %v", tc.input, got, tc.want)
			}
			for i, id := range got {
				if id < 0 || int(id) >= tok.VocabSize() {
					t.Errorf("token %d: invalid ID %d", i, id)
				}
			}
		})
	}
}

func TestTokenizer_EncodeSequence(t *testing.T) {
	tok := newTestTokenizer(t)

	if got := tok.EncodeSequence("Hello world", 0); !slices.Equal(got, []int64{0, 5, 6, 2}) {
		t.Errorf("EncodeSequence = %v, want [0 5 6 2]", got)
	}
	if got := tok.EncodeSequence("Hello world", 3); !slices.Equal(got, []int64{0, 5, 2}) {
		t.Errorf("EncodeSequence truncated = %v, want [0 5 2]", got)
	}
	if got := tok.EncodeSequence("", 8); !slices.Equal(got, []int64{0, 2}) {
		t.Errorf("EncodeSequence empty = %v, want [0 2]", got)
	}
}

func TestTokenizer_HFIDRoundTrip(t *testing.T) {
	tok := newTestTokenizer(t)
	for sp := int32(0); sp < int32(len(testPieces)); sp++ {
		if got := tok.hfIDToSPIndex(tok.spIndexToHFID(sp)); got != sp {
			t.Errorf("round trip of SP[%d] = %d", sp, got)
		}
	}
}
