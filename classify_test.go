package wikiedits

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		updated, previous string
		want              Kind
	}{
		{"", "", NoOp},
		{"added", "", Insertion},
		{"new", "old", Revision},
		{"", "removed", Deletion},
		{" ", "", Insertion},
	}

	for _, tc := range tests {
		if got := Classify(tc.updated, tc.previous); got != tc.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", tc.updated, tc.previous, got, tc.want)
		}
	}
}

func TestKind_Values(t *testing.T) {
	// Persisted in datasets; must not drift.
	if NoOp != 0 || Insertion != 1 || Revision != 2 || Deletion != 3 {
		t.Fatalf("unexpected kind values: %d %d %d %d", NoOp, Insertion, Revision, Deletion)
	}
	if Kind(7).String() != "unknown" {
		t.Errorf("Kind(7).String() = %q", Kind(7).String())
	}
}
