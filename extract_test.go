package wikiedits

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	const (
		budget = "the committee approved the budget and then the minister resigned in protest"
		report = "It happened on Monday when the committee approved the budget. Later the minister resigned in protest over the cuts."
	)

	tests := []struct {
		name string
		edit string
		text string
		opts []Option
		want string
	}{
		{
			name: "exact match trims cut words",
			edit: "banana",
			text: "I ate a banana today",
			opts: []Option{WithLength(10)},
			want: "...ate a <b>banana</b>",
		},
		{
			name: "exact match on both sides",
			edit: "EDIT",
			text: "alpha beta gamma delta EDIT epsilon zeta eta theta",
			want: "...beta gamma delta <b>EDIT</b> epsilon zeta eta...",
		},
		{
			name: "rightmost occurrence wins",
			edit: "cat",
			text: "one cat two cat three",
			opts: []Option{WithLength(100)},
			want: "...cat two <b>cat</b>",
		},
		{
			name: "single character window",
			edit: "a",
			text: "a...a",
			opts: []Option{WithLength(1)},
			want: "<b>a</b>",
		},
		{
			name: "custom markers",
			edit: "hello world",
			text: "say hello world again",
			opts: []Option{WithMarkers("[", "]")},
			want: "[hello world]",
		},
		{
			name: "prefix anchored partial match",
			edit: "the quick brown fox jumps",
			text: "we saw the quick brown fox leap over",
			want: "...saw <b>the quick brown fox jumps</b>",
		},
		{
			name: "suffix anchored partial match",
			edit: "QQQQQ and the river flows into the northern sea near the old harbour",
			text: "in spring the river flows into the northern sea near the old harbour where boats wait",
			want: "<b>QQQQQ and the river flows into the northern sea near the old harbour</b> where boats...",
		},
		{
			name: "prefix pass anchors at the rightmost occurrence",
			edit: "the quick brown fox jumps",
			text: "the quick brown fox ran. the quick brown fox sat",
			want: "...quick brown fox ran. <b>the quick brown fox jumps</b>",
		},
		{
			name: "suffix pass anchors at the rightmost occurrence",
			edit: "QQQQQ and the river flows into the northern sea near the old harbour",
			text: "in spring the river flows into the northern sea near the old harbour at dawn; " +
				"in autumn the river flows into the northern sea near the old harbour at dusk now",
			want: "<b>QQQQQ and the river flows into the northern sea near the old harbour</b> at dusk...",
		},
		{
			name: "full tolerance without match",
			edit: strings.Repeat("z", 60),
			text: "lorem ipsum dolor sit amet",
			opts: []Option{WithOverlapTolerance(100)},
			want: "",
		},
		{
			name: "both passes contribute",
			edit: budget,
			text: report,
			want: "...happened on Monday when <b>" + budget + "</b> over the...",
		},
		{
			name: "both passes with short window",
			edit: budget,
			text: report,
			opts: []Option{WithLength(12)},
			want: "...when <b>" + budget + "</b> over the...",
		},
		{
			name: "tolerance too strict for partial match",
			edit: budget,
			text: report,
			opts: []Option{WithOverlapTolerance(50)},
			want: "",
		},
		{
			name: "multibyte text counted in characters",
			edit: "Straße",
			text: "Die lange Straße führt",
			opts: []Option{WithLength(7)},
			want: "...lange <b>Straße</b>",
		},
		{
			name: "cjk text",
			edit: "北京",
			text: "我们 去 北京 旅游 很 开心",
			opts: []Option{WithLength(4)},
			want: "...去 <b>北京</b> 旅游...",
		},
		{
			name: "short edit without match",
			edit: "xx",
			text: "no match here",
			want: "",
		},
		{
			name: "long edit without match",
			edit: strings.Repeat("x", 5000),
			text: "lorem ipsum dolor sit amet",
			want: "",
		},
		{
			name: "empty edit",
			edit: "",
			text: "anything",
			want: "",
		},
		{
			name: "non-positive length",
			edit: "banana",
			text: "I ate a banana today",
			opts: []Option{WithLength(0)},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.edit, tc.text, tc.opts...)
			if got != tc.want {
				t.Errorf("Extract(%q, %q) = %q, want %q", tc.edit, tc.text, got, tc.want)
			}
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	edit := "minister resigned"
	text := "Later the minister resigned in protest over the cuts."

	first := Extract(edit, text, WithLength(20))
	for range 3 {
		if got := Extract(edit, text, WithLength(20)); got != first {
			t.Fatalf("Extract changed output: %q then %q", first, got)
		}
	}
}

func TestExtract_ContainsMarkedEdit(t *testing.T) {
	texts := []string{
		"edit",
		"before edit",
		"edit after",
		"some words before the edit and some words after it",
	}
	for _, text := range texts {
		got := Extract("edit", text)
		if !strings.Contains(got, "<b>edit</b>") {
			t.Errorf("Extract(%q) = %q, missing marked edit", text, got)
		}
		if len(got) > len(text)+len("<b></b>")+2*len(ellipsis) {
			t.Errorf("Extract(%q) = %q, longer than the available text", text, got)
		}
	}
}

func TestFractionOf(t *testing.T) {
	tests := []struct {
		n, pct int
		want   int
	}{
		{25, 99, 25},
		{25, 98, 24},
		{50, 1, 0}, // 0.5 rounds to even
		{51, 1, 1},
		{3, 50, 2}, // 1.5 rounds to even
		{5, 50, 2}, // 2.5 rounds to even
		{0, 99, 0},
	}
	for _, tc := range tests {
		if got := fractionOf(tc.n, tc.pct); got != tc.want {
			t.Errorf("fractionOf(%d, %d) = %d, want %d", tc.n, tc.pct, got, tc.want)
		}
	}
}

func TestMatchSuffix_ShortEditNeverAnchors(t *testing.T) {
	// 1% of anything shorter than 51 characters rounds to zero.
	edit := strings.Repeat("y", 50)
	if _, ok := matchSuffix(edit, strings.Repeat("y", 49), 90); ok {
		t.Error("matchSuffix anchored an edit shorter than 51 characters")
	}
}

func TestMatchSuffix_FullToleranceKeepsOneCharacter(t *testing.T) {
	// At 100% nothing of the edit would be left to look for.
	if after, ok := matchSuffix(strings.Repeat("z", 60), "lorem ipsum", 100); ok {
		t.Errorf("matchSuffix anchored an empty tail, got %q", after)
	}

	after, ok := matchSuffix(strings.Repeat("z", 59)+"m", "lorem ipsum dolor", 100)
	if !ok || after != " dolor" {
		t.Errorf("matchSuffix = %q, %v, want %q, true", after, ok, " dolor")
	}
}

func TestRuneWindows(t *testing.T) {
	if got := lastRunes("héllo wörld", 5); got != "wörld" {
		t.Errorf("lastRunes = %q, want %q", got, "wörld")
	}
	if got := firstRunes("héllo wörld", 5); got != "héllo" {
		t.Errorf("firstRunes = %q, want %q", got, "héllo")
	}
	if got := lastRunes("abc", 10); got != "abc" {
		t.Errorf("lastRunes = %q, want %q", got, "abc")
	}
	if got := firstRunes("", 3); got != "" {
		t.Errorf("firstRunes = %q, want empty", got)
	}
}

func BenchmarkExtract(b *testing.B) {
	text := strings.Repeat("The committee approved the budget and the minister resigned. ", 200)
	b.Run("exact", func(b *testing.B) {
		for b.Loop() {
			Extract("minister resigned", text)
		}
	})
	b.Run("partial", func(b *testing.B) {
		edit := "the committee approved the budget and the treasurer stayed on"
		for b.Loop() {
			Extract(edit, text)
		}
	})
}
