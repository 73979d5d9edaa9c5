package similarity

import (
	"strings"
	"testing"
)

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "one empty", a: "abc", b: "", want: 0.0},
		{name: "identical", a: "abc", b: "abc", want: 1.0},
		{name: "shifted", a: "abcd", b: "bcde", want: 0.75},
		{name: "kitten sitting", a: "kitten", b: "sitting", want: 0.6153846153846154},
		{name: "persian runes", a: "سلام", b: "سلام", want: 1.0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SequenceRatio([]rune(tt.a), []rune(tt.b))
			if !approxEqual(got, tt.want) {
				t.Errorf("SequenceRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSequenceRatio_PopularRunes(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{
			// below the length cutoff every rune anchors
			name: "short candidate keeps all runes",
			a:    "ab",
			b:    strings.Repeat("ab", 99),
			want: 0.02,
		},
		{
			// both runes are popular; only the leading block extends from the origin
			name: "popular runes cannot anchor",
			a:    "ab",
			b:    strings.Repeat("ab", 150),
			want: 4.0 / 302.0,
		},
		{
			name: "rare runes still anchor",
			a:    "hello",
			b:    strings.Repeat("x", 150) + "hello",
			want: 0.0625,
		},
		{
			name: "popular rune extends a block backwards",
			a:    "xhello",
			b:    strings.Repeat("x", 250) + "hello",
			want: 0.04597701149425287,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SequenceRatio([]rune(tt.a), []rune(tt.b))
			if !approxEqual(got, tt.want) {
				t.Errorf("SequenceRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchingBlocks_Ordered(t *testing.T) {
	m := newSequenceMatcher([]rune("abxcdyef"), []rune("abcdef"))
	blocks := m.matchingBlocks()

	want := []match{{0, 0, 2}, {3, 2, 2}, {6, 4, 2}}
	if len(blocks) != len(want) {
		t.Fatalf("matchingBlocks() = %v, want %v", blocks, want)
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("block %d = %v, want %v", i, blocks[i], want[i])
		}
	}
}
