package textnorm

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "  \t\n ", want: ""},
		{name: "lowercase ascii", in: "Hello World", want: "hello world"},
		{name: "punctuation stripped", in: "hello, world!!", want: "hello world"},
		{name: "ascii question mark stripped", in: "what?", want: "what"},
		{name: "persian question mark kept", in: "چیست؟", want: "چیست؟"},
		{name: "arabic yeh and kaf", in: "كتاب علي", want: "کتاب علی"},
		{name: "teh marbuta", in: "مدرسة", want: "مدرسه"},
		{name: "hamza alef variants", in: "أحمد إيران آب", want: "احمد ایران اب"},
		{name: "hamza waw and yeh", in: "مؤمن مسئول", want: "مومن مسیول"},
		{name: "decomposed alef madda composes then unifies", in: "\u0627\u0653ب", want: "اب"},
		{name: "whitespace collapsed", in: "  ساعات   کاری\tشما  ", want: "ساعات کاری شما"},
		{name: "underscore kept", in: "snake_case", want: "snake_case"},
		{name: "digits kept", in: "9 صبح تا 6 عصر", want: "9 صبح تا 6 عصر"},
		{name: "emoji stripped", in: "سلام 👋", want: "سلام"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello, World!",
		"ساعات کاری شما چیست؟",
		"كيف حالك؟ أنا بخير",
		"آٓ",
		"أٓ test",
		"MiXeD 123 -- ___ !!",
		"ﻻ ﷲ presentation forms",
		"  multiple   spaces\n\nand\ttabs ",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestIsWordRune(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'9', true},
		{'_', true},
		{'ب', true},
		{'؟', true},
		{'،', true},
		{'?', false},
		{'!', false},
		{'-', false},
		{' ', false},
	}

	for _, tt := range tests {
		if got := IsWordRune(tt.r); got != tt.want {
			t.Errorf("IsWordRune(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
