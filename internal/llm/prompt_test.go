package llm

import (
	"strings"
	"testing"

	"domainbot/internal/rag"
)

func TestSourcesList(t *testing.T) {
	tests := []struct {
		name    string
		sources []rag.SourceRef
		want    string
	}{
		{name: "none", sources: nil, want: "هیچ منبعی یافت نشد"},
		{
			name:    "kb only",
			sources: []rag.SourceRef{{Type: rag.SourceTypeKB, ID: 4, Title: "سوال"}},
			want:    "1. پایگاه دانش: سوال (ID: 4)",
		},
		{
			name: "mixed keeps numbering",
			sources: []rag.SourceRef{
				{Type: rag.SourceTypeKB, ID: 1, Title: "a"},
				{Type: rag.SourceTypeWebsite, ID: 9, Title: "b", URL: "https://x.test/b"},
			},
			want: "1. پایگاه دانش: a (ID: 1)\n2. وب‌سایت: b (URL: https://x.test/b)",
		},
		{
			name:    "unknown type skipped",
			sources: []rag.SourceRef{{Type: "other", ID: 1}},
			want:    "هیچ منبعی یافت نشد",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sourcesList(tt.sources); got != tt.want {
				t.Errorf("sourcesList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	got := BuildSystemPrompt("CONTEXT-BODY", nil)
	if !strings.Contains(got, "متن:\nCONTEXT-BODY\n\nمنابع استفاده شده:\nهیچ منبعی یافت نشد") {
		t.Errorf("BuildSystemPrompt() did not embed context and sources:\n%s", got)
	}
	if !strings.Contains(got, "در منابع موجود نیست") {
		t.Error("BuildSystemPrompt() missing the not-found instruction")
	}
}

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace collapsed", in: "  a \n\n b\t c ", want: "a b c"},
		{name: "long phrase removed whole", in: "پاسخ. از مدیر بخواهید این سوال را اضافه کند.", want: "پاسخ."},
		{name: "phrase with persian comma", in: "از مدیر بخواهید، ممنون", want: "ممنون"},
		{name: "polite variant", in: "لطفا از مدیر بخواهید", want: ""},
		{name: "admin panel", in: "این را در پنل مدیریت اضافه کنید", want: "این را"},
		{name: "untouched", in: "طبق پایگاه دانش پاسخ این است", want: "طبق پایگاه دانش پاسخ این است"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanAnswer(tt.in); got != tt.want {
				t.Errorf("CleanAnswer(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
