package rag

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"domainbot/internal/config"
	"domainbot/internal/storage"
)

func TestGuard_Decide(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		res       Result
		want      Decision
	}{
		{
			name:      "no results",
			threshold: 0.7,
			res:       Result{},
			want:      Decision{State: StateRefuse, Reason: ReasonNoMatchingSource},
		},
		{
			name:      "no results at zero threshold",
			threshold: 0,
			res:       Result{},
			want:      Decision{State: StateRefuse, Reason: ReasonNoMatchingSource},
		},
		{
			name:      "below threshold",
			threshold: 0.7,
			res:       Result{HasResults: true, MaxConfidence: 0.6571},
			want:      Decision{State: StateRefuse, Reason: "LOW_CONFIDENCE_0.66_BELOW_0.7"},
		},
		{
			name:      "below higher threshold",
			threshold: 0.85,
			res:       Result{HasResults: true, MaxConfidence: 0.8},
			want:      Decision{State: StateRefuse, Reason: "LOW_CONFIDENCE_0.80_BELOW_0.85"},
		},
		{
			name:      "exactly at threshold",
			threshold: 0.7,
			res:       Result{HasResults: true, MaxConfidence: 0.7},
			want:      Decision{State: StateAnswer},
		},
		{
			name:      "above threshold",
			threshold: 0.7,
			res:       Result{HasResults: true, MaxConfidence: 0.95},
			want:      Decision{State: StateAnswer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(withThreshold(tt.threshold))
			got := g.Decide(tt.res)
			if got != tt.want {
				t.Errorf("Decide() = %+v, want %+v", got, tt.want)
			}
			if g.ShouldRefuse(tt.res) != (tt.want.State == StateRefuse) {
				t.Errorf("ShouldRefuse() disagrees with Decide()")
			}
		})
	}
}

func TestGuard_RefusalIsMonotonicInThreshold(t *testing.T) {
	res := Result{HasResults: true, MaxConfidence: 0.6571}

	refusedBefore := false
	for i := 0; i <= 100; i++ {
		threshold := float64(i) / 100
		refused := NewGuard(withThreshold(threshold)).ShouldRefuse(res)
		if refusedBefore && !refused {
			t.Fatalf("threshold %v answers after a lower threshold refused", threshold)
		}
		if want := res.MaxConfidence < threshold; refused != want {
			t.Errorf("threshold %v: ShouldRefuse() = %v, want %v", threshold, refused, want)
		}
		refusedBefore = refused
	}
}

func TestGuard_Threshold(t *testing.T) {
	if got := NewGuard(config.DefaultRetrieval()).Threshold(); got != 0.70 {
		t.Errorf("Threshold() = %v, want 0.70", got)
	}
}

func TestGuard_BuildContext(t *testing.T) {
	long := strings.Repeat("ب", 600)

	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "empty",
			res:  Result{},
			want: "",
		},
		{
			name: "kb only",
			res: Result{KB: []ScoredQA{
				{Entry: storage.QAEntry{ID: 1, Question: "q1", Answer: "a1"}},
				{Entry: storage.QAEntry{ID: 2, Question: "q2", Answer: "a2"}},
			}},
			want: "=== Knowledge Base ===\nQ: q1\nA: a1\n\nQ: q2\nA: a2\n",
		},
		{
			name: "website untitled and truncated",
			res: Result{Website: []ScoredPage{
				{Page: storage.WebPage{ID: 5, URL: "https://example.com/a", Content: long}},
			}},
			want: "=== Website Content ===\nTitle: Untitled\nURL: https://example.com/a\nContent: " +
				strings.Repeat("ب", 500) + "...\n",
		},
		{
			name: "both sections",
			res: Result{
				KB:      []ScoredQA{{Entry: storage.QAEntry{ID: 1, Question: "q", Answer: "a"}}},
				Website: []ScoredPage{{Page: storage.WebPage{ID: 2, Title: "t", URL: "u", Content: "short"}}},
			},
			want: "=== Knowledge Base ===\nQ: q\nA: a\n\n=== Website Content ===\nTitle: t\nURL: u\nContent: short\n",
		},
	}

	g := NewGuard(config.DefaultRetrieval())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.BuildContext(tt.res); got != tt.want {
				t.Errorf("BuildContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGuard_BuildContext_ExactLengthNotTruncated(t *testing.T) {
	content := strings.Repeat("x", 500)
	res := Result{Website: []ScoredPage{{Page: storage.WebPage{Title: "t", URL: "u", Content: content}}}}

	got := NewGuard(config.DefaultRetrieval()).BuildContext(res)
	if strings.Contains(got, "...") {
		t.Errorf("BuildContext() truncated content of exactly the excerpt length")
	}
}

func TestExtractSourceIDs(t *testing.T) {
	res := Result{
		KB:      []ScoredQA{{Entry: storage.QAEntry{ID: 3}}, {Entry: storage.QAEntry{ID: 1}}},
		Website: []ScoredPage{{Page: storage.WebPage{ID: 9}}},
	}

	got := ExtractSourceIDs(res)
	want := storage.SourceIDs{KBIDs: []int64{3, 1}, WebPageIDs: []int64{9}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSourceIDs() = %+v, want %+v", got, want)
	}

	empty := ExtractSourceIDs(Result{})
	if empty.KBIDs == nil || empty.WebPageIDs == nil {
		t.Fatalf("ExtractSourceIDs() on empty result returned nil slices")
	}
	data, err := json.Marshal(empty)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `{"kb_ids":[],"website_page_ids":[]}` {
		t.Errorf("json = %s", data)
	}
}

func TestSources(t *testing.T) {
	res := Result{
		KB: []ScoredQA{{Entry: storage.QAEntry{ID: 1, Question: "q"}, Score: 0.9}},
		Website: []ScoredPage{
			{Page: storage.WebPage{ID: 7, Title: "t", URL: "https://example.com"}, Score: 0.8},
		},
	}

	want := []SourceRef{
		{Type: SourceTypeKB, ID: 1, Title: "q", Score: 0.9},
		{Type: SourceTypeWebsite, ID: 7, Title: "t", URL: "https://example.com", Score: 0.8},
	}
	if got := Sources(res); !reflect.DeepEqual(got, want) {
		t.Errorf("Sources() = %+v, want %+v", got, want)
	}

	if got := Sources(Result{}); got == nil || len(got) != 0 {
		t.Errorf("Sources() on empty result = %#v, want empty non-nil slice", got)
	}
}
