package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"domainbot/internal/storage"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }
func (f pingFunc) Ping(ctx context.Context) error        { return f(ctx) }

type sourceList struct {
	sources []storage.Source
	err     error
}

func (s sourceList) List(ctx context.Context) ([]storage.Source, error) {
	return s.sources, s.err
}

func okPing(context.Context) error { return nil }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	w := httptest.NewRecorder()
	NewHealthHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("ServeHTTP() status = %v, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
}

func TestComponentsHandler_ServeHTTP(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name        string
		db          DBPinger
		llm         LLMPinger
		sources     sourceList
		wantStatus  int
		wantDB      string
		wantOpenAI  string
		wantCrawler string
		wantMessage string
	}{
		{
			name:        "all healthy without sources",
			db:          pingFunc(okPing),
			llm:         pingFunc(okPing),
			wantStatus:  http.StatusOK,
			wantDB:      statusOK,
			wantOpenAI:  statusOK,
			wantCrawler: statusOK,
			wantMessage: "Crawler available (no sources configured)",
		},
		{
			name:        "database down",
			db:          pingFunc(func(context.Context) error { return errors.New("disk I/O error") }),
			llm:         pingFunc(okPing),
			wantStatus:  http.StatusServiceUnavailable,
			wantDB:      statusError,
			wantOpenAI:  statusOK,
			wantCrawler: statusOK,
		},
		{
			name:        "generator not configured",
			db:          pingFunc(okPing),
			wantStatus:  http.StatusServiceUnavailable,
			wantDB:      statusOK,
			wantOpenAI:  statusError,
			wantCrawler: statusOK,
		},
		{
			name: "recent crawl failure",
			db:   pingFunc(okPing),
			llm:  pingFunc(okPing),
			sources: sourceList{sources: []storage.Source{
				{BaseURL: "https://old.example", CrawlStatus: storage.CrawlDone, LastCrawledAt: at(5 * time.Hour)},
				{BaseURL: "https://new.example", CrawlStatus: storage.CrawlFailed, LastCrawledAt: at(10 * time.Minute)},
			}},
			wantStatus:  http.StatusServiceUnavailable,
			wantDB:      statusOK,
			wantOpenAI:  statusOK,
			wantCrawler: statusError,
			wantMessage: "Recent crawl failure: https://new.example",
		},
		{
			name: "old crawl failure",
			db:   pingFunc(okPing),
			llm:  pingFunc(okPing),
			sources: sourceList{sources: []storage.Source{
				{BaseURL: "https://a.example", CrawlStatus: storage.CrawlFailed, LastCrawledAt: at(3 * time.Hour)},
			}},
			wantStatus:  http.StatusOK,
			wantDB:      statusOK,
			wantOpenAI:  statusOK,
			wantCrawler: statusOK,
			wantMessage: "Crawler available (last failure 3h ago)",
		},
		{
			name: "uncrawled source is idle",
			db:   pingFunc(okPing),
			llm:  pingFunc(okPing),
			sources: sourceList{sources: []storage.Source{
				{BaseURL: "https://a.example", CrawlStatus: storage.CrawlIdle},
			}},
			wantStatus:  http.StatusOK,
			wantDB:      statusOK,
			wantOpenAI:  statusOK,
			wantCrawler: statusOK,
			wantMessage: "Crawler available (idle)",
		},
		{
			name:        "source listing fails",
			db:          pingFunc(okPing),
			llm:         pingFunc(okPing),
			sources:     sourceList{err: errors.New("locked")},
			wantStatus:  http.StatusServiceUnavailable,
			wantDB:      statusOK,
			wantOpenAI:  statusOK,
			wantCrawler: statusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewComponentsHandler(tt.db, tt.llm, tt.sources)
			h.now = func() time.Time { return now }

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/components", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			var resp ComponentsResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Backend.Status != statusOK {
				t.Errorf("backend = %+v", resp.Backend)
			}
			if resp.DB.Status != tt.wantDB || resp.OpenAI.Status != tt.wantOpenAI || resp.WebsiteCrawler.Status != tt.wantCrawler {
				t.Errorf("components = %+v", resp)
			}
			if tt.wantMessage != "" && resp.WebsiteCrawler.Message != tt.wantMessage {
				t.Errorf("crawler message = %q, want %q", resp.WebsiteCrawler.Message, tt.wantMessage)
			}
		})
	}
}
