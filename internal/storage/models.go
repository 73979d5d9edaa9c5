package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Crawl statuses of a website source.
const (
	CrawlIdle    = "idle"
	CrawlRunning = "running"
	CrawlDone    = "done"
	CrawlFailed  = "failed"
)

// QAEntry is a curated question/answer pair.
type QAEntry struct {
	ID        int64
	Question  string
	Answer    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Source is a website whose pages are crawled into the corpus.
// Pages of a disabled source never take part in retrieval.
type Source struct {
	ID            int64
	BaseURL       string
	Enabled       bool
	CrawlStatus   string
	LastCrawledAt *time.Time
	CreatedAt     time.Time
	PageCount     int // filled by List only
}

// WebPage is the extracted text of one crawled URL.
type WebPage struct {
	ID          int64
	SourceID    int64
	URL         string
	Title       string
	Content     string
	ContentHash string // MD5 hex of Content
	UpdatedAt   time.Time
}

// Intent is an operator-authored canned reply keyed by comma-separated keywords.
type Intent struct {
	ID        int64
	Name      string
	Keywords  string
	Response  string
	Enabled   bool
	Priority  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Greeting struct {
	ID        int64
	Message   string
	Enabled   bool
	Priority  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SourceIDs is the citation object stored with each chat log row.
type SourceIDs struct {
	KBIDs      []int64 `json:"kb_ids"`
	WebPageIDs []int64 `json:"website_page_ids"`
}

// Empty reports whether no source is cited.
func (s SourceIDs) Empty() bool {
	return len(s.KBIDs) == 0 && len(s.WebPageIDs) == 0
}

// Value implements driver.Valuer.
func (s SourceIDs) Value() (driver.Value, error) {
	if s.KBIDs == nil {
		s.KBIDs = []int64{}
	}
	if s.WebPageIDs == nil {
		s.WebPageIDs = []int64{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL scans to an empty citation.
func (s *SourceIDs) Scan(src any) error {
	*s = SourceIDs{}
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported sources_json type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, s)
}

// ChatLog is the write-once audit record of one chat turn.
type ChatLog struct {
	ID          int64
	SessionID   string
	UserMessage string
	BotMessage  string
	Sources     SourceIDs
	Refused     bool
	Intent      string // empty when no intent matched
	CreatedAt   time.Time
}

// LogFilter pages and filters chat log listings.
type LogFilter struct {
	Limit  int
	Offset int
	Search string
}
