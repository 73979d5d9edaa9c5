package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_crawl_scheduler.go -package=mocks domainbot/internal/service CrawlScheduler
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_admin_service.go -package=mocks -mock_names=AdminService=MockAdminService domainbot/internal/service AdminService

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"domainbot/internal/contextutil"
	"domainbot/internal/crawler"
	"domainbot/internal/intent"
	"domainbot/internal/storage"
)

// Chat log paging bounds.
const (
	DefaultLogLimit = 100
	MaxLogLimit     = 1000
)

// CrawlScheduler runs website crawls in the background.
type CrawlScheduler interface {
	// Start launches a crawl of the source and returns immediately.
	Start(sourceID int64) error
	// Running reports whether a crawl of the source is in flight.
	Running(sourceID int64) bool
}

// QAUpdate is a partial update of a knowledge-base entry.
type QAUpdate struct {
	Question *string
	Answer   *string
}

// IntentInput creates an intent.
type IntentInput struct {
	Name     string
	Keywords string
	Response string
	Enabled  bool
	Priority int
}

// IntentUpdate is a partial update of an intent.
type IntentUpdate struct {
	Name     *string
	Keywords *string
	Response *string
	Enabled  *bool
	Priority *int
}

// GreetingInput creates a greeting.
type GreetingInput struct {
	Message  string
	Enabled  bool
	Priority int
}

// GreetingUpdate is a partial update of a greeting.
type GreetingUpdate struct {
	Message  *string
	Enabled  *bool
	Priority *int
}

// CrawlStatus describes the crawl state of a source.
type CrawlStatus struct {
	Status        string
	LastCrawledAt *time.Time
	PagesCount    int
	Message       string
}

// LogPage is one page of chat logs.
type LogPage struct {
	Logs   []storage.ChatLog
	Total  int
	Limit  int
	Offset int
}

// AdminService manages the corpus, canned replies and audit logs.
type AdminService interface {
	ListQA(ctx context.Context) ([]storage.QAEntry, error)
	CreateQA(ctx context.Context, question, answer string) (*storage.QAEntry, error)
	UpdateQA(ctx context.Context, id int64, in QAUpdate) (*storage.QAEntry, error)
	DeleteQA(ctx context.Context, id int64) error
	// ClearKB removes every knowledge-base entry and returns how many were removed.
	ClearKB(ctx context.Context) (int64, error)

	ListIntents(ctx context.Context) ([]storage.Intent, error)
	CreateIntent(ctx context.Context, in IntentInput) (*storage.Intent, error)
	UpdateIntent(ctx context.Context, id int64, in IntentUpdate) (*storage.Intent, error)
	DeleteIntent(ctx context.Context, id int64) error

	ListGreetings(ctx context.Context) ([]storage.Greeting, error)
	CreateGreeting(ctx context.Context, in GreetingInput) (*storage.Greeting, error)
	UpdateGreeting(ctx context.Context, id int64, in GreetingUpdate) (*storage.Greeting, error)
	DeleteGreeting(ctx context.Context, id int64) error

	ListSources(ctx context.Context) ([]storage.Source, error)
	CreateSource(ctx context.Context, baseURL string, enabled bool) (*storage.Source, error)
	UpdateSource(ctx context.Context, id int64, enabled *bool) (*storage.Source, error)
	DeleteSource(ctx context.Context, id int64) error
	// Recrawl starts a background crawl. A crawl already in flight for the
	// source yields ErrConflict.
	Recrawl(ctx context.Context, id int64) (CrawlStatus, error)
	CrawlStatus(ctx context.Context, id int64) (CrawlStatus, error)

	ListLogs(ctx context.Context, filter storage.LogFilter) (LogPage, error)
}

// AdminStores groups the stores the admin service writes to.
type AdminStores struct {
	QA        storage.QAStore
	Sources   storage.SourceStore
	Pages     storage.PageStore
	Intents   storage.IntentStore
	Greetings storage.GreetingStore
	Logs      storage.ChatLogStore
}

type adminService struct {
	stores AdminStores
	crawls CrawlScheduler
}

// NewAdminService creates a new AdminService.
func NewAdminService(stores AdminStores, crawls CrawlScheduler) AdminService {
	return &adminService{
		stores: stores,
		crawls: crawls,
	}
}

// mapStoreError translates storage errors into service errors.
func mapStoreError(err error, msg string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return WrapError(ErrNotFound, msg)
	default:
		return storageError(err, msg)
	}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "cannot be empty"}
	}
	return nil
}

func (s *adminService) ListQA(ctx context.Context) ([]storage.QAEntry, error) {
	entries, err := s.stores.QA.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list kb entries")
	}
	return entries, nil
}

func (s *adminService) CreateQA(ctx context.Context, question, answer string) (*storage.QAEntry, error) {
	if err := required("question", question); err != nil {
		return nil, err
	}
	if err := required("answer", answer); err != nil {
		return nil, err
	}

	entry := &storage.QAEntry{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}
	if err := s.stores.QA.Create(ctx, entry); err != nil {
		return nil, storageError(err, "failed to create kb entry")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "kb entry created", "kb_id", entry.ID)
	return entry, nil
}

func (s *adminService) UpdateQA(ctx context.Context, id int64, in QAUpdate) (*storage.QAEntry, error) {
	entry, err := s.stores.QA.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load kb entry")
	}

	if in.Question != nil {
		if err := required("question", *in.Question); err != nil {
			return nil, err
		}
		entry.Question = strings.TrimSpace(*in.Question)
	}
	if in.Answer != nil {
		if err := required("answer", *in.Answer); err != nil {
			return nil, err
		}
		entry.Answer = strings.TrimSpace(*in.Answer)
	}

	if err := s.stores.QA.Update(ctx, entry); err != nil {
		return nil, mapStoreError(err, "failed to update kb entry")
	}
	return entry, nil
}

func (s *adminService) DeleteQA(ctx context.Context, id int64) error {
	if err := s.stores.QA.Delete(ctx, id); err != nil {
		return mapStoreError(err, "failed to delete kb entry")
	}
	return nil
}

func (s *adminService) ClearKB(ctx context.Context) (int64, error) {
	n, err := s.stores.QA.DeleteAll(ctx)
	if err != nil {
		return 0, storageError(err, "failed to clear kb")
	}
	contextutil.LoggerFromContext(ctx).WarnContext(ctx, "knowledge base cleared", "deleted", n)
	return n, nil
}

func (s *adminService) ListIntents(ctx context.Context) ([]storage.Intent, error) {
	intents, err := s.stores.Intents.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list intents")
	}
	return intents, nil
}

func validateIntent(in storage.Intent) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if len(intent.Keywords(in.Keywords)) == 0 {
		return &ValidationError{Field: "keywords", Message: "must contain at least one keyword"}
	}
	return required("response", in.Response)
}

func duplicateName(err error) error {
	if errors.Is(err, storage.ErrDuplicate) {
		return &ValidationError{Field: "name", Message: "already exists"}
	}
	return nil
}

func (s *adminService) CreateIntent(ctx context.Context, in IntentInput) (*storage.Intent, error) {
	it := &storage.Intent{
		Name:     strings.TrimSpace(in.Name),
		Keywords: strings.TrimSpace(in.Keywords),
		Response: strings.TrimSpace(in.Response),
		Enabled:  in.Enabled,
		Priority: in.Priority,
	}
	if err := validateIntent(*it); err != nil {
		return nil, err
	}

	if err := s.stores.Intents.Create(ctx, it); err != nil {
		if dup := duplicateName(err); dup != nil {
			return nil, dup
		}
		return nil, storageError(err, "failed to create intent")
	}
	return it, nil
}

func (s *adminService) UpdateIntent(ctx context.Context, id int64, in IntentUpdate) (*storage.Intent, error) {
	it, err := s.stores.Intents.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load intent")
	}

	if in.Name != nil {
		it.Name = strings.TrimSpace(*in.Name)
	}
	if in.Keywords != nil {
		it.Keywords = strings.TrimSpace(*in.Keywords)
	}
	if in.Response != nil {
		it.Response = strings.TrimSpace(*in.Response)
	}
	if in.Enabled != nil {
		it.Enabled = *in.Enabled
	}
	if in.Priority != nil {
		it.Priority = *in.Priority
	}
	if err := validateIntent(*it); err != nil {
		return nil, err
	}

	if err := s.stores.Intents.Update(ctx, it); err != nil {
		if dup := duplicateName(err); dup != nil {
			return nil, dup
		}
		return nil, mapStoreError(err, "failed to update intent")
	}
	return it, nil
}

func (s *adminService) DeleteIntent(ctx context.Context, id int64) error {
	if err := s.stores.Intents.Delete(ctx, id); err != nil {
		return mapStoreError(err, "failed to delete intent")
	}
	return nil
}

func (s *adminService) ListGreetings(ctx context.Context) ([]storage.Greeting, error) {
	greetings, err := s.stores.Greetings.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list greetings")
	}
	return greetings, nil
}

func (s *adminService) CreateGreeting(ctx context.Context, in GreetingInput) (*storage.Greeting, error) {
	if err := required("message", in.Message); err != nil {
		return nil, err
	}

	g := &storage.Greeting{
		Message:  strings.TrimSpace(in.Message),
		Enabled:  in.Enabled,
		Priority: in.Priority,
	}
	if err := s.stores.Greetings.Create(ctx, g); err != nil {
		return nil, storageError(err, "failed to create greeting")
	}
	return g, nil
}

func (s *adminService) UpdateGreeting(ctx context.Context, id int64, in GreetingUpdate) (*storage.Greeting, error) {
	g, err := s.stores.Greetings.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load greeting")
	}

	if in.Message != nil {
		if err := required("message", *in.Message); err != nil {
			return nil, err
		}
		g.Message = strings.TrimSpace(*in.Message)
	}
	if in.Enabled != nil {
		g.Enabled = *in.Enabled
	}
	if in.Priority != nil {
		g.Priority = *in.Priority
	}

	if err := s.stores.Greetings.Update(ctx, g); err != nil {
		return nil, mapStoreError(err, "failed to update greeting")
	}
	return g, nil
}

func (s *adminService) DeleteGreeting(ctx context.Context, id int64) error {
	if err := s.stores.Greetings.Delete(ctx, id); err != nil {
		return mapStoreError(err, "failed to delete greeting")
	}
	return nil
}

func (s *adminService) ListSources(ctx context.Context) ([]storage.Source, error) {
	sources, err := s.stores.Sources.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list sources")
	}
	return sources, nil
}

// NormalizeBaseURL validates an http(s) URL and strips trailing slashes.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &ValidationError{Field: "base_url", Message: "must be an absolute http or https URL"}
	}
	return strings.TrimRight(raw, "/"), nil
}

func (s *adminService) CreateSource(ctx context.Context, baseURL string, enabled bool) (*storage.Source, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	src := &storage.Source{BaseURL: normalized, Enabled: enabled}
	if err := s.stores.Sources.Create(ctx, src); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, &ValidationError{Field: "base_url", Message: "already registered"}
		}
		return nil, storageError(err, "failed to create source")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "website source created",
		"source_id", src.ID,
		"base_url", src.BaseURL,
	)
	return src, nil
}

func (s *adminService) UpdateSource(ctx context.Context, id int64, enabled *bool) (*storage.Source, error) {
	if enabled != nil {
		if err := s.stores.Sources.SetEnabled(ctx, id, *enabled); err != nil {
			return nil, mapStoreError(err, "failed to update source")
		}
	}
	return s.sourceWithCount(ctx, id)
}

func (s *adminService) sourceWithCount(ctx context.Context, id int64) (*storage.Source, error) {
	src, err := s.stores.Sources.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load source")
	}
	n, err := s.stores.Pages.CountBySource(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to count pages")
	}
	src.PageCount = n
	return src, nil
}

func (s *adminService) DeleteSource(ctx context.Context, id int64) error {
	if s.crawls.Running(id) {
		return WrapError(ErrConflict, "crawl in progress")
	}
	if err := s.stores.Sources.Delete(ctx, id); err != nil {
		return mapStoreError(err, "failed to delete source")
	}
	return nil
}

func (s *adminService) Recrawl(ctx context.Context, id int64) (CrawlStatus, error) {
	src, err := s.sourceWithCount(ctx, id)
	if err != nil {
		return CrawlStatus{}, err
	}

	if err := s.crawls.Start(id); err != nil {
		if errors.Is(err, crawler.ErrCrawlInProgress) {
			return CrawlStatus{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return CrawlStatus{}, WrapError(err, "failed to start crawl")
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "website recrawl triggered",
		"source_id", id,
		"base_url", src.BaseURL,
	)
	return CrawlStatus{
		Status:        storage.CrawlRunning,
		LastCrawledAt: src.LastCrawledAt,
		PagesCount:    src.PageCount,
		Message:       "Crawl started in background",
	}, nil
}

func (s *adminService) CrawlStatus(ctx context.Context, id int64) (CrawlStatus, error) {
	src, err := s.sourceWithCount(ctx, id)
	if err != nil {
		return CrawlStatus{}, err
	}

	status := src.CrawlStatus
	if s.crawls.Running(id) {
		status = storage.CrawlRunning
	}
	return CrawlStatus{
		Status:        status,
		LastCrawledAt: src.LastCrawledAt,
		PagesCount:    src.PageCount,
	}, nil
}

func (s *adminService) ListLogs(ctx context.Context, filter storage.LogFilter) (LogPage, error) {
	if filter.Limit < 1 || filter.Limit > MaxLogLimit {
		return LogPage{}, &ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxLogLimit)}
	}
	if filter.Offset < 0 {
		return LogPage{}, &ValidationError{Field: "offset", Message: "must not be negative"}
	}
	filter.Search = strings.TrimSpace(filter.Search)

	logs, total, err := s.stores.Logs.List(ctx, filter)
	if err != nil {
		return LogPage{}, storageError(err, "failed to list chat logs")
	}
	return LogPage{
		Logs:   logs,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}
