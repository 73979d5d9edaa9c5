package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"domainbot/internal/service"
	"domainbot/internal/storage"
)

// SourceHandler manages website sources and their crawls.
type SourceHandler struct {
	admin service.AdminService
}

// NewSourceHandler creates a new SourceHandler.
func NewSourceHandler(admin service.AdminService) *SourceHandler {
	return &SourceHandler{admin: admin}
}

type SourceResponse struct {
	ID            int64      `json:"id"`
	BaseURL       string     `json:"base_url"`
	Enabled       bool       `json:"enabled"`
	CreatedAt     time.Time  `json:"created_at"`
	LastCrawledAt *time.Time `json:"last_crawled_at"`
	CrawlStatus   string     `json:"crawl_status"`
	PagesCount    int        `json:"pages_count"`
}

// SourceCreateRequest registers a website. Enabled defaults to true.
type SourceCreateRequest struct {
	BaseURL string `json:"base_url"`
	Enabled *bool  `json:"enabled"`
}

type SourceUpdateRequest struct {
	Enabled *bool `json:"enabled"`
}

// CrawlStatusResponse describes the crawl state of one source.
type CrawlStatusResponse struct {
	Status        string     `json:"status"`
	LastCrawledAt *time.Time `json:"last_crawled_at"`
	PagesCount    int        `json:"pages_count"`
	Message       string     `json:"message,omitempty"`
}

// Routes mounts the handler under /admin/website.
func (h *SourceHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/recrawl", h.recrawl)
	r.Get("/{id}/status", h.status)
}

func toSourceResponse(s storage.Source) SourceResponse {
	return SourceResponse{
		ID:            s.ID,
		BaseURL:       s.BaseURL,
		Enabled:       s.Enabled,
		CreatedAt:     s.CreatedAt,
		LastCrawledAt: s.LastCrawledAt,
		CrawlStatus:   s.CrawlStatus,
		PagesCount:    s.PageCount,
	}
}

func toCrawlStatusResponse(s service.CrawlStatus) CrawlStatusResponse {
	return CrawlStatusResponse{
		Status:        s.Status,
		LastCrawledAt: s.LastCrawledAt,
		PagesCount:    s.PagesCount,
		Message:       s.Message,
	}
}

func (h *SourceHandler) list(w http.ResponseWriter, r *http.Request) {
	sources, err := h.admin.ListSources(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	out := make([]SourceResponse, 0, len(sources))
	for _, s := range sources {
		out = append(out, toSourceResponse(s))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *SourceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req SourceCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	src, err := h.admin.CreateSource(r.Context(), req.BaseURL, enabledOrDefault(req.Enabled))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toSourceResponse(*src))
}

func (h *SourceHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req SourceUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	src, err := h.admin.UpdateSource(r.Context(), id, req.Enabled)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSourceResponse(*src))
}

func (h *SourceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteSource(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recrawl answers 202 once the background crawl has been scheduled.
func (h *SourceHandler) recrawl(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	status, err := h.admin.Recrawl(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, toCrawlStatusResponse(status))
}

func (h *SourceHandler) status(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	status, err := h.admin.CrawlStatus(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCrawlStatusResponse(status))
}

// LogHandler lists chat audit logs.
type LogHandler struct {
	admin service.AdminService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(admin service.AdminService) *LogHandler {
	return &LogHandler{admin: admin}
}

type ChatLogResponse struct {
	ID          int64             `json:"id"`
	SessionID   string            `json:"session_id"`
	UserMessage string            `json:"user_message"`
	BotMessage  string            `json:"bot_message"`
	SourcesJSON storage.SourceIDs `json:"sources_json"`
	Refused     bool              `json:"refused"`
	Intent      string            `json:"intent,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type ChatLogListResponse struct {
	Logs   []ChatLogResponse `json:"logs"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// ServeHTTP handles GET /admin/logs?limit=&offset=&search=.
func (h *LogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.LogFilter{
		Limit:  service.DefaultLogLimit,
		Search: q.Get("search"),
	}
	var ok bool
	if filter.Limit, ok = intQuery(w, r, "limit", filter.Limit); !ok {
		return
	}
	if filter.Offset, ok = intQuery(w, r, "offset", 0); !ok {
		return
	}

	page, err := h.admin.ListLogs(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	out := ChatLogListResponse{
		Logs:   make([]ChatLogResponse, 0, len(page.Logs)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, l := range page.Logs {
		if l.Sources.KBIDs == nil {
			l.Sources.KBIDs = []int64{}
		}
		if l.Sources.WebPageIDs == nil {
			l.Sources.WebPageIDs = []int64{}
		}
		out.Logs = append(out.Logs, ChatLogResponse{
			ID:          l.ID,
			SessionID:   l.SessionID,
			UserMessage: l.UserMessage,
			BotMessage:  l.BotMessage,
			SourcesJSON: l.Sources,
			Refused:     l.Refused,
			Intent:      l.Intent,
			CreatedAt:   l.CreatedAt,
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// intQuery reads an integer query parameter, falling back to def when absent.
func intQuery(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "Invalid "+key)
		return 0, false
	}
	return v, true
}
