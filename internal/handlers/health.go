package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"domainbot/internal/contextutil"
	"domainbot/internal/storage"
)

// Component states.
const (
	statusOK    = "ok"
	statusError = "error"
)

// recentFailureWindow is how long a failed crawl keeps the crawler unhealthy.
const recentFailureWindow = time.Hour

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": statusOK})
}

// DBPinger checks database connectivity. *sql.DB satisfies it.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// LLMPinger checks that the answer generator is reachable.
type LLMPinger interface {
	Ping(ctx context.Context) error
}

// SourceLister lists website sources.
type SourceLister interface {
	List(ctx context.Context) ([]storage.Source, error)
}

// ComponentStatus is the state of one dependency.
type ComponentStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ComponentsResponse represents the component health response.
//
// swagger:model ComponentsResponse
type ComponentsResponse struct {
	Backend        ComponentStatus `json:"backend"`
	DB             ComponentStatus `json:"db"`
	OpenAI         ComponentStatus `json:"openai"`
	WebsiteCrawler ComponentStatus `json:"website_crawler"`
}

func (c ComponentsResponse) healthy() bool {
	for _, s := range []ComponentStatus{c.Backend, c.DB, c.OpenAI, c.WebsiteCrawler} {
		if s.Status != statusOK {
			return false
		}
	}
	return true
}

// ComponentsHandler reports the health of each dependency.
type ComponentsHandler struct {
	db                 DBPinger
	llm                LLMPinger
	sources            SourceLister
	healthCheckTimeout time.Duration
	now                func() time.Time
}

// NewComponentsHandler creates a new ComponentsHandler. llm is nil when no
// generator is configured.
func NewComponentsHandler(db DBPinger, llm LLMPinger, sources SourceLister) *ComponentsHandler {
	return &ComponentsHandler{
		db:                 db,
		llm:                llm,
		sources:            sources,
		healthCheckTimeout: 5 * time.Second,
		now:                time.Now,
	}
}

// ServeHTTP returns 200 when every component is ok and 503 otherwise.
//
// swagger:route GET /health/components healthComponents
//
// responses:
//
//	200: ComponentsResponse
//	503: ComponentsResponse
func (h *ComponentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	resp := ComponentsResponse{
		Backend:        ComponentStatus{Status: statusOK, Message: "Backend is running"},
		DB:             h.checkDB(checkCtx),
		OpenAI:         h.checkLLM(checkCtx),
		WebsiteCrawler: h.checkCrawler(checkCtx),
	}

	httpStatus := http.StatusOK
	if !resp.healthy() {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, r, httpStatus, resp)
}

func (h *ComponentsHandler) checkDB(ctx context.Context) ComponentStatus {
	if err := h.db.PingContext(ctx); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "database health check failed", "error", err)
		return ComponentStatus{Status: statusError, Message: "Database unreachable"}
	}
	return ComponentStatus{Status: statusOK, Message: "Database connection healthy"}
}

func (h *ComponentsHandler) checkLLM(ctx context.Context) ComponentStatus {
	if h.llm == nil {
		return ComponentStatus{Status: statusError, Message: "OpenAI API key not configured"}
	}
	if err := h.llm.Ping(ctx); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "generator health check failed", "error", err)
		return ComponentStatus{Status: statusError, Message: "OpenAI API unreachable"}
	}
	return ComponentStatus{Status: statusOK, Message: "OpenAI API accessible"}
}

// checkCrawler judges the crawler by the most recently crawled source.
func (h *ComponentsHandler) checkCrawler(ctx context.Context) ComponentStatus {
	sources, err := h.sources.List(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "crawler health check failed", "error", err)
		return ComponentStatus{Status: statusError, Message: "Crawler status unavailable"}
	}
	if len(sources) == 0 {
		return ComponentStatus{Status: statusOK, Message: "Crawler available (no sources configured)"}
	}

	recent := mostRecentlyCrawled(sources)
	switch recent.CrawlStatus {
	case storage.CrawlRunning:
		return ComponentStatus{Status: statusOK, Message: "Crawler is running (last: " + recent.BaseURL + ")"}
	case storage.CrawlDone:
		return ComponentStatus{Status: statusOK, Message: "Crawler healthy (last success: " + recent.BaseURL + ")"}
	case storage.CrawlFailed:
		if recent.LastCrawledAt == nil {
			return ComponentStatus{Status: statusOK, Message: "Crawler available"}
		}
		since := h.now().Sub(*recent.LastCrawledAt)
		if since < recentFailureWindow {
			return ComponentStatus{Status: statusError, Message: "Recent crawl failure: " + recent.BaseURL}
		}
		return ComponentStatus{Status: statusOK, Message: fmt.Sprintf("Crawler available (last failure %dh ago)", int(since.Hours()))}
	default:
		return ComponentStatus{Status: statusOK, Message: "Crawler available (idle)"}
	}
}

// mostRecentlyCrawled returns the source with the latest crawl time, or the
// first source when none has been crawled.
func mostRecentlyCrawled(sources []storage.Source) storage.Source {
	best := sources[0]
	for _, s := range sources[1:] {
		if s.LastCrawledAt == nil {
			continue
		}
		if best.LastCrawledAt == nil || s.LastCrawledAt.After(*best.LastCrawledAt) {
			best = s
		}
	}
	return best
}
