package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"domainbot/internal/config"
	"domainbot/internal/handlers"
	"domainbot/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService  service.ChatService
	AdminService service.AdminService

	DB      handlers.DBPinger
	LLM     handlers.LLMPinger // nil when no generator is configured
	Sources handlers.SourceLister

	FrontendOrigin string
	AdminAPIKey    string
	RateLimit      config.RateLimit
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(CORS(deps.FrontendOrigin))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	limiter := NewRateLimiter(deps.RateLimit)
	r.With(limiter.Middleware).Handle("/chat", handlers.NewChatHandler(deps.ChatService))
	r.Method(http.MethodGet, "/chat/greeting", handlers.NewGreetingHandler(deps.ChatService))

	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler())
	r.Method(http.MethodGet, "/health/components", handlers.NewComponentsHandler(deps.DB, deps.LLM, deps.Sources))

	r.Route("/admin", func(r chi.Router) {
		r.Use(AdminAuth(deps.AdminAPIKey))
		r.Route("/kb", handlers.NewKBHandler(deps.AdminService).Routes)
		r.Route("/intent", handlers.NewIntentHandler(deps.AdminService).Routes)
		r.Route("/greeting", handlers.NewGreetingAdminHandler(deps.AdminService).Routes)
		r.Route("/website", handlers.NewSourceHandler(deps.AdminService).Routes)
		r.Method(http.MethodGet, "/logs", handlers.NewLogHandler(deps.AdminService))
	})

	return r
}
