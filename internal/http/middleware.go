package http

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"domainbot/internal/config"
	"domainbot/internal/contextutil"
	"domainbot/internal/handlers"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID takes the caller's X-Request-ID or assigns a new one, echoes it
// on the response and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := contextutil.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggerMiddleware adds a structured logger to the request context.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default().With(
			"request_id", contextutil.RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx := contextutil.WithLogger(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// responseWriter records the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs each completed request. Successful health probes are
// not logged.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		if strings.HasPrefix(r.URL.Path, "/health") && rw.statusCode == http.StatusOK {
			return
		}
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "request completed",
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// Recoverer turns a panic into a 500 carrying the generic message.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			ctx := r.Context()
			contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "panic while serving request",
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			handlers.WriteError(w, r, http.StatusInternalServerError, handlers.GenericErrorMessage)
		}()
		next.ServeHTTP(w, r)
	})
}

// CORS allows the configured frontend origin to call the API.
func CORS(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
			w.Header().Set("Access-Control-Max-Age", "3600")

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter allows each client a fixed number of requests per window.
// Limiters of idle clients expire from the registry.
type RateLimiter struct {
	clients *gocache.Cache
	limit   rate.Limit
	burst   int
	window  time.Duration
}

// NewRateLimiter creates a RateLimiter for cfg. A zero cfg never limits.
func NewRateLimiter(cfg config.RateLimit) *RateLimiter {
	l := &RateLimiter{
		clients: gocache.New(cfg.Window, 2*cfg.Window),
		limit:   rate.Inf,
		burst:   1,
		window:  cfg.Window,
	}
	if cfg.Requests > 0 && cfg.Window > 0 {
		l.limit = rate.Every(cfg.Window / time.Duration(cfg.Requests))
		l.burst = cfg.Requests
	}
	return l
}

// Allow reports whether the client identified by key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	var lim *rate.Limiter
	if v, ok := l.clients.Get(key); ok {
		lim = v.(*rate.Limiter)
	} else {
		lim = rate.NewLimiter(l.limit, l.burst)
		if err := l.clients.Add(key, lim, gocache.DefaultExpiration); err != nil {
			if v, ok := l.clients.Get(key); ok {
				lim = v.(*rate.Limiter)
			}
		}
	}
	// Refresh the expiry so active clients keep their limiter.
	l.clients.Set(key, lim, gocache.DefaultExpiration)
	return lim
}

// Middleware answers 429 once a client exceeds its allowance.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !l.Allow(key) {
			ctx := r.Context()
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "rate limit exceeded", "client", key)
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			handlers.WriteError(w, r, http.StatusTooManyRequests, "تعداد درخواست‌ها بیش از حد مجاز است. لطفا کمی بعد دوباره تلاش کنید.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller by IP address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AdminAuth requires the admin API key in X-API-Key or as a bearer token.
// An empty key disables the check.
func AdminAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		want := []byte(apiKey)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if got == "" {
				if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
					got = strings.TrimSpace(token)
				}
			}
			if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				ctx := r.Context()
				contextutil.LoggerFromContext(ctx).WarnContext(ctx, "admin request rejected")
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
				handlers.WriteError(w, r, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
