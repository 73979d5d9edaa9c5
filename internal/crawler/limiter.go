package crawler

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostLimiter spaces requests to the same host.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
}

// NewHostLimiter allows one request per delay to each host. A zero delay
// disables limiting.
func NewHostLimiter(delay time.Duration) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Wait blocks until a request to the host of rawURL may proceed. A robots.txt
// crawl delay longer than the configured delay slows the host down.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string, crawlDelay time.Duration) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return l.limiter(u.Host, crawlDelay).Wait(ctx)
}

func (l *HostLimiter) limiter(host string, crawlDelay time.Duration) *rate.Limiter {
	delay := max(l.delay, crawlDelay)
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[host]
	if !ok {
		lim = rate.NewLimiter(limit, 1)
		l.limiters[host] = lim
	} else if lim.Limit() != limit {
		lim.SetLimit(limit)
	}
	return lim
}
