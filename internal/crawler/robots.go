package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"

	"domainbot/internal/contextutil"
)

const maxRobotsBytes = 512 << 10

// Robots checks robots.txt rules, caching the parsed file per host.
type Robots struct {
	client *http.Client
	cache  *gocache.Cache
	agent  string
}

// NewRobots creates a robots.txt checker whose per-host entries live for ttl.
func NewRobots(client *http.Client, ttl time.Duration) *Robots {
	return &Robots{
		client: client,
		cache:  gocache.New(ttl, 2*ttl),
		agent:  productToken(UserAgent),
	}
}

// productToken returns the product name of a User-Agent, e.g. "ChatbotCrawler".
func productToken(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return ua
	}
	return strings.Split(fields[0], "/")[0]
}

// Check reports whether rawURL may be fetched and the crawl delay requested
// for its host. A robots.txt that cannot be fetched allows everything.
func (r *Robots) Check(ctx context.Context, rawURL string) (bool, time.Duration) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, 0
	}

	data, err := r.data(ctx, u)
	if err != nil {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "robots.txt unavailable", "host", u.Host, "error", err)
		return true, 0
	}

	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	allowed := data.TestAgent(p, r.agent)

	var delay time.Duration
	if group := data.FindGroup(r.agent); group != nil {
		delay = group.CrawlDelay
	}
	return allowed, delay
}

func (r *Robots) data(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	key := u.Scheme + "://" + u.Host
	if cached, ok := r.cache.Get(key); ok {
		return cached.(*robotstxt.RobotsData), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.cache.SetDefault(key, data)
	return data, nil
}
