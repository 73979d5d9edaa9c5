package crawler

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"domainbot/internal/config"
	"domainbot/internal/contextutil"
)

// UserAgent identifies the crawler to website operators and robots.txt.
const UserAgent = "ChatbotCrawler/1.0 (Domain-Restricted Bot)"

const (
	maxRedirects    = 3
	minContentRunes = 50
)

var (
	// ErrUnsupportedContent is returned for responses that are neither HTML nor markdown.
	ErrUnsupportedContent = errors.New("unsupported content type")
	// ErrContentTooShort is returned when the extracted text is too short to be useful.
	ErrContentTooShort = errors.New("content too short")
	// ErrDisallowed is returned when robots.txt forbids the URL.
	ErrDisallowed = errors.New("disallowed by robots.txt")
	// ErrCrawlInProgress is returned when a crawl of the source is already running.
	ErrCrawlInProgress = errors.New("crawl already in progress")
)

// Page is the extracted text of one fetched URL.
type Page struct {
	URL         string
	Title       string
	Content     string
	ContentHash string
}

// Fetcher downloads pages politely and extracts their main text.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
	robots   *Robots
	limiter  *HostLimiter
}

// NewFetcher creates a Fetcher from crawl settings.
func NewFetcher(cfg config.Crawl) *Fetcher {
	client := &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultCrawl().MaxBodyBytes
	}
	return &Fetcher{
		client:   client,
		maxBytes: maxBytes,
		robots:   NewRobots(client, time.Hour),
		limiter:  NewHostLimiter(cfg.RateLimitDelay),
	}
}

// get performs a polite GET: robots.txt is honored and requests to one host
// are spaced by the limiter.
func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	allowed, delay := f.robots.Check(ctx, rawURL)
	if !allowed {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
	}
	if err := f.limiter.Wait(ctx, rawURL, delay); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/markdown,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return resp, nil
}

// readBody reads at most maxBytes of the response body.
func (f *Fetcher) readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// FetchPage downloads rawURL and returns its title, main text and content hash.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (*Page, error) {
	logger := contextutil.LoggerFromContext(ctx)

	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	kind := contentKind(resp.Header.Get("Content-Type"), rawURL)
	if kind == "" {
		return nil, fmt.Errorf("%s: %w: %s", rawURL, ErrUnsupportedContent, resp.Header.Get("Content-Type"))
	}

	body, err := f.readBody(resp)
	if err != nil {
		return nil, err
	}

	var title, content string
	switch kind {
	case kindHTML:
		title, content, err = ExtractHTML(body)
	case kindMarkdown:
		title, content = ExtractMarkdown(body)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	if n := utf8.RuneCountInString(content); n < minContentRunes {
		return nil, fmt.Errorf("%s: %w (%d runes)", rawURL, ErrContentTooShort, n)
	}

	page := &Page{
		URL:         rawURL,
		Title:       title,
		Content:     content,
		ContentHash: ContentHash(content),
	}
	logger.DebugContext(ctx, "page fetched",
		"url", rawURL,
		"title", truncateRunes(title, 100),
		"content_length", len(content),
		"content_hash", page.ContentHash,
	)
	return page, nil
}

// ContentHash returns the hex MD5 of the extracted page text.
func ContentHash(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

const (
	kindHTML     = "html"
	kindMarkdown = "markdown"
)

func contentKind(contentType, rawURL string) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		return kindHTML
	case "text/markdown", "text/x-markdown":
		return kindMarkdown
	}
	if u, err := url.Parse(rawURL); err == nil && strings.EqualFold(path.Ext(u.Path), ".md") {
		return kindMarkdown
	}
	return ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
