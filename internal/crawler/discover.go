package crawler

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"strings"

	"domainbot/internal/contextutil"
)

// maxSitemapDepth bounds how many sitemap index levels are followed.
const maxSitemapDepth = 2

type sitemapDoc struct {
	XMLName  xml.Name
	URLs     []sitemapLoc `xml:"url"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// Discover lists up to limit same-host URLs under baseURL. Sitemaps at
// /sitemap.xml and /sitemap_index.xml are preferred; when neither yields a
// URL the site is crawled breadth-first by following links.
func (f *Fetcher) Discover(ctx context.Context, baseURL string, limit int) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	urls := f.sitemapURLs(ctx, base, limit)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(urls) > 0 {
		return urls, nil
	}
	return f.crawlLinks(ctx, base, limit)
}

func (f *Fetcher) sitemapURLs(ctx context.Context, base *url.URL, limit int) []string {
	c := newCollector(base.Host, limit)
	for _, p := range []string{"/sitemap.xml", "/sitemap_index.xml"} {
		if c.full() {
			break
		}
		f.readSitemap(ctx, base.ResolveReference(&url.URL{Path: p}).String(), c, 0)
	}
	return c.urls
}

func (f *Fetcher) readSitemap(ctx context.Context, sitemapURL string, c *collector, depth int) {
	logger := contextutil.LoggerFromContext(ctx)

	resp, err := f.get(ctx, sitemapURL)
	if err != nil {
		logger.DebugContext(ctx, "sitemap unavailable", "url", sitemapURL, "error", err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return
	}

	body, err := f.readBody(resp)
	if err != nil {
		logger.DebugContext(ctx, "failed to read sitemap", "url", sitemapURL, "error", err)
		return
	}
	var doc sitemapDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		logger.DebugContext(ctx, "failed to parse sitemap", "url", sitemapURL, "error", err)
		return
	}

	if doc.XMLName.Local == "sitemapindex" {
		if depth >= maxSitemapDepth {
			return
		}
		for _, s := range doc.Sitemaps {
			if c.full() {
				return
			}
			nested := strings.TrimSpace(s.Loc)
			if !c.sameHost(nested) {
				continue
			}
			f.readSitemap(ctx, nested, c, depth+1)
		}
		return
	}

	for _, u := range doc.URLs {
		if !c.add(strings.TrimSpace(u.Loc)) {
			return
		}
	}
}

// crawlLinks walks same-host links breadth-first from base.
func (f *Fetcher) crawlLinks(ctx context.Context, base *url.URL, limit int) ([]string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	c := newCollector(base.Host, limit)
	start := canonical(base)
	queue := []string{start}
	seen := map[string]bool{start: true}

	for len(queue) > 0 && !c.full() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := queue[0]
		queue = queue[1:]

		resp, err := f.get(ctx, current)
		if err != nil {
			logger.WarnContext(ctx, "failed to crawl url", "url", current, "error", err)
			continue
		}
		body, err := f.readBody(resp)
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			continue
		}
		c.add(current)
		if err != nil || contentKind(resp.Header.Get("Content-Type"), current) != kindHTML {
			continue
		}

		pageURL := resp.Request.URL
		for _, href := range extractLinks(body) {
			link, ok := resolveLink(pageURL, href)
			if !ok || seen[link] || !c.sameHost(link) {
				continue
			}
			seen[link] = true
			queue = append(queue, link)
		}
	}
	return c.urls, nil
}

// resolveLink makes href absolute against page and strips its fragment.
func resolveLink(page *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := page.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return canonical(abs), true
}

// canonical drops the fragment and gives an empty path a single slash.
func canonical(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	if c.Path == "" {
		c.Path = "/"
		c.RawPath = ""
	}
	return c.String()
}

// collector accumulates unique same-host URLs up to a limit.
type collector struct {
	host  string
	limit int
	seen  map[string]bool
	urls  []string
}

func newCollector(host string, limit int) *collector {
	return &collector{host: host, limit: limit, seen: make(map[string]bool)}
}

func (c *collector) full() bool {
	return len(c.urls) >= c.limit
}

func (c *collector) sameHost(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Host == c.host
}

// add records raw when it is new and on the collector's host. It returns
// false once the limit is reached.
func (c *collector) add(raw string) bool {
	if c.full() {
		return false
	}
	if raw != "" && !c.seen[raw] && c.sameHost(raw) {
		c.seen[raw] = true
		c.urls = append(c.urls, raw)
	}
	return !c.full()
}
