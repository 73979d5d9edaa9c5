package crawler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_page_fetcher.go -package=mocks domainbot/internal/crawler PageFetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"domainbot/internal/contextutil"
	"domainbot/internal/storage"
)

// ErrNoURLs is returned when discovery finds nothing to crawl.
var ErrNoURLs = errors.New("no urls found to crawl")

// PageFetcher discovers and downloads the pages of a website.
type PageFetcher interface {
	Discover(ctx context.Context, baseURL string, limit int) ([]string, error)
	FetchPage(ctx context.Context, rawURL string) (*Page, error)
}

// Report summarizes one crawl of a source.
type Report struct {
	SourceID   int64
	Discovered int
	Created    int
	Updated    int
	Unchanged  int
	Failed     int
	Status     string
}

// Stored is the number of pages that are current after the crawl.
func (r Report) Stored() int {
	return r.Created + r.Updated + r.Unchanged
}

// Ingester crawls website sources into the page store.
type Ingester struct {
	sources  storage.SourceStore
	pages    storage.PageStore
	fetcher  PageFetcher
	maxPages int
	now      func() time.Time
}

// NewIngester creates a new Ingester.
func NewIngester(sources storage.SourceStore, pages storage.PageStore, fetcher PageFetcher, maxPages int) *Ingester {
	return &Ingester{
		sources:  sources,
		pages:    pages,
		fetcher:  fetcher,
		maxPages: maxPages,
		now:      time.Now,
	}
}

// IngestSource crawls one source. The source is marked running for the
// duration, then done when at least one page is stored and failed otherwise.
// Pages whose content hash did not change are left untouched.
func (in *Ingester) IngestSource(ctx context.Context, sourceID int64) (Report, error) {
	report := Report{SourceID: sourceID, Status: storage.CrawlFailed}

	src, err := in.sources.Get(ctx, sourceID)
	if err != nil {
		return report, fmt.Errorf("failed to load source %d: %w", sourceID, err)
	}

	logger := contextutil.LoggerFromContext(ctx).With("source_id", sourceID, "base_url", src.BaseURL)
	ctx = contextutil.WithLogger(ctx, logger)

	if err := in.sources.SetCrawlStatus(ctx, sourceID, storage.CrawlRunning, nil); err != nil {
		return report, fmt.Errorf("failed to mark source running: %w", err)
	}
	logger.InfoContext(ctx, "starting website ingestion")

	err = in.crawl(ctx, src, &report)
	if err == nil && report.Stored() > 0 {
		report.Status = storage.CrawlDone
	}

	// The final status is recorded even when the crawl was cancelled.
	finishCtx := context.WithoutCancel(ctx)
	crawledAt := in.now()
	if statusErr := in.sources.SetCrawlStatus(finishCtx, sourceID, report.Status, &crawledAt); statusErr != nil {
		err = errors.Join(err, fmt.Errorf("failed to record crawl status: %w", statusErr))
	}

	logger.InfoContext(ctx, "website ingestion completed",
		"status", report.Status,
		"discovered", report.Discovered,
		"created", report.Created,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"failed", report.Failed,
	)
	return report, err
}

func (in *Ingester) crawl(ctx context.Context, src *storage.Source, report *Report) error {
	logger := contextutil.LoggerFromContext(ctx)

	base, err := url.Parse(src.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("invalid base url %q", src.BaseURL)
	}

	urls, err := in.fetcher.Discover(ctx, src.BaseURL, in.maxPages)
	if err != nil {
		return fmt.Errorf("failed to discover urls: %w", err)
	}
	report.Discovered = len(urls)
	if len(urls) == 0 {
		return ErrNoURLs
	}

	for _, raw := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}

		u, err := url.Parse(raw)
		if err != nil || u.Host != base.Host {
			logger.WarnContext(ctx, "skipping url from different host", "url", raw)
			report.Failed++
			continue
		}

		page, err := in.fetcher.FetchPage(ctx, raw)
		if err != nil {
			logger.DebugContext(ctx, "failed to fetch page", "url", raw, "error", err)
			report.Failed++
			continue
		}

		change, err := in.pages.Upsert(ctx, &storage.WebPage{
			SourceID:    src.ID,
			URL:         raw,
			Title:       page.Title,
			Content:     page.Content,
			ContentHash: page.ContentHash,
		})
		if err != nil {
			return fmt.Errorf("failed to store page %s: %w", raw, err)
		}
		switch change {
		case storage.PageCreated:
			report.Created++
		case storage.PageUpdated:
			report.Updated++
		default:
			report.Unchanged++
		}
	}
	return nil
}
