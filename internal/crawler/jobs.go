package crawler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source_ingester.go -package=mocks domainbot/internal/crawler SourceIngester

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// SourceIngester crawls one source to completion.
type SourceIngester interface {
	IngestSource(ctx context.Context, sourceID int64) (Report, error)
}

// Jobs runs crawls in the background, at most one per source.
type Jobs struct {
	ctx      context.Context
	ingester SourceIngester
	logger   *slog.Logger

	mu      sync.Mutex
	running map[int64]struct{}
	wg      sync.WaitGroup
}

// NewJobs creates a job runner. Crawls stop when ctx is cancelled.
func NewJobs(ctx context.Context, ingester SourceIngester, logger *slog.Logger) *Jobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &Jobs{
		ctx:      ctx,
		ingester: ingester,
		logger:   logger,
		running:  make(map[int64]struct{}),
	}
}

// Start launches a crawl of sourceID and returns immediately.
func (j *Jobs) Start(sourceID int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.running[sourceID]; ok {
		return fmt.Errorf("source %d: %w", sourceID, ErrCrawlInProgress)
	}
	j.running[sourceID] = struct{}{}
	j.wg.Add(1)

	go func() {
		defer j.wg.Done()
		defer j.finish(sourceID)

		report, err := j.ingester.IngestSource(j.ctx, sourceID)
		if err != nil {
			j.logger.Error("background crawl failed", "source_id", sourceID, "status", report.Status, "error", err)
			return
		}
		j.logger.Info("background crawl finished", "source_id", sourceID, "status", report.Status, "pages", report.Stored())
	}()
	return nil
}

func (j *Jobs) finish(sourceID int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.running, sourceID)
}

// Running reports whether a crawl of sourceID is in flight.
func (j *Jobs) Running(sourceID int64) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, ok := j.running[sourceID]
	return ok
}

// Wait blocks until every started crawl has returned.
func (j *Jobs) Wait() {
	j.wg.Wait()
}
