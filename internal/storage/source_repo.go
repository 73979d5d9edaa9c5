package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source_store.go -package=mocks domainbot/internal/storage SourceStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SourceStore defines the interface for website source storage operations.
type SourceStore interface {
	// List returns every source in id order with PageCount filled.
	List(ctx context.Context) ([]Source, error)
	// ListEnabled returns enabled sources in id order.
	ListEnabled(ctx context.Context) ([]Source, error)
	Get(ctx context.Context, id int64) (*Source, error)
	GetByBaseURL(ctx context.Context, baseURL string) (*Source, error)
	// Create returns ErrDuplicate when the base URL is already registered.
	Create(ctx context.Context, source *Source) error
	SetEnabled(ctx context.Context, id int64, enabled bool) error
	// SetCrawlStatus updates the status and, when crawledAt is non-nil, the last crawl time.
	SetCrawlStatus(ctx context.Context, id int64, status string, crawledAt *time.Time) error
	// Delete removes the source and its pages.
	Delete(ctx context.Context, id int64) error
}

// SourceRepo implements SourceStore on SQLite.
type SourceRepo struct {
	db *sql.DB
}

// NewSourceRepo creates a new SourceRepo.
func NewSourceRepo(db *sql.DB) *SourceRepo {
	return &SourceRepo{db: db}
}

const sourceColumns = "s.id, s.base_url, s.enabled, s.crawl_status, s.last_crawled_at, s.created_at"

func scanSource(row interface{ Scan(...any) error }, extra ...any) (Source, error) {
	var s Source
	var lastCrawled sql.NullTime
	dest := append([]any{&s.ID, &s.BaseURL, &s.Enabled, &s.CrawlStatus, &lastCrawled, &s.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return Source{}, err
	}
	if lastCrawled.Valid {
		t := lastCrawled.Time
		s.LastCrawledAt = &t
	}
	return s, nil
}

func (r *SourceRepo) List(ctx context.Context) ([]Source, error) {
	return r.list(ctx, `SELECT `+sourceColumns+`, COUNT(p.id)
		FROM website_sources s
		LEFT JOIN website_pages p ON p.source_id = s.id
		GROUP BY s.id
		ORDER BY s.id`, true)
}

func (r *SourceRepo) ListEnabled(ctx context.Context) ([]Source, error) {
	return r.list(ctx, "SELECT "+sourceColumns+" FROM website_sources s WHERE s.enabled = 1 ORDER BY s.id", false)
}

func (r *SourceRepo) list(ctx context.Context, query string, withCount bool) ([]Source, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sources []Source
	for rows.Next() {
		var count int
		var extra []any
		if withCount {
			extra = append(extra, &count)
		}
		s, err := scanSource(rows, extra...)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		s.PageCount = count
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sources: %w", err)
	}
	return sources, nil
}

func (r *SourceRepo) Get(ctx context.Context, id int64) (*Source, error) {
	return r.getOne(ctx, "SELECT "+sourceColumns+" FROM website_sources s WHERE s.id = ?", id)
}

func (r *SourceRepo) GetByBaseURL(ctx context.Context, baseURL string) (*Source, error) {
	return r.getOne(ctx, "SELECT "+sourceColumns+" FROM website_sources s WHERE s.base_url = ?", baseURL)
}

func (r *SourceRepo) getOne(ctx context.Context, query string, arg any) (*Source, error) {
	s, err := scanSource(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query source: %w", err)
	}
	return &s, nil
}

func (r *SourceRepo) Create(ctx context.Context, source *Source) error {
	status := source.CrawlStatus
	if status == "" {
		status = CrawlIdle
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO website_sources (base_url, enabled, crawl_status) VALUES (?, ?, ?)",
		source.BaseURL, source.Enabled, status,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert source: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get source id: %w", err)
	}
	created, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*source = *created
	return nil
}

func (r *SourceRepo) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE website_sources SET enabled = ? WHERE id = ?", enabled, id)
	if err != nil {
		return fmt.Errorf("failed to update source: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SourceRepo) SetCrawlStatus(ctx context.Context, id int64, status string, crawledAt *time.Time) error {
	var (
		res sql.Result
		err error
	)
	if crawledAt != nil {
		res, err = r.db.ExecContext(ctx,
			"UPDATE website_sources SET crawl_status = ?, last_crawled_at = ? WHERE id = ?",
			status, crawledAt.UTC(), id)
	} else {
		res, err = r.db.ExecContext(ctx,
			"UPDATE website_sources SET crawl_status = ? WHERE id = ?", status, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update crawl status: %w", err)
	}
	return affectedOrNotFound(res)
}

// Delete removes the source and its pages in one transaction.
func (r *SourceRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM website_pages WHERE source_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete source pages: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM website_sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit source delete: %w", err)
	}
	return nil
}
