package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_page_store.go -package=mocks domainbot/internal/storage PageStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PageChange describes what an upsert did to a page row.
type PageChange int

const (
	PageUnchanged PageChange = iota
	PageCreated
	PageUpdated
)

// PageStore defines the interface for crawled page storage operations.
type PageStore interface {
	// ListBySources returns the pages of the given sources in id order.
	ListBySources(ctx context.Context, sourceIDs []int64) ([]WebPage, error)
	GetBySourceAndURL(ctx context.Context, sourceID int64, url string) (*WebPage, error)
	// Upsert stores page keyed by (source, url). A row whose content hash is
	// unchanged is left untouched and PageUnchanged is returned.
	Upsert(ctx context.Context, page *WebPage) (PageChange, error)
	CountBySource(ctx context.Context, sourceID int64) (int, error)
}

// PageRepo implements PageStore on SQLite.
type PageRepo struct {
	db *sql.DB
}

// NewPageRepo creates a new PageRepo.
func NewPageRepo(db *sql.DB) *PageRepo {
	return &PageRepo{db: db}
}

const pageColumns = "id, source_id, url, title, content_text, content_hash, updated_at"

func scanPage(row interface{ Scan(...any) error }) (WebPage, error) {
	var p WebPage
	err := row.Scan(&p.ID, &p.SourceID, &p.URL, &p.Title, &p.Content, &p.ContentHash, &p.UpdatedAt)
	return p, err
}

func (r *PageRepo) ListBySources(ctx context.Context, sourceIDs []int64) ([]WebPage, error) {
	if len(sourceIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sourceIDs)), ",")
	args := make([]any, len(sourceIDs))
	for i, id := range sourceIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+pageColumns+" FROM website_pages WHERE source_id IN ("+placeholders+") ORDER BY id",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var pages []WebPage
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}
	return pages, nil
}

func (r *PageRepo) GetBySourceAndURL(ctx context.Context, sourceID int64, url string) (*WebPage, error) {
	p, err := scanPage(r.db.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM website_pages WHERE source_id = ? AND url = ?", sourceID, url))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query page: %w", err)
	}
	return &p, nil
}

func (r *PageRepo) Upsert(ctx context.Context, page *WebPage) (PageChange, error) {
	existing, err := r.GetBySourceAndURL(ctx, page.SourceID, page.URL)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return PageUnchanged, fmt.Errorf("failed to check existing page: %w", err)
	}

	if existing != nil {
		page.ID = existing.ID
		if existing.ContentHash == page.ContentHash {
			return PageUnchanged, nil
		}
		_, err := r.db.ExecContext(ctx,
			`UPDATE website_pages SET title = ?, content_text = ?, content_hash = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			page.Title, page.Content, page.ContentHash, existing.ID)
		if err != nil {
			return PageUnchanged, fmt.Errorf("failed to update page: %w", err)
		}
		return PageUpdated, nil
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO website_pages (source_id, url, title, content_text, content_hash)
		 VALUES (?, ?, ?, ?, ?)`,
		page.SourceID, page.URL, page.Title, page.Content, page.ContentHash)
	if err != nil {
		return PageUnchanged, fmt.Errorf("failed to insert page: %w", err)
	}
	if page.ID, err = res.LastInsertId(); err != nil {
		return PageUnchanged, fmt.Errorf("failed to get page id: %w", err)
	}
	return PageCreated, nil
}

func (r *PageRepo) CountBySource(ctx context.Context, sourceID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM website_pages WHERE source_id = ?", sourceID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}
