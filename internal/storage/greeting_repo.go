package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_greeting_store.go -package=mocks domainbot/internal/storage GreetingStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GreetingStore defines the interface for greeting storage operations.
// Listings are ordered by priority descending, then id descending.
type GreetingStore interface {
	List(ctx context.Context) ([]Greeting, error)
	// Top returns the highest-precedence enabled greeting or ErrNotFound.
	Top(ctx context.Context) (*Greeting, error)
	Get(ctx context.Context, id int64) (*Greeting, error)
	GetByMessage(ctx context.Context, message string) (*Greeting, error)
	Create(ctx context.Context, greeting *Greeting) error
	Update(ctx context.Context, greeting *Greeting) error
	Delete(ctx context.Context, id int64) error
}

// GreetingRepo implements GreetingStore on SQLite.
type GreetingRepo struct {
	db *sql.DB
}

// NewGreetingRepo creates a new GreetingRepo.
func NewGreetingRepo(db *sql.DB) *GreetingRepo {
	return &GreetingRepo{db: db}
}

const greetingColumns = "id, message, enabled, priority, created_at, updated_at"

func scanGreeting(row interface{ Scan(...any) error }) (Greeting, error) {
	var g Greeting
	err := row.Scan(&g.ID, &g.Message, &g.Enabled, &g.Priority, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *GreetingRepo) List(ctx context.Context) ([]Greeting, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+greetingColumns+" FROM greetings ORDER BY priority DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query greetings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var greetings []Greeting
	for rows.Next() {
		g, err := scanGreeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan greeting: %w", err)
		}
		greetings = append(greetings, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate greetings: %w", err)
	}
	return greetings, nil
}

func (r *GreetingRepo) Top(ctx context.Context) (*Greeting, error) {
	return r.getOne(ctx,
		"SELECT "+greetingColumns+" FROM greetings WHERE enabled = 1 ORDER BY priority DESC, id DESC LIMIT 1")
}

func (r *GreetingRepo) Get(ctx context.Context, id int64) (*Greeting, error) {
	return r.getOne(ctx, "SELECT "+greetingColumns+" FROM greetings WHERE id = ?", id)
}

func (r *GreetingRepo) GetByMessage(ctx context.Context, message string) (*Greeting, error) {
	return r.getOne(ctx, "SELECT "+greetingColumns+" FROM greetings WHERE message = ? ORDER BY id LIMIT 1", message)
}

func (r *GreetingRepo) getOne(ctx context.Context, query string, args ...any) (*Greeting, error) {
	g, err := scanGreeting(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query greeting: %w", err)
	}
	return &g, nil
}

func (r *GreetingRepo) Create(ctx context.Context, greeting *Greeting) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO greetings (message, enabled, priority) VALUES (?, ?, ?)",
		greeting.Message, greeting.Enabled, greeting.Priority,
	)
	if err != nil {
		return fmt.Errorf("failed to insert greeting: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get greeting id: %w", err)
	}
	created, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*greeting = *created
	return nil
}

func (r *GreetingRepo) Update(ctx context.Context, greeting *Greeting) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE greetings SET message = ?, enabled = ?, priority = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		greeting.Message, greeting.Enabled, greeting.Priority, greeting.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update greeting: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	updated, err := r.Get(ctx, greeting.ID)
	if err != nil {
		return err
	}
	*greeting = *updated
	return nil
}

func (r *GreetingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM greetings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete greeting: %w", err)
	}
	return affectedOrNotFound(res)
}
