package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_intent_store.go -package=mocks domainbot/internal/storage IntentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// IntentStore defines the interface for intent storage operations.
// Listings are ordered by priority descending, then id descending.
type IntentStore interface {
	List(ctx context.Context) ([]Intent, error)
	ListEnabled(ctx context.Context) ([]Intent, error)
	Get(ctx context.Context, id int64) (*Intent, error)
	GetByName(ctx context.Context, name string) (*Intent, error)
	// Create returns ErrDuplicate when the name is taken.
	Create(ctx context.Context, intent *Intent) error
	// Update returns ErrDuplicate when renaming onto a taken name.
	Update(ctx context.Context, intent *Intent) error
	Delete(ctx context.Context, id int64) error
}

// IntentRepo implements IntentStore on SQLite.
type IntentRepo struct {
	db *sql.DB
}

// NewIntentRepo creates a new IntentRepo.
func NewIntentRepo(db *sql.DB) *IntentRepo {
	return &IntentRepo{db: db}
}

const intentColumns = "id, name, keywords, response, enabled, priority, created_at, updated_at"

func scanIntent(row interface{ Scan(...any) error }) (Intent, error) {
	var i Intent
	err := row.Scan(&i.ID, &i.Name, &i.Keywords, &i.Response, &i.Enabled, &i.Priority, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func (r *IntentRepo) List(ctx context.Context) ([]Intent, error) {
	return r.list(ctx, "SELECT "+intentColumns+" FROM intents ORDER BY priority DESC, id DESC")
}

func (r *IntentRepo) ListEnabled(ctx context.Context) ([]Intent, error) {
	return r.list(ctx, "SELECT "+intentColumns+" FROM intents WHERE enabled = 1 ORDER BY priority DESC, id DESC")
}

func (r *IntentRepo) list(ctx context.Context, query string) ([]Intent, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query intents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var intents []Intent
	for rows.Next() {
		i, err := scanIntent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intent: %w", err)
		}
		intents = append(intents, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intents: %w", err)
	}
	return intents, nil
}

func (r *IntentRepo) Get(ctx context.Context, id int64) (*Intent, error) {
	return r.getOne(ctx, "SELECT "+intentColumns+" FROM intents WHERE id = ?", id)
}

func (r *IntentRepo) GetByName(ctx context.Context, name string) (*Intent, error) {
	return r.getOne(ctx, "SELECT "+intentColumns+" FROM intents WHERE name = ?", name)
}

func (r *IntentRepo) getOne(ctx context.Context, query string, arg any) (*Intent, error) {
	i, err := scanIntent(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query intent: %w", err)
	}
	return &i, nil
}

func (r *IntentRepo) Create(ctx context.Context, intent *Intent) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO intents (name, keywords, response, enabled, priority) VALUES (?, ?, ?, ?, ?)",
		intent.Name, intent.Keywords, intent.Response, intent.Enabled, intent.Priority,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert intent: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get intent id: %w", err)
	}
	created, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*intent = *created
	return nil
}

func (r *IntentRepo) Update(ctx context.Context, intent *Intent) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE intents SET name = ?, keywords = ?, response = ?, enabled = ?, priority = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		intent.Name, intent.Keywords, intent.Response, intent.Enabled, intent.Priority, intent.ID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to update intent: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	updated, err := r.Get(ctx, intent.ID)
	if err != nil {
		return err
	}
	*intent = *updated
	return nil
}

func (r *IntentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM intents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete intent: %w", err)
	}
	return affectedOrNotFound(res)
}
