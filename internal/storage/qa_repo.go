package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_qa_store.go -package=mocks domainbot/internal/storage QAStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// QAStore defines the interface for knowledge-base storage operations.
type QAStore interface {
	// List returns every entry in id order.
	List(ctx context.Context) ([]QAEntry, error)
	// Get returns nil and ErrNotFound if the entry does not exist.
	Get(ctx context.Context, id int64) (*QAEntry, error)
	GetByQuestion(ctx context.Context, question string) (*QAEntry, error)
	// Create inserts entry and sets its ID.
	Create(ctx context.Context, entry *QAEntry) error
	Update(ctx context.Context, entry *QAEntry) error
	Delete(ctx context.Context, id int64) error
	// DeleteAll removes every entry and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// QARepo implements QAStore on SQLite.
type QARepo struct {
	db *sql.DB
}

// NewQARepo creates a new QARepo.
func NewQARepo(db *sql.DB) *QARepo {
	return &QARepo{db: db}
}

const qaColumns = "id, question, answer, created_at, updated_at"

func scanQA(row interface{ Scan(...any) error }) (QAEntry, error) {
	var e QAEntry
	err := row.Scan(&e.ID, &e.Question, &e.Answer, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *QARepo) List(ctx context.Context) ([]QAEntry, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+qaColumns+" FROM kb_qa ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query kb entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []QAEntry
	for rows.Next() {
		e, err := scanQA(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kb entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kb entries: %w", err)
	}
	return entries, nil
}

func (r *QARepo) Get(ctx context.Context, id int64) (*QAEntry, error) {
	e, err := scanQA(r.db.QueryRowContext(ctx, "SELECT "+qaColumns+" FROM kb_qa WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query kb entry: %w", err)
	}
	return &e, nil
}

func (r *QARepo) GetByQuestion(ctx context.Context, question string) (*QAEntry, error) {
	e, err := scanQA(r.db.QueryRowContext(ctx,
		"SELECT "+qaColumns+" FROM kb_qa WHERE question = ? ORDER BY id LIMIT 1", question))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query kb entry: %w", err)
	}
	return &e, nil
}

func (r *QARepo) Create(ctx context.Context, entry *QAEntry) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO kb_qa (question, answer) VALUES (?, ?)",
		entry.Question, entry.Answer,
	)
	if err != nil {
		return fmt.Errorf("failed to insert kb entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get kb entry id: %w", err)
	}
	created, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*entry = *created
	return nil
}

func (r *QARepo) Update(ctx context.Context, entry *QAEntry) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE kb_qa SET question = ?, answer = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		entry.Question, entry.Answer, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update kb entry: %w", err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	updated, err := r.Get(ctx, entry.ID)
	if err != nil {
		return err
	}
	*entry = *updated
	return nil
}

func (r *QARepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM kb_qa WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete kb entry: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *QARepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM kb_qa")
	if err != nil {
		return 0, fmt.Errorf("failed to clear kb entries: %w", err)
	}
	return res.RowsAffected()
}
