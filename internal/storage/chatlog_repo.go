package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_log_store.go -package=mocks domainbot/internal/storage ChatLogStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ChatLogStore defines the interface for the chat audit log.
type ChatLogStore interface {
	// Create appends a log row and sets its ID.
	Create(ctx context.Context, entry *ChatLog) error
	// CountBySession returns how many turns a session has logged.
	CountBySession(ctx context.Context, sessionID string) (int, error)
	// List returns matching rows newest first, plus the total match count.
	List(ctx context.Context, filter LogFilter) ([]ChatLog, int, error)
}

// ChatLogRepo implements ChatLogStore on SQLite.
type ChatLogRepo struct {
	db *sql.DB
}

// NewChatLogRepo creates a new ChatLogRepo.
func NewChatLogRepo(db *sql.DB) *ChatLogRepo {
	return &ChatLogRepo{db: db}
}

func (r *ChatLogRepo) Create(ctx context.Context, entry *ChatLog) error {
	var intent sql.NullString
	if entry.Intent != "" {
		intent = sql.NullString{String: entry.Intent, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_logs (session_id, user_message, bot_message, sources_json, refused, intent)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.SessionID, entry.UserMessage, entry.BotMessage, entry.Sources, entry.Refused, intent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat log: %w", err)
	}
	if entry.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to get chat log id: %w", err)
	}
	return nil
}

func (r *ChatLogRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chat_logs WHERE session_id = ?", sessionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count session logs: %w", err)
	}
	return n, nil
}

// escapeLike escapes LIKE wildcards so search terms match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *ChatLogRepo) List(ctx context.Context, filter LogFilter) ([]ChatLog, int, error) {
	where := ""
	var args []any
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		where = ` WHERE user_message LIKE ? ESCAPE '\' OR bot_message LIKE ? ESCAPE '\'`
		args = append(args, pattern, pattern)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chat_logs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count chat logs: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, session_id, user_message, bot_message, sources_json, refused, intent, created_at
		FROM chat_logs` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query chat logs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var logs []ChatLog
	for rows.Next() {
		var l ChatLog
		var intent sql.NullString
		if err := rows.Scan(&l.ID, &l.SessionID, &l.UserMessage, &l.BotMessage, &l.Sources, &l.Refused, &intent, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan chat log: %w", err)
		}
		l.Intent = intent.String
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate chat logs: %w", err)
	}
	return logs, total, nil
}
