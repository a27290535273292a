package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ChatStore = (*ChatRepo)(nil)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ChatRepo is the SQLite implementation of the ChatStore port interface.
type ChatRepo struct {
	db *DB
}

// NewChatRepo creates a new ChatRepo backed by the given DB.
func NewChatRepo(db *DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// Create inserts a new conversation. Messages on conv are ignored; use
// AppendMessages to add them.
func (r *ChatRepo) Create(ctx context.Context, conv model.Conversation) error {
	const query = `INSERT INTO conversations (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`

	updated := conv.UpdatedAt
	if updated.IsZero() {
		updated = conv.CreatedAt
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		conv.ID, conv.Title, formatTime(conv.CreatedAt), formatTime(updated))
	if err != nil {
		return fmt.Errorf("create conversation %s: %w", conv.ID, err)
	}
	return nil
}

// List returns all conversations, most recently updated first, without messages.
func (r *ChatRepo) List(ctx context.Context) ([]model.Conversation, error) {
	const query = `
		SELECT id, title, created_at, updated_at
		FROM conversations
		ORDER BY updated_at DESC, rowid DESC
	`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	convs := []model.Conversation{}
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, *conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}
	return convs, nil
}

// Get returns the conversation with its messages in send order.
// Returns nil, nil if the conversation does not exist.
func (r *ChatRepo) Get(ctx context.Context, id string) (*model.Conversation, error) {
	const convQuery = `SELECT id, title, created_at, updated_at FROM conversations WHERE id = ?`

	conv, err := scanConversation(r.db.Reader.QueryRowContext(ctx, convQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}

	const msgQuery = `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY seq
	`

	rows, err := r.db.Reader.QueryContext(ctx, msgQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get messages for %s: %w", id, err)
	}
	defer rows.Close()

	conv.Messages = []model.Message{}
	for rows.Next() {
		var msg model.Message
		var role, createdAt string
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &role, &msg.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.Role = model.MessageRole(role)
		msg.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse message created_at: %w", err)
		}
		conv.Messages = append(conv.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages for %s: %w", id, err)
	}

	return conv, nil
}

// AppendMessages inserts msgs in order and moves the conversation's updated_at
// to the newest message time, in one transaction.
func (r *ChatRepo) AppendMessages(ctx context.Context, conversationID string, msgs ...model.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM conversations WHERE id = ?`, conversationID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("append to %s: %w", conversationID, driven.ErrConversationNotFound)
	}
	if err != nil {
		return fmt.Errorf("check conversation %s: %w", conversationID, err)
	}

	const insert = `INSERT INTO messages (id, conversation_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`

	var latest time.Time
	for _, msg := range msgs {
		if _, err := tx.ExecContext(ctx, insert,
			msg.ID, conversationID, string(msg.Role), msg.Content, formatTime(msg.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert message %s: %w", msg.ID, err)
		}
		if msg.CreatedAt.After(latest) {
			latest = msg.CreatedAt
		}
	}

	const touch = `UPDATE conversations SET updated_at = MAX(updated_at, ?) WHERE id = ?`
	if _, err := tx.ExecContext(ctx, touch, formatTime(latest), conversationID); err != nil {
		return fmt.Errorf("touch conversation %s: %w", conversationID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit messages for %s: %w", conversationID, err)
	}
	return nil
}

func scanConversation(s scanner) (*model.Conversation, error) {
	var conv model.Conversation
	var createdAt, updatedAt string

	if err := s.Scan(&conv.ID, &conv.Title, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	conv.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	conv.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &conv, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

type scanner interface {
	Scan(dest ...any) error
}

// parseTime accepts the stored layout and the formats SQLite's own datetime
// functions produce.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		timeLayout,
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
