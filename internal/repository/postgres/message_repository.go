package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sellerchat/internal/domain"

	"github.com/google/uuid"
)

// MessageRepository implements domain.MessageRepository for PostgreSQL
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new PostgreSQL message repository
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message into the database
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	defer observe("insert", "messages", time.Now())

	query := `
		INSERT INTO messages (chatroom_id, user_id, username, content, sent_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		message.ChatroomID,
		message.UserID,
		message.Username,
		message.Content,
		message.Timestamp,
	).Scan(&message.ID)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListByChatroom retrieves up to limit messages of a chatroom in insertion order
func (r *MessageRepository) ListByChatroom(ctx context.Context, chatroomID string, limit int) ([]*domain.Message, error) {
	if _, err := uuid.Parse(chatroomID); err != nil {
		return []*domain.Message{}, nil
	}

	defer observe("find_many", "messages", time.Now())

	query := `
		SELECT id, chatroom_id, user_id, username, content, sent_at
		FROM messages
		WHERE chatroom_id = $1
		ORDER BY id
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, chatroomID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		msg := &domain.Message{}
		if err := rows.Scan(
			&msg.ID,
			&msg.ChatroomID,
			&msg.UserID,
			&msg.Username,
			&msg.Content,
			&msg.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Timestamp = msg.Timestamp.UTC()
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}
