package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sellerchat/internal/domain"

	"github.com/google/uuid"
)

// ChatroomRepository implements domain.ChatroomRepository for PostgreSQL
type ChatroomRepository struct {
	db *sql.DB
}

// NewChatroomRepository creates a new PostgreSQL chatroom repository
func NewChatroomRepository(db *sql.DB) *ChatroomRepository {
	return &ChatroomRepository{db: db}
}

// Create inserts a chatroom and sets its generated ID. A duplicate pair
// rejected by the unique constraint is reported as domain.ErrChatroomExists.
func (r *ChatroomRepository) Create(ctx context.Context, chatroom *domain.Chatroom) error {
	defer observe("insert", "chatrooms", time.Now())

	query := `
		INSERT INTO chatrooms (user_id, seller_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		chatroom.UserID,
		chatroom.SellerID,
		chatroom.CreatedAt,
	).Scan(&chatroom.ID)
	if IsUniqueViolation(err, chatroomPairConstraint) {
		return domain.ErrChatroomExists
	}
	if err != nil {
		return fmt.Errorf("failed to create chatroom: %w", err)
	}
	return nil
}

// FindByPair retrieves the chatroom with exactly this buyer and seller
func (r *ChatroomRepository) FindByPair(ctx context.Context, userID, sellerID string) (*domain.Chatroom, error) {
	defer observe("find_one", "chatrooms", time.Now())

	query := `
		SELECT id, user_id, seller_id, created_at
		FROM chatrooms
		WHERE user_id = $1 AND seller_id = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, sellerID))
}

// FindForMember retrieves a chatroom by ID only if userID is its buyer or seller
func (r *ChatroomRepository) FindForMember(ctx context.Context, chatroomID, userID string) (*domain.Chatroom, error) {
	if _, err := uuid.Parse(chatroomID); err != nil {
		return nil, domain.ErrChatroomNotFound
	}

	defer observe("find_one", "chatrooms", time.Now())

	query := `
		SELECT id, user_id, seller_id, created_at
		FROM chatrooms
		WHERE id = $1 AND (user_id = $2 OR seller_id = $2)
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, chatroomID, userID))
}

// ListByUser retrieves up to limit chatrooms where userID is the buyer
func (r *ChatroomRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Chatroom, error) {
	defer observe("find_many", "chatrooms", time.Now())

	query := `
		SELECT id, user_id, seller_id, created_at
		FROM chatrooms
		WHERE user_id = $1
		ORDER BY created_at
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chatrooms: %w", err)
	}
	defer rows.Close()

	chatrooms := make([]*domain.Chatroom, 0)
	for rows.Next() {
		chatroom := &domain.Chatroom{}
		if err := rows.Scan(
			&chatroom.ID,
			&chatroom.UserID,
			&chatroom.SellerID,
			&chatroom.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chatroom: %w", err)
		}
		chatroom.CreatedAt = chatroom.CreatedAt.UTC()
		chatrooms = append(chatrooms, chatroom)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chatrooms: %w", err)
	}
	return chatrooms, nil
}

func (r *ChatroomRepository) scanOne(row *sql.Row) (*domain.Chatroom, error) {
	chatroom := &domain.Chatroom{}
	err := row.Scan(
		&chatroom.ID,
		&chatroom.UserID,
		&chatroom.SellerID,
		&chatroom.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrChatroomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chatroom: %w", err)
	}
	chatroom.CreatedAt = chatroom.CreatedAt.UTC()
	return chatroom, nil
}
