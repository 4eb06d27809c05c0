package domain

import (
	"context"
	"time"
)

const (
	// SellerUsername is the display name carried by auto-replies.
	SellerUsername = "Seller"
	// AutoReplyContent is the fixed auto-reply body.
	AutoReplyContent = "Thank you for your message. We will get back to you shortly."
)

// Message represents a chat message
type Message struct {
	ID         string    `json:"id"`
	ChatroomID string    `json:"chatroom_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	ListByChatroom(ctx context.Context, chatroomID string, limit int) ([]*Message, error)
}
