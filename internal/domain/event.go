package domain

import (
	"context"
	"time"
)

const (
	EventChatroomCreated = "chatroom.created"
	EventMessageSent     = "message.sent"
)

// Event is a fact about a completed write, published for downstream consumers.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ChatroomID string    `json:"chatroom_id"`
	UserID     string    `json:"user_id"`
	SellerID   string    `json:"seller_id,omitempty"`
	Content    string    `json:"content,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventPublisher delivers events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}
