package domain

import (
	"context"
	"time"
)

// Chatroom pairs one buyer with one seller.
type Chatroom struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SellerID  string    `json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatroomSummary is a chatroom as listed to its buyer.
type ChatroomSummary struct {
	ChatroomID   string `json:"chatroom_id"`
	SellerName   string `json:"seller_name"`
	SellerAvatar string `json:"seller_avatar"`
}

// ChatroomRepository defines the interface for chatroom data access.
// Lookups that match nothing return ErrChatroomNotFound.
type ChatroomRepository interface {
	Create(ctx context.Context, chatroom *Chatroom) error
	FindByPair(ctx context.Context, userID, sellerID string) (*Chatroom, error)
	FindForMember(ctx context.Context, chatroomID, userID string) (*Chatroom, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*Chatroom, error)
}
