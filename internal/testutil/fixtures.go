package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"sellerchat/internal/domain"
)

var idCounter atomic.Int64

func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, idCounter.Add(1))
}

// ChatroomOptions allows customizing chatroom fixture creation
type ChatroomOptions struct {
	ID        string
	UserID    string
	SellerID  string
	CreatedAt time.Time
}

// NewTestChatroom creates a test chatroom with sensible defaults
func NewTestChatroom(opts ...func(*ChatroomOptions)) *domain.Chatroom {
	o := &ChatroomOptions{
		ID:        nextID("chatroom"),
		UserID:    nextID("user"),
		SellerID:  nextID("seller"),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &domain.Chatroom{
		ID:        o.ID,
		UserID:    o.UserID,
		SellerID:  o.SellerID,
		CreatedAt: o.CreatedAt,
	}
}

func WithChatroomID(id string) func(*ChatroomOptions) {
	return func(o *ChatroomOptions) { o.ID = id }
}

func WithBuyer(userID string) func(*ChatroomOptions) {
	return func(o *ChatroomOptions) { o.UserID = userID }
}

func WithSeller(sellerID string) func(*ChatroomOptions) {
	return func(o *ChatroomOptions) { o.SellerID = sellerID }
}

// MessageOptions allows customizing message fixture creation
type MessageOptions struct {
	ID         string
	ChatroomID string
	UserID     string
	Username   string
	Content    string
	Timestamp  time.Time
}

// NewTestMessage creates a test message with sensible defaults
func NewTestMessage(opts ...func(*MessageOptions)) *domain.Message {
	o := &MessageOptions{
		ID:         nextID("msg"),
		ChatroomID: nextID("chatroom"),
		UserID:     nextID("user"),
		Username:   fmt.Sprintf("testuser%d", idCounter.Load()),
		Content:    "Hello, World!",
		Timestamp:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &domain.Message{
		ID:         o.ID,
		ChatroomID: o.ChatroomID,
		UserID:     o.UserID,
		Username:   o.Username,
		Content:    o.Content,
		Timestamp:  o.Timestamp,
	}
}

func WithMessageChatroomID(chatroomID string) func(*MessageOptions) {
	return func(o *MessageOptions) { o.ChatroomID = chatroomID }
}

func WithAuthor(userID, username string) func(*MessageOptions) {
	return func(o *MessageOptions) {
		o.UserID = userID
		o.Username = username
	}
}

func WithContent(content string) func(*MessageOptions) {
	return func(o *MessageOptions) { o.Content = content }
}

// NewTestMessages creates count messages in the same chatroom, one second apart.
func NewTestMessages(chatroomID string, count int) []*domain.Message {
	base := time.Now().UTC()
	messages := make([]*domain.Message, count)
	for i := 0; i < count; i++ {
		messages[i] = NewTestMessage(WithMessageChatroomID(chatroomID))
		messages[i].Timestamp = base.Add(time.Duration(i) * time.Second)
	}
	return messages
}

// NewTestSeller creates a directory entry with both name and image set.
func NewTestSeller(sellerID, name, image string) *domain.Seller {
	return &domain.Seller{SellerID: sellerID, Name: &name, Image: &image}
}

// NewBareTestSeller creates a directory entry without name or image.
func NewBareTestSeller(sellerID string) *domain.Seller {
	return &domain.Seller{SellerID: sellerID}
}

func NewTestIdentity(userID, username string) domain.Identity {
	return domain.Identity{UserID: userID, Username: username}
}

// ResetIDCounter resets the ID counter (useful for deterministic tests)
func ResetIDCounter() {
	idCounter.Store(0)
}
