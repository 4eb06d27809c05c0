// Package testutil provides in-memory repositories, fixtures and HTTP helpers
// shared by the sellerchat test suites.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sellerchat/internal/domain"
)

var ErrMockNotImplemented = errors.New("mock function not implemented")

// MockChatroomRepository implements domain.ChatroomRepository in memory.
// Set a Func field to override the matching method.
type MockChatroomRepository struct {
	mu     sync.RWMutex
	nextID int

	CreateFunc        func(ctx context.Context, chatroom *domain.Chatroom) error
	FindByPairFunc    func(ctx context.Context, userID, sellerID string) (*domain.Chatroom, error)
	FindForMemberFunc func(ctx context.Context, chatroomID, userID string) (*domain.Chatroom, error)
	ListByUserFunc    func(ctx context.Context, userID string, limit int) ([]*domain.Chatroom, error)

	// Chatrooms in insertion order.
	Chatrooms []*domain.Chatroom
}

func NewMockChatroomRepository() *MockChatroomRepository {
	return &MockChatroomRepository{}
}

func (m *MockChatroomRepository) Create(ctx context.Context, chatroom *domain.Chatroom) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, chatroom)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Chatrooms {
		if c.UserID == chatroom.UserID && c.SellerID == chatroom.SellerID {
			return domain.ErrChatroomExists
		}
	}

	m.nextID++
	chatroom.ID = fmt.Sprintf("chatroom-%d", m.nextID)
	stored := *chatroom
	m.Chatrooms = append(m.Chatrooms, &stored)
	return nil
}

func (m *MockChatroomRepository) FindByPair(ctx context.Context, userID, sellerID string) (*domain.Chatroom, error) {
	if m.FindByPairFunc != nil {
		return m.FindByPairFunc(ctx, userID, sellerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.Chatrooms {
		if c.UserID == userID && c.SellerID == sellerID {
			found := *c
			return &found, nil
		}
	}
	return nil, domain.ErrChatroomNotFound
}

func (m *MockChatroomRepository) FindForMember(ctx context.Context, chatroomID, userID string) (*domain.Chatroom, error) {
	if m.FindForMemberFunc != nil {
		return m.FindForMemberFunc(ctx, chatroomID, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.Chatrooms {
		if c.ID == chatroomID && (c.UserID == userID || c.SellerID == userID) {
			found := *c
			return &found, nil
		}
	}
	return nil, domain.ErrChatroomNotFound
}

func (m *MockChatroomRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Chatroom, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.Chatroom
	for _, c := range m.Chatrooms {
		if len(result) == limit {
			break
		}
		if c.UserID == userID {
			found := *c
			result = append(result, &found)
		}
	}
	return result, nil
}

// MockMessageRepository implements domain.MessageRepository in memory.
type MockMessageRepository struct {
	mu     sync.RWMutex
	nextID int

	CreateFunc         func(ctx context.Context, msg *domain.Message) error
	ListByChatroomFunc func(ctx context.Context, chatroomID string, limit int) ([]*domain.Message, error)

	// Messages in insertion order.
	Messages []*domain.Message
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{}
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	msg.ID = fmt.Sprintf("msg-%d", m.nextID)
	stored := *msg
	m.Messages = append(m.Messages, &stored)
	return nil
}

func (m *MockMessageRepository) ListByChatroom(ctx context.Context, chatroomID string, limit int) ([]*domain.Message, error) {
	if m.ListByChatroomFunc != nil {
		return m.ListByChatroomFunc(ctx, chatroomID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.Message
	for _, msg := range m.Messages {
		if len(result) == limit {
			break
		}
		if msg.ChatroomID == chatroomID {
			found := *msg
			result = append(result, &found)
		}
	}
	return result, nil
}

// Count returns how many messages were stored for chatroomID.
func (m *MockMessageRepository) Count(chatroomID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, msg := range m.Messages {
		if msg.ChatroomID == chatroomID {
			n++
		}
	}
	return n
}

// MockSellerRepository implements domain.SellerRepository over a map.
type MockSellerRepository struct {
	mu sync.RWMutex

	FindByIDFunc func(ctx context.Context, sellerID string) (*domain.Seller, error)

	Sellers map[string]*domain.Seller
}

func NewMockSellerRepository(sellers ...*domain.Seller) *MockSellerRepository {
	m := &MockSellerRepository{Sellers: make(map[string]*domain.Seller)}
	for _, s := range sellers {
		m.Sellers[s.SellerID] = s
	}
	return m
}

func (m *MockSellerRepository) FindByID(ctx context.Context, sellerID string) (*domain.Seller, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sellerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.Sellers[sellerID]; ok {
		return s, nil
	}
	return nil, domain.ErrSellerNotFound
}

// MockEventPublisher records every published event.
type MockEventPublisher struct {
	mu sync.Mutex

	PublishFunc func(ctx context.Context, event *domain.Event) error

	Events []*domain.Event
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}

// Types returns the published event types in order.
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}
