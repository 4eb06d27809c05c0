package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sellerchat/internal/domain"
	"sellerchat/internal/observability"
)

// ListLimit caps every list operation.
const ListLimit = 100

const defaultSellerName = "Unknown"

type ChatService struct {
	chatroomRepo domain.ChatroomRepository
	messageRepo  domain.MessageRepository
	sellerRepo   domain.SellerRepository
	publisher    domain.EventPublisher
	now          func() time.Time
}

// NewChatService wires the service to its store and directory. A nil publisher
// disables event publishing.
func NewChatService(
	chatroomRepo domain.ChatroomRepository,
	messageRepo domain.MessageRepository,
	sellerRepo domain.SellerRepository,
	publisher domain.EventPublisher,
) *ChatService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &ChatService{
		chatroomRepo: chatroomRepo,
		messageRepo:  messageRepo,
		sellerRepo:   sellerRepo,
		publisher:    publisher,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateChatroom opens the chatroom between requesterID (as buyer) and sellerID.
// Only the exact (requesterID, sellerID) pairing is checked for duplicates.
func (s *ChatService) CreateChatroom(ctx context.Context, requesterID, sellerID string) (string, error) {
	if requesterID == sellerID {
		return "", domain.ErrSelfChatroom
	}

	_, err := s.chatroomRepo.FindByPair(ctx, requesterID, sellerID)
	switch {
	case err == nil:
		return "", domain.ErrChatroomExists
	case !errors.Is(err, domain.ErrChatroomNotFound):
		return "", err
	}

	chatroom := &domain.Chatroom{
		UserID:    requesterID,
		SellerID:  sellerID,
		CreatedAt: s.now(),
	}
	if err := s.chatroomRepo.Create(ctx, chatroom); err != nil {
		return "", err
	}

	observability.ChatroomsCreatedTotal.Inc()
	observability.FromContext(ctx).Info("chatroom created",
		slog.String("chatroom_id", chatroom.ID),
		slog.String("seller_id", sellerID))

	s.publish(ctx, &domain.Event{
		Type:       domain.EventChatroomCreated,
		ChatroomID: chatroom.ID,
		UserID:     requesterID,
		SellerID:   sellerID,
		Timestamp:  chatroom.CreatedAt,
	})

	return chatroom.ID, nil
}

// ListMessages returns up to ListLimit messages in store retrieval order.
// An empty chatroom is reported as ErrNoMessages.
func (s *ChatService) ListMessages(ctx context.Context, requesterID, chatroomID string) ([]*domain.Message, error) {
	if _, err := s.chatroomRepo.FindForMember(ctx, chatroomID, requesterID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByChatroom(ctx, chatroomID, ListLimit)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, domain.ErrNoMessages
	}
	return messages, nil
}

// SendMessage stores the requester's message followed by the seller auto-reply.
// The two writes are not atomic: if the reply fails the user message stays.
func (s *ChatService) SendMessage(ctx context.Context, requester domain.Identity, chatroomID, content string) error {
	chatroom, err := s.chatroomRepo.FindForMember(ctx, chatroomID, requester.UserID)
	if err != nil {
		return err
	}

	userMsg := &domain.Message{
		ChatroomID: chatroomID,
		UserID:     requester.UserID,
		Username:   requester.Username,
		Content:    content,
		Timestamp:  s.now(),
	}
	if err := s.messageRepo.Create(ctx, userMsg); err != nil {
		return err
	}
	observability.MessagesStoredTotal.WithLabelValues("user").Inc()

	reply := &domain.Message{
		ChatroomID: chatroomID,
		UserID:     chatroom.SellerID,
		Username:   domain.SellerUsername,
		Content:    domain.AutoReplyContent,
		Timestamp:  s.now(),
	}
	if err := s.messageRepo.Create(ctx, reply); err != nil {
		observability.FromContext(ctx).Error("auto-reply not stored",
			slog.String("chatroom_id", chatroomID),
			slog.String("message_id", userMsg.ID),
			slog.String("error", err.Error()))
		return err
	}
	observability.MessagesStoredTotal.WithLabelValues("seller").Inc()

	s.publish(ctx, &domain.Event{
		Type:       domain.EventMessageSent,
		ChatroomID: chatroomID,
		UserID:     requester.UserID,
		SellerID:   chatroom.SellerID,
		Content:    content,
		Timestamp:  userMsg.Timestamp,
	})

	return nil
}

// ListUserChatrooms lists the chatrooms where requesterID is the buyer.
// Chatrooms whose seller is missing from the directory are left out. Only an
// absent name falls back to "Unknown".
func (s *ChatService) ListUserChatrooms(ctx context.Context, requesterID string) ([]*domain.ChatroomSummary, error) {
	chatrooms, err := s.chatroomRepo.ListByUser(ctx, requesterID, ListLimit)
	if err != nil {
		return nil, err
	}
	if len(chatrooms) == 0 {
		return nil, domain.ErrNoChatrooms
	}

	summaries := make([]*domain.ChatroomSummary, 0, len(chatrooms))
	for _, chatroom := range chatrooms {
		seller, err := s.sellerRepo.FindByID(ctx, chatroom.SellerID)
		if errors.Is(err, domain.ErrSellerNotFound) {
			observability.FromContext(ctx).Debug("seller missing from directory",
				slog.String("chatroom_id", chatroom.ID),
				slog.String("seller_id", chatroom.SellerID))
			continue
		}
		if err != nil {
			return nil, err
		}

		summary := &domain.ChatroomSummary{
			ChatroomID: chatroom.ID,
			SellerName: defaultSellerName,
		}
		if seller.Name != nil {
			summary.SellerName = *seller.Name
		}
		if seller.Image != nil {
			summary.SellerAvatar = *seller.Image
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *ChatService) publish(ctx context.Context, event *domain.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		observability.FromContext(ctx).Warn("failed to publish chat event",
			slog.String("type", event.Type),
			slog.String("chatroom_id", event.ChatroomID),
			slog.String("error", err.Error()))
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, *domain.Event) error { return nil }
