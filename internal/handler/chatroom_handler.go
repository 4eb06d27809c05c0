package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"sellerchat/internal/domain"
	"sellerchat/internal/middleware"
	"sellerchat/internal/response"

	"github.com/go-chi/chi/v5"
)

// ChatService is the subset of service.ChatService the handlers call.
type ChatService interface {
	CreateChatroom(ctx context.Context, requesterID, sellerID string) (string, error)
	ListMessages(ctx context.Context, requesterID, chatroomID string) ([]*domain.Message, error)
	SendMessage(ctx context.Context, requester domain.Identity, chatroomID, content string) error
	ListUserChatrooms(ctx context.Context, requesterID string) ([]*domain.ChatroomSummary, error)
}

// ChatroomHandler handles chatroom endpoints
type ChatroomHandler struct {
	chatService ChatService
}

func NewChatroomHandler(chatService ChatService) *ChatroomHandler {
	return &ChatroomHandler{chatService: chatService}
}

// Routes mounts the chatroom endpoints. Callers wrap it with middleware.Auth.
func (h *ChatroomHandler) Routes(r chi.Router) {
	r.Get("/chatrooms", h.List)
	r.Post("/chatrooms/{seller_id}", h.Create)
	r.Get("/chatrooms/{chatroom_id}/messages", h.ListMessages)
	r.Post("/chatrooms/{chatroom_id}/messages", h.SendMessage)
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type messageView struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Create opens a chatroom between the caller and the seller in the path.
func (h *ChatroomHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	chatroomID, err := h.chatService.CreateChatroom(r.Context(), identity.UserID, chi.URLParam(r, "seller_id"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.OK(w, map[string]string{
		"chatroom_id": chatroomID,
		"message":     "Chatroom created successfully",
	})
}

// ListMessages writes the messages as a bare JSON array.
func (h *ChatroomHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), identity.UserID, chi.URLParam(r, "chatroom_id"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	views := make([]messageView, len(messages))
	for i, msg := range messages {
		views[i] = messageView{
			UserID:    msg.UserID,
			Username:  msg.Username,
			Content:   msg.Content,
			Timestamp: msg.Timestamp.UTC().Format(timestampLayout),
		}
	}
	response.JSON(w, http.StatusOK, views)
}

// SendMessage stores the caller's message and the seller auto-reply.
func (h *ChatroomHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeBadRequest, "invalid request body")
		return
	}

	if err := h.chatService.SendMessage(r.Context(), identity, chi.URLParam(r, "chatroom_id"), req.Content); err != nil {
		response.FromError(w, r, err)
		return
	}

	response.OK(w, map[string]string{"message": "Message sent successfully"})
}

// List returns the chatrooms where the caller is the buyer.
func (h *ChatroomHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	chatrooms, err := h.chatService.ListUserChatrooms(r.Context(), identity.UserID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.OK(w, map[string]interface{}{"chatrooms": chatrooms})
}

// RFC 3339 with fixed millisecond precision, always UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "not authenticated")
	}
	return identity, ok
}
