package mongodb

import (
	"time"

	"sellerchat/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	chatroomsCollection = "chatrooms"
	messagesCollection  = "messages"
	sellersCollection   = "sellers"
)

type chatroomDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	SellerID  string             `bson:"seller_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *chatroomDocument) toDomain() *domain.Chatroom {
	return &domain.Chatroom{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		SellerID:  d.SellerID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type messageDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ChatroomID string             `bson:"chatroom_id"`
	UserID     string             `bson:"user_id"`
	Username   string             `bson:"username"`
	Content    string             `bson:"content"`
	Timestamp  time.Time          `bson:"timestamp"`
}

func (d *messageDocument) toDomain() *domain.Message {
	return &domain.Message{
		ID:         d.ID.Hex(),
		ChatroomID: d.ChatroomID,
		UserID:     d.UserID,
		Username:   d.Username,
		Content:    d.Content,
		Timestamp:  d.Timestamp.UTC(),
	}
}

// sellerDocument is owned by the seller directory; name and image may be absent.
type sellerDocument struct {
	SellerID string `bson:"seller_id"`
	Name     *string `bson:"name,omitempty"`
	Image    *string `bson:"image,omitempty"`
}
