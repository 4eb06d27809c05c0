package mongodb

import (
	"context"
	"fmt"
	"time"

	"sellerchat/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository implements domain.MessageRepository for MongoDB
type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(messagesCollection)}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	defer observe("insert", messagesCollection, time.Now())

	doc := messageDocument{
		ID:         primitive.NewObjectID(),
		ChatroomID: msg.ChatroomID,
		UserID:     msg.UserID,
		Username:   msg.Username,
		Content:    msg.Content,
		Timestamp:  msg.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	msg.ID = doc.ID.Hex()
	return nil
}

// ListByChatroom returns up to limit messages ordered by _id, which follows
// insertion order for a single writer.
func (r *MessageRepository) ListByChatroom(ctx context.Context, chatroomID string, limit int) ([]*domain.Message, error) {
	defer observe("find_many", messagesCollection, time.Now())

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "chatroom_id", Value: chatroomID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	messages := make([]*domain.Message, 0, len(docs))
	for i := range docs {
		messages = append(messages, docs[i].toDomain())
	}
	return messages, nil
}
