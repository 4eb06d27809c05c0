package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sellerchat/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatroomRepository implements domain.ChatroomRepository for MongoDB
type ChatroomRepository struct {
	coll *mongo.Collection
}

func NewChatroomRepository(db *mongo.Database) *ChatroomRepository {
	return &ChatroomRepository{coll: db.Collection(chatroomsCollection)}
}

// Create inserts a chatroom and sets its generated ID. A duplicate pair
// rejected by the unique index is reported as domain.ErrChatroomExists.
func (r *ChatroomRepository) Create(ctx context.Context, chatroom *domain.Chatroom) error {
	defer observe("insert", chatroomsCollection, time.Now())

	doc := chatroomDocument{
		ID:        primitive.NewObjectID(),
		UserID:    chatroom.UserID,
		SellerID:  chatroom.SellerID,
		CreatedAt: chatroom.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrChatroomExists
		}
		return fmt.Errorf("failed to create chatroom: %w", err)
	}

	chatroom.ID = doc.ID.Hex()
	return nil
}

func (r *ChatroomRepository) FindByPair(ctx context.Context, userID, sellerID string) (*domain.Chatroom, error) {
	defer observe("find_one", chatroomsCollection, time.Now())

	return r.findOne(ctx, bson.D{
		{Key: "user_id", Value: userID},
		{Key: "seller_id", Value: sellerID},
	})
}

// FindForMember matches the chatroom by ID only when userID is its buyer or
// seller. Malformed IDs match nothing.
func (r *ChatroomRepository) FindForMember(ctx context.Context, chatroomID, userID string) (*domain.Chatroom, error) {
	oid, err := primitive.ObjectIDFromHex(chatroomID)
	if err != nil {
		return nil, domain.ErrChatroomNotFound
	}

	defer observe("find_one", chatroomsCollection, time.Now())

	return r.findOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "user_id", Value: userID}},
			bson.D{{Key: "seller_id", Value: userID}},
		}},
	})
}

func (r *ChatroomRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Chatroom, error) {
	defer observe("find_many", chatroomsCollection, time.Now())

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query chatrooms: %w", err)
	}
	defer cursor.Close(ctx)

	chatrooms := make([]*domain.Chatroom, 0)
	for cursor.Next(ctx) {
		var doc chatroomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode chatroom: %w", err)
		}
		chatrooms = append(chatrooms, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chatrooms: %w", err)
	}
	return chatrooms, nil
}

func (r *ChatroomRepository) findOne(ctx context.Context, filter bson.D) (*domain.Chatroom, error) {
	var doc chatroomDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrChatroomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chatroom: %w", err)
	}
	return doc.toDomain(), nil
}
