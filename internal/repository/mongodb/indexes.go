package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatroomPairIndex = "chatrooms_user_seller_key"

// EnsureIndexes creates the indexes the repositories rely on. It is safe to
// run on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(chatroomsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "seller_id", Value: 1}},
		Options: options.Index().SetName(chatroomPairIndex).SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create chatroom pair index: %w", err)
	}

	_, err = db.Collection(messagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "chatroom_id", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("messages_chatroom_id_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create message index: %w", err)
	}

	_, err = db.Collection(sellersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "seller_id", Value: 1}},
		Options: options.Index().SetName("sellers_seller_id_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create seller index: %w", err)
	}

	slog.Info("mongodb indexes ensured", slog.String("database", db.Name()))
	return nil
}
