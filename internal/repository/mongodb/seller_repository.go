package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sellerchat/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SellerRepository reads the seller directory collection.
type SellerRepository struct {
	coll *mongo.Collection
}

func NewSellerRepository(db *mongo.Database) *SellerRepository {
	return &SellerRepository{coll: db.Collection(sellersCollection)}
}

func (r *SellerRepository) FindByID(ctx context.Context, sellerID string) (*domain.Seller, error) {
	defer observe("find_one", sellersCollection, time.Now())

	var doc sellerDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "seller_id", Value: sellerID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSellerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}

	return &domain.Seller{SellerID: doc.SellerID, Name: doc.Name, Image: doc.Image}, nil
}
