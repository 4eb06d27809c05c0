package domain

import (
	"context"
	"errors"
)

var ErrSellerNotFound = errors.New("seller not found")

// Seller is read-only display metadata owned by the seller directory.
// Name and Image are nil when the directory record omits them; a stored
// empty string stays non-nil.
type Seller struct {
	SellerID string
	Name     *string
	Image    *string
}

// SellerRepository looks sellers up by id. A miss returns ErrSellerNotFound.
type SellerRepository interface {
	FindByID(ctx context.Context, sellerID string) (*Seller, error)
}
