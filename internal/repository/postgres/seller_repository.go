package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sellerchat/internal/domain"
)

// SellerRepository reads seller display metadata from the sellers table
type SellerRepository struct {
	db *sql.DB
}

func NewSellerRepository(db *sql.DB) *SellerRepository {
	return &SellerRepository{db: db}
}

func (r *SellerRepository) FindByID(ctx context.Context, sellerID string) (*domain.Seller, error) {
	defer observe("find_one", "sellers", time.Now())

	query := `
		SELECT seller_id, name, image
		FROM sellers
		WHERE seller_id = $1
	`
	var (
		seller      domain.Seller
		name, image sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, sellerID).Scan(
		&seller.SellerID,
		&name,
		&image,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSellerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}

	seller.Name = nullableString(name)
	seller.Image = nullableString(image)
	return &seller, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
