package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/db"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

const cartQuantityCheck = "cart_items_quantity_check"

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	dbCartItems, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Lines:   mapCartItemsToDomain(dbCartItems),
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, ownerID string, item domain.CartLine) (domain.CartLine, error) {
	if ownerID == "" {
		return domain.CartLine{}, fmt.Errorf("ownerID is empty")
	}
	if item.ProductID == "" {
		return domain.CartLine{}, fmt.Errorf("productID is empty")
	}
	if err := domain.ValidateQuantity(item.Quantity); err != nil {
		return domain.CartLine{}, err
	}

	dbCartItem, err := r.q.AddCartItem(ctx, db.AddCartItemParams{
		OwnerID:   ownerID,
		ProductID: item.ProductID,
		Size:      item.Size,
		Color:     item.Color,
		Quantity:  int32(item.Quantity),
	})
	if err != nil {
		if isCheckViolation(err, cartQuantityCheck) {
			return domain.CartLine{}, fmt.Errorf("quantity of %s exceeds %d: %w", item.ProductID, domain.MaxLineQuantity, domain.ErrInvalidQuantity)
		}
		return domain.CartLine{}, fmt.Errorf("q.AddCartItem: %w", err)
	}

	return mapCartItemToDomain(dbCartItem), nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, ownerID, lineID string, quantity int) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return false, err
	}

	id, err := uuid.Parse(lineID)
	if err != nil {
		return false, nil
	}

	rowsAffected, err := r.q.UpdateCartItemQuantity(ctx, db.UpdateCartItemQuantityParams{
		OwnerID:  ownerID,
		ID:       id,
		Quantity: int32(quantity),
	})
	if err != nil {
		return false, fmt.Errorf("q.UpdateCartItemQuantity: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID, lineID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	id, err := uuid.Parse(lineID)
	if err != nil {
		return false, nil
	}

	rowsAffected, err := r.q.DeleteCartItem(ctx, db.DeleteCartItemParams{
		OwnerID: ownerID,
		ID:      id,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) Clear(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.ClearCart(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("q.ClearCart: %w", err)
	}

	return rowsAffected, nil
}

func mapCartItemToDomain(row db.CartItem) domain.CartLine {
	return domain.CartLine{
		ID:        row.ID.String(),
		ProductID: row.ProductID,
		Size:      row.Size,
		Color:     row.Color,
		Quantity:  int(row.Quantity),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapCartItemsToDomain(rows []db.CartItem) []domain.CartLine {
	var lines []domain.CartLine

	for _, row := range rows {
		lines = append(lines, mapCartItemToDomain(row))
	}

	return lines
}
