package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/db"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

type wishlistRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewWishlist(pool *pgxpool.Pool) (port.WishlistRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &wishlistRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func (r *wishlistRepository) GetWishlist(ctx context.Context, ownerID string) (domain.Wishlist, error) {
	if ownerID == "" {
		return domain.Wishlist{}, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.GetWishlist(ctx, ownerID)
	if err != nil {
		return domain.Wishlist{}, fmt.Errorf("q.GetWishlist: %w", err)
	}

	entries := make([]domain.WishlistEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, mapWishlistItemToDomain(row))
	}

	return domain.NewWishlist(ownerID, entries), nil
}

type addedEntry struct {
	entry   domain.WishlistEntry
	created bool
}

func (r *wishlistRepository) Add(ctx context.Context, ownerID, productID string) (domain.WishlistEntry, bool, error) {
	if ownerID == "" {
		return domain.WishlistEntry{}, false, fmt.Errorf("ownerID is empty")
	}
	if productID == "" {
		return domain.WishlistEntry{}, false, fmt.Errorf("productID is empty")
	}

	res, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (addedEntry, error) {
		row, err := q.AddWishlistItem(ctx, db.AddWishlistItemParams{
			OwnerID:   ownerID,
			ProductID: productID,
		})
		if err == nil {
			return addedEntry{entry: mapWishlistItemToDomain(row), created: true}, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return addedEntry{}, fmt.Errorf("q.AddWishlistItem: %w", err)
		}

		// already listed: ON CONFLICT DO NOTHING returns no row
		row, err = q.GetWishlistItem(ctx, db.GetWishlistItemParams{
			OwnerID:   ownerID,
			ProductID: productID,
		})
		if err != nil {
			return addedEntry{}, fmt.Errorf("q.GetWishlistItem: %w", err)
		}

		return addedEntry{entry: mapWishlistItemToDomain(row)}, nil
	})
	if err != nil {
		return domain.WishlistEntry{}, false, err
	}

	return res.entry, res.created, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, ownerID, productID string) (int64, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.RemoveWishlistItem(ctx, db.RemoveWishlistItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
	})
	if err != nil {
		return 0, fmt.Errorf("q.RemoveWishlistItem: %w", err)
	}

	return rowsAffected, nil
}

func mapWishlistItemToDomain(row db.WishlistItem) domain.WishlistEntry {
	return domain.WishlistEntry{
		ID:        row.ID.String(),
		ProductID: row.ProductID,
		CreatedAt: row.CreatedAt,
	}
}
