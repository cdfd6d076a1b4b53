package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/snexa/internal/domain"
)

type wishlistRepository struct {
	s *Store
}

func (r *wishlistRepository) GetWishlist(_ context.Context, ownerID string) (domain.Wishlist, error) {
	if ownerID == "" {
		return domain.Wishlist{}, fmt.Errorf("ownerID is empty")
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return domain.NewWishlist(ownerID, slices.Clone(r.s.wishlists[ownerID])), nil
}

func (r *wishlistRepository) Add(_ context.Context, ownerID, productID string) (domain.WishlistEntry, bool, error) {
	if ownerID == "" {
		return domain.WishlistEntry{}, false, fmt.Errorf("ownerID is empty")
	}
	if productID == "" {
		return domain.WishlistEntry{}, false, fmt.Errorf("productID is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entries := r.s.wishlists[ownerID]
	if i := slices.IndexFunc(entries, func(e domain.WishlistEntry) bool { return e.ProductID == productID }); i >= 0 {
		return entries[i], false, nil
	}

	entry := domain.WishlistEntry{
		ID:        uuid.NewString(),
		ProductID: productID,
		CreatedAt: r.s.now(),
	}
	r.s.wishlists[ownerID] = append(entries, entry)

	return entry, true, nil
}

func (r *wishlistRepository) Remove(_ context.Context, ownerID, productID string) (int64, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entries := r.s.wishlists[ownerID]
	kept := slices.DeleteFunc(slices.Clone(entries), func(e domain.WishlistEntry) bool { return e.ProductID == productID })
	r.s.wishlists[ownerID] = kept

	return int64(len(entries) - len(kept)), nil
}
