package port

import (
	"context"

	"github.com/nikolayk812/snexa/internal/domain"
)

// CartRepository stores cart lines. Lines returned by GetCart carry no
// product snapshot; the cart service joins those from the catalog.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	// AddItem merges by (product, size, color): an existing line gets its
	// quantity increased, otherwise a new line is created.
	AddItem(ctx context.Context, ownerID string, item domain.CartLine) (domain.CartLine, error)
	UpdateQuantity(ctx context.Context, ownerID, lineID string, quantity int) (bool, error)
	DeleteItem(ctx context.Context, ownerID, lineID string) (bool, error)
	Clear(ctx context.Context, ownerID string) (int64, error)
}

type WishlistRepository interface {
	GetWishlist(ctx context.Context, ownerID string) (domain.Wishlist, error)
	// Add is a no-op returning created=false when the product is already listed.
	Add(ctx context.Context, ownerID, productID string) (domain.WishlistEntry, bool, error)
	// Remove deletes every entry of the product.
	Remove(ctx context.Context, ownerID, productID string) (int64, error)
}
