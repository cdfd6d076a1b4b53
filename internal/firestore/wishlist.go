package firestore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type WishlistRepository struct {
	Client *firestore.Client
}

var _ port.WishlistRepository = (*WishlistRepository)(nil)

func NewWishlist(client *firestore.Client) (*WishlistRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	return &WishlistRepository{Client: client}, nil
}

func (r *WishlistRepository) col() *firestore.CollectionRef {
	return r.Client.Collection(colWishlist)
}

type wishlistItemDoc struct {
	UserID    string    `firestore:"user_id"`
	ProductID string    `firestore:"product_id"`
	CreatedAt time.Time `firestore:"created_at"`
}

// wishlistDocID makes (owner, product) the document key so the store itself
// rejects a second entry.
func wishlistDocID(ownerID, productID string) (string, error) {
	if strings.Contains(ownerID, "/") || strings.Contains(productID, "/") {
		return "", fmt.Errorf("wishlist key %s/%s is not valid: %w", ownerID, productID, domain.ErrInvalidInput)
	}
	return ownerID + "_" + productID, nil
}

func (r *WishlistRepository) GetWishlist(ctx context.Context, ownerID string) (domain.Wishlist, error) {
	if ownerID == "" {
		return domain.Wishlist{}, fmt.Errorf("ownerID is empty")
	}

	snaps, err := r.col().Where("user_id", "==", ownerID).Documents(ctx).GetAll()
	if err != nil {
		return domain.Wishlist{}, fmt.Errorf("wishlist_items.GetAll: %w", err)
	}

	entries := make([]domain.WishlistEntry, 0, len(snaps))
	for _, snap := range snaps {
		var doc wishlistItemDoc
		if err := snap.DataTo(&doc); err != nil {
			return domain.Wishlist{}, fmt.Errorf("wishlist_items[%s].DataTo: %w", snap.Ref.ID, err)
		}
		entries = append(entries, domain.WishlistEntry{
			ID:        snap.Ref.ID,
			ProductID: doc.ProductID,
			CreatedAt: doc.CreatedAt,
		})
	}
	slices.SortFunc(entries, func(a, b domain.WishlistEntry) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID, b.ID))
	})

	return domain.NewWishlist(ownerID, entries), nil
}

func (r *WishlistRepository) Add(ctx context.Context, ownerID, productID string) (domain.WishlistEntry, bool, error) {
	if ownerID == "" {
		return domain.WishlistEntry{}, false, fmt.Errorf("ownerID is empty")
	}
	if productID == "" {
		return domain.WishlistEntry{}, false, fmt.Errorf("productID is empty")
	}

	id, err := wishlistDocID(ownerID, productID)
	if err != nil {
		return domain.WishlistEntry{}, false, err
	}

	doc := wishlistItemDoc{UserID: ownerID, ProductID: productID, CreatedAt: time.Now().UTC()}

	_, err = r.col().Doc(id).Create(ctx, doc)
	if err == nil {
		return domain.WishlistEntry{ID: id, ProductID: productID, CreatedAt: doc.CreatedAt}, true, nil
	}
	if status.Code(err) != codes.AlreadyExists {
		return domain.WishlistEntry{}, false, fmt.Errorf("wishlist_items.Create: %w", err)
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return domain.WishlistEntry{}, false, fmt.Errorf("wishlist_items.Get: %w", err)
	}
	var existing wishlistItemDoc
	if err := snap.DataTo(&existing); err != nil {
		return domain.WishlistEntry{}, false, fmt.Errorf("DataTo: %w", err)
	}

	return domain.WishlistEntry{ID: id, ProductID: productID, CreatedAt: existing.CreatedAt}, false, nil
}

// Remove also deletes entries with generated ids written by older clients.
func (r *WishlistRepository) Remove(ctx context.Context, ownerID, productID string) (int64, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}

	var n int64

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		q := r.col().Where("user_id", "==", ownerID).Where("product_id", "==", productID)

		snaps, err := tx.Documents(q).GetAll()
		if err != nil {
			return fmt.Errorf("tx.Documents: %w", err)
		}

		n = 0
		for _, snap := range snaps {
			if err := tx.Delete(snap.Ref); err != nil {
				return fmt.Errorf("tx.Delete: %w", err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("RunTransaction: %w", err)
	}

	return n, nil
}
