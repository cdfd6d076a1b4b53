package domain

import "time"

type WishlistEntry struct {
	ID        string
	ProductID string
	CreatedAt time.Time
}

// Wishlist keeps the loaded entries in store order plus a membership set built
// once per load.
type Wishlist struct {
	OwnerID string
	Entries []WishlistEntry

	members map[string]struct{}
}

func NewWishlist(ownerID string, entries []WishlistEntry) Wishlist {
	members := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		members[e.ProductID] = struct{}{}
	}

	return Wishlist{
		OwnerID: ownerID,
		Entries: entries,
		members: members,
	}
}

func (w Wishlist) Contains(productID string) bool {
	_, ok := w.members[productID]
	return ok
}

// ProductIDs returns the distinct product ids in entry order.
func (w Wishlist) ProductIDs() []string {
	seen := make(map[string]struct{}, len(w.Entries))
	ids := make([]string, 0, len(w.Entries))
	for _, e := range w.Entries {
		if _, ok := seen[e.ProductID]; ok {
			continue
		}
		seen[e.ProductID] = struct{}{}
		ids = append(ids, e.ProductID)
	}
	return ids
}

func (w Wishlist) Len() int {
	return len(w.members)
}
