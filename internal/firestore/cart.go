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

type CartRepository struct {
	Client *firestore.Client
}

var _ port.CartRepository = (*CartRepository)(nil)

func NewCart(client *firestore.Client) (*CartRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	return &CartRepository{Client: client}, nil
}

func (r *CartRepository) col() *firestore.CollectionRef {
	return r.Client.Collection(colCartItems)
}

type cartItemDoc struct {
	UserID        string    `firestore:"user_id"`
	ProductID     string    `firestore:"product_id"`
	SelectedSize  string    `firestore:"selected_size"`
	SelectedColor string    `firestore:"selected_color"`
	Quantity      int       `firestore:"quantity"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func (d cartItemDoc) toDomain(id string) domain.CartLine {
	return domain.CartLine{
		ID:        id,
		ProductID: d.ProductID,
		Size:      d.SelectedSize,
		Color:     d.SelectedColor,
		Quantity:  d.Quantity,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *CartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	snaps, err := r.col().Where("user_id", "==", ownerID).Documents(ctx).GetAll()
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart_items.GetAll: %w", err)
	}

	lines := make([]domain.CartLine, 0, len(snaps))
	for _, snap := range snaps {
		var doc cartItemDoc
		if err := snap.DataTo(&doc); err != nil {
			return domain.Cart{}, fmt.Errorf("cart_items[%s].DataTo: %w", snap.Ref.ID, err)
		}
		lines = append(lines, doc.toDomain(snap.Ref.ID))
	}
	sortLines(lines)

	return domain.Cart{OwnerID: ownerID, Lines: lines}, nil
}

// AddItem reads the owner's lines inside a transaction so concurrent adds of
// the same selection serialize instead of creating duplicate lines. A cart
// holds at most domain.MaxCartLines lines, which keeps PlaceOrder and Clear
// within the transaction write limit.
func (r *CartRepository) AddItem(ctx context.Context, ownerID string, item domain.CartLine) (domain.CartLine, error) {
	if ownerID == "" {
		return domain.CartLine{}, fmt.Errorf("ownerID is empty")
	}
	if item.ProductID == "" {
		return domain.CartLine{}, fmt.Errorf("productID is empty")
	}
	if err := domain.ValidateQuantity(item.Quantity); err != nil {
		return domain.CartLine{}, err
	}

	var line domain.CartLine

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.Documents(r.col().Where("user_id", "==", ownerID)).GetAll()
		if err != nil {
			return fmt.Errorf("tx.Documents: %w", err)
		}

		now := time.Now().UTC()

		for _, snap := range snaps {
			var doc cartItemDoc
			if err := snap.DataTo(&doc); err != nil {
				return fmt.Errorf("DataTo: %w", err)
			}
			if doc.ProductID != item.ProductID || doc.SelectedSize != item.Size || doc.SelectedColor != item.Color {
				continue
			}

			quantity, err := domain.MergeQuantity(doc.Quantity, item.Quantity)
			if err != nil {
				return err
			}
			doc.Quantity = quantity
			doc.UpdatedAt = now

			if err := tx.Set(snap.Ref, doc); err != nil {
				return fmt.Errorf("tx.Set: %w", err)
			}
			line = doc.toDomain(snap.Ref.ID)
			return nil
		}

		if len(snaps) >= domain.MaxCartLines {
			return fmt.Errorf("cart has %d lines, max %d: %w", len(snaps), domain.MaxCartLines, domain.ErrInvalidInput)
		}

		ref := r.col().NewDoc()
		doc := cartItemDoc{
			UserID:        ownerID,
			ProductID:     item.ProductID,
			SelectedSize:  item.Size,
			SelectedColor: item.Color,
			Quantity:      item.Quantity,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Create(ref, doc); err != nil {
			return fmt.Errorf("tx.Create: %w", err)
		}
		line = doc.toDomain(ref.ID)
		return nil
	})
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("RunTransaction: %w", err)
	}

	return line, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, ownerID, lineID string, quantity int) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return false, err
	}
	if lineID == "" {
		return false, nil
	}

	updated := false

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		updated = false

		ref := r.col().Doc(lineID)
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return fmt.Errorf("tx.Get: %w", err)
		}

		var doc cartItemDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("DataTo: %w", err)
		}
		if doc.UserID != ownerID {
			return nil
		}

		updated = true
		return tx.Update(ref, []firestore.Update{
			{Path: "quantity", Value: quantity},
			{Path: "updated_at", Value: time.Now().UTC()},
		})
	})
	if err != nil {
		return false, fmt.Errorf("RunTransaction: %w", err)
	}

	return updated, nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, ownerID, lineID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}
	if lineID == "" {
		return false, nil
	}

	deleted := false

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		deleted = false

		ref := r.col().Doc(lineID)
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return fmt.Errorf("tx.Get: %w", err)
		}

		var doc cartItemDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("DataTo: %w", err)
		}
		if doc.UserID != ownerID {
			return nil
		}

		deleted = true
		return tx.Delete(ref)
	})
	if err != nil {
		return false, fmt.Errorf("RunTransaction: %w", err)
	}

	return deleted, nil
}

// Clear deletes the owner's lines in transactions of at most maxTxWrites
// deletes each.
func (r *CartRepository) Clear(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}

	var total int64

	for {
		var n int

		err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			q := r.col().Where("user_id", "==", ownerID).Limit(maxTxWrites)
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
			return total, fmt.Errorf("RunTransaction: %w", err)
		}

		total += int64(n)
		if n < maxTxWrites {
			return total, nil
		}
	}
}

func sortLines(lines []domain.CartLine) {
	slices.SortFunc(lines, func(a, b domain.CartLine) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID, b.ID))
	})
}
