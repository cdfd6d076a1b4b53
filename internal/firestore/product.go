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

type ProductRepository struct {
	Client *firestore.Client
}

var _ port.ProductRepository = (*ProductRepository)(nil)

func NewProduct(client *firestore.Client) (*ProductRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	return &ProductRepository{Client: client}, nil
}

func (r *ProductRepository) col() *firestore.CollectionRef {
	return r.Client.Collection(colProducts)
}

type productDoc struct {
	Name          string    `firestore:"name"`
	Slug          string    `firestore:"slug"`
	Description   string    `firestore:"description"`
	Collection    string    `firestore:"collection"`
	SubCollection string    `firestore:"subCollection"`
	Price         float64   `firestore:"price"`
	MRP           float64   `firestore:"mrp"`
	Currency      string    `firestore:"currency"`
	Images        []string  `firestore:"images"`
	Sizes         []string  `firestore:"sizes"`
	Colors        []string  `firestore:"colors"`
	Stock         int       `firestore:"stock"`
	Trending      bool      `firestore:"is_trending"`
	NewArrival    bool      `firestore:"is_new_arrival"`
	Status        string    `firestore:"status"`
	CreatedAt     time.Time `firestore:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt"`
}

func productToDoc(p domain.Product) productDoc {
	return productDoc{
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Collection:    p.Collection,
		SubCollection: p.SubCollection,
		Price:         toFloat(p.Price.Amount),
		MRP:           toFloat(p.MRP.Amount),
		Currency:      p.Price.Currency.String(),
		Images:        p.Images,
		Sizes:         p.Sizes,
		Colors:        p.Colors,
		Stock:         p.Stock,
		Trending:      p.Trending,
		NewArrival:    p.NewArrival,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d productDoc) toDomain(id string) (domain.Product, error) {
	unit, err := parseCurrency(d.Currency)
	if err != nil {
		return domain.Product{}, err
	}

	productStatus := domain.ProductStatus(d.Status)
	if productStatus == "" {
		productStatus = domain.ProductStatusActive
	}

	return domain.Product{
		ID:            id,
		Name:          d.Name,
		Slug:          d.Slug,
		Description:   d.Description,
		Collection:    d.Collection,
		SubCollection: d.SubCollection,
		Price:         domain.NewMoney(fromFloat(d.Price), unit),
		MRP:           domain.NewMoney(fromFloat(d.MRP), unit),
		Images:        d.Images,
		Sizes:         d.Sizes,
		Colors:        d.Colors,
		Stock:         d.Stock,
		Trending:      d.Trending,
		NewArrival:    d.NewArrival,
		Status:        productStatus,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func (r *ProductRepository) List(ctx context.Context, query port.ProductQuery) ([]domain.Product, error) {
	q := r.col().Query
	if query.Collection != "" {
		q = q.Where("collection", "==", query.Collection)
	}
	if query.Status != "" {
		q = q.Where("status", "==", string(query.Status))
	}

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("products.GetAll: %w", err)
	}

	products := make([]domain.Product, 0, len(snaps))
	for _, snap := range snaps {
		var doc productDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("products[%s].DataTo: %w", snap.Ref.ID, err)
		}
		p, err := doc.toDomain(snap.Ref.ID)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	slices.SortFunc(products, func(a, b domain.Product) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.ID, b.ID))
	})

	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, productID string) (domain.Product, error) {
	if productID == "" {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}
	if strings.Contains(productID, "/") {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	snap, err := r.col().Doc(productID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("products.Get: %w", err)
	}

	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.Product{}, fmt.Errorf("DataTo: %w", err)
	}

	return doc.toDomain(snap.Ref.ID)
}

// GetSnapshots reads all ids in one batched GetAll call.
func (r *ProductRepository) GetSnapshots(ctx context.Context, productIDs []string) (map[string]domain.ProductSnapshot, error) {
	snapshots := make(map[string]domain.ProductSnapshot, len(productIDs))

	refs := make([]*firestore.DocumentRef, 0, len(productIDs))
	seen := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		if id == "" || strings.Contains(id, "/") {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		refs = append(refs, r.col().Doc(id))
	}
	if len(refs) == 0 {
		return snapshots, nil
	}

	snaps, err := r.Client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("GetAll: %w", err)
	}

	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		var doc productDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("products[%s].DataTo: %w", snap.Ref.ID, err)
		}
		p, err := doc.toDomain(snap.Ref.ID)
		if err != nil {
			return nil, err
		}
		snapshots[p.ID] = p.Snapshot()
	}

	return snapshots, nil
}

func (r *ProductRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	ref := r.col().NewDoc()
	if p.ID != "" {
		ref = r.col().Doc(p.ID)
	}
	p.ID = ref.ID

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := ref.Create(ctx, productToDoc(p)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domain.Product{}, fmt.Errorf("product[%s] exists: %w", p.ID, domain.ErrConflict)
		}
		return domain.Product{}, fmt.Errorf("products.Create: %w", err)
	}

	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	ref := r.col().Doc(p.ID)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("product[%s]: %w", p.ID, domain.ErrNotFound)
			}
			return fmt.Errorf("tx.Get: %w", err)
		}

		var existing productDoc
		if err := snap.DataTo(&existing); err != nil {
			return fmt.Errorf("DataTo: %w", err)
		}

		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = time.Now().UTC()

		return tx.Set(ref, productToDoc(p))
	})
	if err != nil {
		return domain.Product{}, err
	}

	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, fmt.Errorf("productID is empty")
	}

	ref := r.col().Doc(productID)
	deleted := false

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		deleted = false
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return fmt.Errorf("tx.Get: %w", err)
		}
		deleted = true
		return tx.Delete(ref)
	})
	if err != nil {
		return false, fmt.Errorf("RunTransaction: %w", err)
	}

	return deleted, nil
}
