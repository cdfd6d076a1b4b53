package port

import (
	"context"

	"github.com/nikolayk812/snexa/internal/domain"
)

type ProductQuery struct {
	Collection string
	// Status is empty for all statuses.
	Status domain.ProductStatus
}

type ProductRepository interface {
	List(ctx context.Context, query ProductQuery) ([]domain.Product, error)
	Get(ctx context.Context, productID string) (domain.Product, error)
	// GetSnapshots omits ids that are not in the catalog.
	GetSnapshots(ctx context.Context, productIDs []string) (map[string]domain.ProductSnapshot, error)
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, productID string) (bool, error)
}

type ImageStore interface {
	// Put stores the object and returns its public URL.
	Put(ctx context.Context, path, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
}
