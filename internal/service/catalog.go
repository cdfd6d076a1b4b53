package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"go.opentelemetry.io/otel/attribute"
)

type CatalogService struct {
	products port.ProductRepository
	obs      *Observer
}

func NewCatalogService(products port.ProductRepository, obs *Observer) (*CatalogService, error) {
	if products == nil {
		return nil, fmt.Errorf("product repository is nil")
	}
	if obs == nil {
		obs = nopObserver()
	}
	return &CatalogService{products: products, obs: obs}, nil
}

// Browse lists active products of the filter's collection, or of every
// collection when it is empty, filtered and sorted in memory.
func (s *CatalogService) Browse(ctx context.Context, filter domain.ProductFilter) (_ []domain.Product, err error) {
	ctx, done := s.obs.start(ctx, "catalog.browse",
		attribute.String("collection", filter.Collection),
		attribute.String("type", string(filter.Type)),
		attribute.String("sort", string(filter.Sort)),
	)
	defer done(&err)

	products, err := s.products.List(ctx, port.ProductQuery{
		Collection: filter.Collection,
		Status:     domain.ProductStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("products.List: %w", err)
	}

	return filter.Apply(products), nil
}

// Get returns an active product. Drafts are not found.
func (s *CatalogService) Get(ctx context.Context, productID string) (_ domain.Product, err error) {
	ctx, done := s.obs.start(ctx, "catalog.get", attribute.String("product_id", productID))
	defer done(&err)

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Get: %w", err)
	}
	if product.Status != domain.ProductStatusActive {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	return product, nil
}
