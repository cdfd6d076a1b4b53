package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/db"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) (port.ProductRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &productRepository{q: db.New(pool)}, nil
}

func (r *productRepository) List(ctx context.Context, query port.ProductQuery) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx, db.ListProductsParams{
		Collection: query.Collection,
		Status:     string(query.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}

func (r *productRepository) Get(ctx context.Context, productID string) (domain.Product, error) {
	if productID == "" {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) GetSnapshots(ctx context.Context, productIDs []string) (map[string]domain.ProductSnapshot, error) {
	snapshots := make(map[string]domain.ProductSnapshot, len(productIDs))
	if len(productIDs) == 0 {
		return snapshots, nil
	}

	rows, err := r.q.GetProductSnapshots(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("q.GetProductSnapshots: %w", err)
	}

	for _, row := range rows {
		unit, err := parseCurrency(row.Currency)
		if err != nil {
			return nil, err
		}

		snapshots[row.ID] = domain.ProductSnapshot{
			ID:     row.ID,
			Name:   row.Name,
			Price:  domain.NewMoney(row.PriceAmount, unit),
			Images: row.Images,
		}
	}

	return snapshots, nil
}

func (r *productRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	row, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Collection:    p.Collection,
		SubCollection: p.SubCollection,
		PriceAmount:   p.Price.Amount,
		MrpAmount:     p.MRP.Amount,
		Currency:      p.Price.Currency.String(),
		Images:        nonNil(p.Images),
		Sizes:         nonNil(p.Sizes),
		Colors:        nonNil(p.Colors),
		Stock:         int32(p.Stock),
		Trending:      p.Trending,
		NewArrival:    p.NewArrival,
		Status:        string(p.Status),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("product[%s] exists: %w", p.ID, domain.ErrConflict)
		}
		return domain.Product{}, fmt.Errorf("q.CreateProduct: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	row, err := r.q.UpdateProduct(ctx, db.UpdateProductParams{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Collection:    p.Collection,
		SubCollection: p.SubCollection,
		PriceAmount:   p.Price.Amount,
		MrpAmount:     p.MRP.Amount,
		Currency:      p.Price.Currency.String(),
		Images:        nonNil(p.Images),
		Sizes:         nonNil(p.Sizes),
		Colors:        nonNil(p.Colors),
		Stock:         int32(p.Stock),
		Trending:      p.Trending,
		NewArrival:    p.NewArrival,
		Status:        string(p.Status),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", p.ID, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("q.UpdateProduct: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) Delete(ctx context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, fmt.Errorf("productID is empty")
	}

	rowsAffected, err := r.q.DeleteProduct(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteProduct: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	unit, err := parseCurrency(row.Currency)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:            row.ID,
		Name:          row.Name,
		Slug:          row.Slug,
		Description:   row.Description,
		Collection:    row.Collection,
		SubCollection: row.SubCollection,
		Price:         domain.NewMoney(row.PriceAmount, unit),
		MRP:           domain.NewMoney(row.MrpAmount, unit),
		Images:        row.Images,
		Sizes:         row.Sizes,
		Colors:        row.Colors,
		Stock:         int(row.Stock),
		Trending:      row.Trending,
		NewArrival:    row.NewArrival,
		Status:        domain.ProductStatus(row.Status),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
