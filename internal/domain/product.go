package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const MaxProductImages = 5

type ProductStatus string

const (
	ProductStatusActive ProductStatus = "active"
	ProductStatusDraft  ProductStatus = "draft"
)

type Product struct {
	ID            string
	Name          string
	Slug          string
	Description   string
	Collection    string
	SubCollection string

	Price Money
	MRP   Money

	Images []string
	Sizes  []string
	Colors []string
	Stock  int

	Trending   bool
	NewArrival bool
	Status     ProductStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Images: p.Images,
	}
}

// Validate checks the catalog constraints for products created or edited by
// an admin. storeCurrency is the only accepted price currency.
func (p Product) Validate(storeCurrency currency.Unit) error {
	switch {
	case len([]rune(strings.TrimSpace(p.Name))) < 3:
		return fmt.Errorf("product name too short: %w", ErrInvalidInput)
	case len([]rune(strings.TrimSpace(p.Description))) < 10:
		return fmt.Errorf("product description too short: %w", ErrInvalidInput)
	case strings.TrimSpace(p.Collection) == "":
		return fmt.Errorf("product collection is empty: %w", ErrInvalidInput)
	case !p.Price.IsPositive():
		return fmt.Errorf("product price must be positive: %w", ErrInvalidInput)
	case !p.MRP.IsPositive():
		return fmt.Errorf("product mrp must be positive: %w", ErrInvalidInput)
	case len(p.Images) > MaxProductImages:
		return fmt.Errorf("product has %d images, max %d: %w", len(p.Images), MaxProductImages, ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("product stock is negative: %w", ErrInvalidInput)
	case p.Status != ProductStatusActive && p.Status != ProductStatusDraft:
		return fmt.Errorf("product status[%s] is not valid: %w", p.Status, ErrInvalidInput)
	}

	for _, m := range []Money{p.Price, p.MRP} {
		if m.Currency.String() != storeCurrency.String() {
			return fmt.Errorf("product currency[%s] is not %s: %w", m.Currency, storeCurrency, ErrInvalidInput)
		}
	}

	return nil
}

// Offer is the advertised discount percent. Trending and new arrival products
// carry fixed promotional offers.
func (p Product) Offer() int {
	if p.Trending {
		return 30
	}
	if p.NewArrival {
		return 20
	}
	if !p.MRP.IsPositive() {
		return 0
	}

	pct := p.MRP.Amount.Sub(p.Price.Amount).Div(p.MRP.Amount).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// Slugify turns a product name into a lowercase dash separated slug.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

type ProductType string

const (
	ProductTypeAll      ProductType = "all"
	ProductTypeTrending ProductType = "trending"
	ProductTypeNew      ProductType = "new"
)

type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceLow  ProductSort = "price-low"
	SortPriceHigh ProductSort = "price-high"
)

type ProductFilter struct {
	Collection string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Type       ProductType
	Sort       ProductSort
}

// ParsePriceRange accepts "all", "" or "min-max" (both inclusive).
func ParsePriceRange(s string) (min, max *decimal.Decimal, err error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return nil, nil, nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return nil, nil, fmt.Errorf("price range[%s] is not valid: %w", s, ErrInvalidInput)
	}

	minV, err := decimal.NewFromString(strings.TrimSpace(lo))
	if err != nil {
		return nil, nil, fmt.Errorf("price range[%s] min: %w", s, ErrInvalidInput)
	}
	maxV, err := decimal.NewFromString(strings.TrimSpace(hi))
	if err != nil {
		return nil, nil, fmt.Errorf("price range[%s] max: %w", s, ErrInvalidInput)
	}
	if minV.GreaterThan(maxV) {
		return nil, nil, fmt.Errorf("price range[%s] min above max: %w", s, ErrInvalidInput)
	}

	return &minV, &maxV, nil
}

func ParseProductType(s string) (ProductType, error) {
	switch t := ProductType(strings.TrimSpace(s)); t {
	case "":
		return ProductTypeAll, nil
	case ProductTypeAll, ProductTypeTrending, ProductTypeNew:
		return t, nil
	default:
		return "", fmt.Errorf("product type[%s] is not valid: %w", s, ErrInvalidInput)
	}
}

func ParseProductSort(s string) (ProductSort, error) {
	switch st := ProductSort(strings.TrimSpace(s)); st {
	case "":
		return SortNewest, nil
	case SortNewest, SortPriceLow, SortPriceHigh:
		return st, nil
	default:
		return "", fmt.Errorf("sort[%s] is not valid: %w", s, ErrInvalidInput)
	}
}

// Apply filters and sorts products without touching the input slice.
func (f ProductFilter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.MinPrice != nil && p.Price.Amount.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.Amount.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.Type == ProductTypeTrending && !p.Trending {
			continue
		}
		if f.Type == ProductTypeNew && !p.NewArrival {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b Product) int { return a.Price.Amount.Cmp(b.Price.Amount) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b Product) int { return b.Price.Amount.Cmp(a.Price.Amount) })
	default:
		slices.SortStableFunc(out, func(a, b Product) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}

	return out
}
