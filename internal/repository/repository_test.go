package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_cart_items.up.sql",
			"../migrations/02_wishlist_items.up.sql",
			"../migrations/03_products.up.sql",
			"../migrations/04_orders.up.sql",
			"../migrations/05_accounts.up.sql",
			"../migrations/06_subscribers_audit.up.sql",
			"../migrations/07_user_profiles.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 5000)).Round(2),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func randomProduct() domain.Product {
	price := decimal.NewFromInt(int64(gofakeit.IntRange(100, 4000)))

	return domain.Product{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.ProductName(),
		Slug:        gofakeit.Word(),
		Description: "Classic " + gofakeit.ProductName() + " for everyday wear",
		Collection:  gofakeit.RandomString([]string{"men", "women", "kids"}),
		Price:       domain.NewMoney(price, currency.INR),
		MRP:         domain.NewMoney(price.Add(decimal.NewFromInt(500)), currency.INR),
		Images:      []string{gofakeit.URL()},
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{gofakeit.Color()},
		Stock:       gofakeit.IntRange(0, 50),
		Trending:    gofakeit.Bool(),
		Status:      domain.ProductStatusActive,
	}
}

var (
	currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
)

func assertNoDiff(t *testing.T, expected, actual any, opts ...cmp.Option) {
	t.Helper()

	opts = append(opts, currencyComparer, decimalComparer)
	diff := cmp.Diff(expected, actual, opts...)
	assert.Empty(t, diff)
}
