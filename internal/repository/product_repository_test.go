package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"github.com/nikolayk812/snexa/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type productRepositorySuite struct {
	suite.Suite

	repo      port.ProductRepository
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(productRepositorySuite))
}

func (suite *productRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewProduct(suite.pool)
	suite.Require().NoError(err)
}

func (suite *productRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *productRepositorySuite) TestCreateAndGet() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	product := randomProduct()
	created, err := suite.repo.Create(ctx, product)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := suite.repo.Get(ctx, product.ID)
	require.NoError(t, err)
	assertProduct(t, product, got)

	_, err = suite.repo.Create(ctx, product)
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = suite.repo.Get(ctx, gofakeit.UUID())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *productRepositorySuite) TestCreate_GeneratesID() {
	defer suite.deleteAll()

	t := suite.T()

	product := randomProduct()
	product.ID = ""
	product.Images = nil

	created, err := suite.repo.Create(t.Context(), product)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Images)
}

func (suite *productRepositorySuite) TestList() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	men := randomProduct()
	men.Collection = "men"
	draft := randomProduct()
	draft.Collection = "men"
	draft.Status = domain.ProductStatusDraft
	women := randomProduct()
	women.Collection = "women"

	for _, p := range []domain.Product{men, draft, women} {
		_, err := suite.repo.Create(ctx, p)
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		query   port.ProductQuery
		wantIDs []string
	}{
		{
			name:    "all products",
			query:   port.ProductQuery{},
			wantIDs: []string{men.ID, draft.ID, women.ID},
		},
		{
			name:    "active men",
			query:   port.ProductQuery{Collection: "men", Status: domain.ProductStatusActive},
			wantIDs: []string{men.ID},
		},
		{
			name:    "drafts",
			query:   port.ProductQuery{Status: domain.ProductStatusDraft},
			wantIDs: []string{draft.ID},
		},
		{
			name:  "unknown collection",
			query: port.ProductQuery{Collection: "pets"},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			products, err := suite.repo.List(suite.T().Context(), tt.query)
			require.NoError(suite.T(), err)

			var ids []string
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.ElementsMatch(suite.T(), tt.wantIDs, ids)
		})
	}
}

func (suite *productRepositorySuite) TestGetSnapshots() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	product := randomProduct()
	_, err := suite.repo.Create(ctx, product)
	require.NoError(t, err)

	missing := gofakeit.UUID()
	snapshots, err := suite.repo.GetSnapshots(ctx, []string{product.ID, missing})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	assertNoDiff(t, product.Snapshot(), snapshots[product.ID])
	_, ok := snapshots[missing]
	assert.False(t, ok)

	empty, err := suite.repo.GetSnapshots(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func (suite *productRepositorySuite) TestUpdateAndDelete() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	product := randomProduct()
	_, err := suite.repo.Create(ctx, product)
	require.NoError(t, err)

	product.Name = "Linen Kurta"
	product.Price = domain.NewMoney(decimal.NewFromInt(1499), product.Price.Currency)
	product.Images = append(product.Images, gofakeit.URL())

	updated, err := suite.repo.Update(ctx, product)
	require.NoError(t, err)
	assertProduct(t, product, updated)

	deleted, err := suite.repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = suite.repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = suite.repo.Update(ctx, product)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *productRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE products CASCADE")
	suite.NoError(err)
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	assertNoDiff(t, expected, actual, cmpopts.IgnoreFields(domain.Product{}, "CreatedAt", "UpdatedAt"))
	assert.False(t, actual.UpdatedAt.IsZero())
}
