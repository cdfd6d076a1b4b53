package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/port"
	"github.com/nikolayk812/snexa/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/sync/errgroup"
)

type wishlistRepositorySuite struct {
	suite.Suite

	repo      port.WishlistRepository
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func TestWishlistRepositorySuite(t *testing.T) {
	suite.Run(t, new(wishlistRepositorySuite))
}

func (suite *wishlistRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewWishlist(suite.pool)
	suite.Require().NoError(err)
}

func (suite *wishlistRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *wishlistRepositorySuite) TestAdd() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		productID string
		wantError string
	}{
		{
			name:      "add product: ok",
			ownerID:   gofakeit.UUID(),
			productID: gofakeit.UUID(),
		},
		{
			name:      "add with empty owner ID: error",
			productID: gofakeit.UUID(),
			wantError: "ownerID is empty",
		},
		{
			name:      "add with empty product ID: error",
			ownerID:   gofakeit.UUID(),
			wantError: "productID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			entry, created, err := suite.repo.Add(ctx, tt.ownerID, tt.productID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.True(t, created)
			assert.Equal(t, tt.productID, entry.ProductID)
			assert.False(t, entry.CreatedAt.IsZero())

			wishlist, err := suite.repo.GetWishlist(ctx, tt.ownerID)
			require.NoError(t, err)
			assert.True(t, wishlist.Contains(tt.productID))
			assert.Equal(t, 1, wishlist.Len())
		})
	}
}

func (suite *wishlistRepositorySuite) TestAdd_Twice() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	productID := gofakeit.UUID()

	first, created, err := suite.repo.Add(ctx, ownerID, productID)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := suite.repo.Add(ctx, ownerID, productID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	wishlist, err := suite.repo.GetWishlist(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, wishlist.Entries, 1)
}

func (suite *wishlistRepositorySuite) TestAdd_Concurrent() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	productID := gofakeit.UUID()

	var g errgroup.Group
	for range 10 {
		g.Go(func() error {
			_, _, err := suite.repo.Add(ctx, ownerID, productID)
			return err
		})
	}
	require.NoError(t, g.Wait())

	wishlist, err := suite.repo.GetWishlist(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, wishlist.Entries, 1)
}

func (suite *wishlistRepositorySuite) TestRemove() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	keep := gofakeit.UUID()
	drop := gofakeit.UUID()

	for _, productID := range []string{keep, drop} {
		_, _, err := suite.repo.Add(ctx, ownerID, productID)
		require.NoError(t, err)
	}

	removed, err := suite.repo.Remove(ctx, ownerID, drop)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = suite.repo.Remove(ctx, ownerID, drop)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	wishlist, err := suite.repo.GetWishlist(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, wishlist.ProductIDs())
	assert.False(t, wishlist.Contains(drop))

	_, err = suite.repo.Remove(ctx, "", drop)
	require.EqualError(t, err, "ownerID is empty")
}

func (suite *wishlistRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE wishlist_items CASCADE")
	suite.NoError(err)
}
