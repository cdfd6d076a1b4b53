package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"github.com/nikolayk812/snexa/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/sync/errgroup"
)

type cartRepositorySuite struct {
	suite.Suite

	repo      port.CartRepository
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewCart(suite.pool)
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *cartRepositorySuite) TestAddItem() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		item      domain.CartLine
		wantError string
	}{
		{
			name:    "add item to cart: ok",
			ownerID: gofakeit.UUID(),
			item:    randomCartLine(),
		},
		{
			name:    "add item without size and color: ok",
			ownerID: gofakeit.UUID(),
			item: domain.CartLine{
				ProductID: gofakeit.UUID(),
				Quantity:  1,
			},
		},
		{
			name:      "add item with empty owner ID: error",
			ownerID:   "",
			item:      randomCartLine(),
			wantError: "ownerID is empty",
		},
		{
			name:      "add item with empty product ID: error",
			ownerID:   gofakeit.UUID(),
			item:      domain.CartLine{Quantity: 1},
			wantError: "productID is empty",
		},
		{
			name:    "add item with zero quantity: error",
			ownerID: gofakeit.UUID(),
			item: domain.CartLine{
				ProductID: gofakeit.UUID(),
			},
			wantError: "quantity[0] is not positive: invalid quantity",
		},
		{
			name:    "add item above int32 range: error",
			ownerID: gofakeit.UUID(),
			item: domain.CartLine{
				ProductID: gofakeit.UUID(),
				Quantity:  1<<32 + 1,
			},
			wantError: "quantity[4294967297] exceeds 1000: invalid quantity",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			added, err := suite.repo.AddItem(ctx, tt.ownerID, tt.item)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, added.ID)

			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			require.NoError(t, err)

			require.Len(t, cart.Lines, 1)
			assertCartLine(t, tt.item, cart.Lines[0])
			assert.Equal(t, added.ID, cart.Lines[0].ID)
		})
	}
}

func (suite *cartRepositorySuite) TestAddItem_MergesSelection() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	productID := gofakeit.UUID()

	first, err := suite.repo.AddItem(ctx, ownerID, domain.CartLine{ProductID: productID, Size: "M", Color: "red", Quantity: 1})
	require.NoError(t, err)

	second, err := suite.repo.AddItem(ctx, ownerID, domain.CartLine{ProductID: productID, Size: "M", Color: "red", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	_, err = suite.repo.AddItem(ctx, ownerID, domain.CartLine{ProductID: productID, Size: "M", Color: "blue", Quantity: 1})
	require.NoError(t, err)

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 4, cart.Count())
}

func (suite *cartRepositorySuite) TestAddItem_MergeAboveCap() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	line := domain.CartLine{ProductID: gofakeit.UUID(), Size: "M", Color: "red", Quantity: domain.MaxLineQuantity}

	_, err := suite.repo.AddItem(ctx, ownerID, line)
	require.NoError(t, err)

	line.Quantity = 1
	_, err = suite.repo.AddItem(ctx, ownerID, line)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, domain.MaxLineQuantity, cart.Lines[0].Quantity)
}

func (suite *cartRepositorySuite) TestAddItem_ConcurrentIncrements() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	productID := gofakeit.UUID()

	const workers = 20

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			_, err := suite.repo.AddItem(ctx, ownerID, domain.CartLine{ProductID: productID, Size: "L", Color: "black", Quantity: 1})
			return err
		})
	}
	require.NoError(t, g.Wait())

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, workers, cart.Lines[0].Quantity)
}

func (suite *cartRepositorySuite) TestUpdateQuantity() {
	defer suite.deleteAll()

	tests := []struct {
		name        string
		ownerID     string
		lineID      func(existing string) string
		quantity    int
		wantUpdated bool
		wantError   string
	}{
		{
			name:        "update existing line: ok",
			ownerID:     gofakeit.UUID(),
			lineID:      func(existing string) string { return existing },
			quantity:    7,
			wantUpdated: true,
		},
		{
			name:     "update unknown line: not found",
			ownerID:  gofakeit.UUID(),
			lineID:   func(string) string { return uuid.NewString() },
			quantity: 2,
		},
		{
			name:     "update malformed line id: not found",
			ownerID:  gofakeit.UUID(),
			lineID:   func(string) string { return "not-a-uuid" },
			quantity: 2,
		},
		{
			name:      "update to zero: error",
			ownerID:   gofakeit.UUID(),
			lineID:    func(existing string) string { return existing },
			quantity:  0,
			wantError: "quantity[0] is not positive: invalid quantity",
		},
		{
			name:      "update above cap: error",
			ownerID:   gofakeit.UUID(),
			lineID:    func(existing string) string { return existing },
			quantity:  domain.MaxLineQuantity + 1,
			wantError: "quantity[1001] exceeds 1000: invalid quantity",
		},
		{
			name:      "update with empty owner ID: error",
			ownerID:   "",
			lineID:    func(string) string { return uuid.NewString() },
			quantity:  1,
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			var existing string
			if tt.ownerID != "" {
				line, err := suite.repo.AddItem(ctx, tt.ownerID, randomCartLine())
				require.NoError(t, err)
				existing = line.ID
			}

			updated, err := suite.repo.UpdateQuantity(ctx, tt.ownerID, tt.lineID(existing), tt.quantity)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdated, updated)

			if tt.wantUpdated {
				cart, err := suite.repo.GetCart(ctx, tt.ownerID)
				require.NoError(t, err)
				require.Len(t, cart.Lines, 1)
				assert.Equal(t, tt.quantity, cart.Lines[0].Quantity)
			}
		})
	}
}

func (suite *cartRepositorySuite) TestUpdateQuantity_OtherOwner() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	line, err := suite.repo.AddItem(ctx, gofakeit.UUID(), randomCartLine())
	require.NoError(t, err)

	updated, err := suite.repo.UpdateQuantity(ctx, gofakeit.UUID(), line.ID, 5)
	require.NoError(t, err)
	assert.False(t, updated)
}

func (suite *cartRepositorySuite) TestDeleteItem() {
	defer suite.deleteAll()

	tests := []struct {
		name        string
		ownerID     string
		setupItems  []domain.CartLine
		deleteFirst bool
		wantDeleted bool
		wantError   string
	}{
		{
			name:        "delete existing item: ok",
			ownerID:     gofakeit.UUID(),
			setupItems:  []domain.CartLine{randomCartLine(), randomCartLine()},
			deleteFirst: true,
			wantDeleted: true,
		},
		{
			name:        "delete non-existing item: not found",
			ownerID:     gofakeit.UUID(),
			setupItems:  []domain.CartLine{randomCartLine()},
			wantDeleted: false,
		},
		{
			name:        "delete from empty cart: not found",
			ownerID:     gofakeit.UUID(),
			wantDeleted: false,
		},
		{
			name:      "delete with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			lineID := uuid.NewString()
			for i, item := range tt.setupItems {
				line, err := suite.repo.AddItem(ctx, tt.ownerID, item)
				require.NoError(t, err)
				if tt.deleteFirst && i == 0 {
					lineID = line.ID
				}
			}

			deleted, err := suite.repo.DeleteItem(ctx, tt.ownerID, lineID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)

			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			require.NoError(t, err)

			wantLen := len(tt.setupItems)
			if tt.wantDeleted {
				wantLen--
			}
			assert.Len(t, cart.Lines, wantLen)
		})
	}
}

func (suite *cartRepositorySuite) TestClear() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	otherID := gofakeit.UUID()

	for range 3 {
		_, err := suite.repo.AddItem(ctx, ownerID, randomCartLine())
		require.NoError(t, err)
	}
	_, err := suite.repo.AddItem(ctx, otherID, randomCartLine())
	require.NoError(t, err)

	cleared, err := suite.repo.Clear(ctx, ownerID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, cleared)

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	other, err := suite.repo.GetCart(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, other.Lines, 1)

	_, err = suite.repo.Clear(ctx, "")
	require.EqualError(t, err, "ownerID is empty")
}

func (suite *cartRepositorySuite) TestGetCart() {
	defer suite.deleteAll()

	tests := []struct {
		name       string
		ownerID    string
		setupItems []domain.CartLine
		wantError  string
	}{
		{
			name:    "get cart with items: ok",
			ownerID: gofakeit.UUID(),
			setupItems: []domain.CartLine{
				randomCartLine(),
				randomCartLine(),
			},
		},
		{
			name:       "get empty cart: ok",
			ownerID:    gofakeit.UUID(),
			setupItems: []domain.CartLine{},
		},
		{
			name:      "get cart with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			for _, item := range tt.setupItems {
				_, err := suite.repo.AddItem(ctx, tt.ownerID, item)
				require.NoError(t, err)
			}

			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.ownerID, cart.OwnerID)
			require.Len(t, cart.Lines, len(tt.setupItems))

			for i, expectedItem := range tt.setupItems {
				assertCartLine(t, expectedItem, cart.Lines[i])
			}
		})
	}
}

func (suite *cartRepositorySuite) TestNewCartWithTx_Rollback() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txRepo := repository.NewCartWithTx(tx)
	_, err = txRepo.AddItem(ctx, ownerID, randomCartLine())
	require.NoError(t, err)

	inTx, err := txRepo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, inTx.Lines, 1)

	require.NoError(t, tx.Rollback(ctx))

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_items CASCADE")
	suite.NoError(err)
}

func randomCartLine() domain.CartLine {
	return domain.CartLine{
		ProductID: gofakeit.UUID(),
		Size:      gofakeit.RandomString([]string{"S", "M", "L", "XL"}),
		Color:     gofakeit.Color(),
		Quantity:  gofakeit.IntRange(1, 5),
	}
}

func assertCartLine(t *testing.T, expected, actual domain.CartLine) {
	t.Helper()

	assertNoDiff(t, expected, actual, cmpopts.IgnoreFields(domain.CartLine{}, "ID", "CreatedAt", "UpdatedAt"))

	assert.NotEmpty(t, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
}
