package repository_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
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
	"golang.org/x/text/currency"
)

type orderRepositorySuite struct {
	suite.Suite

	repo      port.OrderRepository
	carts     port.CartRepository
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewOrder(suite.pool)
	suite.Require().NoError(err)

	suite.carts, err = repository.NewCart(suite.pool)
	suite.Require().NoError(err)
}

func (suite *orderRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *orderRepositorySuite) TestPlaceOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	cart := suite.fillCart(ownerID, 2)
	order := randomOrder(ownerID, cart)

	err := suite.repo.PlaceOrder(ctx, order, cart.LineIDs())
	require.NoError(t, err)

	after, err := suite.carts.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())

	got, err := suite.repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assertOrder(t, order, got)

	history, err := suite.repo.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assertOrder(t, order, history[0])
}

func (suite *orderRepositorySuite) TestPlaceOrder_KeepsLinesAddedAfterSnapshot() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	cart := suite.fillCart(ownerID, 1)
	late, err := suite.carts.AddItem(ctx, ownerID, randomCartLine())
	require.NoError(t, err)

	err = suite.repo.PlaceOrder(ctx, randomOrder(ownerID, cart), cart.LineIDs())
	require.NoError(t, err)

	after, err := suite.carts.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, after.Lines, 1)
	assert.Equal(t, late.ID, after.Lines[0].ID)
}

func (suite *orderRepositorySuite) TestPlaceOrder_Atomic() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	cart := suite.fillCart(ownerID, 2)

	first := randomOrder(ownerID, cart)
	require.NoError(t, suite.repo.PlaceOrder(ctx, first, nil))

	// same order number: the insert fails and nothing else is written
	second := randomOrder(ownerID, cart)
	second.Number = first.Number

	err := suite.repo.PlaceOrder(ctx, second, cart.LineIDs())
	require.ErrorIs(t, err, domain.ErrConflict)

	after, err := suite.carts.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, after.Lines, 2)

	history, err := suite.repo.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func (suite *orderRepositorySuite) TestPlaceOrder_CartChanged() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	cart := suite.fillCart(ownerID, 2)
	_, err := suite.carts.DeleteItem(ctx, ownerID, cart.Lines[0].ID)
	require.NoError(t, err)

	err = suite.repo.PlaceOrder(ctx, randomOrder(ownerID, cart), cart.LineIDs())
	require.ErrorIs(t, err, domain.ErrConflict)

	after, err := suite.carts.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, after.Lines, 1)

	history, err := suite.repo.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func (suite *orderRepositorySuite) TestPlaceOrder_Validation() {
	tests := []struct {
		name      string
		order     domain.Order
		wantError string
	}{
		{
			name:      "empty owner: error",
			order:     domain.Order{ID: uuid.NewString()},
			wantError: "ownerID is empty",
		},
		{
			name:      "no items: error",
			order:     domain.Order{ID: uuid.NewString(), OwnerID: gofakeit.UUID()},
			wantError: "order has no items: cart is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.repo.PlaceOrder(suite.T().Context(), tt.order, nil)
			require.EqualError(suite.T(), err, tt.wantError)
		})
	}
}

func (suite *orderRepositorySuite) TestListAll_NewestFirst() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	var placed []domain.Order
	for i := range 3 {
		ownerID := gofakeit.UUID()
		cart := suite.fillCart(ownerID, 1)
		order := randomOrder(ownerID, cart)
		order.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute).Truncate(time.Microsecond)
		order.UpdatedAt = order.CreatedAt
		require.NoError(t, suite.repo.PlaceOrder(ctx, order, cart.LineIDs()))
		placed = append(placed, order)
	}

	all, err := suite.repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, placed[2].ID, all[0].ID)
	assert.Equal(t, placed[0].ID, all[2].ID)
}

func (suite *orderRepositorySuite) TestGet_NotFound() {
	ctx := suite.T().Context()

	_, err := suite.repo.Get(ctx, uuid.NewString())
	suite.ErrorIs(err, domain.ErrNotFound)

	_, err = suite.repo.Get(ctx, "ORD-123")
	suite.ErrorIs(err, domain.ErrNotFound)
}

func (suite *orderRepositorySuite) TestUpdateStatus() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	cart := suite.fillCart(ownerID, 1)
	order := randomOrder(ownerID, cart)
	require.NoError(t, suite.repo.PlaceOrder(ctx, order, cart.LineIDs()))

	err := suite.repo.UpdateStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusProcessing)
	require.NoError(t, err)

	// stale compare-and-set
	err = suite.repo.UpdateStatus(ctx, order.ID, domain.OrderStatusPending, domain.OrderStatusCancelled)
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := suite.repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, got.Status)
	assert.True(t, got.UpdatedAt.After(order.UpdatedAt) || got.UpdatedAt.Equal(order.UpdatedAt))

	err = suite.repo.UpdateStatus(ctx, uuid.NewString(), domain.OrderStatusPending, domain.OrderStatusProcessing)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *orderRepositorySuite) fillCart(ownerID string, lines int) domain.Cart {
	t := suite.T()
	ctx := t.Context()

	for range lines {
		_, err := suite.carts.AddItem(ctx, ownerID, randomCartLine())
		require.NoError(t, err)
	}

	cart, err := suite.carts.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, lines)

	cart.Currency = currency.INR
	for i := range cart.Lines {
		cart.Lines[i].Product = &domain.ProductSnapshot{
			ID:    cart.Lines[i].ProductID,
			Name:  gofakeit.ProductName(),
			Price: domain.NewMoney(decimal.NewFromInt(int64(gofakeit.IntRange(100, 900))), currency.INR),
		}
	}

	return cart
}

func (suite *orderRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE orders, order_items, cart_items CASCADE")
	suite.NoError(err)
}

func randomOrder(ownerID string, cart domain.Cart) domain.Order {
	id, err := domain.NewOrderID()
	if err != nil {
		panic(err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	totals := domain.DefaultShippingPolicy().Quote(cart)

	return domain.Order{
		ID:            id.String(),
		Number:        domain.NewOrderNumber(id, now),
		OwnerID:       ownerID,
		Items:         domain.OrderItemsFromCart(id.String(), cart, uuid.NewString),
		Subtotal:      totals.Subtotal,
		Shipping:      totals.Shipping,
		Total:         totals.Total,
		PaymentMethod: domain.PaymentMethodUPI,
		PaymentRef:    gofakeit.Username() + "@upi",
		ShippingAddress: domain.ShippingAddress{
			FullName: gofakeit.Name(),
			Phone:    gofakeit.Phone(),
			Email:    gofakeit.Email(),
			Address:  gofakeit.Street(),
			City:     gofakeit.City(),
			State:    gofakeit.State(),
			Pincode:  gofakeit.Zip(),
		},
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	assertNoDiff(t, expected, actual, cmpopts.IgnoreFields(domain.Order{}, "CreatedAt", "UpdatedAt"))
	assert.True(t, expected.CreatedAt.Equal(actual.CreatedAt))
}
