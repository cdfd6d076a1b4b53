package service_test

import (
	"testing"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	owner := customer()
	p1 := f.seedProduct(t, 250)

	_, err := f.carts.AddLine(ctx, owner, service.AddLineInput{ProductID: p1.ID, Quantity: 2})
	require.NoError(t, err)
	order, err := f.checkout.PlaceOrder(ctx, owner, service.CheckoutInput{PaymentMethod: "cod", ShippingAddress: validAddress()})
	require.NoError(t, err)

	list, err := f.orders.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, order.ID, list[0].ID)
	require.Len(t, list[0].Items, 1)
	assert.Equal(t, p1.Name, list[0].Items[0].Name)
	assert.Equal(t, 2, list[0].ItemCount())

	got, err := f.orders.Get(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Number, got.Number)

	_, err = f.orders.Get(ctx, customer(), order.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.orders.Get(ctx, owner, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.orders.List(ctx, domain.Anonymous())
	require.ErrorIs(t, err, domain.ErrNoIdentity)

	others, err := f.orders.List(ctx, customer())
	require.NoError(t, err)
	assert.Empty(t, others)
}
