package service_test

import (
	"testing"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileInput() service.ProfileInput {
	return service.ProfileInput{
		FullName: " Asha Rao ",
		Phone:    "9876543210",
		DefaultAddress: domain.ProfileAddress{
			Address: "12 MG Road",
			City:    "Bengaluru",
			State:   "KA",
			Pincode: "560001",
		},
	}
}

func TestProfileService_GetAndSave(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	id := customer()

	profile, err := f.profiles.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id.UID, profile.UID)
	assert.Equal(t, id.Name, profile.FullName)
	assert.Empty(t, profile.Phone)

	saved, err := f.profiles.Save(ctx, id, profileInput())
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", saved.FullName)
	assert.False(t, saved.UpdatedAt.IsZero())

	profile, err = f.profiles.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, saved, profile)

	// profiles are scoped to the identity
	other, err := f.profiles.Get(ctx, customer())
	require.NoError(t, err)
	assert.Empty(t, other.DefaultAddress.City)

	_, err = f.profiles.Get(ctx, domain.Anonymous())
	require.ErrorIs(t, err, domain.ErrNoIdentity)
	_, err = f.profiles.Save(ctx, domain.Anonymous(), profileInput())
	require.ErrorIs(t, err, domain.ErrNoIdentity)
}

func TestCheckoutService_PlaceOrder_ProfileAddress(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	id := customer()
	p := f.seedProduct(t, 500)

	_, err := f.carts.AddLine(ctx, id, service.AddLineInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	// no saved profile and no address
	_, err = f.checkout.PlaceOrder(ctx, id, service.CheckoutInput{PaymentMethod: "cod"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.profiles.Save(ctx, id, profileInput())
	require.NoError(t, err)

	order, err := f.checkout.PlaceOrder(ctx, id, service.CheckoutInput{PaymentMethod: "cod"})
	require.NoError(t, err)
	assert.Equal(t, domain.ShippingAddress{
		FullName: "Asha Rao",
		Phone:    "9876543210",
		Email:    id.Email,
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "KA",
		Pincode:  "560001",
	}, order.ShippingAddress)

	// an explicit address wins over the saved one
	_, err = f.carts.AddLine(ctx, id, service.AddLineInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	address := validAddress()
	order, err = f.checkout.PlaceOrder(ctx, id, service.CheckoutInput{PaymentMethod: "cod", ShippingAddress: address})
	require.NoError(t, err)
	assert.Equal(t, address.City, order.ShippingAddress.City)
}
