package service_test

import (
	"testing"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistService(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	id := customer()
	p1 := f.seedProduct(t, 100)
	p2 := f.seedProduct(t, 200)

	wishlist, err := f.wishlists.Add(ctx, id, p1.ID)
	require.NoError(t, err)
	assert.True(t, wishlist.Contains(p1.ID))
	assert.False(t, wishlist.Contains(p2.ID))

	// a second add of the same product keeps exactly one entry
	wishlist, err = f.wishlists.Add(ctx, id, p1.ID)
	require.NoError(t, err)
	assert.Len(t, wishlist.Entries, 1)
	assert.Equal(t, 1, wishlist.Len())

	wishlist, err = f.wishlists.Add(ctx, id, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p1.ID, p2.ID}, wishlist.ProductIDs())

	wishlist, err = f.wishlists.Remove(ctx, id, p1.ID)
	require.NoError(t, err)
	assert.False(t, wishlist.Contains(p1.ID))
	assert.True(t, wishlist.Contains(p2.ID))

	// removing an absent product is a no-op
	wishlist, err = f.wishlists.Remove(ctx, id, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, wishlist.Len())

	other, err := f.wishlists.Reload(ctx, customer())
	require.NoError(t, err)
	assert.Equal(t, 0, other.Len())
}

func TestWishlistService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	p1 := f.seedProduct(t, 100)

	_, err := f.wishlists.Add(ctx, domain.Anonymous(), p1.ID)
	require.ErrorIs(t, err, domain.ErrNoIdentity)

	_, err = f.wishlists.Remove(ctx, domain.Anonymous(), p1.ID)
	require.ErrorIs(t, err, domain.ErrNoIdentity)

	_, err = f.wishlists.Add(ctx, customer(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.wishlists.Add(ctx, customer(), " ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	wishlist, err := f.wishlists.Reload(ctx, domain.Anonymous())
	require.NoError(t, err)
	assert.False(t, wishlist.Contains(p1.ID))
}
