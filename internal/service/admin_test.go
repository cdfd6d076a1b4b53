package service_test

import (
	"strings"
	"testing"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/port"
	"github.com/nikolayk812/snexa/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productInput() service.ProductInput {
	return service.ProductInput{
		Name:        "Oversized Linen Shirt",
		Description: "Breathable linen shirt with a relaxed fit",
		Collection:  "men",
		Price:       decimal.NewFromInt(1299),
		MRP:         decimal.NewFromInt(1999),
		Sizes:       []string{"M", " L ", ""},
		Colors:      []string{"white"},
		Stock:       12,
		Status:      "active",
	}
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	_, err := f.admin.CreateProduct(ctx, customer(), productInput())
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.admin.ListOrders(ctx, domain.Anonymous())
	require.ErrorIs(t, err, domain.ErrNoIdentity)

	_, err = f.admin.Analytics(ctx, customer())
	require.ErrorIs(t, err, domain.ErrForbidden)

	entries, err := f.store.Audit().List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAdminService_ProductLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	admin := adminIdentity()

	created, err := f.admin.CreateProduct(ctx, admin, productInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "oversized-linen-shirt", created.Slug)
	assert.Equal(t, []string{"M", "L"}, created.Sizes)
	assert.Equal(t, 35, created.Offer())

	invalid := productInput()
	invalid.Description = "short"
	_, err = f.admin.CreateProduct(ctx, admin, invalid)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	upload := service.ImageUpload{FileName: "front.png", ContentType: "image/png", Data: []byte("png-bytes")}

	withImage, err := f.admin.UploadImage(ctx, admin, created.ID, upload)
	require.NoError(t, err)
	require.Len(t, withImage.Images, 1)

	url := withImage.Images[0]
	require.True(t, strings.HasPrefix(url, "memory://products/"+created.ID+"/"), url)
	require.True(t, strings.HasSuffix(url, ".png"), url)

	objectPath := strings.TrimPrefix(url, "memory://")
	data, ok := f.store.Object(objectPath)
	require.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = f.admin.UploadImage(ctx, admin, created.ID, service.ImageUpload{FileName: "x.txt", ContentType: "text/plain", Data: []byte("x")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	for range domain.MaxProductImages - 1 {
		_, err = f.admin.UploadImage(ctx, admin, created.ID, upload)
		require.NoError(t, err)
	}
	_, err = f.admin.UploadImage(ctx, admin, created.ID, upload)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// update without Images keeps the uploaded ones
	edit := productInput()
	edit.Price = decimal.NewFromInt(999)
	edit.Status = "draft"
	updated, err := f.admin.UpdateProduct(ctx, admin, created.ID, edit)
	require.NoError(t, err)
	assert.Len(t, updated.Images, domain.MaxProductImages)
	assert.Equal(t, domain.ProductStatusDraft, updated.Status)
	assert.True(t, updated.Price.Amount.Equal(decimal.NewFromInt(999)))

	_, err = f.catalog.Get(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.admin.DeleteProduct(ctx, admin, created.ID))

	_, ok = f.store.Object(objectPath)
	assert.False(t, ok)

	err = f.admin.DeleteProduct(ctx, admin, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	entries, err := f.admin.AuditLog(ctx, admin, 0)
	require.NoError(t, err)

	actions := make(map[string]int)
	for _, e := range entries {
		actions[e.Action]++
		assert.Equal(t, admin.UID, e.Actor)
	}
	assert.Equal(t, 1, actions["product.create"])
	assert.Equal(t, domain.MaxProductImages, actions["product.image_upload"])
	assert.Equal(t, 1, actions["product.update"])
	assert.Equal(t, 1, actions["product.delete"])
}

func TestAdminService_UpdateOrderStatus(t *testing.T) {
	var racing *failingOrders
	f := newFixture(t, withOrders(func(inner port.OrderRepository) port.OrderRepository {
		racing = &failingOrders{OrderRepository: inner}
		return racing
	}))
	ctx := t.Context()
	admin := adminIdentity()
	owner := customer()
	p1 := f.seedProduct(t, 100)

	_, err := f.carts.AddLine(ctx, owner, service.AddLineInput{ProductID: p1.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := f.checkout.PlaceOrder(ctx, owner, service.CheckoutInput{PaymentMethod: "cod", ShippingAddress: validAddress()})
	require.NoError(t, err)

	_, err = f.admin.UpdateOrderStatus(ctx, admin, order.ID, domain.OrderStatusShipped)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := f.admin.UpdateOrderStatus(ctx, admin, order.ID, domain.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, updated.Status)

	// another admin cancels between the read and the write
	racing.beforeCAS = func() {
		racing.beforeCAS = nil
		require.NoError(t, racing.OrderRepository.UpdateStatus(ctx, order.ID, domain.OrderStatusProcessing, domain.OrderStatusCancelled))
	}
	_, err = f.admin.UpdateOrderStatus(ctx, admin, order.ID, domain.OrderStatusShipped)
	require.ErrorIs(t, err, domain.ErrConflict)

	stored, err := f.orders.Get(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)

	_, err = f.admin.UpdateOrderStatus(ctx, admin, "missing", domain.OrderStatusProcessing)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.admin.UpdateOrderStatus(ctx, customer(), order.ID, domain.OrderStatusProcessing)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdminService_CustomersAndAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	admin := adminIdentity()

	buyer := customer()
	f.verifier.identities["buyer"] = buyer
	_, err := f.sessions.SignIn(ctx, "buyer")
	require.NoError(t, err)

	shirt := f.seedProduct(t, 600)
	jeans := f.seedProduct(t, 1500)

	_, err = f.carts.AddLine(ctx, buyer, service.AddLineInput{ProductID: shirt.ID, Quantity: 2})
	require.NoError(t, err)
	first, err := f.checkout.PlaceOrder(ctx, buyer, service.CheckoutInput{PaymentMethod: "cod", ShippingAddress: validAddress()})
	require.NoError(t, err)

	_, err = f.carts.AddLine(ctx, buyer, service.AddLineInput{ProductID: jeans.ID, Quantity: 1})
	require.NoError(t, err)
	second, err := f.checkout.PlaceOrder(ctx, buyer, service.CheckoutInput{PaymentMethod: "cod", ShippingAddress: validAddress()})
	require.NoError(t, err)

	_, err = f.admin.UpdateOrderStatus(ctx, admin, second.ID, domain.OrderStatusCancelled)
	require.NoError(t, err)

	customers, err := f.admin.ListCustomers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, buyer.UID, customers[0].UID)

	summary, err := f.admin.Analytics(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Orders)
	assert.Equal(t, 1, summary.Customers)
	assert.Equal(t, 1, summary.PendingDelivery)
	assert.True(t, summary.Revenue.Amount.Equal(first.Total.Amount), summary.Revenue.String())
	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, shirt.ID, summary.TopProducts[0].ProductID)
	assert.Equal(t, 2, summary.TopProducts[0].Quantity)

	orders, err := f.admin.ListOrders(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	profile, err := f.admin.AddAdmin(ctx, admin, service.AdminInput{UID: buyer.UID, Name: "Co-owner", Email: " Co@Snexa.com "})
	require.NoError(t, err)
	assert.Equal(t, "co@snexa.com", profile.Email)

	identity, err := f.sessions.Resolve(ctx, "buyer")
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())

	_, err = f.admin.AddAdmin(ctx, admin, service.AdminInput{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdminService_ListSubscribers(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	require.NoError(t, f.newsletter.Subscribe(ctx, "first@example.com"))
	require.NoError(t, f.newsletter.Subscribe(ctx, "second@example.com"))

	_, err := f.admin.ListSubscribers(ctx, customer())
	require.ErrorIs(t, err, domain.ErrForbidden)

	subscribers, err := f.admin.ListSubscribers(ctx, adminIdentity())
	require.NoError(t, err)
	require.Len(t, subscribers, 2)

	emails := []string{subscribers[0].Email, subscribers[1].Email}
	assert.ElementsMatch(t, []string{"first@example.com", "second@example.com"}, emails)
}
