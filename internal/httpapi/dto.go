package httpapi

import (
	"time"

	"github.com/nikolayk812/snexa/internal/domain"
)

type moneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoney(m domain.Money) moneyResponse {
	return moneyResponse{Amount: m.Amount.StringFixed(2), Currency: m.Currency.String()}
}

type productResponse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Collection    string        `json:"collection"`
	SubCollection string        `json:"subCollection,omitempty"`
	Price         moneyResponse `json:"price"`
	MRP           moneyResponse `json:"mrp"`
	Offer         int           `json:"offer"`
	Images        []string      `json:"images"`
	Sizes         []string      `json:"sizes"`
	Colors        []string      `json:"colors"`
	Stock         int           `json:"stock"`
	Trending      bool          `json:"isTrending"`
	NewArrival    bool          `json:"isNewArrival"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func toProduct(p domain.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Collection:    p.Collection,
		SubCollection: p.SubCollection,
		Price:         toMoney(p.Price),
		MRP:           toMoney(p.MRP),
		Offer:         p.Offer(),
		Images:        nonNil(p.Images),
		Sizes:         nonNil(p.Sizes),
		Colors:        nonNil(p.Colors),
		Stock:         p.Stock,
		Trending:      p.Trending,
		NewArrival:    p.NewArrival,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProducts(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProduct(p))
	}
	return out
}

type snapshotResponse struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Price  moneyResponse `json:"price"`
	Images []string      `json:"images"`
}

type cartLineResponse struct {
	ID        string            `json:"id"`
	ProductID string            `json:"productId"`
	Size      string            `json:"size"`
	Color     string            `json:"color"`
	Quantity  int               `json:"quantity"`
	Product   *snapshotResponse `json:"product"`
	LineTotal moneyResponse     `json:"lineTotal"`
}

type totalsResponse struct {
	Subtotal moneyResponse `json:"subtotal"`
	Shipping moneyResponse `json:"shipping"`
	Total    moneyResponse `json:"total"`
}

func toTotals(t domain.Totals) totalsResponse {
	return totalsResponse{
		Subtotal: toMoney(t.Subtotal),
		Shipping: toMoney(t.Shipping),
		Total:    toMoney(t.Total),
	}
}

type cartResponse struct {
	Lines    []cartLineResponse `json:"lines"`
	Count    int                `json:"count"`
	Subtotal moneyResponse      `json:"subtotal"`
	Quote    totalsResponse     `json:"quote"`
}

func toCart(cart domain.Cart, quote domain.Totals) cartResponse {
	lines := make([]cartLineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		line := cartLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
			LineTotal: toMoney(l.UnitPrice(cart.Currency).Mul(l.Quantity)),
		}
		if l.Product != nil {
			line.Product = &snapshotResponse{
				ID:     l.Product.ID,
				Name:   l.Product.Name,
				Price:  toMoney(l.Product.Price),
				Images: nonNil(l.Product.Images),
			}
		}
		lines = append(lines, line)
	}

	return cartResponse{
		Lines:    lines,
		Count:    cart.Count(),
		Subtotal: toMoney(cart.Subtotal()),
		Quote:    toTotals(quote),
	}
}

type wishlistEntryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

type wishlistResponse struct {
	Items      []wishlistEntryResponse `json:"items"`
	ProductIDs []string                `json:"productIds"`
}

func toWishlist(w domain.Wishlist) wishlistResponse {
	items := make([]wishlistEntryResponse, 0, len(w.Entries))
	for _, e := range w.Entries {
		items = append(items, wishlistEntryResponse{ID: e.ID, ProductID: e.ProductID, CreatedAt: e.CreatedAt})
	}
	return wishlistResponse{Items: items, ProductIDs: w.ProductIDs()}
}

type orderItemResponse struct {
	ID        string        `json:"id"`
	ProductID string        `json:"productId"`
	Name      string        `json:"name"`
	Size      string        `json:"size"`
	Color     string        `json:"color"`
	Quantity  int           `json:"quantity"`
	UnitPrice moneyResponse `json:"unitPrice"`
}

type orderResponse struct {
	ID              string                 `json:"id"`
	Number          string                 `json:"orderNumber"`
	OwnerID         string                 `json:"userId"`
	Items           []orderItemResponse    `json:"items"`
	ItemCount       int                    `json:"itemCount"`
	Subtotal        moneyResponse          `json:"subtotal"`
	Shipping        moneyResponse          `json:"shipping"`
	Total           moneyResponse          `json:"total"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentRef      string                 `json:"upiId,omitempty"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Status          string                 `json:"status"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func toOrder(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Color:     it.Color,
			Quantity:  it.Quantity,
			UnitPrice: toMoney(it.UnitPrice),
		})
	}

	return orderResponse{
		ID:              o.ID,
		Number:          o.Number,
		OwnerID:         o.OwnerID,
		Items:           items,
		ItemCount:       o.ItemCount(),
		Subtotal:        toMoney(o.Subtotal),
		Shipping:        toMoney(o.Shipping),
		Total:           toMoney(o.Total),
		PaymentMethod:   string(o.PaymentMethod),
		PaymentRef:      o.PaymentRef,
		ShippingAddress: o.ShippingAddress,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrders(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	return out
}

type identityResponse struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

func toIdentity(i domain.Identity) identityResponse {
	return identityResponse{UID: i.UID, Email: i.Email, Name: i.Name, IsAdmin: i.IsAdmin()}
}

type customerResponse struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

type subscriberResponse struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type profileAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type profileResponse struct {
	UID            string         `json:"uid"`
	FullName       string         `json:"fullName"`
	Phone          string         `json:"phone"`
	DefaultAddress profileAddress `json:"defaultAddress"`
	UpdatedAt      *time.Time     `json:"updatedAt,omitempty"`
}

func toProfileResponse(p domain.Profile) profileResponse {
	out := profileResponse{
		UID:      p.UID,
		FullName: p.FullName,
		Phone:    p.Phone,
		DefaultAddress: profileAddress{
			Address: p.DefaultAddress.Address,
			City:    p.DefaultAddress.City,
			State:   p.DefaultAddress.State,
			Pincode: p.DefaultAddress.Pincode,
		},
	}
	if !p.UpdatedAt.IsZero() {
		out.UpdatedAt = &p.UpdatedAt
	}
	return out
}

type adminResponse struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type productSalesResponse struct {
	ProductID string        `json:"productId"`
	Name      string        `json:"name"`
	Quantity  int           `json:"quantity"`
	Revenue   moneyResponse `json:"revenue"`
}

type dailySalesResponse struct {
	Day     string        `json:"day"`
	Orders  int           `json:"orders"`
	Revenue moneyResponse `json:"revenue"`
}

type summaryResponse struct {
	Revenue         moneyResponse          `json:"revenue"`
	Orders          int                    `json:"orders"`
	Customers       int                    `json:"customers"`
	PendingDelivery int                    `json:"pendingDelivery"`
	TopProducts     []productSalesResponse `json:"topProducts"`
	DailySales      []dailySalesResponse   `json:"dailySales"`
}

func toSummary(s domain.Summary) summaryResponse {
	out := summaryResponse{
		Revenue:         toMoney(s.Revenue),
		Orders:          s.Orders,
		Customers:       s.Customers,
		PendingDelivery: s.PendingDelivery,
		TopProducts:     make([]productSalesResponse, 0, len(s.TopProducts)),
		DailySales:      make([]dailySalesResponse, 0, len(s.DailySales)),
	}
	for _, p := range s.TopProducts {
		out.TopProducts = append(out.TopProducts, productSalesResponse{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Revenue:   toMoney(p.Revenue),
		})
	}
	for _, d := range s.DailySales {
		out.DailySales = append(out.DailySales, dailySalesResponse{Day: d.Day, Orders: d.Orders, Revenue: toMoney(d.Revenue)})
	}
	return out
}

type auditResponse struct {
	ID      string         `json:"id"`
	Action  string         `json:"action"`
	Actor   string         `json:"actor"`
	Payload map[string]any `json:"payload"`
	At      time.Time      `json:"at"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
