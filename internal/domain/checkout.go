package domain

import "github.com/shopspring/decimal"

// ShippingPolicy charges a flat fee below the free shipping threshold.
type ShippingPolicy struct {
	FreeThreshold decimal.Decimal
	FlatFee       decimal.Decimal
}

func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: decimal.NewFromInt(999),
		FlatFee:       decimal.NewFromInt(99),
	}
}

type Totals struct {
	Subtotal Money
	Shipping Money
	Total    Money
}

func (p ShippingPolicy) ShippingFor(subtotal Money) Money {
	if subtotal.Amount.GreaterThanOrEqual(p.FreeThreshold) {
		return Zero(subtotal.Currency)
	}
	return Money{Amount: p.FlatFee, Currency: subtotal.Currency}
}

// Quote is a pure function of the cart lines and the policy.
func (p ShippingPolicy) Quote(cart Cart) Totals {
	subtotal := cart.Subtotal()
	shipping := p.ShippingFor(subtotal)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    Money{Amount: subtotal.Amount.Add(shipping.Amount), Currency: subtotal.Currency},
	}
}

// OrderItemsFromCart copies the cart snapshot into order items. Prices of
// lines without a product snapshot are zero, matching Cart.Subtotal.
func OrderItemsFromCart(orderID string, cart Cart, newID func() string) []OrderItem {
	items := make([]OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		name := ""
		if line.Product != nil {
			name = line.Product.Name
		}
		items = append(items, OrderItem{
			ID:        newID(),
			OrderID:   orderID,
			ProductID: line.ProductID,
			Name:      name,
			Size:      line.Size,
			Color:     line.Color,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice(cart.Currency),
		})
	}
	return items
}
