package domain

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
)

const (
	MaxLineQuantity = 1000
	MaxCartLines    = 100
)

// ValidateQuantity accepts quantities in [1, MaxLineQuantity].
func ValidateQuantity(quantity int) error {
	switch {
	case quantity < 1:
		return fmt.Errorf("quantity[%d] is not positive: %w", quantity, ErrInvalidQuantity)
	case quantity > MaxLineQuantity:
		return fmt.Errorf("quantity[%d] exceeds %d: %w", quantity, MaxLineQuantity, ErrInvalidQuantity)
	}
	return nil
}

// MergeQuantity adds delta to a line's quantity, rejecting results above
// MaxLineQuantity.
func MergeQuantity(current, delta int) (int, error) {
	if err := ValidateQuantity(delta); err != nil {
		return 0, err
	}
	if current > MaxLineQuantity-delta {
		return 0, fmt.Errorf("quantity[%d+%d] exceeds %d: %w", current, delta, MaxLineQuantity, ErrInvalidQuantity)
	}
	return current + delta, nil
}

type Cart struct {
	OwnerID  string
	Currency currency.Unit
	Lines    []CartLine
}

// CartLine is one merged (product, size, color) selection. Its quantity stays
// within [1, MaxLineQuantity]; setting it to zero deletes the line instead.
type CartLine struct {
	ID        string
	ProductID string
	Size      string
	Color     string
	Quantity  int

	// Product is nil when the catalog no longer has the product.
	Product *ProductSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductSnapshot struct {
	ID     string
	Name   string
	Price  Money
	Images []string
}

func (c Cart) HasSelection(productID, size, color string) bool {
	for _, l := range c.Lines {
		if l.SameSelection(productID, size, color) {
			return true
		}
	}
	return false
}

// Count is the sum of quantities across all lines.
func (c Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Subtotal sums price*quantity over lines with a product snapshot. Lines
// without a snapshot contribute nothing.
func (c Cart) Subtotal() Money {
	total := Zero(c.Currency)
	for _, line := range c.Lines {
		total.Amount = total.Amount.Add(line.Total().Amount)
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) LineIDs() []string {
	ids := make([]string, 0, len(c.Lines))
	for _, line := range c.Lines {
		ids = append(ids, line.ID)
	}
	return ids
}

func (c Cart) Line(id string) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ID == id {
			return line, true
		}
	}
	return CartLine{}, false
}

// UnitPrice is the snapshot price, or zero in the line's cart currency when
// the snapshot is missing.
func (l CartLine) UnitPrice(unit currency.Unit) Money {
	if l.Product == nil {
		return Zero(unit)
	}
	return l.Product.Price
}

func (l CartLine) Total() Money {
	if l.Product == nil {
		return Money{}
	}
	return l.Product.Price.Mul(l.Quantity)
}

// SameSelection reports whether both lines refer to the same merge key.
func (l CartLine) SameSelection(productID, size, color string) bool {
	return l.ProductID == productID && l.Size == size && l.Color == color
}
