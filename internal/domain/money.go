package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func Zero(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

// Add sums two amounts of the same currency. The receiver's currency wins when
// either side is the zero value of currency.Unit.
func (m Money) Add(other Money) (Money, error) {
	if !sameCurrency(m.Currency, other.Currency) {
		return Money{}, fmt.Errorf("currency mismatch: %s != %s", m.Currency, other.Currency)
	}

	unit := m.Currency
	if unit == (currency.Unit{}) {
		unit = other.Currency
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: unit}, nil
}

func (m Money) Mul(quantity int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(quantity))), Currency: m.Currency}
}

func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency.String()
}

func sameCurrency(a, b currency.Unit) bool {
	if a == (currency.Unit{}) || b == (currency.Unit{}) {
		return true
	}
	return a.String() == b.String()
}
