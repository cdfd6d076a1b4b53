package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Summary struct {
	Revenue         Money
	Orders          int
	Customers       int
	PendingDelivery int
	TopProducts     []ProductSales
	DailySales      []DailySales
}

type ProductSales struct {
	ProductID string
	Name      string
	Quantity  int
	Revenue   Money
}

type DailySales struct {
	Day     string
	Orders  int
	Revenue Money
}

// Summarize builds the dashboard figures. Cancelled orders count towards
// Orders but not towards revenue or product sales.
func Summarize(orders []Order, customers int, unit currency.Unit, topN int) Summary {
	s := Summary{
		Revenue:   Zero(unit),
		Orders:    len(orders),
		Customers: customers,
	}

	products := make(map[string]*ProductSales)
	days := make(map[string]*DailySales)

	for _, o := range orders {
		if o.Status.Open() {
			s.PendingDelivery++
		}
		if o.Status == OrderStatusCancelled {
			continue
		}

		s.Revenue.Amount = s.Revenue.Amount.Add(o.Total.Amount)

		day := o.CreatedAt.UTC().Format("2006-01-02")
		d, ok := days[day]
		if !ok {
			d = &DailySales{Day: day, Revenue: Zero(unit)}
			days[day] = d
		}
		d.Orders++
		d.Revenue.Amount = d.Revenue.Amount.Add(o.Total.Amount)

		for _, it := range o.Items {
			p, ok := products[it.ProductID]
			if !ok {
				p = &ProductSales{ProductID: it.ProductID, Name: it.Name, Revenue: Zero(unit)}
				products[it.ProductID] = p
			}
			p.Quantity += it.Quantity
			p.Revenue.Amount = p.Revenue.Amount.Add(it.UnitPrice.Amount.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	for _, p := range products {
		s.TopProducts = append(s.TopProducts, *p)
	}
	slices.SortFunc(s.TopProducts, func(a, b ProductSales) int {
		if a.Quantity != b.Quantity {
			return b.Quantity - a.Quantity
		}
		if c := b.Revenue.Amount.Cmp(a.Revenue.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.ProductID, b.ProductID)
	})
	if topN > 0 && len(s.TopProducts) > topN {
		s.TopProducts = s.TopProducts[:topN]
	}

	for _, d := range days {
		s.DailySales = append(s.DailySales, *d)
	}
	slices.SortFunc(s.DailySales, func(a, b DailySales) int { return strings.Compare(a.Day, b.Day) })

	return s
}
