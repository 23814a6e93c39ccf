package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (product, quantity) line in a user's cart. The
// (user, product) pair is the primary key in storage, so a product can
// never appear on two lines. Quantity is never persisted below 1.
type CartItem struct {
	UserID    string
	ProductID string
	Quantity  int
	AddedAt   time.Time
}

// CartLine is a cart item joined with the live product row. Prices are
// not frozen at add time; Subtotal reflects the seller's current price.
type CartLine struct {
	Product  Product
	Quantity int
	AddedAt  time.Time
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums live subtotals over all lines.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
