package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a cart at checkout-completion time.
// Apart from flipping a line's Reviewed flag it is never mutated.
type Order struct {
	ID        string
	UserID    string
	UserEmail string
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem copies the product fields as they were when the order was
// placed; later edits to the product do not touch it.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Title     string
	ImageURL  string
	Category  string
	Price     decimal.Decimal
	Quantity  int
	Reviewed  bool
}

// Total is the sum of snapshot price x quantity over all items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
