package repository

import "github.com/weihanng/techtrove/internal/domain/entity"

// OrderRepository persists order snapshots. Create runs the order
// insert, the per-line stock decrement, and the cart clear in a single
// transaction; a failed step rolls all three back.
type OrderRepository interface {
	Create(o *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	ListByUser(userID string) ([]entity.Order, error)
	MarkItemReviewed(orderID, productID string) error
}
