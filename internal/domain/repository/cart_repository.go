package repository

import "github.com/weihanng/techtrove/internal/domain/entity"

// CartRepository persists per-user cart lines. The (user, product) key
// is unique in storage, so Upsert can never produce duplicate lines.
type CartRepository interface {
	Lines(userID string) ([]entity.CartLine, error)
	Get(userID, productID string) (*entity.CartItem, error)
	Upsert(userID, productID string) error
	SetQuantity(userID, productID string, quantity int) error
	Remove(userID, productID string) error
	Clear(userID string) error
	Count(userID string) (int, error)
}
