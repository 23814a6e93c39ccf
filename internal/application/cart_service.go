package application

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/domain/entity"
	repo "github.com/weihanng/techtrove/internal/domain/repository"
)

var (
	ErrMaxQuantity  = errors.New("max quantity reached")
	ErrMinQuantity  = errors.New("minimum number for the quantity reached")
	ErrLineNotFound = errors.New("product not found in cart")
)

// CartService maintains the per-user cart. Quantity bounds are checked
// against the product's current stock but not locked: two concurrent
// updates to the same line are last-write-wins.
type CartService struct {
	Carts    repo.CartRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
}

// CartView is the cart with live product data and the running total.
// Prices are not frozen at add time, so the total moves when a seller
// edits a price.
type CartView struct {
	Lines []entity.CartLine
	Total decimal.Decimal
}

// Add upserts a line: an existing line gains 1, otherwise a new line
// starts at 1. Adding an unknown product is a benign no-op.
func (s *CartService) Add(userID, productID string) error {
	if _, err := s.Products.GetByID(productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.Carts.Upsert(userID, productID)
}

// Increment bumps a line by 1 unless the line already covers the
// product's current stock; it never clamps.
func (s *CartService) Increment(userID, productID string) (*CartView, error) {
	p, err := s.Products.GetByID(productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}
	line, err := s.Carts.Get(userID, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}
	if line.Quantity >= p.Quantity {
		return nil, ErrMaxQuantity
	}
	if err := s.Carts.SetQuantity(userID, productID, line.Quantity+1); err != nil {
		return nil, err
	}
	return s.View(userID)
}

// Decrement lowers a line by 1 but never below 1; a line at 1 fails
// rather than being removed.
func (s *CartService) Decrement(userID, productID string) (*CartView, error) {
	line, err := s.Carts.Get(userID, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}
	if line.Quantity <= 1 {
		return nil, ErrMinQuantity
	}
	if err := s.Carts.SetQuantity(userID, productID, line.Quantity-1); err != nil {
		return nil, err
	}
	return s.View(userID)
}

// Remove deletes the line regardless of quantity; a missing line is a
// no-op, not an error.
func (s *CartService) Remove(userID, productID string) error {
	return s.Carts.Remove(userID, productID)
}

func (s *CartService) View(userID string) (*CartView, error) {
	lines, err := s.Carts.Lines(userID)
	if err != nil {
		return nil, err
	}
	return &CartView{Lines: lines, Total: entity.CartTotal(lines)}, nil
}

// Count is the total unit count across lines, used for the cart badge.
func (s *CartService) Count(userID string) (int, error) {
	return s.Carts.Count(userID)
}
