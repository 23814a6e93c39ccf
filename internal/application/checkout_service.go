package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/domain/entity"
	repo "github.com/weihanng/techtrove/internal/domain/repository"
	"github.com/weihanng/techtrove/pkg/payment"
)

// SoldOutError reports the first cart line whose quantity exceeds the
// product's current stock; checkout stops without touching the cart.
type SoldOutError struct {
	Title string
}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("%s just sold out. Please delete it from the cart to continue.", e.Title)
}

// CheckoutService re-validates the cart and opens a hosted payment
// session. The actual order is created by OrderService on the
// processor's success callback.
type CheckoutService struct {
	Carts    repo.CartRepository
	Payments payment.SessionCreator
	Logger   *logrus.Logger
}

// CheckoutView is what the checkout page needs: the lines, the total
// recomputed at live prices, and the processor session handle.
type CheckoutView struct {
	Lines      []entity.CartLine
	Total      decimal.Decimal
	SessionID  string
	PaymentURL string
}

var minorUnits = decimal.NewFromInt(100)

func (s *CheckoutService) Initiate(ctx context.Context, userID string) (*CheckoutView, error) {
	lines, err := s.Carts.Lines(userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	for _, l := range lines {
		if l.Quantity > l.Product.Quantity {
			return nil, &SoldOutError{Title: l.Product.Title}
		}
	}

	items := make([]payment.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, payment.LineItem{
			Name:       l.Product.Title,
			UnitAmount: l.Product.Price.Mul(minorUnits).Round(0).IntPart(),
			Quantity:   int64(l.Quantity),
		})
	}

	sess, err := s.Payments.CreateSession(ctx, items)
	if err != nil {
		return nil, err
	}

	return &CheckoutView{
		Lines:      lines,
		Total:      entity.CartTotal(lines),
		SessionID:  sess.ID,
		PaymentURL: sess.URL,
	}, nil
}
