package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/domain/entity"
	repo "github.com/weihanng/techtrove/internal/domain/repository"
	"github.com/weihanng/techtrove/pkg/mailer"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderService snapshots carts into immutable orders.
type OrderService struct {
	Orders  repo.OrderRepository
	Carts   repo.CartRepository
	Users   repo.UserRepository
	Pub     Publisher
	Logger  *logrus.Logger
	Company string
}

// Place copies every cart line with the product's fields at this moment
// into an order, and hands the whole unit (order insert, stock
// decrement, cart clear) to the repository's single transaction. The
// confirmation email is queued after commit, best effort.
func (s *OrderService) Place(ctx context.Context, userID string) (*entity.Order, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	lines, err := s.Carts.Lines(userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &entity.Order{UserID: u.ID, UserEmail: u.Email}
	for _, l := range lines {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID: l.Product.ID,
			Title:     l.Product.Title,
			ImageURL:  l.Product.ImageURL,
			Category:  l.Product.Category,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		})
	}

	if err := s.Orders.Create(order); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, u, order)
	return order, nil
}

func (s *OrderService) sendConfirmation(ctx context.Context, u *entity.User, order *entity.Order) {
	if s.Pub == nil {
		return
	}
	items := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, fmt.Sprintf("%s (%d)", it.Title, it.Quantity))
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "order_confirmation",
		Data: map[string]any{
			"Name":     u.Name,
			"OrderID":  order.ID,
			"ItemList": strings.Join(items, ", "),
			"Total":    order.Total().StringFixed(2),
			"Company":  s.Company,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", order.ID).Warn("queue order confirmation failed")
	}
}

// History lists the user's orders, newest first.
func (s *OrderService) History(ctx context.Context, userID string) ([]entity.Order, error) {
	return s.Orders.ListByUser(userID)
}
