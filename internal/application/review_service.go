package application

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/domain/entity"
	repo "github.com/weihanng/techtrove/internal/domain/repository"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderLineNotFound = errors.New("order line not found")
)

// ReviewService records reviews and keeps product mean ratings current.
type ReviewService struct {
	Reviews  repo.ReviewRepository
	Products repo.ProductRepository
	Orders   repo.OrderRepository
	Logger   *logrus.Logger
}

// SubmitInput carries the validated review form fields.
type SubmitInput struct {
	OrderID   string
	ProductID string
	Rating    int
	Text      string
}

// Submit persists the review, recomputes the product's rating as the
// mean over all of its reviews, and flags the matching order line
// reviewed. The order must belong to the author. If flagging fails the
// review has already been recorded; there is no compensating delete.
func (s *ReviewService) Submit(authorID string, in SubmitInput) error {
	order, err := s.Orders.GetByID(in.OrderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.UserID != authorID {
		return ErrOrderNotFound
	}

	rv := &entity.Review{
		ProductID: in.ProductID,
		UserID:    authorID,
		Rating:    in.Rating,
		Review:    in.Text,
	}
	if err := s.Reviews.Create(rv); err != nil {
		return err
	}

	avg, err := s.Reviews.AverageRating(in.ProductID)
	if err != nil {
		return err
	}
	if err := s.Products.UpdateRating(in.ProductID, avg); err != nil {
		return err
	}

	if err := s.Orders.MarkItemReviewed(in.OrderID, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOrderLineNotFound
		}
		return err
	}
	return nil
}

// ForProduct lists a product's reviews with author names.
func (s *ReviewService) ForProduct(productID string) ([]entity.Review, error) {
	return s.Reviews.ListByProduct(productID)
}
