package repository

import "github.com/weihanng/techtrove/internal/domain/entity"

// ReviewRepository persists product reviews.
type ReviewRepository interface {
	Create(r *entity.Review) error
	ListByProduct(productID string) ([]entity.Review, error)
	AverageRating(productID string) (float64, error)
}
