package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weihanng/techtrove/internal/domain/entity"
	"github.com/weihanng/techtrove/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(rv *entity.Review) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (product_id, user_id, rating, review)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, rv.ProductID, rv.UserID, rv.Rating, rv.Review)

	return row.Scan(&rv.ID, &rv.CreatedAt)
}

// ListByProduct joins the users table for author names, newest first.
func (r *ReviewRepository) ListByProduct(productID string) ([]entity.Review, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT rv.id, rv.product_id, rv.user_id, u.name, rv.rating, rv.review, rv.created_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.product_id = $1
		ORDER BY rv.created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Review{}
	for rows.Next() {
		rv := entity.Review{}
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.AuthorName,
			&rv.Rating, &rv.Review, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// AverageRating is the unweighted mean over every review ever submitted
// for the product; 0 when there are none.
func (r *ReviewRepository) AverageRating(productID string) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(context.Background(), `
		SELECT coalesce(avg(rating), 0) FROM reviews WHERE product_id = $1
	`, productID).Scan(&avg)
	return avg, err
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
