package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weihanng/techtrove/internal/domain/entity"
	"github.com/weihanng/techtrove/internal/domain/repository"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Lines returns the cart joined with the live product rows, oldest
// line first.
func (r *CartRepository) Lines(userID string) ([]entity.CartLine, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.image_url, p.price, p.description, p.quantity, p.category,
		       p.rating, p.seller_id, p.created_at, p.updated_at,
		       ci.quantity, ci.added_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.added_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.CartLine{}
	for rows.Next() {
		l := entity.CartLine{}
		p := &l.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.ImageURL, &p.Price, &p.Description, &p.Quantity,
			&p.Category, &p.Rating, &p.SellerID, &p.CreatedAt, &p.UpdatedAt,
			&l.Quantity, &l.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *CartRepository) Get(userID, productID string) (*entity.CartItem, error) {
	ctx := context.Background()
	it := &entity.CartItem{}

	row := r.pool.QueryRow(ctx, `
		SELECT user_id, product_id, quantity, added_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)

	if err := row.Scan(&it.UserID, &it.ProductID, &it.Quantity, &it.AddedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return it, nil
}

// Upsert inserts a new line with quantity 1, or bumps an existing one
// by 1. The primary key makes a duplicate line impossible.
func (r *CartRepository) Upsert(userID, productID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + 1
	`, userID, productID)
	return err
}

func (r *CartRepository) SetQuantity(userID, productID string, quantity int) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE cart_items SET quantity = $1
		WHERE user_id = $2 AND product_id = $3
	`, quantity, userID, productID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Remove deletes the line outright; a missing line is not an error.
func (r *CartRepository) Remove(userID, productID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}

func (r *CartRepository) Clear(userID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func (r *CartRepository) Count(userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(context.Background(), `
		SELECT coalesce(sum(quantity), 0) FROM cart_items WHERE user_id = $1
	`, userID).Scan(&n)
	return n, err
}

var _ repository.CartRepository = (*CartRepository)(nil)
