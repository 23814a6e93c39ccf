package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weihanng/techtrove/internal/domain/entity"
	"github.com/weihanng/techtrove/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create writes the order and its item snapshots, decrements each
// product's stock by the ordered quantity, and clears the user's cart,
// all in one transaction. Stock is not re-checked here; the checkout
// facade validated it, and a concurrent sale can still drive stock
// negative.
func (r *OrderRepository) Create(o *entity.Order) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, user_email)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, o.UserID, o.UserEmail)
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID

		row := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, title, image_url, category, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, it.OrderID, it.ProductID, it.Title, it.ImageURL, it.Category, it.Price, it.Quantity)
		if err := row.Scan(&it.ID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			UPDATE products SET quantity = quantity - $1 WHERE id = $2
		`, it.Quantity, it.ProductID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()
	o := &entity.Order{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, user_email, created_at FROM orders WHERE id = $1
	`, id)
	if err := row.Scan(&o.ID, &o.UserID, &o.UserEmail, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

func (r *OrderRepository) ListByUser(userID string) ([]entity.Order, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, user_email, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Order{}
	for rows.Next() {
		o := entity.Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.UserEmail, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.itemsFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, title, image_url, category, price, quantity, reviewed
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []entity.OrderItem{}
	for rows.Next() {
		it := entity.OrderItem{}
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Title, &it.ImageURL,
			&it.Category, &it.Price, &it.Quantity, &it.Reviewed); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// MarkItemReviewed flips the reviewed flag on the order line matching
// the product; zero rows means the order or line does not exist.
func (r *OrderRepository) MarkItemReviewed(orderID, productID string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE order_items SET reviewed = true
		WHERE order_id = $1 AND product_id = $2
	`, orderID, productID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
