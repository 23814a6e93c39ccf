package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weihanng/techtrove/internal/domain/entity"
	"github.com/weihanng/techtrove/internal/domain/repository"
)

const productColumns = `id, title, image_url, price, description, quantity, category, rating, seller_id, created_at, updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	err := row.Scan(&p.ID, &p.Title, &p.ImageURL, &p.Price, &p.Description, &p.Quantity,
		&p.Category, &p.Rating, &p.SellerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]entity.Product, error) {
	defer rows.Close()
	out := []entity.Product{}
	for rows.Next() {
		p := entity.Product{}
		if err := rows.Scan(&p.ID, &p.Title, &p.ImageURL, &p.Price, &p.Description, &p.Quantity,
			&p.Category, &p.Rating, &p.SellerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Create(p *entity.Product) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (title, image_url, price, description, quantity, category, seller_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, rating, created_at, updated_at
	`, p.Title, p.ImageURL, p.Price, p.Description, p.Quantity, p.Category, p.SellerID)

	return row.Scan(&p.ID, &p.Rating, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

// Update only matches rows owned by p.SellerID; zero rows is not-found.
func (r *ProductRepository) Update(p *entity.Product) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET title = $1, image_url = $2, price = $3, description = $4, quantity = $5, category = $6, updated_at = now()
		WHERE id = $7 AND seller_id = $8
	`, p.Title, p.ImageURL, p.Price, p.Description, p.Quantity, p.Category, p.ID, p.SellerID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete is seller-scoped and silent on zero rows.
func (r *ProductRepository) Delete(id, sellerID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND seller_id = $2`, id, sellerID)
	return err
}

func (r *ProductRepository) List(offset, limit int) ([]entity.Product, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		ORDER BY rating DESC, created_at DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) Count() (int, error) {
	var n int
	err := r.pool.QueryRow(context.Background(), `SELECT count(*) FROM products`).Scan(&n)
	return n, err
}

func (r *ProductRepository) ListBySeller(sellerID string, offset, limit int) ([]entity.Product, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE seller_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`, sellerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) CountBySeller(sellerID string) (int, error) {
	var n int
	err := r.pool.QueryRow(context.Background(), `SELECT count(*) FROM products WHERE seller_id = $1`, sellerID).Scan(&n)
	return n, err
}

// Search matches the term case-insensitively as a substring of either
// title or category, results ordered by rating.
func (r *ProductRepository) Search(term string, offset, limit int) ([]entity.Product, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE title ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'
		ORDER BY rating DESC, created_at DESC
		OFFSET $2 LIMIT $3
	`, term, offset, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) CountSearch(term string) (int, error) {
	var n int
	err := r.pool.QueryRow(context.Background(), `
		SELECT count(*) FROM products
		WHERE title ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'
	`, term).Scan(&n)
	return n, err
}

func (r *ProductRepository) TopRated(limit int) ([]entity.Product, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		ORDER BY rating DESC, created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) UpdateRating(id string, rating float64) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `UPDATE products SET rating = $1, updated_at = now() WHERE id = $2`, rating, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
