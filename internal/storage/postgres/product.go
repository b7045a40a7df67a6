package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhtri-dev/storefront/internal/domain/catalog"
)

const (
	productColumns = `id, name, price, original_price, image_url, description,
		category, rating, reviews, stock, created_at, updated_at`

	listProductsSQL = `SELECT ` + productColumns + `
		FROM products ORDER BY created_at DESC, id DESC`

	insertProductSQL = `INSERT INTO products
		(name, price, original_price, image_url, description, category, rating, reviews, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + productColumns

	updateProductSQL = `UPDATE products SET
		name = $2, price = $3, original_price = $4, image_url = $5, description = $6,
		category = $7, rating = $8, reviews = $9, stock = $10, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	deleteProductSQL = `DELETE FROM products WHERE id = $1`
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns the full catalog ordered by creation recency, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Insert persists a new product and returns it with its assigned id and
// timestamps.
func (r *ProductRepository) Insert(ctx context.Context, d catalog.Draft) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, insertProductSQL,
		d.Name, d.Price, d.OriginalPrice, d.ImageURL, d.Description,
		string(d.Category), d.Rating, d.Reviews, d.Stock,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting product: %w", err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("inserting product: %w", err)
	}
	return &p, nil
}

// Update overwrites every mutable column of the product with the draft's
// values. It returns catalog.ErrNotFound when the id does not exist.
func (r *ProductRepository) Update(ctx context.Context, id int64, d catalog.Draft) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, updateProductSQL, id,
		d.Name, d.Price, d.OriginalPrice, d.ImageURL, d.Description,
		string(d.Category), d.Rating, d.Reviews, d.Stock,
	)
	if err != nil {
		return nil, fmt.Errorf("updating product %d: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("updating product %d: %w", id, err)
	}
	return &p, nil
}

// Delete removes the product row. Deleting an id that does not exist returns
// catalog.ErrNotFound.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var (
		p        catalog.Product
		category string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.ImageURL, &p.Description,
		&category, &p.Rating, &p.Reviews, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Category = catalog.Category(category)
	return p, err
}
