package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefront/shop-api/internal/core/domain"
)

const productColumns = `id, name, description, price, stock, category, image_url,
	rating, review_count, active, created_at, updated_at, version`

type ProductRepository struct {
	db *sql.DB
	d  Dialect
}

func NewProductRepository(db *sql.DB, d Dialect) *ProductRepository {
	return &ProductRepository{db: db, d: d}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := r.d.Rebind(`INSERT INTO products (id, name, description, price, stock, category, category_key,
		image_url, rating, review_count, active, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT DO NOTHING`)

	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.CategoryKey(),
		p.ImageURL, p.Rating, p.ReviewCount, p.Active, p.CreatedAt.UTC(), p.UpdatedAt.UTC(), p.Version)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if n == 0 {
		return domain.ErrProductExists
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := r.d.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = $1`)
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

// Update writes p if the stored version still equals p.Version and bumps it.
// A stale version yields domain.ErrConflict.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := r.d.Rebind(`UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category = $5, category_key = $6,
			image_url = $7, rating = $8, review_count = $9, active = $10, updated_at = $11,
			version = version + 1
		WHERE id = $12 AND version = $13`)

	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.CategoryKey(),
		p.ImageURL, p.Rating, p.ReviewCount, p.Active, p.UpdatedAt.UTC(), p.ID, p.Version)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx, r.d.Rebind(`SELECT 1 FROM products WHERE id = $1`), p.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return domain.ErrConflict
	}
	p.Version++
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM products WHERE id = $1`), id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return n > 0, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(s scanner) (*domain.Product, error) {
	var p domain.Product
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.ImageURL,
		&p.Rating, &p.ReviewCount, &p.Active, &p.CreatedAt, &p.UpdatedAt, &p.Version); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
