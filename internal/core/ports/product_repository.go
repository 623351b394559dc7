package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// ProductRepository is the product directory keyed by product id.
type ProductRepository interface {
	// Create inserts p under p.ID. Returns domain.ErrProductExists on a
	// duplicate id.
	Create(ctx context.Context, p *domain.Product) error
	// FindByID ignores the active flag. Returns domain.ErrProductNotFound.
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	// Delete removes the record and reports whether one existed.
	Delete(ctx context.Context, id string) (bool, error)
	// List returns all products in insertion order.
	List(ctx context.Context) ([]*domain.Product, error)
}

// CategoryIndex maps lower-cased category keys to product ids.
type CategoryIndex interface {
	Add(ctx context.Context, category, productID string) error
	// Remove drops productID from the bucket and prunes the bucket once empty.
	Remove(ctx context.Context, category, productID string) error
	IDs(ctx context.Context, category string) ([]string, error)
	// Buckets lists the category keys that currently hold at least one id.
	Buckets(ctx context.Context) ([]string, error)
}
