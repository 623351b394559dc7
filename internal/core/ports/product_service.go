package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// ProductInput carries the replaceable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	ImageURL    string
}

// StockFailed is returned by AddStock and RemoveStock when the adjustment
// was rejected.
const StockFailed = -1

// ProductService covers catalog management, inventory and reviews.
type ProductService interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetAllProductsIncludingInactive(ctx context.Context) ([]*domain.Product, error)
	// GetProductByID returns nil for unknown or inactive products.
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	AddProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	UpdateProductStock(ctx context.Context, id string, newStock int) (bool, error)
	AddStock(ctx context.Context, id string, quantity int) (int, error)
	RemoveStock(ctx context.Context, id string, quantity int) (int, error)
	DeactivateProduct(ctx context.Context, id string) (bool, error)
	ReactivateProduct(ctx context.Context, id string) (bool, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
	SearchProducts(ctx context.Context, query string) ([]*domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	GetAllCategories(ctx context.Context) ([]string, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error)
	AddProductReview(ctx context.Context, id string, rating float64) (bool, error)
}
