package service

import (
	"context"
	"fmt"

	"github.com/storefront/shop-api/internal/core/domain"
)

type sampleProduct struct {
	name        string
	description string
	price       float64
	stock       int
	category    string
}

var sampleCatalog = []sampleProduct{
	{"Laptop", "14-inch ultrabook with 16GB RAM", 999.99, 10, "Electronics"},
	{"Wireless Mouse", "Ergonomic mouse with USB receiver", 29.99, 50, "Electronics"},
	{"Coffee Mug", "Ceramic mug, 350ml", 12.5, 100, "Kitchen"},
	{"Notebook", "A5 dotted notebook, 120 pages", 7.25, 200, "Office"},
}

// SeedSampleCatalog loads a small demo catalog when the directory is empty.
// It returns the number of products added.
func SeedSampleCatalog(ctx context.Context, svc *ProductService) (int, error) {
	existing, err := svc.GetAllProductsIncludingInactive(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, sp := range sampleCatalog {
		p, err := domain.NewProduct(sp.name, sp.description, sp.price, sp.stock, sp.category)
		if err != nil {
			return i, fmt.Errorf("seed %q: %w", sp.name, err)
		}
		if _, err := svc.AddProduct(ctx, p); err != nil {
			return i, fmt.Errorf("seed %q: %w", sp.name, err)
		}
	}
	svc.logger.Info().Int("products", len(sampleCatalog)).Msg("sample catalog seeded")
	return len(sampleCatalog), nil
}
