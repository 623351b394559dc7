package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

// ProductService owns the catalog and its category index.
type ProductService struct {
	products ports.ProductRepository
	index    ports.CategoryIndex
	locks    *keyLock
	logger   zerolog.Logger
	now      func() time.Time
}

var _ ports.ProductService = (*ProductService)(nil)

func NewProductService(products ports.ProductRepository, index ports.CategoryIndex, logger zerolog.Logger) *ProductService {
	return &ProductService{
		products: products,
		index:    index,
		locks:    newKeyLock(defaultLockShards),
		logger:   logger,
		now:      time.Now,
	}
}

// RebuildIndex re-adds every product to the bucket of its current category.
// Backends that keep the index outside the directory call it at startup.
func (s *ProductService) RebuildIndex(ctx context.Context) error {
	all, err := s.products.List(ctx)
	if err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	for _, p := range all {
		if err := s.index.Add(ctx, p.CategoryKey(), p.ID); err != nil {
			return fmt.Errorf("rebuild index: %w", err)
		}
	}
	s.logger.Info().Int("products", len(all)).Msg("category index rebuilt")
	return nil
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return filterActive(all), nil
}

func (s *ProductService) GetAllProductsIncludingInactive(ctx context.Context) ([]*domain.Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return all, nil
}

// GetProductByID returns nil for unknown and for inactive products.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.findActive(ctx, id)
}

// AddProduct stores p under its own id and files it in the category index.
func (s *ProductService) AddProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p == nil || p.ID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if p.Price < 0 || p.Stock < 0 {
		return nil, fmt.Errorf("%w: negative price or stock", domain.ErrInvalidArgument)
	}

	stored := p.Clone()
	stored.SetCategory(stored.Category)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now().UTC()
		stored.UpdatedAt = stored.CreatedAt
	}

	unlock := s.locks.lock(stored.ID)
	defer unlock()

	if err := s.products.Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}
	if err := s.index.Add(ctx, stored.CategoryKey(), stored.ID); err != nil {
		return nil, fmt.Errorf("add product: index: %w", err)
	}

	s.logger.Info().Str("product_id", stored.ID).Str("category", stored.Category).Msg("product added")
	return stored.Clone(), nil
}

// UpdateProduct replaces the editable fields of a product, active or not.
// It returns nil when the product is unknown or the new values are invalid.
// A changed category is added to the index; the old bucket keeps the id and
// category reads filter it out by the product's current category.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	if id == "" {
		return nil, nil
	}

	unlock := s.locks.lock(id)
	defer unlock()

	p, err := s.findAny(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	oldKey := p.CategoryKey()

	if err := applyInput(p, in); err != nil {
		s.logger.Debug().Err(err).Str("product_id", id).Msg("product update rejected")
		return nil, nil
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if newKey := p.CategoryKey(); newKey != oldKey {
		if err := s.index.Add(ctx, newKey, p.ID); err != nil {
			return nil, fmt.Errorf("update product: index: %w", err)
		}
	}
	return p.Clone(), nil
}

func applyInput(p *domain.Product, in ports.ProductInput) error {
	if err := p.SetName(in.Name); err != nil {
		return err
	}
	if err := p.SetPrice(in.Price); err != nil {
		return err
	}
	if err := p.SetStock(in.Stock); err != nil {
		return err
	}
	p.SetDescription(in.Description)
	p.SetCategory(in.Category)
	p.SetImageURL(in.ImageURL)
	return nil
}

// UpdateProductStock sets the stock level of an active product.
func (s *ProductService) UpdateProductStock(ctx context.Context, id string, newStock int) (bool, error) {
	ok := false
	err := s.mutateActive(ctx, id, func(p *domain.Product) bool {
		ok = p.SetStock(newStock) == nil
		return ok
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// AddStock returns the new stock level or ports.StockFailed.
func (s *ProductService) AddStock(ctx context.Context, id string, quantity int) (int, error) {
	level := ports.StockFailed
	err := s.mutateActive(ctx, id, func(p *domain.Product) bool {
		n, err := p.AddStock(quantity)
		if err != nil {
			return false
		}
		level = n
		return true
	})
	if err != nil {
		return ports.StockFailed, err
	}
	return level, nil
}

// RemoveStock returns the new stock level, or ports.StockFailed when the
// quantity is not positive or exceeds the current stock.
func (s *ProductService) RemoveStock(ctx context.Context, id string, quantity int) (int, error) {
	level := ports.StockFailed
	err := s.mutateActive(ctx, id, func(p *domain.Product) bool {
		n, err := p.RemoveStock(quantity)
		if err != nil {
			return false
		}
		level = n
		return true
	})
	if err != nil {
		return ports.StockFailed, err
	}
	return level, nil
}

func (s *ProductService) DeactivateProduct(ctx context.Context, id string) (bool, error) {
	ok := false
	err := s.mutateActive(ctx, id, func(p *domain.Product) bool {
		p.Active = false
		ok = true
		return true
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ReactivateProduct looks past the active filter so soft-deleted products
// can be restored.
func (s *ProductService) ReactivateProduct(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	unlock := s.locks.lock(id)
	defer unlock()

	p, err := s.findAny(ctx, id)
	if err != nil || p == nil {
		return false, err
	}
	p.Active = true
	p.UpdatedAt = s.now().UTC()
	if err := s.products.Update(ctx, p); err != nil {
		return false, fmt.Errorf("reactivate product: %w", err)
	}
	return true, nil
}

// DeleteProduct removes the product permanently along with every index entry
// that refers to it.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	unlock := s.locks.lock(id)
	defer unlock()

	existed, err := s.products.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	if !existed {
		return false, nil
	}

	buckets, err := s.index.Buckets(ctx)
	if err != nil {
		return true, fmt.Errorf("delete product: index: %w", err)
	}
	for _, key := range buckets {
		if err := s.index.Remove(ctx, key, id); err != nil {
			return true, fmt.Errorf("delete product: index: %w", err)
		}
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return true, nil
}

// SearchProducts matches query case-insensitively as a substring of name or
// description. The query is not trimmed. An empty query returns every
// active product.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	active, err := s.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	if needle == "" {
		return active, nil
	}

	matches := make([]*domain.Product, 0, len(active))
	for _, p := range active {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// GetProductsByCategory returns active products whose category matches
// case-insensitively, oldest first.
func (s *ProductService) GetProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	key := domain.CategoryKey(category)
	if key == "" {
		return s.GetAllProducts(ctx)
	}

	ids, err := s.index.IDs(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("products by category: %w", err)
	}

	result := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.findActive(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil || p.CategoryKey() != key {
			continue
		}
		result = append(result, p)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// GetAllCategories returns the distinct categories of active products, as
// stored, in sorted order.
func (s *ProductService) GetAllCategories(ctx context.Context) ([]string, error) {
	buckets, err := s.index.Buckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	seen := make(map[string]struct{})
	for _, key := range buckets {
		ids, err := s.index.IDs(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		for _, id := range ids {
			p, err := s.findActive(ctx, id)
			if err != nil {
				return nil, err
			}
			if p == nil || p.CategoryKey() != key {
				continue
			}
			seen[p.Category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

// GetFeaturedProducts returns up to limit active products, best rated first.
// Equal ratings keep catalog order.
func (s *ProductService) GetFeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		return []*domain.Product{}, nil
	}
	active, err := s.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Rating > active[j].Rating
	})
	if len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

// AddProductReview folds rating into the product's running mean.
func (s *ProductService) AddProductReview(ctx context.Context, id string, rating float64) (bool, error) {
	ok := false
	err := s.mutateActive(ctx, id, func(p *domain.Product) bool {
		ok = p.AddRating(rating) == nil
		return ok
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// mutateActive runs fn on a copy of the active product under its key lock
// and persists the copy when fn reports a change.
func (s *ProductService) mutateActive(ctx context.Context, id string, fn func(p *domain.Product) bool) error {
	if id == "" {
		return nil
	}

	unlock := s.locks.lock(id)
	defer unlock()

	p, err := s.findActive(ctx, id)
	if err != nil || p == nil {
		return err
	}
	if !fn(p) {
		return nil
	}
	p.UpdatedAt = s.now().UTC()
	if err := s.products.Update(ctx, p); err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	return nil
}

func (s *ProductService) findActive(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.findAny(ctx, id)
	if err != nil || p == nil || !p.Active {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) findAny(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, nil
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return p, nil
}

func filterActive(all []*domain.Product) []*domain.Product {
	active := make([]*domain.Product, 0, len(all))
	for _, p := range all {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}
