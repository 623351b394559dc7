package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
)

// CategoryIndex keeps an ordered id list per category key. Empty buckets are
// dropped as soon as their last id is removed.
type CategoryIndex struct {
	mu      sync.RWMutex
	buckets map[string][]string
}

func NewCategoryIndex() *CategoryIndex {
	return &CategoryIndex{buckets: make(map[string][]string)}
}

func (c *CategoryIndex) Add(_ context.Context, category, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := c.buckets[category]
	if slices.Contains(ids, productID) {
		return nil
	}
	c.buckets[category] = append(ids, productID)
	return nil
}

func (c *CategoryIndex) Remove(_ context.Context, category, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, ok := c.buckets[category]
	if !ok {
		return nil
	}
	i := slices.Index(ids, productID)
	if i < 0 {
		return nil
	}
	ids = slices.Delete(ids, i, i+1)
	if len(ids) == 0 {
		delete(c.buckets, category)
		return nil
	}
	c.buckets[category] = ids
	return nil
}

func (c *CategoryIndex) IDs(_ context.Context, category string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.buckets[category]), nil
}

// Buckets returns the non-empty category keys in sorted order.
func (c *CategoryIndex) Buckets(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.buckets))
	for k := range c.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
