package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const (
	categoryPrefix = "category:"
	bucketsKey     = "categories"
)

// CategoryIndex keeps one set per category key (category:<key>) and a set of
// the non-empty keys under "categories".
type CategoryIndex struct {
	client redis.UniversalClient
}

func NewCategoryIndex(client redis.UniversalClient) *CategoryIndex {
	return &CategoryIndex{client: client}
}

func (c *CategoryIndex) Add(ctx context.Context, category, productID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, categoryPrefix+category, productID)
		pipe.SAdd(ctx, bucketsKey, category)
		return nil
	})
	if err != nil {
		return fmt.Errorf("index add: %w", err)
	}
	return nil
}

// removeScript drops the id and prunes the bucket atomically once it is empty.
var removeScript = redis.NewScript(`
redis.call("SREM", KEYS[1], ARGV[1])
if redis.call("SCARD", KEYS[1]) == 0 then
  redis.call("SREM", KEYS[2], ARGV[2])
end
return 1
`)

func (c *CategoryIndex) Remove(ctx context.Context, category, productID string) error {
	keys := []string{categoryPrefix + category, bucketsKey}
	if err := removeScript.Run(ctx, c.client, keys, productID, category).Err(); err != nil {
		return fmt.Errorf("index remove: %w", err)
	}
	return nil
}

// IDs returns the bucket members sorted, since Redis sets are unordered.
// Callers that need creation order sort by the product records.
func (c *CategoryIndex) IDs(ctx context.Context, category string) ([]string, error) {
	ids, err := c.client.SMembers(ctx, categoryPrefix+category).Result()
	if err != nil {
		return nil, fmt.Errorf("index ids: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (c *CategoryIndex) Buckets(ctx context.Context) ([]string, error) {
	keys, err := c.client.SMembers(ctx, bucketsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("index buckets: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}
