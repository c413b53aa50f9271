// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"fridge_backend/internal/feature/recipes/domain/entity"
	"fridge_backend/internal/feature/recipes/usecase"
)

// CachingRecipeGenerator decorates a recipe Generator with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying generator. Identical ingredient sets hit the
// cache instead of calling the LLM again.
type CachingRecipeGenerator struct {
	inner     usecase.Generator
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingRecipeGenerator decorates a Generator with Redis caching.
// If ttl is 0, it defaults to 1 hour. If namespace is empty, it uses "recipes".
func NewCachingRecipeGenerator(rdb *redis.Client, ttl time.Duration, inner usecase.Generator, namespace string) *CachingRecipeGenerator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if namespace == "" {
		namespace = "recipes"
	}
	return &CachingRecipeGenerator{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.Generator = (*CachingRecipeGenerator)(nil)

// Generate retrieves recipe candidates, checking cache first then falling
// back to the underlying generator.
func (c *CachingRecipeGenerator) Generate(ctx context.Context, ingredients, urgentItems []string, dietType string) ([]entity.Recipe, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Generate(ctx, ingredients, urgentItems, dietType)
	}

	key := c.cacheKey(ingredients, urgentItems, dietType)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Recipe
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the generator
	out, err := c.inner.Generate(ctx, ingredients, urgentItems, dietType)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific ingredient set.
// Ingredient order must not affect the key, so both lists are sorted
// before joining.
func (c *CachingRecipeGenerator) cacheKey(ingredients, urgentItems []string, dietType string) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(dietType),
		joinSorted(ingredients),
		joinSorted(urgentItems),
	)
}

func joinSorted(items []string) string {
	sorted := make([]string, len(items))
	for i, it := range items {
		sorted[i] = safe(strings.ToLower(it))
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
