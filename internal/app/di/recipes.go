package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	recipegemini "fridge_backend/internal/feature/recipes/adapters/gemini"
	"fridge_backend/internal/feature/recipes/adapters/youtube"
	recipesusecase "fridge_backend/internal/feature/recipes/usecase"
	"fridge_backend/internal/platform/cache"
	infrahttp "fridge_backend/internal/platform/http"
)

// recipeCacheTTL は同一食材セットに対するレシピ生成結果の保持期間です。
const recipeCacheTTL = time.Hour

// NewRecipeGenerator creates the Gemini recipe generator, wrapped with a
// Redis cache when rdb is non-nil. Identical ingredient sets within the
// TTL reuse the cached result instead of calling the LLM again.
func NewRecipeGenerator(ctx context.Context, rdb *redis.Client) (recipesusecase.Generator, error) {
	gen, err := recipegemini.NewGenerator(ctx, recipegemini.LoadConfig())
	if err != nil {
		return nil, err
	}
	return cache.NewCachingRecipeGenerator(rdb, recipeCacheTTL, gen, "recipes"), nil
}

// NewRecipePanel creates the Gemini recipe discussion panel.
func NewRecipePanel(ctx context.Context) (*recipegemini.Panel, error) {
	return recipegemini.NewPanel(ctx, recipegemini.LoadConfig())
}

// NewVideoSearcher creates a YouTube search client with a configured HTTP client.
func NewVideoSearcher() *youtube.Client {
	cfg := youtube.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return youtube.NewClient(cfg, httpClient)
}
