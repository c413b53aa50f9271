package usecase

import (
	"context"
	"fmt"

	"fridge_backend/internal/feature/analysis/domain/entity"
	expiryentity "fridge_backend/internal/feature/expiry/domain/entity"
	inventoryentity "fridge_backend/internal/feature/inventory/domain/entity"
	recipesentity "fridge_backend/internal/feature/recipes/domain/entity"
)

// ExpiryClassifier は確定アイテムごとの消費期限判定を返します。
type ExpiryClassifier interface {
	Classify(items []entity.FusedItem) (entries []expiryentity.Entry, alerts []string)
}

// InventoryAggregator は確定アイテムを在庫ストアへ反映し、集計結果を返します。
type InventoryAggregator interface {
	Aggregate(ctx context.Context, items []entity.FusedItem) (inventoryentity.Summary, inventoryentity.Changes, []string, error)
}

// RecipeSuggester は保有食材と期限情報からスコア付きレシピ候補を返します。
type RecipeSuggester interface {
	Suggest(ctx context.Context, items []entity.FusedItem, expiry []expiryentity.Entry, dietType string) ([]recipesentity.Recipe, error)
}

// RecipePanel はレシピ候補の再ランキング（エージェント間討論の代替）を行います。
type RecipePanel interface {
	Discuss(ctx context.Context, recipes []recipesentity.Recipe, items []entity.FusedItem) (*recipesentity.Discussion, []recipesentity.Recipe, error)
}

// VideoSearcher はクエリに対応する動画を検索します。
type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]recipesentity.Video, error)
}

// ExpiryStage は消費期限の分類と警告生成を行うステージです。
type ExpiryStage struct {
	classifier ExpiryClassifier
}

// NewExpiryStage はExpiryStageを生成します。
func NewExpiryStage(c ExpiryClassifier) *ExpiryStage {
	return &ExpiryStage{classifier: c}
}

// Name はステージ名を返します。
func (s *ExpiryStage) Name() string { return "expiry" }

// Run は確定アイテムの期限情報を設定します。アイテムが空なら空の結果になります。
func (s *ExpiryStage) Run(_ context.Context, st *entity.AnalysisState) error {
	entries, alerts := s.classifier.Classify(st.ConfirmedItems)
	st.ExpiryData = entries
	st.ExpiryAlerts = alerts
	st.CurrentStage = "expiry_completed"
	return nil
}

// InventoryStage は在庫ストアの更新と集計を行うステージです。
type InventoryStage struct {
	aggregator InventoryAggregator
}

// NewInventoryStage はInventoryStageを生成します。
func NewInventoryStage(a InventoryAggregator) *InventoryStage {
	return &InventoryStage{aggregator: a}
}

// Name はステージ名を返します。
func (s *InventoryStage) Name() string { return "inventory" }

// Run は在庫を更新します。ストア障害時は出力を空へ戻してエラーを返します
// （Runnerが記録し、後続ステージは続行します）。
func (s *InventoryStage) Run(ctx context.Context, st *entity.AnalysisState) error {
	summary, changes, warnings, err := s.aggregator.Aggregate(ctx, st.ConfirmedItems)
	if err != nil {
		st.InventoryStatus = inventoryentity.Summary{}
		st.InventoryChanges = inventoryentity.Changes{}
		st.InventoryWarnings = nil
		return fmt.Errorf("inventory aggregation failed: %w", err)
	}
	st.InventoryStatus = summary
	st.InventoryChanges = changes
	st.InventoryWarnings = warnings
	st.CurrentStage = "inventory_completed"
	return nil
}

// RecipeStage はレシピ候補の生成とスコアリングを行うステージです。
type RecipeStage struct {
	suggester RecipeSuggester
}

// NewRecipeStage はRecipeStageを生成します。
func NewRecipeStage(r RecipeSuggester) *RecipeStage {
	return &RecipeStage{suggester: r}
}

// Name はステージ名を返します。
func (s *RecipeStage) Name() string { return "recipes" }

// Run はレシピ候補を設定します。生成失敗時は空へ戻してエラーを返します。
func (s *RecipeStage) Run(ctx context.Context, st *entity.AnalysisState) error {
	recipes, err := s.suggester.Suggest(ctx, st.ConfirmedItems, st.ExpiryData, st.DietType)
	if err != nil {
		st.RecipeSuggestions = nil
		return fmt.Errorf("recipe suggestion failed: %w", err)
	}
	st.RecipeSuggestions = recipes
	st.CurrentStage = "recipes_completed"
	return nil
}

// DiscussionStage はレシピ候補を外部パネルで再ランキングするステージです。
type DiscussionStage struct {
	panel RecipePanel
}

// NewDiscussionStage はDiscussionStageを生成します。
func NewDiscussionStage(p RecipePanel) *DiscussionStage {
	return &DiscussionStage{panel: p}
}

// Name はステージ名を返します。
func (s *DiscussionStage) Name() string { return "discussion" }

// Run は再ランキング結果を設定します。失敗時はスコア順のまま
// Discussionを空にしてエラーを返します。
func (s *DiscussionStage) Run(ctx context.Context, st *entity.AnalysisState) error {
	if len(st.RecipeSuggestions) == 0 {
		st.CurrentStage = "discussion_completed"
		return nil
	}
	discussion, reranked, err := s.panel.Discuss(ctx, st.RecipeSuggestions, st.ConfirmedItems)
	if err != nil {
		st.Discussion = nil
		return fmt.Errorf("recipe panel failed: %w", err)
	}
	st.Discussion = discussion
	if len(reranked) > 0 {
		st.RecipeSuggestions = reranked
	}
	st.CurrentStage = "discussion_completed"
	return nil
}

// VideoStage はレシピごとの動画検索を行うステージです。
type VideoStage struct {
	searcher       VideoSearcher
	maxRecipes     int
	videosPerQuery int
}

// NewVideoStage はVideoStageを生成します。
func NewVideoStage(v VideoSearcher) *VideoStage {
	return &VideoStage{searcher: v, maxRecipes: 3, videosPerQuery: 2}
}

// Name はステージ名を返します。
func (s *VideoStage) Name() string { return "videos" }

// Run は上位レシピの動画を検索します。全件失敗した場合のみエラーを返します。
func (s *VideoStage) Run(ctx context.Context, st *entity.AnalysisState) error {
	if len(st.RecipeSuggestions) == 0 {
		st.CurrentStage = "videos_completed"
		return nil
	}

	limit := min(s.maxRecipes, len(st.RecipeSuggestions))
	videos := map[string][]recipesentity.Video{}
	var lastErr error
	for _, recipe := range st.RecipeSuggestions[:limit] {
		found, err := s.searcher.Search(ctx, recipe.Title+" recipe", s.videosPerQuery)
		if err != nil {
			lastErr = err
			continue
		}
		videos[recipe.Title] = found
	}

	if len(videos) == 0 && lastErr != nil {
		st.Videos = map[string][]recipesentity.Video{}
		return fmt.Errorf("video search failed: %w", lastErr)
	}
	st.Videos = videos
	st.CurrentStage = "videos_completed"
	return nil
}
