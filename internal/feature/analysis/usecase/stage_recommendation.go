package usecase

import (
	"context"
	"fmt"
	"time"

	"fridge_backend/internal/feature/analysis/domain/entity"
	expiryentity "fridge_backend/internal/feature/expiry/domain/entity"
	recipesentity "fridge_backend/internal/feature/recipes/domain/entity"
)

// 廃棄1件あたりの推定損失額。週次・月次の節約額見積もりに使います。
const estimatedCostPerWastedItem = 5

// RecommendationStage は全ステージの結果を集約した最終推薦を生成するステージです。
// 外部依存を持たない純粋な集計で、空の入力でも動作します。
type RecommendationStage struct {
	now func() time.Time
}

// NewRecommendationStage はRecommendationStageを生成します。
func NewRecommendationStage() *RecommendationStage {
	return &RecommendationStage{now: time.Now}
}

// Name はステージ名を返します。
func (s *RecommendationStage) Name() string { return "recommendation" }

// Run は最終推薦を組み立ててRecommendationに設定します。
func (s *RecommendationStage) Run(_ context.Context, st *entity.AnalysisState) error {
	now := s.now()

	rec := &entity.Recommendation{
		TotalItems:  len(st.ConfirmedItems),
		GeneratedAt: now,
	}

	for _, e := range st.ExpiryData {
		switch e.Urgency {
		case expiryentity.UrgencyImmediate, expiryentity.UrgencyExpired:
			rec.UrgentCount++
		case expiryentity.UrgencyWithin3:
			rec.Within3Count++
		case expiryentity.UrgencySafe:
			rec.SafeCount++
		}
	}

	rec.PriorityActions = buildPriorityActions(st.ExpiryData, st.RecipeSuggestions)
	rec.Tips = buildTips(st.ExpiryData)

	if len(st.RecipeSuggestions) > 0 {
		limit := min(2, len(st.RecipeSuggestions))
		rec.TopRecipes = st.RecipeSuggestions[:limit]
	}

	rec.ShoppingList = entity.ShoppingList{
		MissingItems:   missingIngredients(rec.TopRecipes),
		NextPurchaseBy: now.AddDate(0, 0, 3).Format("2006-01-02"),
	}
	rec.EstimatedWeeklySaving = rec.UrgentCount * estimatedCostPerWastedItem

	st.Recommendation = rec
	st.CurrentStage = "recommendation_completed"
	return nil
}

// buildPriorityActions は期限の近い食材を、それを使うレシピと対応付けた
// 優先消費アクションのリストを生成します。
func buildPriorityActions(expiry []expiryentity.Entry, recipes []recipesentity.Recipe) []string {
	var actions []string
	for _, e := range expiry {
		switch e.Urgency {
		case expiryentity.UrgencyImmediate, expiryentity.UrgencyExpired:
			if recipe, ok := recipeUsing(recipes, e.Item); ok {
				actions = append(actions, fmt.Sprintf("use %s today in %q", e.Item, recipe.Title))
			} else {
				actions = append(actions, fmt.Sprintf("consume %s today", e.Item))
			}
		case expiryentity.UrgencyWithin3:
			if recipe, ok := recipeUsing(recipes, e.Item); ok {
				actions = append(actions, fmt.Sprintf("plan %q to use %s within 3 days", recipe.Title, e.Item))
			}
		}
	}
	return actions
}

func buildTips(expiry []expiryentity.Entry) []string {
	var tips []string
	for _, e := range expiry {
		switch {
		case e.Urgency == expiryentity.UrgencyImmediate:
			tips = append(tips, fmt.Sprintf("%s: cook today or move to the freezer", e.Item))
		case e.StorageTip != "":
			tips = append(tips, fmt.Sprintf("%s: %s", e.Item, e.StorageTip))
		}
	}
	return tips
}

func recipeUsing(recipes []recipesentity.Recipe, item string) (recipesentity.Recipe, bool) {
	for _, r := range recipes {
		for _, ingredient := range r.Ingredients {
			if ingredient == item {
				return r, true
			}
		}
	}
	return recipesentity.Recipe{}, false
}

func missingIngredients(recipes []recipesentity.Recipe) []string {
	seen := map[string]bool{}
	var missing []string
	for _, r := range recipes {
		for _, m := range r.MissingIngredients {
			if m == "" || seen[m] {
				continue
			}
			seen[m] = true
			missing = append(missing, m)
		}
	}
	return missing
}
