// Package usecase はrecipesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	analysisentity "fridge_backend/internal/feature/analysis/domain/entity"
	expiryentity "fridge_backend/internal/feature/expiry/domain/entity"
	"fridge_backend/internal/feature/recipes/domain/entity"
)

// maxSuggestions はスコアリング後に残すレシピ候補数の上限です。
const maxSuggestions = 20

// Generator は保有食材からレシピ候補を生成する外部コラボレーターです。
// 生成内容のプロンプトやヒューリスティクスは実装側に閉じます。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Generator interface {
	Generate(ctx context.Context, ingredients, urgentItems []string, dietType string) ([]entity.Recipe, error)
}

// suggester はレシピ候補の生成とスコアリングを提供します。
type suggester struct {
	generator Generator
}

// NewSuggester はsuggesterの新しいインスタンスを生成します。
func NewSuggester(g Generator) *suggester {
	return &suggester{generator: g}
}

// Suggest は確定アイテムと期限情報からスコア付きレシピ候補を返します。
// 期限の近い食材を使うレシピを優先し、次に材料の一致率で降順に並べます。
// 食材が1つもない場合は生成を呼ばずに空を返します。
func (s *suggester) Suggest(ctx context.Context, items []analysisentity.FusedItem, expiry []expiryentity.Entry, dietType string) ([]entity.Recipe, error) {
	if len(items) == 0 {
		return []entity.Recipe{}, nil
	}

	ingredients := make([]string, 0, len(items))
	for _, item := range items {
		if item.Name != "" {
			ingredients = append(ingredients, item.Name)
		}
	}

	var urgent []string
	for _, e := range expiry {
		if e.Urgency == expiryentity.UrgencyImmediate || e.Urgency == expiryentity.UrgencyWithin3 {
			urgent = append(urgent, e.Item)
		}
	}

	recipes, err := s.generator.Generate(ctx, ingredients, urgent, dietType)
	if err != nil {
		return nil, fmt.Errorf("recipe generation failed: %w", err)
	}

	for i := range recipes {
		recipes[i].MatchRate = MatchRate(recipes[i].Ingredients, ingredients)
		recipes[i].UsesUrgent = usesAny(recipes[i].Ingredients, urgent)
	}

	sort.SliceStable(recipes, func(i, j int) bool {
		if recipes[i].UsesUrgent != recipes[j].UsesUrgent {
			return recipes[i].UsesUrgent
		}
		return recipes[i].MatchRate > recipes[j].MatchRate
	})

	if len(recipes) > maxSuggestions {
		recipes = recipes[:maxSuggestions]
	}
	return recipes, nil
}

// MatchRate はレシピ材料のうち保有食材で賄える割合を返します。
// 「green onion」と「onion」のような表記ゆれを拾うため部分一致（双方向）を許容します。
func MatchRate(recipeIngredients, available []string) float64 {
	if len(recipeIngredients) == 0 {
		return 0
	}

	matched := 0
	for _, ingredient := range recipeIngredients {
		for _, have := range available {
			if ingredientMatches(ingredient, have) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(recipeIngredients))
}

func usesAny(recipeIngredients, urgent []string) bool {
	for _, ingredient := range recipeIngredients {
		for _, u := range urgent {
			if ingredientMatches(ingredient, u) {
				return true
			}
		}
	}
	return false
}

func ingredientMatches(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
