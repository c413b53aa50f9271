package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	analysisentity "fridge_backend/internal/feature/analysis/domain/entity"
	expiryentity "fridge_backend/internal/feature/expiry/domain/entity"
	"fridge_backend/internal/feature/recipes/domain/entity"
)

// mockGenerator はGeneratorの関数フィールド差し替え式モックです。
type mockGenerator struct {
	generateFunc func(ctx context.Context, ingredients, urgentItems []string, dietType string) ([]entity.Recipe, error)
}

func (m *mockGenerator) Generate(ctx context.Context, ingredients, urgentItems []string, dietType string) ([]entity.Recipe, error) {
	return m.generateFunc(ctx, ingredients, urgentItems, dietType)
}

func items(names ...string) []analysisentity.FusedItem {
	out := make([]analysisentity.FusedItem, 0, len(names))
	for _, n := range names {
		out = append(out, analysisentity.FusedItem{Name: n})
	}
	return out
}

// TestSuggest_PassesIngredientsAndUrgent は生成器へ渡る食材・緊急品・食事タイプを検証します。
func TestSuggest_PassesIngredientsAndUrgent(t *testing.T) {
	t.Parallel()

	var gotIngredients, gotUrgent []string
	var gotDiet string
	s := NewSuggester(&mockGenerator{
		generateFunc: func(_ context.Context, ingredients, urgent []string, dietType string) ([]entity.Recipe, error) {
			gotIngredients, gotUrgent, gotDiet = ingredients, urgent, dietType
			return []entity.Recipe{}, nil
		},
	})

	expiry := []expiryentity.Entry{
		{Item: "milk", Urgency: expiryentity.UrgencyImmediate},
		{Item: "carrot", Urgency: expiryentity.UrgencyWithin3},
		{Item: "rice", Urgency: expiryentity.UrgencySafe},
	}

	_, err := s.Suggest(context.Background(), items("milk", "carrot", "rice"), expiry, "diet")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(gotIngredients) != 3 {
		t.Errorf("ingredients = %v", gotIngredients)
	}
	if len(gotUrgent) != 2 || gotUrgent[0] != "milk" || gotUrgent[1] != "carrot" {
		t.Errorf("urgent = %v, want [milk carrot]", gotUrgent)
	}
	if gotDiet != "diet" {
		t.Errorf("dietType = %q, want %q", gotDiet, "diet")
	}
}

// TestSuggest_UrgentFirstThenMatchRate は緊急食材使用を最優先し、
// 次に一致率で降順ソートされることを検証します。
func TestSuggest_UrgentFirstThenMatchRate(t *testing.T) {
	t.Parallel()

	s := NewSuggester(&mockGenerator{
		generateFunc: func(_ context.Context, _, _ []string, _ string) ([]entity.Recipe, error) {
			return []entity.Recipe{
				{Title: "rice bowl", Ingredients: []string{"rice", "egg"}},
				{Title: "milk pudding", Ingredients: []string{"milk", "sugar"}},
				{Title: "fried rice", Ingredients: []string{"rice", "egg", "carrot", "soy sauce"}},
			}, nil
		},
	})

	expiry := []expiryentity.Entry{{Item: "milk", Urgency: expiryentity.UrgencyImmediate}}

	got, err := s.Suggest(context.Background(), items("milk", "rice", "egg"), expiry, "standard")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("候補数 = %d, want 3", len(got))
	}
	// milk puddingのみ緊急食材を使うため先頭、残りは一致率降順
	if got[0].Title != "milk pudding" || !got[0].UsesUrgent {
		t.Errorf("got[0] = %+v, want milk pudding (urgent)", got[0])
	}
	if got[1].Title != "rice bowl" {
		t.Errorf("got[1] = %q, want rice bowl", got[1].Title)
	}
	if got[2].Title != "fried rice" {
		t.Errorf("got[2] = %q, want fried rice", got[2].Title)
	}
}

// TestSuggest_EmptyItemsSkipsGeneration は食材なしで生成器を呼ばないことを検証します。
func TestSuggest_EmptyItemsSkipsGeneration(t *testing.T) {
	t.Parallel()

	s := NewSuggester(&mockGenerator{
		generateFunc: func(_ context.Context, _, _ []string, _ string) ([]entity.Recipe, error) {
			t.Error("食材なしで生成器が呼ばれた")
			return nil, nil
		},
	})

	got, err := s.Suggest(context.Background(), nil, nil, "standard")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got = %v, want 空スライス", got)
	}
}

// TestSuggest_GeneratorFailure は生成失敗でエラーがラップされて返ることを検証します。
func TestSuggest_GeneratorFailure(t *testing.T) {
	t.Parallel()

	s := NewSuggester(&mockGenerator{
		generateFunc: func(_ context.Context, _, _ []string, _ string) ([]entity.Recipe, error) {
			return nil, errors.New("quota exceeded")
		},
	})

	_, err := s.Suggest(context.Background(), items("milk"), nil, "standard")
	if err == nil {
		t.Fatal("Suggest() error = nil, want error")
	}
}

// TestSuggest_LimitsSuggestions は候補数が上限で切り詰められることを検証します。
func TestSuggest_LimitsSuggestions(t *testing.T) {
	t.Parallel()

	s := NewSuggester(&mockGenerator{
		generateFunc: func(_ context.Context, _, _ []string, _ string) ([]entity.Recipe, error) {
			recipes := make([]entity.Recipe, maxSuggestions+5)
			for i := range recipes {
				recipes[i] = entity.Recipe{Title: fmt.Sprintf("recipe-%d", i)}
			}
			return recipes, nil
		},
	})

	got, err := s.Suggest(context.Background(), items("milk"), nil, "standard")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != maxSuggestions {
		t.Errorf("候補数 = %d, want %d", len(got), maxSuggestions)
	}
}

// TestMatchRate は一致率の計算と部分一致の扱いを検証します。
func TestMatchRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		recipe    []string
		available []string
		want      float64
	}{
		{"full match", []string{"milk", "egg"}, []string{"milk", "egg"}, 1.0},
		{"half match", []string{"milk", "soy sauce"}, []string{"milk"}, 0.5},
		{"no match", []string{"tofu"}, []string{"milk"}, 0},
		{"empty recipe", nil, []string{"milk"}, 0},
		{"partial name match", []string{"green onion"}, []string{"onion"}, 1.0},
		{"case insensitive", []string{"Milk"}, []string{"milk"}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MatchRate(tt.recipe, tt.available)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MatchRate(%v, %v) = %v, want %v", tt.recipe, tt.available, got, tt.want)
			}
		})
	}
}
