// Package gemini はGoogle Gemini APIを使用したレシピ生成・討論クライアントを提供します。
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"fridge_backend/internal/feature/recipes/domain/entity"
	"fridge_backend/internal/feature/recipes/usecase"
)

// DefaultModel はレシピ生成に使うデフォルトモデルです。
const DefaultModel = "gemini-2.5-flash"

// ErrUnparsable はモデル応答からレシピリストを抽出できなかったことを示します。
var ErrUnparsable = errors.New("recipe response is not parsable")

// Config はレシピ生成クライアントの設定です。
type Config struct {
	Model string
}

// LoadConfig は環境変数からレシピ生成の設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{Model: os.Getenv("RECIPE_MODEL")}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg
}

// Generator はGemini APIでレシピ候補を生成します。
type Generator struct {
	client *genai.Client
	model  string
}

// GeneratorがusecaseのGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.Generator = (*Generator)(nil)

// NewGenerator はADCを使用してGeneratorの新しいインスタンスを生成します。
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}, nil
}

// recipesPayload はモデルに要求するJSONスキーマです。
type recipesPayload struct {
	Recipes []struct {
		Title              string   `json:"title"`
		Description        string   `json:"description"`
		Ingredients        []string `json:"ingredients"`
		MissingIngredients []string `json:"missing_ingredients"`
		CookingTime        string   `json:"cooking_time"`
		Difficulty         string   `json:"difficulty"`
		Calories           int      `json:"calories"`
	} `json:"recipes"`
}

// Generate は保有食材からレシピ候補を生成します。
func (g *Generator) Generate(ctx context.Context, ingredients, urgentItems []string, dietType string) ([]entity.Recipe, error) {
	prompt := buildRecipePrompt(ingredients, urgentItems, dietType)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	var payload recipesPayload
	text := resp.Text()
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		extracted, ok := extractJSONObject(text)
		if !ok {
			return nil, ErrUnparsable
		}
		if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
			return nil, ErrUnparsable
		}
	}

	recipes := make([]entity.Recipe, 0, len(payload.Recipes))
	for _, r := range payload.Recipes {
		if r.Title == "" {
			continue
		}
		recipes = append(recipes, entity.Recipe{
			Title:              r.Title,
			Description:        r.Description,
			Ingredients:        r.Ingredients,
			MissingIngredients: r.MissingIngredients,
			CookingTime:        r.CookingTime,
			Difficulty:         r.Difficulty,
			Calories:           r.Calories,
		})
	}
	return recipes, nil
}

func buildRecipePrompt(ingredients, urgentItems []string, dietType string) string {
	var b strings.Builder

	b.WriteString("You are a professional chef. The refrigerator contains:\n")
	fmt.Fprintf(&b, "%s\n", strings.Join(ingredients, ", "))

	if len(urgentItems) > 0 {
		fmt.Fprintf(&b, "\nIngredients close to expiry (use them first): %s\n", strings.Join(urgentItems, ", "))
	}

	switch dietType {
	case "diet":
		b.WriteString("\nFavor low-calorie dishes: salads, grilled and steamed food; avoid oily or sugary dishes.\n")
	case "health":
		b.WriteString("\nFavor nutritionally balanced dishes with fresh vegetables, whole grains and protein.\n")
	case "patient":
		b.WriteString("\nFavor soft, easily digestible dishes such as porridge and soup; avoid spicy, salty or oily food.\n")
	}

	b.WriteString(`
Suggest 20 different realistic dishes that maximize the use of these ingredients.
Each recipe:
- title, description (one line)
- ingredients: list of ingredient names
- missing_ingredients: ingredients required but not available
- cooking_time (e.g. "20 min"), difficulty (easy/medium/hard), calories (number)

Return JSON only: {"recipes": [...]}`)

	return b.String()
}

// extractJSONObject は自由テキストから最初の '{' と最後の '}' に挟まれた部分を返します。
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
