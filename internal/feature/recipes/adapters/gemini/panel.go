package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	analysisentity "fridge_backend/internal/feature/analysis/domain/entity"
	analysisusecase "fridge_backend/internal/feature/analysis/usecase"
	"fridge_backend/internal/feature/recipes/domain/entity"
)

// Panel はGemini APIでレシピ候補を講評・再ランキングします。
// 元の実装の「エージェント間討論」を1回のテンプレート化された呼び出しに集約したものです。
type Panel struct {
	client *genai.Client
	model  string
}

// PanelがRecipePanelを実装していることをコンパイル時に検証します。
var _ analysisusecase.RecipePanel = (*Panel)(nil)

// NewPanel はADCを使用してPanelの新しいインスタンスを生成します。
func NewPanel(ctx context.Context, cfg Config) (*Panel, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Panel{client: client, model: model}, nil
}

// panelPayload はモデルに要求するJSONスキーマです。
type panelPayload struct {
	Summary string   `json:"summary"`
	Ranking []string `json:"ranking"`
}

// Discuss はレシピ候補を再ランキングし、討論要約と新しい並び順を返します。
// 応答に含まれないタイトルは元の順序のまま末尾に残します。
func (p *Panel) Discuss(ctx context.Context, recipes []entity.Recipe, items []analysisentity.FusedItem) (*entity.Discussion, []entity.Recipe, error) {
	prompt := buildPanelPrompt(recipes, items)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	var payload panelPayload
	text := resp.Text()
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		extracted, ok := extractJSONObject(text)
		if !ok {
			return nil, nil, ErrUnparsable
		}
		if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
			return nil, nil, ErrUnparsable
		}
	}

	reranked := rerank(recipes, payload.Ranking)
	discussion := &entity.Discussion{
		Method:  "panel",
		Summary: payload.Summary,
		Ranking: payload.Ranking,
	}
	return discussion, reranked, nil
}

func buildPanelPrompt(recipes []entity.Recipe, items []analysisentity.FusedItem) string {
	var b strings.Builder

	b.WriteString("Three experts (a nutritionist, a chef, and a food-waste advisor) review recipe candidates.\n\n")
	b.WriteString("Available ingredients: ")
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n\nCandidates:\n")
	for _, r := range recipes {
		fmt.Fprintf(&b, "- %s: %s (match %.0f%%, urgent=%t)\n", r.Title, r.Description, r.MatchRate*100, r.UsesUrgent)
	}
	b.WriteString(`
Rank the candidates from best to worst considering nutrition, feasibility and waste reduction.
Return JSON only: {"summary": "one paragraph", "ranking": ["title", ...]}`)

	return b.String()
}

// rerank はrankingの順にレシピを並べ替え、言及されなかったものを元の順で末尾に付けます。
func rerank(recipes []entity.Recipe, ranking []string) []entity.Recipe {
	if len(ranking) == 0 {
		return recipes
	}

	byTitle := make(map[string]entity.Recipe, len(recipes))
	for _, r := range recipes {
		byTitle[r.Title] = r
	}

	out := make([]entity.Recipe, 0, len(recipes))
	seen := make(map[string]bool, len(ranking))
	for _, title := range ranking {
		if r, ok := byTitle[title]; ok && !seen[title] {
			out = append(out, r)
			seen[title] = true
		}
	}
	for _, r := range recipes {
		if !seen[r.Title] {
			out = append(out, r)
		}
	}
	return out
}
