// Package entity はrecipesフィーチャーのドメインモデルを定義します。
package entity

// Recipe は保有食材から提案された1つのレシピです。
type Recipe struct {
	Title              string
	Description        string
	Ingredients        []string
	MissingIngredients []string
	CookingTime        string
	Difficulty         string
	Calories           int

	// UsesUrgent は期限の近い食材を使うレシピであることを示します。
	UsesUrgent bool
	// MatchRate はレシピ材料のうち保有食材で賄える割合（0-1）です。
	MatchRate float64
}

// Discussion はレシピ候補の再ランキング結果です。
type Discussion struct {
	Method  string   // "panel"（外部生成）または "score_order"
	Summary string   // 選定理由の要約
	Ranking []string // 採用順のレシピタイトル
}

// Video はレシピに対応する動画検索結果です。
type Video struct {
	Title     string
	VideoID   string
	URL       string
	Channel   string
	Thumbnail string
}
