// Package api はHTTP境界で使うリクエスト/レスポンス型を定義します。
// ドメインエンティティをそのまま公開せず、JSONの形をここで固定します。
package api

// ErrorResponse は全エンドポイント共通のエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は処理結果のメッセージのみを返すレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse はログイン成功時のJWTトークンレスポンスです。
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest は /signup エンドポイントのリクエストボディです。
// Ginのbindingタグでバリデーションします（必須、メール形式、パスワード長）。
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	DietType string `json:"diet_type" binding:"omitempty,oneof=standard diet health patient"`
}

// LoginRequest は /login エンドポイントのリクエストボディです。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// BoundingBox は0-1000スケールの [ymin, xmin, ymax, xmax] 矩形です。
type BoundingBox struct {
	YMin int `json:"ymin"`
	XMin int `json:"xmin"`
	YMax int `json:"ymax"`
	XMax int `json:"xmax"`
}

// FusedItem は解析結果の1食材です。bounding_boxは位置情報が
// 得られなかった場合null になります。
type FusedItem struct {
	Name                string       `json:"name"`
	Category            string       `json:"category"`
	Quantity            int          `json:"quantity"`
	Unit                string       `json:"unit"`
	Freshness           string       `json:"freshness"`
	Packaging           string       `json:"packaging"`
	Confidence          float64      `json:"confidence"`
	BoundingBox         *BoundingBox `json:"bounding_box"`
	ExpiryText          string       `json:"expiry_date_text,omitempty"`
	MatchedWithDetector bool         `json:"matched_with_detector"`
}

// ExpiryEntry は1食材の消費期限判定です。
type ExpiryEntry struct {
	Item         string `json:"item"`
	Category     string `json:"category"`
	Quantity     int    `json:"quantity"`
	PurchaseDate string `json:"purchase_date"`
	ExpiryDate   string `json:"expiry_date"`
	DaysLeft     int    `json:"days_left"`
	Urgency      string `json:"urgency"`
	StorageTip   string `json:"storage_tip,omitempty"`
}

// InventorySummary は在庫全体の集計です。
type InventorySummary struct {
	TotalItems int `json:"total_items"`
	Fridge     int `json:"fridge"`
	Freezer    int `json:"freezer"`
	Pantry     int `json:"pantry"`
}

// InventoryChanges は今回の解析で生じた在庫変化です。
type InventoryChanges struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
}

// InventoryRecord は在庫一覧の1レコードです。
type InventoryRecord struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	Location  string `json:"location"`
	UpdatedAt string `json:"updated_at"`
}

// InventoryListResponse は GET /v1/fridge/inventory のレスポンスです。
type InventoryListResponse struct {
	Items   []InventoryRecord `json:"items"`
	Summary InventorySummary  `json:"summary"`
}

// Recipe は提案された1レシピです。
type Recipe struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Ingredients        []string `json:"ingredients"`
	MissingIngredients []string `json:"missing_ingredients"`
	CookingTime        string   `json:"cooking_time"`
	Difficulty         string   `json:"difficulty"`
	Calories           int      `json:"calories,omitempty"`
	UsesUrgent         bool     `json:"uses_urgent"`
	MatchRate          float64  `json:"match_rate"`
}

// Discussion はレシピ再ランキングの結果です。
type Discussion struct {
	Method  string   `json:"method"`
	Summary string   `json:"summary"`
	Ranking []string `json:"ranking"`
}

// Video はレシピに対応する動画検索結果です。
type Video struct {
	Title     string `json:"title"`
	VideoID   string `json:"video_id"`
	URL       string `json:"url"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ShoppingList は次回購入の推奨リストです。
type ShoppingList struct {
	MissingItems   []string `json:"missing_items"`
	NextPurchaseBy string   `json:"next_purchase_by"`
}

// Recommendation は解析全体を要約した最終推薦です。
type Recommendation struct {
	TotalItems            int          `json:"total_items"`
	UrgentCount           int          `json:"urgent_count"`
	Within3Count          int          `json:"within_3_days_count"`
	SafeCount             int          `json:"safe_count"`
	PriorityActions       []string     `json:"priority_actions"`
	TopRecipes            []Recipe     `json:"top_recipes"`
	ShoppingList          ShoppingList `json:"shopping_list"`
	Tips                  []string     `json:"tips"`
	EstimatedWeeklySaving int          `json:"estimated_weekly_saving"`
	GeneratedAt           string       `json:"generated_at"`
}

// AnalyzeResponse は POST /v1/fridge/analyze のレスポンスです。
// successはerrorsが空であることと同値です。部分的に失敗した解析でも
// 取得できた結果はすべて返します。
type AnalyzeResponse struct {
	Success               bool               `json:"success"`
	ConfirmedItems        []FusedItem        `json:"confirmed_items"`
	UnidentifiedItems     []FusedItem        `json:"unidentified_items"`
	ExpiryData            []ExpiryEntry      `json:"expiry_data"`
	ExpiryAlerts          []string           `json:"expiry_alerts"`
	InventoryStatus       InventorySummary   `json:"inventory_status"`
	InventoryChanges      InventoryChanges   `json:"inventory_changes"`
	InventoryWarnings     []string           `json:"inventory_warnings"`
	RecipeSuggestions     []Recipe           `json:"recipe_suggestions"`
	Discussion            *Discussion        `json:"discussion"`
	Videos                map[string][]Video `json:"videos"`
	Recommendation        *Recommendation    `json:"recommendation"`
	Errors                []string           `json:"errors"`
	CurrentStage          string             `json:"current_stage"`
	ProcessingTimeSeconds float64            `json:"processing_time_seconds"`
}
