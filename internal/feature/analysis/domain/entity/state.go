package entity

import (
	"time"

	expiryentity "fridge_backend/internal/feature/expiry/domain/entity"
	inventoryentity "fridge_backend/internal/feature/inventory/domain/entity"
	recipesentity "fridge_backend/internal/feature/recipes/domain/entity"
)

// StageInitialized はパイプライン開始前のステージマーカーです。
const StageInitialized = "initialized"

// AnalysisState はパイプライン全ステージ間で共有される可変レコードです。
// 各ステージは自分が書き込むフィールドのみを更新し、Errorsへは追記のみ行います。
type AnalysisState struct {
	// 入力
	ImagePath string
	ImageData []byte
	DietType  string

	// 検出ステージの出力
	DetectorBoxes   []DetectionCandidate
	ClassifierItems []DetectionCandidate

	// 融合ステージの出力。両者は信頼度しきい値による排他的な分割です。
	ConfirmedItems    []FusedItem
	UnidentifiedItems []FusedItem

	// 期限ステージの出力
	ExpiryData   []expiryentity.Entry
	ExpiryAlerts []string

	// 在庫ステージの出力
	InventoryStatus   inventoryentity.Summary
	InventoryChanges  inventoryentity.Changes
	InventoryWarnings []string

	// レシピ関連ステージの出力
	RecipeSuggestions []recipesentity.Recipe
	Discussion        *recipesentity.Discussion
	Videos            map[string][]recipesentity.Video

	// 最終推薦ステージの出力
	Recommendation *Recommendation

	// メタデータ。Errorsが空でなくてもvalidation以外のステージは続行します。
	Errors       []string
	CurrentStage string
	StartTime    time.Time
	EndTime      time.Time
}

// NewAnalysisState は初期状態を生成します。StartTimeは現在時刻に設定されます。
func NewAnalysisState(imagePath string, imageData []byte, dietType string) *AnalysisState {
	return &AnalysisState{
		ImagePath:    imagePath,
		ImageData:    imageData,
		DietType:     dietType,
		Videos:       map[string][]recipesentity.Video{},
		Errors:       []string{},
		CurrentStage: StageInitialized,
		StartTime:    time.Now(),
	}
}

// AddError はエラー文字列を追記します。パイプラインは中断しません。
func (s *AnalysisState) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// Recommendation は全ステージの結果を要約した最終推薦です。
type Recommendation struct {
	TotalItems      int
	UrgentCount     int
	Within3Count    int
	SafeCount       int
	PriorityActions []string
	TopRecipes      []recipesentity.Recipe
	ShoppingList    ShoppingList
	Tips            []string

	// EstimatedWeeklySaving は廃棄防止による推定節約額です。通貨は呼び出し側の解釈に委ねます。
	EstimatedWeeklySaving int

	GeneratedAt time.Time
}

// ShoppingList は次回購入の推奨リストです。
type ShoppingList struct {
	MissingItems   []string
	NextPurchaseBy string // YYYY-MM-DD
}

// Result はオーケストレーター境界で呼び出し元に返す結果オブジェクトです。
type Result struct {
	Success               bool
	ConfirmedItems        []FusedItem
	UnidentifiedItems     []FusedItem
	ExpiryData            []expiryentity.Entry
	ExpiryAlerts          []string
	InventoryStatus       inventoryentity.Summary
	InventoryChanges      inventoryentity.Changes
	InventoryWarnings     []string
	RecipeSuggestions     []recipesentity.Recipe
	Discussion            *recipesentity.Discussion
	Videos                map[string][]recipesentity.Video
	Recommendation        *Recommendation
	Errors                []string
	CurrentStage          string
	ProcessingTimeSeconds float64
}

// Result は最終状態を結果オブジェクトへ変換します。
// 成功フラグはエラーが1件もないこと、と定義されます。
func (s *AnalysisState) Result() *Result {
	end := s.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	return &Result{
		Success:               len(s.Errors) == 0,
		ConfirmedItems:        s.ConfirmedItems,
		UnidentifiedItems:     s.UnidentifiedItems,
		ExpiryData:            s.ExpiryData,
		ExpiryAlerts:          s.ExpiryAlerts,
		InventoryStatus:       s.InventoryStatus,
		InventoryChanges:      s.InventoryChanges,
		InventoryWarnings:     s.InventoryWarnings,
		RecipeSuggestions:     s.RecipeSuggestions,
		Discussion:            s.Discussion,
		Videos:                s.Videos,
		Recommendation:        s.Recommendation,
		Errors:                s.Errors,
		CurrentStage:          s.CurrentStage,
		ProcessingTimeSeconds: end.Sub(s.StartTime).Seconds(),
	}
}
