package entity

// FusedItem は検出器の幾何情報と分類器の意味情報を統合した食材レコードです。
// 融合ステージ完了後は不変のスナップショットとして下流ステージに渡されます。
type FusedItem struct {
	Name       string
	Category   string
	Quantity   int
	Unit       string
	Freshness  string
	Packaging  string
	Confidence float64

	// Box はいずれかのソースから有効なボックスが得られた場合のみ非nilです。
	// nilは「空間アノテーションなし」を意味し、エラーではありません。
	Box *BoundingBox

	// ExpiryText は画像から読み取れた賞味期限テキストです（なければ空）。
	ExpiryText string

	// MatchedWithDetector は検出器ボックスが採用されたことを示します。
	// 分類器アイテムのボックスが幾何マッチで置換された場合、および
	// 検出器のみが捉えたフォールバックアイテムの場合にtrueになります。
	MatchedWithDetector bool
}
