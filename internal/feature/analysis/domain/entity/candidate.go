// Package entity はanalysisフィーチャーのドメインモデルを定義します。
package entity

// Source は検出候補の生成元を表します。
type Source string

const (
	// SourceDetector は高速物体検出器（幾何精度が高い）由来の候補を示します。
	SourceDetector Source = "detector"
	// SourceClassifier は視覚言語分類器（意味情報が豊富）由来の候補を示します。
	SourceClassifier Source = "classifier"
)

// BoundingBox は0-1000正規化座標系の矩形です。
// 画像の幅・高さをそれぞれ1000とみなした相対座標で表現します。
type BoundingBox struct {
	YMin int
	XMin int
	YMax int
	XMax int
}

// Valid は各座標が0-1000の範囲内で、かつ YMin < YMax, XMin < XMax を満たすか検証します。
// nilレシーバはボックスなしとして扱い、falseを返します。
func (b *BoundingBox) Valid() bool {
	if b == nil {
		return false
	}
	for _, v := range [4]int{b.YMin, b.XMin, b.YMax, b.XMax} {
		if v < 0 || v > 1000 {
			return false
		}
	}
	return b.YMin < b.YMax && b.XMin < b.XMax
}

// Clone はボックスのコピーを返します。nilはnilのまま返します。
func (b *BoundingBox) Clone() *BoundingBox {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// DetectionCandidate は単一の検出ソースから得られた1つの物体観測です。
// Boxがnilの場合は空間情報なしを意味します（ゼロサイズではない）。
type DetectionCandidate struct {
	Label      string
	Box        *BoundingBox
	Confidence float64
	Source     Source

	// 以下はclassifierのみが設定するセマンティック属性です。
	Category   string
	Quantity   int
	Unit       string
	Freshness  string
	Packaging  string
	ExpiryText string
}
