package fusion

import (
	"strings"

	"fridge_backend/internal/feature/analysis/domain/entity"
)

const (
	// DefaultConfidenceThreshold は確定/未確認を分ける信頼度しきい値のデフォルトです。
	DefaultConfidenceThreshold = 0.3
	// DefaultIoUThreshold は検出器ボックスとのマッチを受理する最小IoUです。
	DefaultIoUThreshold = 0.1
)

// DefaultNonFoodKeywords は在庫に含めない容器・家電・設備の語彙です。
// 名前にこれらを含むアイテムは信頼度に関わらず除外されます。
var DefaultNonFoodKeywords = []string{
	"refrigerator", "fridge", "freezer", "shelf", "drawer", "tray", "basket",
	"container", "bowl", "plate", "cup", "box", "bag", "wrap", "foil",
	"appliance", "compartment", "door", "wall", "floor", "ceiling",
}

// Engine は検出融合エンジンです。入力がどちらも空でも失敗しません。
type Engine struct {
	confidenceThreshold float64
	iouThreshold        float64
	nonFoodKeywords     []string
}

// NewEngine はEngineを生成します。しきい値が0以下、またはキーワードが空の場合は
// デフォルト値を使用します。
func NewEngine(confidenceThreshold, iouThreshold float64, nonFoodKeywords []string) *Engine {
	if confidenceThreshold <= 0 {
		confidenceThreshold = DefaultConfidenceThreshold
	}
	if iouThreshold <= 0 {
		iouThreshold = DefaultIoUThreshold
	}
	if len(nonFoodKeywords) == 0 {
		nonFoodKeywords = DefaultNonFoodKeywords
	}
	keywords := make([]string, len(nonFoodKeywords))
	for i, kw := range nonFoodKeywords {
		keywords[i] = strings.ToLower(kw)
	}
	return &Engine{
		confidenceThreshold: confidenceThreshold,
		iouThreshold:        iouThreshold,
		nonFoodKeywords:     keywords,
	}
}

// Fuse は検出器と分類器の候補リストを統合し、信頼度しきい値で
// confirmed / unidentified の2つのリストに分割して返します。
//
// 分類器アイテムは出現順に、未使用の検出器ボックスのうちIoUが最大かつ
// しきい値を超えるものとマッチします。各検出器ボックスは最大1回だけ消費されます。
// マッチしたアイテムは検出器のボックスを採用し、分類器の意味属性を保持します。
// マッチしなかった検出器ボックスは検出器ラベルのままのフォールバックアイテムになります。
func (e *Engine) Fuse(detectorBoxes, classifierItems []entity.DetectionCandidate) (confirmed, unidentified []entity.FusedItem) {
	used := make(map[int]bool, len(detectorBoxes))
	items := make([]entity.FusedItem, 0, len(classifierItems)+len(detectorBoxes))

	for _, ci := range classifierItems {
		item := fromClassifier(ci)
		if ci.Box.Valid() {
			if idx, ok := e.bestMatch(ci.Box, detectorBoxes, used); ok {
				item.Box = detectorBoxes[idx].Box.Clone()
				item.MatchedWithDetector = true
				used[idx] = true
			}
		}
		items = append(items, item)
	}

	// 分類器が取りこぼした物体を検出器の結果から回収する
	for idx, db := range detectorBoxes {
		if used[idx] {
			continue
		}
		items = append(items, fromDetector(db))
	}

	confirmed = []entity.FusedItem{}
	unidentified = []entity.FusedItem{}
	for _, item := range items {
		if e.isNonFood(item.Name) {
			continue
		}
		if item.Confidence >= e.confidenceThreshold {
			confirmed = append(confirmed, item)
		} else {
			unidentified = append(unidentified, item)
		}
	}
	return confirmed, unidentified
}

// bestMatch は未使用の検出器ボックスのうちIoUがしきい値を超えて最大のものを返します。
func (e *Engine) bestMatch(box *entity.BoundingBox, detectorBoxes []entity.DetectionCandidate, used map[int]bool) (int, bool) {
	bestIoU := e.iouThreshold
	bestIdx := -1
	for idx, d := range detectorBoxes {
		if used[idx] || !d.Box.Valid() {
			continue
		}
		if iou := IoU(box, d.Box); iou > bestIoU {
			bestIoU = iou
			bestIdx = idx
		}
	}
	return bestIdx, bestIdx >= 0
}

func (e *Engine) isNonFood(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range e.nonFoodKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// fromClassifier は分類器候補を、自身のボックス（無効な場合はnil）を持つ
// FusedItemへ変換します。
func fromClassifier(c entity.DetectionCandidate) entity.FusedItem {
	var box *entity.BoundingBox
	if c.Box.Valid() {
		box = c.Box.Clone()
	}
	quantity := c.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	category := c.Category
	if category == "" {
		category = "other"
	}
	unit := c.Unit
	if unit == "" {
		unit = "piece"
	}
	return entity.FusedItem{
		Name:       c.Label,
		Category:   category,
		Quantity:   quantity,
		Unit:       unit,
		Freshness:  c.Freshness,
		Packaging:  c.Packaging,
		Confidence: c.Confidence,
		Box:        box,
		ExpiryText: c.ExpiryText,
	}
}

// fromDetector はマッチしなかった検出器ボックスをフォールバックアイテムへ変換します。
func fromDetector(d entity.DetectionCandidate) entity.FusedItem {
	return entity.FusedItem{
		Name:                d.Label,
		Category:            "other",
		Quantity:            1,
		Unit:                "piece",
		Freshness:           "normal",
		Packaging:           "none",
		Confidence:          d.Confidence,
		Box:                 d.Box.Clone(),
		MatchedWithDetector: true,
	}
}
