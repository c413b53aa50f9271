package gemini

import (
	"fmt"
	"strings"

	"fridge_backend/internal/feature/analysis/domain/entity"
)

// buildPrompt は食材分類プロンプトを組み立てます。
// hintsが与えられた場合、検出器の正確なボックス座標を優先利用するよう指示します。
func buildPrompt(hints []entity.DetectionCandidate, confidenceFloor float64) string {
	var b strings.Builder

	b.WriteString("You are an expert at identifying food items in refrigerator photos.\n\n")

	if len(hints) > 0 {
		b.WriteString("A fast object detector already found objects at these locations ")
		b.WriteString("(0-1000 scale, [ymin,xmin,ymax,xmax], coordinates are highly accurate):\n")
		for _, h := range hints {
			if !h.Box.Valid() {
				continue
			}
			fmt.Fprintf(&b, "  - [%d,%d,%d,%d] label=%s confidence=%.2f\n",
				h.Box.YMin, h.Box.XMin, h.Box.YMax, h.Box.XMax, h.Label, h.Confidence)
		}
		b.WriteString("Reuse these bbox_2d coordinates for the items at those locations, ")
		b.WriteString("and also report any food the detector missed with your own bbox_2d.\n\n")
	} else {
		b.WriteString("Analyze the image directly and estimate a bbox_2d for every food item.\n\n")
	}

	b.WriteString(`Rules:
- Report every visible food item, including small, stacked, or partially hidden ones.
- Use specific names ("spinach", not "vegetable").
- Never include non-food objects: refrigerator, shelf, drawer, tray, basket,
  container, bowl, plate, cup, box, bag, wrap, foil, appliances.
- bbox_2d is [ymin, xmin, ymax, xmax] on a 0-1000 scale, tightly enclosing the item.
  Omit bbox_2d if you cannot localize the item.

Each item:
- name: food name in English
- category: vegetable/meat/fish/dairy/fruit/other
- quantity: number
- unit: piece/g/ml/pack/bottle/bag
- freshness: good/normal/bad
- packaging: sealed/opened/frozen/none
- confidence: 0.0-1.0
- bbox_2d: [ymin, xmin, ymax, xmax]
- expiry_date_text: printed expiry date if readable, otherwise null

`)
	fmt.Fprintf(&b, "Set confidence to at least %.1f even for uncertain items and include them all.\n", confidenceFloor)
	b.WriteString(`Return JSON only: {"items": [...]}`)

	return b.String()
}
