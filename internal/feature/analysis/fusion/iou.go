// Package fusion は2つの検出ソースの結果を1つの食材リストに統合します。
//
// 高速物体検出器（正確なボックス、粗いラベル）と視覚言語分類器（豊富な意味情報、
// 不正確なボックス）の出力を、IoUベースの貪欲マッチングで突き合わせます。
package fusion

import "fridge_backend/internal/feature/analysis/domain/entity"

// IoU は0-1000座標系の2つのボックスのIntersection over Unionを返します。
// 重なりがない場合は0、同一ボックスでは1になります。対称です。
// いずれかのボックスが無効な場合は0を返します。
func IoU(a, b *entity.BoundingBox) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}

	yMin := max(a.YMin, b.YMin)
	xMin := max(a.XMin, b.XMin)
	yMax := min(a.YMax, b.YMax)
	xMax := min(a.XMax, b.XMax)

	intersection := max(0, yMax-yMin) * max(0, xMax-xMin)
	if intersection == 0 {
		return 0
	}

	areaA := (a.YMax - a.YMin) * (a.XMax - a.XMin)
	areaB := (b.YMax - b.YMin) * (b.XMax - b.XMin)
	union := areaA + areaB - intersection
	if union <= 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
