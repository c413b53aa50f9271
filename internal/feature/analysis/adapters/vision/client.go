// Package vision はGoogle Cloud Vision APIを使用した物体検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"
	"math"
	"sync"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"fridge_backend/internal/feature/analysis/domain/entity"
	"fridge_backend/internal/feature/analysis/usecase"
)

// maxResults は1画像あたりの最大検出数です。冷蔵庫写真は物体が密集するため多めに取ります。
const maxResults = 50

// ObjectDetector はCloud VisionのObject Localizationで物体を検出します。
//
// Visionクライアントは生成コストが高いため、最初のDetect呼び出しで一度だけ
// 遅延初期化されます。初期化後の推論呼び出しは追加のロックなしで並行実行できます。
type ObjectDetector struct {
	initOnce sync.Once
	initErr  error
	client   *gvision.ImageAnnotatorClient
}

// ObjectDetectorがusecaseのDetectorを実装していることをコンパイル時に検証します。
var _ usecase.Detector = (*ObjectDetector)(nil)

// NewObjectDetector はObjectDetectorを生成します。APIクライアントはまだ接続しません。
func NewObjectDetector() *ObjectDetector {
	return &ObjectDetector{}
}

// ensureClient はADCを使用してVision APIクライアントを一度だけ生成します。
func (d *ObjectDetector) ensureClient(ctx context.Context) error {
	d.initOnce.Do(func() {
		client, err := gvision.NewImageAnnotatorClient(ctx)
		if err != nil {
			d.initErr = fmt.Errorf("failed to create vision client: %w", err)
			return
		}
		d.client = client
	})
	return d.initErr
}

// Close はVision APIクライアントを解放します。未初期化の場合は何もしません。
func (d *ObjectDetector) Close() error {
	if d.client == nil {
		return nil
	}
	return d.client.Close()
}

// Detect は画像バイト列から物体を検出し、0-1000正規化座標の候補リストを返します。
// 無効なボックスしか得られなかった検出は除外されます。
func (d *ObjectDetector) Detect(ctx context.Context, imageData []byte) ([]entity.DetectionCandidate, error) {
	if err := d.ensureClient(ctx); err != nil {
		return nil, err
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_OBJECT_LOCALIZATION, MaxResults: maxResults},
				},
			},
		},
	}

	resp, err := d.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, nil
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	annotations := resp.Responses[0].LocalizedObjectAnnotations
	candidates := make([]entity.DetectionCandidate, 0, len(annotations))
	for _, ann := range annotations {
		box := boxFromPoly(ann.BoundingPoly)
		if !box.Valid() {
			continue
		}
		candidates = append(candidates, entity.DetectionCandidate{
			Label:      ann.Name,
			Box:        box,
			Confidence: float64(ann.Score),
			Source:     entity.SourceDetector,
		})
	}

	return candidates, nil
}

// boxFromPoly はVision APIのバウンディングポリゴンを0-1000スケールの矩形へ変換します。
// Object Localizationの頂点は0-1の正規化座標で返されます。
func boxFromPoly(poly *visionpb.BoundingPoly) *entity.BoundingBox {
	if poly == nil || len(poly.NormalizedVertices) == 0 {
		return nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range poly.NormalizedVertices {
		minX = math.Min(minX, float64(v.X))
		minY = math.Min(minY, float64(v.Y))
		maxX = math.Max(maxX, float64(v.X))
		maxY = math.Max(maxY, float64(v.Y))
	}

	return &entity.BoundingBox{
		YMin: int(math.Round(minY * 1000)),
		XMin: int(math.Round(minX * 1000)),
		YMax: int(math.Round(maxY * 1000)),
		XMax: int(math.Round(maxX * 1000)),
	}
}
