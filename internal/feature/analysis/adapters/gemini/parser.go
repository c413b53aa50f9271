package gemini

import (
	"encoding/json"
	"errors"
	"strings"

	"fridge_backend/internal/feature/analysis/domain/entity"
)

// ErrUnparsable はモデル応答から構造化された候補リストを抽出できなかったことを示します。
// 呼び出し側はこれを空の分類器結果として扱います（推測による補完は行いません）。
var ErrUnparsable = errors.New("classifier response is not parsable")

// itemsPayload はモデルに要求するJSONスキーマのトップレベルです。
type itemsPayload struct {
	Items []rawItem `json:"items"`
}

// rawItem はモデル応答内の1アイテムです。bbox_2dは[ymin,xmin,ymax,xmax]の0-1000スケールです。
type rawItem struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Quantity   int     `json:"quantity"`
	Unit       string  `json:"unit"`
	Freshness  string  `json:"freshness"`
	Packaging  string  `json:"packaging"`
	Confidence float64 `json:"confidence"`
	Box        []int   `json:"bbox_2d"`
	ExpiryText string  `json:"expiry_date_text"`
}

// ParseItems はモデル応答テキストを検出候補リストへ変換します。
//
// まず応答全体を厳密にJSONとして解釈し、失敗した場合のみ自由テキストから
// 最初の '{' と最後の '}' で囲まれた部分を切り出して再試行します
// （Markdownコードフェンス付き応答への対処）。どちらも失敗した場合は
// ErrUnparsableを返し、候補の推測は行いません。
func ParseItems(text string) ([]entity.DetectionCandidate, error) {
	var payload itemsPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		extracted, ok := extractJSONObject(text)
		if !ok {
			return nil, ErrUnparsable
		}
		if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
			return nil, ErrUnparsable
		}
	}

	items := make([]entity.DetectionCandidate, 0, len(payload.Items))
	for _, raw := range payload.Items {
		if raw.Name == "" {
			continue
		}
		items = append(items, raw.toCandidate())
	}
	return items, nil
}

// extractJSONObject は自由テキストから最初の '{' と最後の '}' に挟まれた部分を返します。
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func (r rawItem) toCandidate() entity.DetectionCandidate {
	var box *entity.BoundingBox
	if len(r.Box) == 4 {
		b := &entity.BoundingBox{YMin: r.Box[0], XMin: r.Box[1], YMax: r.Box[2], XMax: r.Box[3]}
		if b.Valid() {
			box = b
		}
	}
	confidence := r.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return entity.DetectionCandidate{
		Label:      r.Name,
		Box:        box,
		Confidence: confidence,
		Source:     entity.SourceClassifier,
		Category:   r.Category,
		Quantity:   r.Quantity,
		Unit:       r.Unit,
		Freshness:  r.Freshness,
		Packaging:  r.Packaging,
		ExpiryText: r.ExpiryText,
	}
}
