// Package gemini はGoogle Gemini APIを使用した食材分類クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"google.golang.org/genai"

	"fridge_backend/internal/feature/analysis/domain/entity"
	"fridge_backend/internal/feature/analysis/usecase"
	"fridge_backend/internal/shared/ratelimiter"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// DefaultConfidenceFloor はプロンプトで指示する信頼度の下限です。
	DefaultConfidenceFloor = 0.3
)

// Config は分類戦略の設定です。プロンプト変種や信頼度下限を切り替えられます。
type Config struct {
	Model           string
	ConfidenceFloor float64
}

// LoadConfig は環境変数からGemini分類器の設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		Model:           os.Getenv("GEMINI_MODEL"),
		ConfidenceFloor: DefaultConfidenceFloor,
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if v, err := strconv.ParseFloat(os.Getenv("GEMINI_CONFIDENCE_FLOOR"), 64); err == nil && v > 0 && v <= 1 {
		cfg.ConfidenceFloor = v
	}
	return cfg
}

// Classifier はGemini APIを使用して画像内の食材を分類します。
type Classifier struct {
	client  *genai.Client
	cfg     Config
	limiter ratelimiter.RateLimiterInterface
}

// ClassifierがusecaseのClassifierを実装していることをコンパイル時に検証します。
var _ usecase.Classifier = (*Classifier)(nil)

// NewClassifier はADCを使用してClassifierの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewClassifier(ctx context.Context, cfg Config) (*Classifier, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.ConfidenceFloor <= 0 {
		cfg.ConfidenceFloor = DefaultConfidenceFloor
	}
	return &Classifier{client: client, cfg: cfg}, nil
}

// WithRateLimiter はAPIクォータ保護用のレートリミッターを設定します。
func (c *Classifier) WithRateLimiter(l ratelimiter.RateLimiterInterface) *Classifier {
	c.limiter = l
	return c
}

// Classify は画像から意味属性付きの検出候補を返します。
// hintsは任意で、空でも動作します。応答が構造化データとして解釈できない場合は
// ErrUnparsableを返します（候補の推測はしません）。
func (c *Classifier) Classify(ctx context.Context, imageData []byte, hints []entity.DetectionCandidate) ([]entity.DetectionCandidate, error) {
	if c.limiter != nil {
		c.limiter.WaitIfNeeded()
	}

	prompt := buildPrompt(hints, c.cfg.ConfidenceFloor)
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(imageData, "image/jpeg"),
		}, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	return ParseItems(resp.Text())
}
