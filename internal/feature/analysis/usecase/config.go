package usecase

import (
	"os"
	"strconv"
	"time"

	"fridge_backend/internal/feature/analysis/fusion"
)

// Config はパイプラインの調整パラメータです。
type Config struct {
	// ConfidenceThreshold は確定/未確認を分ける信頼度しきい値です。
	// 過去の実装では0.3/0.5/0.7が混在していたため、単一の設定値に集約しています。
	ConfidenceThreshold float64
	// IoUThreshold は検出器ボックスとのマッチを受理する最小IoUです。
	IoUThreshold float64

	// DetectorTimeout / ClassifierTimeout はアダプター呼び出しごとのタイムアウトです。
	// 超過した呼び出しは「結果なし」として扱われ、パイプラインは続行します。
	DetectorTimeout   time.Duration
	ClassifierTimeout time.Duration
	// PipelineTimeout はパイプライン全体のデッドラインです。
	PipelineTimeout time.Duration

	// UseDetectorHints をtrueにすると、2つのアダプターを並行ではなく直列に呼び出し、
	// 検出器の結果をヒントとして分類器に渡します。
	UseDetectorHints bool
}

// LoadConfig は環境変数からパイプライン設定を読み込みます。未設定の値はデフォルトになります。
func LoadConfig() Config {
	cfg := Config{
		ConfidenceThreshold: fusion.DefaultConfidenceThreshold,
		IoUThreshold:        fusion.DefaultIoUThreshold,
		DetectorTimeout:     15 * time.Second,
		ClassifierTimeout:   60 * time.Second,
		PipelineTimeout:     120 * time.Second,
	}
	if v, err := strconv.ParseFloat(os.Getenv("FUSION_CONFIDENCE_THRESHOLD"), 64); err == nil && v > 0 && v <= 1 {
		cfg.ConfidenceThreshold = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("FUSION_IOU_THRESHOLD"), 64); err == nil && v > 0 && v <= 1 {
		cfg.IoUThreshold = v
	}
	if v, err := time.ParseDuration(os.Getenv("DETECTOR_TIMEOUT")); err == nil && v > 0 {
		cfg.DetectorTimeout = v
	}
	if v, err := time.ParseDuration(os.Getenv("CLASSIFIER_TIMEOUT")); err == nil && v > 0 {
		cfg.ClassifierTimeout = v
	}
	if v, err := time.ParseDuration(os.Getenv("PIPELINE_TIMEOUT")); err == nil && v > 0 {
		cfg.PipelineTimeout = v
	}
	cfg.UseDetectorHints = os.Getenv("CLASSIFIER_USE_DETECTOR_HINTS") == "true"
	return cfg
}
