package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fridge_backend/internal/feature/analysis/domain/entity"
)

// Detector は高速物体検出器のリポジトリインターフェースです。
// 出力は0-1000正規化座標のボックス付き候補です。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Detector interface {
	Detect(ctx context.Context, imageData []byte) ([]entity.DetectionCandidate, error)
}

// Classifier は視覚言語分類器のリポジトリインターフェースです。
// hintsは任意の検出器ヒントで、空を許容しなければなりません。
type Classifier interface {
	Classify(ctx context.Context, imageData []byte, hints []entity.DetectionCandidate) ([]entity.DetectionCandidate, error)
}

// DetectionStage は検出器と分類器を呼び出すステージです。
//
// 両者はデータ独立（どちらも生画像のみを入力とする）のため既定では並行に
// 呼び出し、両方の完了を待ってから次のステージへ進みます。アダプターの失敗や
// タイムアウトはそのアダプターの「結果なし」として扱い、エラー文字列を記録した
// 上でステージ自体は成功します（融合エンジンが空入力に耐えるため）。
type DetectionStage struct {
	detector          Detector
	classifier        Classifier
	detectorTimeout   time.Duration
	classifierTimeout time.Duration
	useHints          bool
}

// NewDetectionStage はDetectionStageを生成します。
func NewDetectionStage(d Detector, c Classifier, cfg Config) *DetectionStage {
	return &DetectionStage{
		detector:          d,
		classifier:        c,
		detectorTimeout:   cfg.DetectorTimeout,
		classifierTimeout: cfg.ClassifierTimeout,
		useHints:          cfg.UseDetectorHints,
	}
}

// Name はステージ名を返します。
func (s *DetectionStage) Name() string { return "detection" }

// Run は両アダプターを呼び出し、DetectorBoxesとClassifierItemsを設定します。
func (s *DetectionStage) Run(ctx context.Context, st *entity.AnalysisState) error {
	var (
		boxes, items             []entity.DetectionCandidate
		detectorErr, classifyErr error
	)

	if s.useHints {
		// 直列モード: 検出器の結果をヒントとして分類器に渡す
		boxes, detectorErr = s.detect(ctx, st.ImageData)
		items, classifyErr = s.classify(ctx, st.ImageData, boxes)
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			boxes, detectorErr = s.detect(gctx, st.ImageData)
			return nil
		})
		g.Go(func() error {
			items, classifyErr = s.classify(gctx, st.ImageData, nil)
			return nil
		})
		// クロージャは常にnilを返すためWaitのエラーは発生しない
		_ = g.Wait()
	}

	// アダプター単体の失敗は局所的に回復する。該当側を空として継続し、
	// 記録のためにエラー文字列だけ残す。
	if detectorErr != nil {
		st.AddError(fmt.Sprintf("detector unavailable: %v", detectorErr))
		slog.Warn("検出器が失敗しました。空の結果で続行します", "error", detectorErr)
		boxes = nil
	}
	if classifyErr != nil {
		st.AddError(fmt.Sprintf("classifier unavailable: %v", classifyErr))
		slog.Warn("分類器が失敗しました。空の結果で続行します", "error", classifyErr)
		items = nil
	}

	st.DetectorBoxes = boxes
	st.ClassifierItems = items
	st.CurrentStage = "detection_completed"
	slog.Info("検出ステージ完了", "detector_boxes", len(boxes), "classifier_items", len(items))
	return nil
}

func (s *DetectionStage) detect(ctx context.Context, imageData []byte) ([]entity.DetectionCandidate, error) {
	if s.detectorTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.detectorTimeout)
		defer cancel()
	}
	return s.detector.Detect(ctx, imageData)
}

func (s *DetectionStage) classify(ctx context.Context, imageData []byte, hints []entity.DetectionCandidate) ([]entity.DetectionCandidate, error) {
	if s.classifierTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.classifierTimeout)
		defer cancel()
	}
	return s.classifier.Classify(ctx, imageData, hints)
}
