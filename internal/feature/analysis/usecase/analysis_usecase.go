package usecase

import (
	"context"
	"log/slog"

	"fridge_backend/internal/feature/analysis/domain/entity"
)

// analysisUsecase は冷蔵庫画像解析の同期エントリーポイントです。
// HTTPなどのトランスポート層はこのユースケースの薄い呼び出し元に留めます。
type analysisUsecase struct {
	runner *Runner
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(runner *Runner) *analysisUsecase {
	return &analysisUsecase{runner: runner}
}

// Analyze は画像データに対してパイプライン全体を実行し、結果オブジェクトを返します。
// パイプライン内部の失敗はResult.Errorsに集約されるため、errorは返しません。
// 呼び出し元は部分的な結果の描画を前提としてください。
func (u *analysisUsecase) Analyze(ctx context.Context, imageData []byte, dietType string) *entity.Result {
	st := entity.NewAnalysisState("", imageData, dietType)
	final := u.runner.Run(ctx, st)

	result := final.Result()
	slog.Info("解析パイプライン完了",
		"current_stage", result.CurrentStage,
		"success", result.Success,
		"confirmed", len(result.ConfirmedItems),
		"unidentified", len(result.UnidentifiedItems),
		"errors", len(result.Errors),
		"seconds", result.ProcessingTimeSeconds,
	)
	return result
}

// AnalyzeFile は画像ファイルパスに対してパイプラインを実行します。
// バッチ処理やローカル検証用の入り口です。
func (u *analysisUsecase) AnalyzeFile(ctx context.Context, imagePath, dietType string) *entity.Result {
	st := entity.NewAnalysisState(imagePath, nil, dietType)
	return u.runner.Run(ctx, st).Result()
}
