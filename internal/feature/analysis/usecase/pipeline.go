// Package usecase はanalysisフィーチャーのビジネスロジック
// （パイプラインオーケストレーターと各ステージ）を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fridge_backend/internal/feature/analysis/domain/entity"
)

// Stage はパイプラインの1変換ステップです。共有状態を読み書きし、
// 自身が担当する出力フィールドと成功時のCurrentStageマーカーを設定します。
// エラーを返す場合は、自身の出力フィールドを空に戻してから返すこと。
type Stage interface {
	Name() string
	Run(ctx context.Context, st *entity.AnalysisState) error
}

// fatalError はパイプライン全体を停止させるステージエラーです。
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

// Fatal はエラーを致命的としてマークします。Runnerは該当ステージで連鎖を停止します。
// validationステージのみが使用します。
func Fatal(err error) error {
	return &fatalError{err: err}
}

// IsFatal はエラーが致命的（パイプライン停止）かどうかを判定します。
func IsFatal(err error) bool {
	var f *fatalError
	return errors.As(err, &f)
}

// Runner は固定順のステージ列を1つのAnalysisState上で実行します。
//
// エラー方針（ソフトフェイル）: ステージがエラーを返した場合、エラー文字列を
// 追記しCurrentStageを"<name>_error"にして次のステージへ進みます。下流ステージは
// 空の入力を許容するよう設計されているためです。致命的エラー（validation失敗）と
// 全体デッドライン超過のみが連鎖を停止します。
type Runner struct {
	stages  []Stage
	timeout time.Duration
}

// NewRunner はRunnerを生成します。timeoutが0以下の場合、全体デッドラインは設けません。
func NewRunner(timeout time.Duration, stages ...Stage) *Runner {
	return &Runner{stages: stages, timeout: timeout}
}

// Run は全ステージを順に実行し、最終状態を返します。
// EndTimeは復帰直前に一度だけ設定されます。
func (r *Runner) Run(ctx context.Context, st *entity.AnalysisState) *entity.AnalysisState {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	defer func() { st.EndTime = time.Now() }()

	for _, stage := range r.stages {
		// デッドラインはステージ境界でのみ確認する。各ステージ内部に
		// 無制限の処理はなく、協調的な停止で十分なため。
		if err := ctx.Err(); err != nil {
			st.AddError(fmt.Sprintf("pipeline deadline exceeded before %s stage: %v", stage.Name(), err))
			st.CurrentStage = "pipeline_timeout"
			return st
		}

		if err := stage.Run(ctx, st); err != nil {
			st.AddError(fmt.Sprintf("%s stage: %v", stage.Name(), err))
			if IsFatal(err) {
				st.CurrentStage = stage.Name() + "_failed"
				slog.Error("パイプラインを停止します", "stage", stage.Name(), "error", err)
				return st
			}
			st.CurrentStage = stage.Name() + "_error"
			slog.Warn("ステージが失敗しましたが続行します", "stage", stage.Name(), "error", err)
			continue
		}
	}

	return st
}
