package usecase

import (
	"context"
	"log/slog"

	"fridge_backend/internal/feature/analysis/domain/entity"
	"fridge_backend/internal/feature/analysis/fusion"
)

// FusionStage は検出ステージの2つの候補リストを統合するステージです。
// 融合エンジンは失敗しないため、このステージは常に成功します。
type FusionStage struct {
	engine *fusion.Engine
}

// NewFusionStage はFusionStageを生成します。
func NewFusionStage(engine *fusion.Engine) *FusionStage {
	return &FusionStage{engine: engine}
}

// Name はステージ名を返します。
func (s *FusionStage) Name() string { return "fusion" }

// Run は候補を統合し、ConfirmedItems / UnidentifiedItemsを設定します。
func (s *FusionStage) Run(_ context.Context, st *entity.AnalysisState) error {
	confirmed, unidentified := s.engine.Fuse(st.DetectorBoxes, st.ClassifierItems)
	st.ConfirmedItems = confirmed
	st.UnidentifiedItems = unidentified
	st.CurrentStage = "fusion_completed"
	slog.Info("融合ステージ完了", "confirmed", len(confirmed), "unidentified", len(unidentified))
	return nil
}
