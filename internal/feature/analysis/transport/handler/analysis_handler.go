// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fridge_backend/internal/api"
	"fridge_backend/internal/feature/analysis/domain/entity"
	"fridge_backend/internal/feature/analysis/usecase"
	jwtmw "fridge_backend/internal/platform/jwt"
)

// FridgeAnalyzer は冷蔵庫画像解析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type FridgeAnalyzer interface {
	// Analyze は画像を解析し、部分的な失敗を含む結果オブジェクトを返します。
	// パイプライン内のエラーは結果のErrorsに集約されるため、error戻り値はありません。
	Analyze(ctx context.Context, imageData []byte, dietType string) *entity.Result
}

// DietPreferences はユーザーの食事タイプ設定を解決します。
type DietPreferences interface {
	DietTypeFor(ctx context.Context, userID uint) string
}

// validDietTypes はリクエストで受け付ける食事タイプです。
var validDietTypes = map[string]bool{
	"standard": true,
	"diet":     true,
	"health":   true,
	"patient":  true,
}

// AnalysisHandler は冷蔵庫画像解析のHTTPリクエストを処理します。
type AnalysisHandler struct {
	analyzer FridgeAnalyzer
	prefs    DietPreferences
}

// NewAnalysisHandler はAnalysisHandlerの新しいインスタンスを生成します。
// prefsはnil可で、その場合diet_typeフォームフィールドのみが使われます。
func NewAnalysisHandler(analyzer FridgeAnalyzer, prefs DietPreferences) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, prefs: prefs}
}

// Analyze は冷蔵庫画像をアップロードして全パイプラインを実行します。
//
// エンドポイント: POST /v1/fridge/analyze
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）、diet_type（任意）
//
// パイプラインの部分的な失敗は200レスポンスのerrorsフィールドに
// 含まれます。HTTPエラーになるのはリクエスト自体が不正な場合のみです。
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルが必要です"})
		return
	}
	if file.Size > usecase.MaxImageSize {
		slog.Warn("画像サイズが上限を超過", "size", file.Size, "remote_addr", c.ClientIP())
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "画像サイズは10MB以下にしてください"})
		return
	}

	dietType := c.PostForm("diet_type")
	if dietType != "" && !validDietTypes[dietType] {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "不正な食事タイプです"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}

	// フォーム未指定の場合はユーザー設定にフォールバック
	if dietType == "" && h.prefs != nil {
		if userID, ok := c.Get(jwtmw.ContextUserID); ok {
			if id, ok := userID.(uint); ok {
				dietType = h.prefs.DietTypeFor(c.Request.Context(), id)
			}
		}
	}

	result := h.analyzer.Analyze(c.Request.Context(), imageData, dietType)

	slog.Info("冷蔵庫解析が完了",
		"success", result.Success,
		"confirmed", len(result.ConfirmedItems),
		"unidentified", len(result.UnidentifiedItems),
		"errors", len(result.Errors),
		"stage", result.CurrentStage,
	)
	c.JSON(http.StatusOK, toAnalyzeResponse(result))
}
