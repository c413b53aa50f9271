// Package handler はinventoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fridge_backend/internal/api"
	"fridge_backend/internal/feature/inventory/domain/entity"
)

// InventoryUsecase は在庫照会のユースケースインターフェースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type InventoryUsecase interface {
	List(ctx context.Context) ([]entity.Record, error)
}

// InventoryHandler は在庫照会のHTTPリクエストを処理します。
type InventoryHandler struct {
	uc InventoryUsecase
}

// NewInventoryHandler は新しい InventoryHandler を作成します。
func NewInventoryHandler(uc InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List は現在の在庫一覧と保管場所ごとの集計を返すAPIです。
//
// エンドポイント: GET /v1/fridge/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	records, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("在庫一覧の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "在庫の取得に失敗しました"})
		return
	}

	items := make([]api.InventoryRecord, 0, len(records))
	summary := api.InventorySummary{TotalItems: len(records)}
	for _, r := range records {
		items = append(items, api.InventoryRecord{
			Name:      r.Name,
			Category:  r.Category,
			Quantity:  r.Quantity,
			Unit:      r.Unit,
			Location:  r.Location,
			UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
		})
		switch r.Location {
		case entity.LocationFridge:
			summary.Fridge++
		case entity.LocationFreezer:
			summary.Freezer++
		case entity.LocationPantry:
			summary.Pantry++
		}
	}

	c.JSON(http.StatusOK, api.InventoryListResponse{Items: items, Summary: summary})
}
