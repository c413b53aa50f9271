package router

import (
	"github.com/gin-gonic/gin"

	analysishandler "fridge_backend/internal/feature/analysis/transport/handler"
	authhandler "fridge_backend/internal/feature/auth/transport/handler"
	inventoryhandler "fridge_backend/internal/feature/inventory/transport/handler"
	"fridge_backend/internal/platform/http/handler"
	jwtmw "fridge_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, analysis *analysishandler.AnalysisHandler,
	inventory *inventoryhandler.InventoryHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	v1 := r.Group("/v1")
	v1.Use(jwtmw.AuthRequired())
	{
		v1.POST("/fridge/analyze", analysis.Analyze)
		v1.GET("/fridge/inventory", inventory.List)
	}

	return r
}
