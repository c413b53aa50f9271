package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"fridge_backend/internal/app/di"
	"fridge_backend/internal/app/router"
	analysishandler "fridge_backend/internal/feature/analysis/transport/handler"
	analysisusecase "fridge_backend/internal/feature/analysis/usecase"
	authadapters "fridge_backend/internal/feature/auth/adapters"
	authhandler "fridge_backend/internal/feature/auth/transport/handler"
	authusecase "fridge_backend/internal/feature/auth/usecase"
	inventoryhandler "fridge_backend/internal/feature/inventory/transport/handler"
	infradb "fridge_backend/internal/platform/db"
	jwtmw "fridge_backend/internal/platform/jwt"
	infraredis "fridge_backend/internal/platform/redis"
)

// jwtExpiration はアクセストークンの有効期間です。
const jwtExpiration = 24 * time.Hour

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	aggregator := di.NewInventoryAggregator(db)

	// 解析パイプライン
	runner, err := di.NewAnalysisRunner(ctx, aggregator, rdb)
	if err != nil {
		log.Fatal("failed to build analysis pipeline:", err)
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(secret, jwtExpiration))
	analysisUC := analysisusecase.NewAnalysisUsecase(runner)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	analysisH := analysishandler.NewAnalysisHandler(analysisUC, authUC)
	inventoryH := inventoryhandler.NewInventoryHandler(aggregator)

	// ルータ生成
	router := router.NewRouter(authH, analysisH, inventoryH)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
