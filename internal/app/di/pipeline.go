package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"fridge_backend/internal/feature/analysis/fusion"
	analysisusecase "fridge_backend/internal/feature/analysis/usecase"
	expiryusecase "fridge_backend/internal/feature/expiry/usecase"
	inventoryadapters "fridge_backend/internal/feature/inventory/adapters"
	inventoryusecase "fridge_backend/internal/feature/inventory/usecase"
	recipesusecase "fridge_backend/internal/feature/recipes/usecase"
)

// NewInventoryAggregator creates the inventory aggregator. A database-backed
// store is used when db is non-nil, otherwise an in-memory store.
func NewInventoryAggregator(db *gorm.DB) *inventoryusecase.Aggregator {
	var repo inventoryusecase.Repository
	if db != nil {
		repo = inventoryadapters.NewRecordPostgres(db)
	} else {
		repo = inventoryadapters.NewRecordMemory()
	}
	return inventoryusecase.NewAggregator(repo)
}

// NewAnalysisRunner assembles the full fridge analysis pipeline:
// validation, detection, fusion, expiry, inventory, recipes, discussion,
// videos and the final recommendation.
func NewAnalysisRunner(ctx context.Context, aggregator *inventoryusecase.Aggregator, rdb *redis.Client) (*analysisusecase.Runner, error) {
	cfg := analysisusecase.LoadConfig()

	classifier, err := NewClassifier(ctx)
	if err != nil {
		return nil, err
	}

	generator, err := NewRecipeGenerator(ctx, rdb)
	if err != nil {
		return nil, err
	}

	panel, err := NewRecipePanel(ctx)
	if err != nil {
		return nil, err
	}

	engine := fusion.NewEngine(cfg.ConfidenceThreshold, cfg.IoUThreshold, nil)
	suggester := recipesusecase.NewSuggester(generator)

	runner := analysisusecase.NewRunner(cfg.PipelineTimeout,
		analysisusecase.NewValidationStage(),
		analysisusecase.NewDetectionStage(NewDetector(), classifier, cfg),
		analysisusecase.NewFusionStage(engine),
		analysisusecase.NewExpiryStage(expiryusecase.NewClassifier()),
		analysisusecase.NewInventoryStage(aggregator),
		analysisusecase.NewRecipeStage(suggester),
		analysisusecase.NewDiscussionStage(panel),
		analysisusecase.NewVideoStage(NewVideoSearcher()),
		analysisusecase.NewRecommendationStage(),
	)
	return runner, nil
}
