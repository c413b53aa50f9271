// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"time"

	geminiadapter "fridge_backend/internal/feature/analysis/adapters/gemini"
	visionadapter "fridge_backend/internal/feature/analysis/adapters/vision"
	"fridge_backend/internal/shared/ratelimiter"
)

// geminiCallsPerMinute はGemini APIの無償枠に合わせた保守的な上限です。
const geminiCallsPerMinute = 10

// NewDetector creates the Cloud Vision object localization detector.
// The underlying API client is initialized lazily on first use.
func NewDetector() *visionadapter.ObjectDetector {
	return visionadapter.NewObjectDetector()
}

// NewClassifier creates the Gemini food classifier with configuration
// loaded from environment variables.
func NewClassifier(ctx context.Context) (*geminiadapter.Classifier, error) {
	c, err := geminiadapter.NewClassifier(ctx, geminiadapter.LoadConfig())
	if err != nil {
		return nil, err
	}
	return c.WithRateLimiter(ratelimiter.NewRateLimiter(geminiCallsPerMinute, time.Minute)), nil
}
