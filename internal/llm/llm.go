package llm

import (
	"context"
	"errors"

	"github.com/Thanajai/GrowFuse/internal/crops"
)

// Client abstracts generative-AI providers for crop recommendation.
type Client interface {
	// RecommendCrops returns the ranked crop suggestions for the given farm
	// inputs, each with an image URL populated. Per-item image failures are
	// recovered internally and never fail the batch.
	RecommendCrops(ctx context.Context, input RecommendInput) ([]crops.Recommendation, error)
}

// RecommendInput captures the farm data and forecast window for one request.
type RecommendInput struct {
	Location         string
	SoilType         crops.SoilType
	LandArea         float64
	Language         crops.Language
	ForecastDuration crops.ForecastDuration
	CropType         crops.CropType
}

// ErrNotConfigured is returned when no provider credential is available. It
// is a blocking condition: the caller surfaces it directly, no retry.
var ErrNotConfigured = errors.New("recommendation service is not configured")

// PlaceholderClient is the stub used when no provider is wired.
type PlaceholderClient struct{}

func (PlaceholderClient) RecommendCrops(ctx context.Context, input RecommendInput) ([]crops.Recommendation, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
