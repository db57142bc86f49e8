package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Thanajai/GrowFuse/internal/history"
	"github.com/Thanajai/GrowFuse/internal/llm"
	"github.com/Thanajai/GrowFuse/internal/shared/metrics"
	"github.com/Thanajai/GrowFuse/internal/shared/telemetry"
)

// Service runs recommendation sessions: it calls the provider, records the
// session in history, and enforces one in-flight request per caller.
type Service struct {
	LLM     llm.Client
	History *history.Repo

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewService constructs a Service.
func NewService(client llm.Client, hist *history.Repo) *Service {
	return &Service{
		LLM:      client,
		History:  hist,
		inFlight: make(map[string]bool),
	}
}

// Recommend fetches crop suggestions for the given inputs and appends the
// session to history. While a caller's request is running, further requests
// from the same caller fail with ErrBusy and leave history untouched.
func (s *Service) Recommend(ctx context.Context, caller string, input llm.RecommendInput) (history.Entry, error) {
	if err := s.acquire(caller); err != nil {
		return history.Entry{}, err
	}
	defer s.release(caller)

	metrics.IncRecommendationStarted()
	startedAt := time.Now()

	recommendations, err := s.LLM.RecommendCrops(ctx, input)
	if err != nil {
		metrics.IncRecommendationFailed()
		metrics.ObserveRecommendationDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
		telemetry.Error("recommendation.failed", map[string]any{
			"caller":   caller,
			"location": input.Location,
			"error":    err.Error(),
		})
		return history.Entry{}, fmt.Errorf("recommend crops: %w", err)
	}

	entry := history.NewEntry(history.Inputs{
		Location:         input.Location,
		SoilType:         input.SoilType,
		LandArea:         input.LandArea,
		ForecastDuration: input.ForecastDuration,
	}, recommendations)
	s.History.Add(ctx, entry)

	metrics.IncRecommendationCompleted()
	metrics.ObserveRecommendationDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
	telemetry.Info("recommendation.completed", map[string]any{
		"caller":   caller,
		"location": input.Location,
		"crops":    len(recommendations),
	})
	return entry, nil
}

func (s *Service) acquire(caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[caller] {
		return ErrBusy
	}
	s.inFlight[caller] = true
	return nil
}

func (s *Service) release(caller string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, caller)
}
