package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/Thanajai/GrowFuse/internal/crops"
	"github.com/Thanajai/GrowFuse/internal/history"
	"github.com/Thanajai/GrowFuse/internal/llm"
	"github.com/Thanajai/GrowFuse/internal/shared/storage/kv"
)

type fakeLLM struct {
	recs    []crops.Recommendation
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *fakeLLM) RecommendCrops(ctx context.Context, input llm.RecommendInput) ([]crops.Recommendation, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}

func validInput() llm.RecommendInput {
	return llm.RecommendInput{
		Location:         "560001",
		SoilType:         crops.SoilRed,
		LandArea:         2.5,
		Language:         crops.LangEnglish,
		ForecastDuration: crops.SixMonths,
		CropType:         crops.CropAll,
	}
}

func TestRecommendAppendsHistory(t *testing.T) {
	store := kv.NewMemoryStore()
	hist := history.NewRepo(store)
	client := &fakeLLM{recs: []crops.Recommendation{
		{CropName: "Wheat", EnglishCropName: "Wheat", ConfidenceScore: 92, Justification: "Suits the soil.", ImageURL: "https://example.com/wheat.jpg"},
		{CropName: "Ragi", EnglishCropName: "Finger Millet", ConfidenceScore: 85, Justification: "Drought tolerant.", ImageURL: "https://example.com/ragi.jpg"},
	}}
	svc := NewService(client, hist)

	entry, err := svc.Recommend(context.Background(), "9876543210", validInput())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(entry.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(entry.Recommendations))
	}
	if entry.Inputs.Location != "560001" || entry.Inputs.LandArea != 2.5 {
		t.Fatalf("unexpected inputs recorded: %+v", entry.Inputs)
	}

	stored := hist.List(context.Background())
	if len(stored) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(stored))
	}
	if stored[0].ID != entry.ID {
		t.Fatalf("stored entry id %q does not match returned %q", stored[0].ID, entry.ID)
	}
}

func TestRecommendProviderFailureLeavesHistoryEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	hist := history.NewRepo(store)
	client := &fakeLLM{err: errors.New("quota exceeded")}
	svc := NewService(client, hist)

	if _, err := svc.Recommend(context.Background(), "9876543210", validInput()); err == nil {
		t.Fatalf("expected error")
	}
	if got := hist.List(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(got))
	}
}

func TestRecommendRejectsConcurrentCaller(t *testing.T) {
	store := kv.NewMemoryStore()
	hist := history.NewRepo(store)
	client := &fakeLLM{
		recs:    []crops.Recommendation{{CropName: "Wheat", EnglishCropName: "Wheat"}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewService(client, hist)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Recommend(context.Background(), "9876543210", validInput())
		done <- err
	}()
	<-client.started

	if _, err := svc.Recommend(context.Background(), "9876543210", validInput()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(client.release)
	if err := <-done; err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected a single provider call, got %d", client.calls)
	}
	if got := hist.List(context.Background()); len(got) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(got))
	}
}

func TestRecommendAllowsDifferentCallersConcurrently(t *testing.T) {
	store := kv.NewMemoryStore()
	hist := history.NewRepo(store)
	client := &fakeLLM{
		recs:    []crops.Recommendation{{CropName: "Wheat", EnglishCropName: "Wheat"}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewService(client, hist)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Recommend(context.Background(), "9876543210", validInput())
		done <- err
	}()
	<-client.started

	if err := svc.acquire("guest:other"); err != nil {
		t.Fatalf("different caller should not be blocked: %v", err)
	}
	svc.release("guest:other")

	close(client.release)
	if err := <-done; err != nil {
		t.Fatalf("first request failed: %v", err)
	}
}

func TestRecommendReleasesSlotAfterFailure(t *testing.T) {
	store := kv.NewMemoryStore()
	hist := history.NewRepo(store)
	client := &fakeLLM{err: errors.New("transient")}
	svc := NewService(client, hist)

	if _, err := svc.Recommend(context.Background(), "9876543210", validInput()); err == nil {
		t.Fatalf("expected error")
	}

	client.err = nil
	client.recs = []crops.Recommendation{{CropName: "Wheat", EnglishCropName: "Wheat"}}
	if _, err := svc.Recommend(context.Background(), "9876543210", validInput()); err != nil {
		t.Fatalf("second request should succeed: %v", err)
	}
}
