package users

import (
	"context"
	"errors"
	"testing"

	"github.com/Thanajai/GrowFuse/internal/crops"
	"github.com/Thanajai/GrowFuse/internal/history"
	"github.com/Thanajai/GrowFuse/internal/shared/storage/kv"
)

const testPhone = "9876543210"

func loggedInService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	svc := NewService(NewRepo(kv.NewMemoryStore()))
	ctx := context.Background()
	if _, err := svc.Login(ctx, testPhone); err != nil {
		t.Fatalf("login: %v", err)
	}
	return svc, ctx
}

func TestAddFarm(t *testing.T) {
	svc, ctx := loggedInService(t)

	user, err := svc.AddFarm(ctx, testPhone, "North plot", "560001", crops.SoilRed, 2.5)
	if err != nil {
		t.Fatalf("AddFarm: %v", err)
	}
	if len(user.Farms) != 1 {
		t.Fatalf("expected 1 farm, got %d", len(user.Farms))
	}
	farm := user.Farms[0]
	if farm.ID == "" {
		t.Fatalf("expected generated farm id")
	}
	if farm.Name != "North plot" || farm.SoilType != crops.SoilRed || farm.LandArea != 2.5 {
		t.Fatalf("unexpected farm: %+v", farm)
	}

	// Persisted, not just returned.
	current, ok := svc.Current(ctx, testPhone)
	if !ok || len(current.Farms) != 1 {
		t.Fatalf("expected farm to be persisted")
	}
}

func TestAddFarmValidation(t *testing.T) {
	svc, ctx := loggedInService(t)

	if _, err := svc.AddFarm(ctx, testPhone, "", "560001", crops.SoilRed, 2.5); !errors.Is(err, ErrInvalidFarm) {
		t.Fatalf("expected ErrInvalidFarm for empty name, got %v", err)
	}
	if _, err := svc.AddFarm(ctx, testPhone, "Plot", "560001", crops.SoilType("Lunar"), 2.5); !errors.Is(err, ErrInvalidFarm) {
		t.Fatalf("expected ErrInvalidFarm for unknown soil, got %v", err)
	}
	if _, err := svc.AddFarm(ctx, testPhone, "Plot", "560001", crops.SoilRed, 0); !errors.Is(err, ErrInvalidFarm) {
		t.Fatalf("expected ErrInvalidFarm for zero area, got %v", err)
	}
}

func TestAddFarmRequiresLogin(t *testing.T) {
	svc := NewService(NewRepo(kv.NewMemoryStore()))
	if _, err := svc.AddFarm(context.Background(), testPhone, "Plot", "560001", crops.SoilRed, 1); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestAddFarmScopedToCaller(t *testing.T) {
	svc, ctx := loggedInService(t)
	if _, err := svc.Login(ctx, "2222222222"); err != nil {
		t.Fatalf("login second user: %v", err)
	}

	// The second login owns the session record, but the farm lands on the
	// profile named by the caller's phone.
	user, err := svc.AddFarm(ctx, testPhone, "North plot", "560001", crops.SoilRed, 2.5)
	if err != nil {
		t.Fatalf("AddFarm: %v", err)
	}
	if user.Phone != testPhone || len(user.Farms) != 1 {
		t.Fatalf("expected farm on %s, got %+v", testPhone, user)
	}
	other, ok := svc.Current(ctx, "2222222222")
	if !ok || len(other.Farms) != 0 {
		t.Fatalf("expected second user untouched, got %+v", other)
	}
}

func TestSaveRecommendation(t *testing.T) {
	svc, ctx := loggedInService(t)

	user, err := svc.AddFarm(ctx, testPhone, "North plot", "560001", crops.SoilRed, 2.5)
	if err != nil {
		t.Fatalf("AddFarm: %v", err)
	}
	farmID := user.Farms[0].ID

	entry := history.NewEntry(history.Inputs{
		Location:         "560001",
		SoilType:         crops.SoilRed,
		LandArea:         2.5,
		ForecastDuration: crops.SixMonths,
	}, []crops.Recommendation{{EnglishCropName: "Wheat", ConfidenceScore: 90}})

	updated, err := svc.SaveRecommendation(ctx, testPhone, farmID, entry)
	if err != nil {
		t.Fatalf("SaveRecommendation: %v", err)
	}
	if len(updated.SavedRecommendations) != 1 {
		t.Fatalf("expected 1 saved recommendation, got %d", len(updated.SavedRecommendations))
	}
	saved := updated.SavedRecommendations[0]
	if saved.FarmID != farmID {
		t.Fatalf("expected farm association %s, got %s", farmID, saved.FarmID)
	}
	if saved.ID != entry.ID {
		t.Fatalf("expected entry carried over, got %+v", saved.Entry)
	}
}

func TestSaveRecommendationUnknownFarm(t *testing.T) {
	svc, ctx := loggedInService(t)

	entry := history.NewEntry(history.Inputs{}, nil)
	if _, err := svc.SaveRecommendation(ctx, testPhone, "nope", entry); !errors.Is(err, ErrFarmNotFound) {
		t.Fatalf("expected ErrFarmNotFound, got %v", err)
	}
}
