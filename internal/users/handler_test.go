package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thanajai/GrowFuse/internal/shared/auth"
	"github.com/Thanajai/GrowFuse/internal/shared/server/middleware"
	"github.com/Thanajai/GrowFuse/internal/shared/storage/kv"
)

// newAuthedRouter runs the handler behind the real auth middleware so
// identity resolution is exercised end to end.
func newAuthedRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kv.NewMemoryStore()
	svc := NewService(NewRepo(store))
	handler := NewHandler(svc, NewOTPService(store, 5*time.Minute))

	router := gin.New()
	router.Use(middleware.Auth("test"))
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router, svc
}

func bearerFor(t *testing.T, phone string) string {
	t.Helper()
	token, err := auth.SignSession(phone, "+91 "+phone)
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}
	return "Bearer " + token
}

func decodeUser(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var payload struct {
		User map[string]any `json:"user"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload.User
}

func TestMeReturnsTokenOwner(t *testing.T) {
	router, svc := newAuthedRouter(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "1111111111"); err != nil {
		t.Fatalf("login A: %v", err)
	}
	// B logs in last and owns the session record.
	if _, err := svc.Login(ctx, "2222222222"); err != nil {
		t.Fatalf("login B: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", bearerFor(t, "1111111111"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := decodeUser(t, rec.Body.Bytes())
	if user == nil {
		t.Fatalf("expected a profile for the token owner")
	}
	if got := user["phone"]; got != "1111111111" {
		t.Fatalf("expected the token owner's profile, got phone %v", got)
	}
}

func TestMeGuestGetsNullProfile(t *testing.T) {
	router, svc := newAuthedRouter(t)
	if _, err := svc.Login(context.Background(), "1111111111"); err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "guest-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if user := decodeUser(t, rec.Body.Bytes()); user != nil {
		t.Fatalf("expected null profile for a guest, got %v", user)
	}
}

func TestAddFarmRejectsGuest(t *testing.T) {
	router, svc := newAuthedRouter(t)
	if _, err := svc.Login(context.Background(), "1111111111"); err != nil {
		t.Fatalf("login: %v", err)
	}

	body := `{"name":"North plot","location":"560001","soilType":"Red","landArea":2.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/farms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "guest-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	user, ok := svc.Current(context.Background(), "1111111111")
	if !ok || len(user.Farms) != 0 {
		t.Fatalf("expected logged-in profile untouched, got %+v", user)
	}
}

func TestLogoutLeavesOtherSessionsAlone(t *testing.T) {
	router, svc := newAuthedRouter(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "1111111111"); err != nil {
		t.Fatalf("login A: %v", err)
	}
	if _, err := svc.Login(ctx, "2222222222"); err != nil {
		t.Fatalf("login B: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", bearerFor(t, "1111111111"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	current, ok := svc.Repo.Current(ctx)
	if !ok || current.Phone != "2222222222" {
		t.Fatalf("expected B's session to survive A's logout, got ok=%v phone=%q", ok, current.Phone)
	}
}

func TestLogoutRejectsGuest(t *testing.T) {
	router, svc := newAuthedRouter(t)
	ctx := context.Background()
	if _, err := svc.Login(ctx, "1111111111"); err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("X-Guest-Id", "guest-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := svc.Repo.Current(ctx); !ok {
		t.Fatalf("expected session to survive a guest logout attempt")
	}
}
