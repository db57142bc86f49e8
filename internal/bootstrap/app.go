package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Thanajai/GrowFuse/internal/history"
	"github.com/Thanajai/GrowFuse/internal/llm"
	"github.com/Thanajai/GrowFuse/internal/llm/gemini"
	"github.com/Thanajai/GrowFuse/internal/prefs"
	"github.com/Thanajai/GrowFuse/internal/recommend"
	"github.com/Thanajai/GrowFuse/internal/services/health"
	"github.com/Thanajai/GrowFuse/internal/shared/config"
	"github.com/Thanajai/GrowFuse/internal/shared/server"
	"github.com/Thanajai/GrowFuse/internal/shared/storage/db"
	"github.com/Thanajai/GrowFuse/internal/shared/storage/kv"
	"github.com/Thanajai/GrowFuse/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	Store  kv.Store

	HistoryRepo *history.Repo
	UsersRepo   *users.Repo
	PrefsRepo   *prefs.Repo

	LLM              llm.Client
	RecommendService *recommend.Service
	UsersService     *users.Service
	OTPService       *users.OTPService

	HistoryHandler   *history.Handler
	RecommendHandler *recommend.Handler
	UserHandler      *users.Handler
	PrefsHandler     *prefs.Handler

	closers []func() error
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	store, err := app.buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.LLM = llmClient

	app.HistoryRepo = history.NewRepo(store)
	app.UsersRepo = users.NewRepo(store)
	app.PrefsRepo = prefs.NewRepo(store)

	app.RecommendService = recommend.NewService(llmClient, app.HistoryRepo)
	app.UsersService = users.NewService(app.UsersRepo)
	app.OTPService = users.NewOTPService(store, cfg.OTPTTL)

	app.HistoryHandler = history.NewHandler(app.HistoryRepo)
	app.RecommendHandler = recommend.NewHandler(app.RecommendService)
	app.UserHandler = users.NewHandler(app.UsersService, app.OTPService)
	app.PrefsHandler = prefs.NewHandler(app.PrefsRepo)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Health:           health.NewService(),
		HistoryHandler:   app.HistoryHandler,
		RecommendHandler: app.RecommendHandler,
		UserHandler:      app.UserHandler,
		PrefsHandler:     app.PrefsHandler,
	})

	return app, nil
}

// Close releases resources acquired during Build.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *App) buildStore(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.StoreType {
	case "postgres":
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: database connect failed; using in-memory store: %v", err)
				return kv.NewMemoryStore(), nil
			}
			return nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		a.closers = append(a.closers, sqlDB.Close)
		return &kv.PGStore{DB: sqlDB}, nil
	case "memory":
		return kv.NewMemoryStore(), nil
	default:
		sqliteStore, err := kv.OpenSQLite(cfg.StorePath)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: sqlite open failed; using in-memory store: %v", err)
				return kv.NewMemoryStore(), nil
			}
			return nil, err
		}
		a.closers = append(a.closers, sqliteStore.Close)
		return sqliteStore, nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.Printf("bootstrap: GEMINI_API_KEY empty; recommendations disabled")
		return llm.PlaceholderClient{}, nil
	}
	return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.ImageModel)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
