package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thanajai/GrowFuse/internal/history"
	"github.com/Thanajai/GrowFuse/internal/prefs"
	"github.com/Thanajai/GrowFuse/internal/recommend"
	"github.com/Thanajai/GrowFuse/internal/services/health"
	"github.com/Thanajai/GrowFuse/internal/shared/config"
	"github.com/Thanajai/GrowFuse/internal/shared/metrics"
	"github.com/Thanajai/GrowFuse/internal/shared/server/middleware"
	"github.com/Thanajai/GrowFuse/internal/shared/server/respond"
	"github.com/Thanajai/GrowFuse/internal/users"
)

// RouterDeps carries the constructed handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	Health           *health.Service
	HistoryHandler   *history.Handler
	RecommendHandler *recommend.Handler
	UserHandler      *users.Handler
	PrefsHandler     *prefs.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(rateLimitConfig()),
	)

	r.GET("/metrics", metrics.Handler())

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(api)
	}
	if deps.RecommendHandler != nil {
		deps.RecommendHandler.RegisterRoutes(api)
	}
	if deps.PrefsHandler != nil {
		deps.PrefsHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitConfig throttles the expensive provider calls and OTP issuance
// harder than plain reads.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			switch {
			case c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/recommendations":
				return "RECOMMEND"
			case c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/auth/otp/request":
				return "OTP"
			default:
				return "DEFAULT"
			}
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":   {Rate: 10, Burst: 20},
			"RECOMMEND": {Rate: 0.2, Burst: 2},
			"OTP":       {Rate: 0.1, Burst: 3},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
