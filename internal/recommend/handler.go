package recommend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thanajai/GrowFuse/internal/llm"
	"github.com/Thanajai/GrowFuse/internal/shared/server/middleware"
	"github.com/Thanajai/GrowFuse/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendation service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
}

func (h *Handler) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	input, issues := req.toInput()
	if issues != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid farm inputs", issues)
		return
	}

	caller := middleware.UserPhoneFromContext(c)
	entry, err := h.Svc.Recommend(c.Request.Context(), caller, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrBusy):
			respond.Error(c, http.StatusConflict, "request_in_progress", "a recommendation request is already running", nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "recommendation provider is not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "provider_error", "failed to get recommendations", nil)
		}
		return
	}

	respond.OK(c, gin.H{"entry": entry})
}
