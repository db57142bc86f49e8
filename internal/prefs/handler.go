package prefs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thanajai/GrowFuse/internal/shared/server/respond"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/preferences/theme", h.getTheme)
	rg.PUT("/preferences/theme", h.putTheme)
}

func (h *Handler) getTheme(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"theme": h.Repo.Theme(c.Request.Context())})
}

func (h *Handler) putTheme(c *gin.Context) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	if err := h.Repo.SetTheme(c.Request.Context(), body.Theme); err != nil {
		if errors.Is(err, ErrInvalidTheme) {
			respond.Error(c, http.StatusBadRequest, "invalid_theme", "theme must be light or dark", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save theme", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"theme": body.Theme})
}
