package history

import (
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
	rg.GET("/history", h.list)
}

func (h *Handler) list(c *gin.Context) {
	if h.Repo == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "history unavailable", nil)
		return
	}
	entries := h.Repo.List(c.Request.Context())
	respond.JSON(c, http.StatusOK, gin.H{"history": entries})
}
