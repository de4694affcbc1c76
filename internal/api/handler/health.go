package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/pixgallery/internal/service"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	sessions *service.SessionStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions *service.SessionStore) *HealthHandler {
	return &HealthHandler{sessions: sessions}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	})
}
