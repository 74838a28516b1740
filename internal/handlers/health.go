// internal/handlers/health.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"status":    "ok",
		"uptime":    time.Since(h.startedAt).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
