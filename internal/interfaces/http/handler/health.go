package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dairyops/backend/internal/interfaces/http/dto"
)

// Pinger reports whether the backing database is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler serves the unauthenticated health probe
type HealthHandler struct {
	db        Pinger
	startedAt time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, startedAt: time.Now()}
}

// RegisterRoutes registers the health route on the engine root
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health returns service liveness and database reachability
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "up"
	code := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
			dbStatus = "down"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, dto.NewSuccessResponse(gin.H{
		"status":   status,
		"database": dbStatus,
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
	}))
}
