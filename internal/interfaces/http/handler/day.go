package handler

import (
	"github.com/gin-gonic/gin"

	dayopsapp "github.com/dairyops/backend/internal/application/dayops"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/interfaces/http/middleware"
)

// DayHandler handles the business day lifecycle endpoints
type DayHandler struct {
	BaseHandler
	dayService *dayopsapp.DayService
}

// NewDayHandler creates a new DayHandler
func NewDayHandler(dayService *dayopsapp.DayService) *DayHandler {
	return &DayHandler{dayService: dayService}
}

// RegisterRoutes registers the day lifecycle routes
func (h *DayHandler) RegisterRoutes(rg *gin.RouterGroup) {
	day := rg.Group("/day")
	day.GET("/status", h.Status)
	day.POST("/open", middleware.RequireAction(identity.ActionDayOpen), h.Open)
	day.POST("/close", middleware.RequireAction(identity.ActionDayClose), h.Close)
	day.POST("/lock", middleware.RequireAction(identity.ActionDayLock), h.Lock)
}

// Status reports today's day status
func (h *DayHandler) Status(c *gin.Context) {
	resp, err := h.dayService.Status(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Open opens a new business day
func (h *DayHandler) Open(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.dayService.Open(c.Request.Context(), principal)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Close attempts to close the OPEN day. A blocked close is a structured
// result, not an error: the day stays OPEN and the payload lists what blocks.
func (h *DayHandler) Close(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.dayService.Close(c.Request.Context(), principal)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Lock locks the latest CLOSED day
func (h *DayHandler) Lock(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.dayService.Lock(c.Request.Context(), principal)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
