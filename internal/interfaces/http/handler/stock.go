package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dayopsapp "github.com/dairyops/backend/internal/application/dayops"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/interfaces/http/middleware"
)

// StockHandler handles daily stock entry and reporting endpoints
type StockHandler struct {
	BaseHandler
	stockService    *dayopsapp.StockService
	shortageService *dayopsapp.ShortageService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *dayopsapp.StockService, shortageService *dayopsapp.ShortageService) *StockHandler {
	return &StockHandler{
		stockService:    stockService,
		shortageService: shortageService,
	}
}

// RegisterRoutes registers the stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	stock.GET("/daily", middleware.RequireAction(identity.ActionStockRead), h.DailyStock)
	stock.POST("/daily/morning", middleware.RequireAction(identity.ActionStockEntry), h.RecordMorning)
	stock.POST("/daily/closing", middleware.RequireAction(identity.ActionStockEntry), h.RecordClosing)
	stock.GET("/available/:product_id", middleware.RequireAction(identity.ActionStockRead), h.Availability)
	stock.GET("/reconciliation", middleware.RequireAction(identity.ActionStockRead), h.Reconciliation)
	stock.POST("/shortage/justify", middleware.RequireAction(identity.ActionShortageJustify), h.JustifyShortage)
	stock.GET("/shortage/justifications", middleware.RequireAction(identity.ActionStockRead), h.Justifications)
}

// DailyStock lists every active product's stock row for the OPEN day
func (h *StockHandler) DailyStock(c *gin.Context) {
	rows, err := h.stockService.DailyStock(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// RecordMorning records the morning phase for one product
func (h *StockHandler) RecordMorning(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dayopsapp.RecordMorningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	row, err := h.stockService.RecordMorning(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, row)
}

// RecordClosing records the closing phase for one product
func (h *StockHandler) RecordClosing(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dayopsapp.RecordClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	row, err := h.stockService.RecordClosing(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, row)
}

// Availability reports how much of a product can still be sold today
func (h *StockHandler) Availability(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.stockService.Availability(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reconciliation reports per-product sold/shortage figures for the OPEN day
func (h *StockHandler) Reconciliation(c *gin.Context) {
	rows, err := h.stockService.Reconciliation(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// JustifyShortage records a shortage justification for one product
func (h *StockHandler) JustifyShortage(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dayopsapp.JustifyShortageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shortageService.Justify(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Justifications lists the OPEN day's shortage justifications
func (h *StockHandler) Justifications(c *gin.Context) {
	resp, err := h.shortageService.Justifications(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
