package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	auditapp "github.com/dairyops/backend/internal/application/audit"
	reportapp "github.com/dairyops/backend/internal/application/report"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles day-end and customer summary reports plus the audit trail
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
	auditService  *auditapp.AuditService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService, auditService *auditapp.AuditService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		auditService:  auditService,
	}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.Use(middleware.RequireAction(identity.ActionReportRead))
	{
		reports.GET("/day-end", h.DayEnd)
		reports.GET("/customer-summary", h.CustomerSummary)
	}

	rg.GET("/audit-logs", middleware.RequireAction(identity.ActionAuditRead), h.AuditLogs)
}

// DayEnd returns the consolidated report for the active or latest day
func (h *ReportHandler) DayEnd(c *gin.Context) {
	resp, err := h.reportService.DayEnd(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CustomerSummary returns per-customer dues across all customers
func (h *ReportHandler) CustomerSummary(c *gin.Context) {
	resp, err := h.reportService.Customers(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AuditLogs returns the most recent audit entries
func (h *ReportHandler) AuditLogs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	resp, err := h.auditService.List(c.Request.Context(), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
