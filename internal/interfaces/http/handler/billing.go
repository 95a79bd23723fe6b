package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/dairyops/backend/internal/application/billing"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/interfaces/http/middleware"
)

// BillingHandler handles quick billing, due clearance, invoices and ledgers
type BillingHandler struct {
	BaseHandler
	billingService *billingapp.BillingService
	invoiceService *billingapp.InvoiceService
	ledgerService  *billingapp.LedgerService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(
	billingService *billingapp.BillingService,
	invoiceService *billingapp.InvoiceService,
	ledgerService *billingapp.LedgerService,
) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		invoiceService: invoiceService,
		ledgerService:  ledgerService,
	}
}

// RegisterRoutes registers the billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/billing/quick", middleware.RequireAction(identity.ActionBillingCreate), h.QuickBilling)
	rg.POST("/payments/clear-due", middleware.RequireAction(identity.ActionDueClear), h.ClearDue)
	rg.GET("/ledger/:customer_id", middleware.RequireAction(identity.ActionLedgerRead), h.CustomerLedger)
	rg.GET("/ledger/:customer_id/balance", middleware.RequireAction(identity.ActionLedgerRead), h.CustomerBalance)
	rg.GET("/invoices", middleware.RequireAction(identity.ActionInvoiceRead), h.ListInvoices)
	rg.GET("/invoices/:invoice_number", middleware.RequireAction(identity.ActionInvoiceRead), h.GetInvoice)
}

// QuickBilling creates a finalized invoice in one shot
func (h *BillingHandler) QuickBilling(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.QuickBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.billingService.QuickBilling(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ClearDue records a standalone payment against a customer's dues
func (h *BillingHandler) ClearDue(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.ClearDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.billingService.ClearDue(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CustomerLedger returns a customer's full ledger with running balance
func (h *BillingHandler) CustomerLedger(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.ledgerService.CustomerLedger(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CustomerBalance returns a customer's current replayed balance
func (h *BillingHandler) CustomerBalance(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.ledgerService.CustomerBalance(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListInvoices lists recent invoices
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	resp, err := h.invoiceService.List(c.Request.Context(), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetInvoice returns one invoice with its lines and payment legs
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	resp, err := h.invoiceService.Get(c.Request.Context(), c.Param("invoice_number"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
