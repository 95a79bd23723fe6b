package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/dairyops/backend/internal/application/catalog"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/interfaces/http/middleware"
)

// CatalogHandler handles product and customer master data
type CatalogHandler struct {
	BaseHandler
	productService  *catalogapp.ProductService
	customerService *catalogapp.CustomerService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	productService *catalogapp.ProductService,
	customerService *catalogapp.CustomerService,
) *CatalogHandler {
	return &CatalogHandler{
		productService:  productService,
		customerService: customerService,
	}
}

// RegisterRoutes registers the catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", middleware.RequireAction(identity.ActionCatalogRead), h.ListProducts)
		products.POST("", middleware.RequireAction(identity.ActionCatalogManage), h.CreateProduct)
		products.PUT("/:product_id/price", middleware.RequireAction(identity.ActionCatalogManage), h.UpdateProductPrice)
		products.DELETE("/:product_id", middleware.RequireAction(identity.ActionCatalogManage), h.DeactivateProduct)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("", middleware.RequireAction(identity.ActionCatalogRead), h.ListCustomers)
		customers.POST("", middleware.RequireAction(identity.ActionCatalogManage), h.CreateCustomer)
		customers.DELETE("/:customer_id", middleware.RequireAction(identity.ActionCatalogManage), h.DeactivateCustomer)
		customers.GET("/:customer_id/prices", middleware.RequireAction(identity.ActionCatalogRead), h.CustomerPrices)
		customers.POST("/:customer_id/prices", middleware.RequireAction(identity.ActionPricingSet), h.SetCustomerPrice)
	}
}

// ListProducts lists products, optionally including deactivated ones
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	resp, err := h.productService.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateProduct creates a product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.productService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateProductPrice updates a product's default price
func (h *CatalogHandler) UpdateProductPrice(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.productService.UpdateDefaultPrice(c.Request.Context(), principal, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeactivateProduct soft-deletes a product
func (h *CatalogHandler) DeactivateProduct(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Deactivate(c.Request.Context(), principal, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"deactivated": true})
}

// ListCustomers lists active customers
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	resp, err := h.customerService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateCustomer creates a customer
func (h *CatalogHandler) CreateCustomer(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// DeactivateCustomer soft-deletes a customer
func (h *CatalogHandler) DeactivateCustomer(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Deactivate(c.Request.Context(), principal, customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"deactivated": true})
}

// CustomerPrices lists a customer's price overrides
func (h *CatalogHandler) CustomerPrices(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.customerService.Prices(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetCustomerPrice upserts a per-customer price override
func (h *CatalogHandler) SetCustomerPrice(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req catalogapp.SetCustomerPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.SetPrice(c.Request.Context(), principal, customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
