package catalog

import (
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation payload
type CreateProductRequest struct {
	Name         string           `json:"name" binding:"required"`
	Unit         string           `json:"unit" binding:"required"`
	DefaultPrice *decimal.Decimal `json:"default_price"`
}

// UpdateProductPriceRequest represents a default price change
type UpdateProductPriceRequest struct {
	DefaultPrice decimal.Decimal `json:"default_price" binding:"required"`
}

// ProductResponse represents a product in responses
type ProductResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Unit         string           `json:"unit"`
	DefaultPrice *decimal.Decimal `json:"default_price"`
	IsActive     bool             `json:"is_active"`
}

// CreateCustomerRequest represents a customer creation payload
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// CustomerResponse represents a customer in responses
type CustomerResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	IsActive bool      `json:"is_active"`
}

// SetCustomerPriceRequest represents a price override upsert
type SetCustomerPriceRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	CustomPrice decimal.Decimal `json:"custom_price" binding:"required"`
}

// CustomerPriceResponse represents one price override
type CustomerPriceResponse struct {
	CustomerID  uuid.UUID       `json:"customer_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	CustomPrice decimal.Decimal `json:"custom_price"`
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Unit:         p.Unit,
		DefaultPrice: p.DefaultPrice,
		IsActive:     p.IsActive,
	}
}

func toCustomerResponse(c *catalog.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:       c.ID,
		Name:     c.Name,
		Phone:    c.Phone,
		IsActive: c.IsActive,
	}
}
