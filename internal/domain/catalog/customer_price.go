package catalog

import (
	"time"

	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerProductPrice is a per-customer price override for one product. When
// present it wins over the product's default price.
type CustomerProductPrice struct {
	shared.BaseEntity
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_customer_product_price,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_customer_product_price,priority:2"`
	CustomPrice decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (CustomerProductPrice) TableName() string {
	return "customer_product_prices"
}

// NewCustomerProductPrice creates a price override
func NewCustomerProductPrice(customerID, productID uuid.UUID, price decimal.Decimal) (*CustomerProductPrice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Custom price cannot be negative")
	}

	return &CustomerProductPrice{
		BaseEntity:  shared.NewBaseEntity(),
		CustomerID:  customerID,
		ProductID:   productID,
		CustomPrice: price,
	}, nil
}

// UpdatePrice replaces the override amount
func (p *CustomerProductPrice) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Custom price cannot be negative")
	}

	p.CustomPrice = price
	p.UpdatedAt = time.Now()
	return nil
}
