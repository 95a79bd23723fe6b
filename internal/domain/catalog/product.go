package catalog

import (
	"strings"
	"time"

	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is one sellable dairy item. DefaultPrice may be nil until pricing is
// decided; billing fails for a product without a resolvable price.
type Product struct {
	shared.BaseEntity
	Name         string           `gorm:"type:varchar(128);not null;uniqueIndex"`
	Unit         string           `gorm:"type:varchar(32);not null"`
	DefaultPrice *decimal.Decimal `gorm:"type:decimal(14,2)"`
	IsActive     bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates an active product
func NewProduct(name, unit string, defaultPrice *decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Product unit cannot be empty")
	}
	if defaultPrice != nil && defaultPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Default price cannot be negative")
	}

	return &Product{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Unit:         unit,
		DefaultPrice: defaultPrice,
		IsActive:     true,
	}, nil
}

// UpdateDefaultPrice sets a new default price
func (p *Product) UpdateDefaultPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Default price cannot be negative")
	}

	p.DefaultPrice = &price
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate retires the product from sale
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}
