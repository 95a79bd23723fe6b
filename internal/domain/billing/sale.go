package billing

import (
	"time"

	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one immutable line item sold on a business day
type Sale struct {
	shared.BaseEntity
	DayID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_sales_day_product,priority:1"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_sales_day_product,priority:2"`
	BusinessDate  time.Time       `gorm:"type:date;not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Rate          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	InvoiceNumber string          `gorm:"type:varchar(32);not null;index"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a sale line. Amount is derived, never supplied.
func NewSale(dayID, customerID, productID uuid.UUID, businessDate time.Time, quantity, rate decimal.Decimal, invoiceNumber string) (*Sale, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}

	return &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		DayID:         dayID,
		CustomerID:    customerID,
		ProductID:     productID,
		BusinessDate:  businessDate,
		Quantity:      quantity,
		Rate:          rate,
		Amount:        quantity.Mul(rate),
		InvoiceNumber: invoiceNumber,
	}, nil
}
