package billing

import (
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMode represents how a payment was collected
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeOnline PaymentMode = "online"
)

// IsValid checks if the mode is a valid PaymentMode
func (m PaymentMode) IsValid() bool {
	return m == PaymentModeCash || m == PaymentModeOnline
}

// String returns the string representation of PaymentMode
func (m PaymentMode) String() string {
	return string(m)
}

// Payment is one immutable payment leg. InvoiceNumber is nil for payments that
// only clear an outstanding due and are not tied to a billing transaction.
type Payment struct {
	shared.BaseEntity
	DayID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Mode          PaymentMode     `gorm:"type:varchar(8);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	InvoiceNumber *string         `gorm:"type:varchar(32);index"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment leg
func NewPayment(dayID, customerID uuid.UUID, mode PaymentMode, amount decimal.Decimal, invoiceNumber *string) (*Payment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Invalid payment mode")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		DayID:         dayID,
		CustomerID:    customerID,
		Mode:          mode,
		Amount:        amount,
		InvoiceNumber: invoiceNumber,
	}, nil
}
