package billing

import (
	"fmt"
	"time"

	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice represents one billing transaction. It is created empty when billing
// begins, then finalized exactly once with the accumulated totals; afterwards
// it is read-only.
type Invoice struct {
	shared.BaseEntity
	Number       string    `gorm:"column:invoice_number;type:varchar(32);not null;uniqueIndex"`
	DayID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BusinessDate time.Time `gorm:"type:date;not null"`
	CreatedBy    *uuid.UUID
	Subtotal     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CashPaid     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	OnlinePaid   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalPaid    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Due          decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Finalized    bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// FormatInvoiceNumber builds the sequential invoice number for a business date:
// INV-YYYYMMDD-NNNN where NNNN is the per-day sequence, zero-padded.
func FormatInvoiceNumber(businessDate time.Time, seq int64) string {
	return fmt.Sprintf("INV-%s-%04d", businessDate.Format("20060102"), seq)
}

// NewInvoice creates an empty invoice for a day-customer combination
func NewInvoice(number string, dayID, customerID uuid.UUID, businessDate time.Time, createdBy *uuid.UUID) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if dayID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DAY", "Day ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &Invoice{
		BaseEntity:   shared.NewBaseEntity(),
		Number:       number,
		DayID:        dayID,
		CustomerID:   customerID,
		BusinessDate: businessDate,
		CreatedBy:    createdBy,
		Subtotal:     decimal.Zero,
		CashPaid:     decimal.Zero,
		OnlinePaid:   decimal.Zero,
		TotalPaid:    decimal.Zero,
		Due:          decimal.Zero,
	}, nil
}

// Finalize records the accumulated totals. Due = subtotal - paid and is not
// clamped: a customer may overpay (negative due) or underpay (positive due).
// An invoice may only be finalized once.
func (i *Invoice) Finalize(subtotal, cash, online decimal.Decimal) error {
	if i.Finalized {
		return shared.NewDomainError("INVOICE_FINALIZED", "Invoice is already finalized")
	}
	if subtotal.IsNegative() || cash.IsNegative() || online.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice amounts cannot be negative")
	}

	totalPaid := cash.Add(online)
	i.Subtotal = subtotal
	i.CashPaid = cash
	i.OnlinePaid = online
	i.TotalPaid = totalPaid
	i.Due = subtotal.Sub(totalPaid)
	i.Finalized = true
	i.UpdatedAt = time.Now()

	return nil
}
