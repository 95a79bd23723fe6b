package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// Create inserts a new (empty) invoice row
	Create(ctx context.Context, invoice *Invoice) error

	// Save persists the finalized totals
	Save(ctx context.Context, invoice *Invoice) error

	// CountByDay counts invoices for a day (drives the per-day sequence)
	CountByDay(ctx context.Context, dayID uuid.UUID) (int64, error)

	// FindByNumber finds an invoice by its invoice number
	FindByNumber(ctx context.Context, number string) (*Invoice, error)

	// FindAll lists invoices newest first
	FindAll(ctx context.Context, limit int) ([]Invoice, error)
}

// SaleRepository defines the interface for sale line persistence
type SaleRepository interface {
	// Create inserts an immutable sale line
	Create(ctx context.Context, sale *Sale) error

	// FindByInvoice finds all sale lines for an invoice
	FindByInvoice(ctx context.Context, invoiceNumber string) ([]Sale, error)

	// SumQuantityByDayAndProduct sums sold quantity for a product on a day
	SumQuantityByDayAndProduct(ctx context.Context, dayID, productID uuid.UUID) (decimal.Decimal, error)

	// SumQuantityByDay sums sold quantity per product for a day
	SumQuantityByDay(ctx context.Context, dayID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	// SumAmountByDay sums total sales amount for a day
	SumAmountByDay(ctx context.Context, dayID uuid.UUID) (decimal.Decimal, error)

	// CountDistinctCustomersByDate counts customers billed on a date
	CountDistinctCustomersByDate(ctx context.Context, date time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// Create inserts an immutable payment leg
	Create(ctx context.Context, payment *Payment) error

	// FindByInvoice finds all payment legs for an invoice
	FindByInvoice(ctx context.Context, invoiceNumber string) ([]Payment, error)

	// SumByDayAndMode sums collected amount for a day broken down by mode
	SumByDayAndMode(ctx context.Context, dayID uuid.UUID) (map[PaymentMode]decimal.Decimal, error)
}

// LedgerEventRepository defines the interface for the append-only event log
type LedgerEventRepository interface {
	// Append inserts a new ledger event; events are never updated or deleted
	Append(ctx context.Context, event *LedgerEvent) error

	// FindByCustomer finds a customer's events ordered by (business_date, created_at)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]LedgerEvent, error)

	// BalanceByCustomer computes the customer's running balance in SQL
	BalanceByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)

	// BalancesByCustomer computes every customer's running balance
	BalancesByCustomer(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error)
}
