package billing

import (
	"time"

	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingItem is one line of a quick billing request
type BillingItem struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// QuickBillingRequest represents the counter billing payload. Items may be
// empty when the customer only makes a payment; at least one of items, cash
// or online must be present.
type QuickBillingRequest struct {
	CustomerID   uuid.UUID       `json:"customer_id" binding:"required"`
	Items        []BillingItem   `json:"items"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
}

// BilledItem is one priced line of a finalized invoice
type BilledItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// QuickBillingResponse is the finalized outcome of one billing transaction
type QuickBillingResponse struct {
	InvoiceNumber   string          `json:"invoice_number"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	Items           []BilledItem    `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	CashPaid        decimal.Decimal `json:"cash_paid"`
	OnlinePaid      decimal.Decimal `json:"online_paid"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Due             decimal.Decimal `json:"due"`
	CustomerBalance decimal.Decimal `json:"customer_balance"`
}

// ClearDueRequest represents a standalone due-clearing payment
type ClearDueRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	Mode       string          `json:"mode" binding:"required,payment_mode"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// ClearDueResponse reports the payment and the customer's replayed balance
type ClearDueResponse struct {
	CustomerID      uuid.UUID       `json:"customer_id"`
	Mode            string          `json:"mode"`
	Amount          decimal.Decimal `json:"amount"`
	CustomerBalance decimal.Decimal `json:"customer_balance"`
}

// PaymentResponse is one payment leg of an invoice
type PaymentResponse struct {
	Mode   string          `json:"mode"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the read-only invoice detail
type InvoiceResponse struct {
	InvoiceNumber string            `json:"invoice_number"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	BusinessDate  string            `json:"business_date"`
	Items         []BilledItem      `json:"items"`
	Payments      []PaymentResponse `json:"payments"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	TotalPaid     decimal.Decimal   `json:"total_paid"`
	Due           decimal.Decimal   `json:"due"`
	CreatedAt     time.Time         `json:"created_at"`
}

// InvoiceSummary is one row of the invoice list
type InvoiceSummary struct {
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	BusinessDate  string          `json:"business_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Due           decimal.Decimal `json:"due"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LedgerResponse is a customer's replayed ledger
type LedgerResponse struct {
	CustomerID   uuid.UUID            `json:"customer_id"`
	CustomerName string               `json:"customer_name"`
	Lines        []billing.LedgerLine `json:"lines"`
	Balance      decimal.Decimal      `json:"balance"`
}
