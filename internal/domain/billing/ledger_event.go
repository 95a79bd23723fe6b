package billing

import (
	"time"

	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEventType distinguishes the two kinds of ledger entries
type LedgerEventType string

const (
	LedgerEventSale    LedgerEventType = "SALE"
	LedgerEventPayment LedgerEventType = "PAYMENT"
)

// IsValid checks if the type is a valid LedgerEventType
func (t LedgerEventType) IsValid() bool {
	return t == LedgerEventSale || t == LedgerEventPayment
}

// LedgerEvent is one append-only entry in a customer's financial history.
// Events are never updated or deleted; a customer's running balance is the
// chronological sum of +amount for SALE and -amount for PAYMENT.
type LedgerEvent struct {
	shared.BaseEntity
	DayID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	BusinessDate   time.Time       `gorm:"type:date;not null;index:idx_ledger_customer_date,priority:2"`
	EventType      LedgerEventType `gorm:"type:varchar(8);not null"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_customer_date,priority:1"`
	ProductID      *uuid.UUID      `gorm:"type:uuid"`
	Quantity       *decimal.Decimal `gorm:"type:decimal(14,3)"`
	Amount         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentMode    *PaymentMode    `gorm:"type:varchar(8)"`
	ReferenceID    uuid.UUID       `gorm:"type:uuid;not null"`
	ReferenceTable string          `gorm:"type:varchar(32);not null"`
	InvoiceNumber  *string         `gorm:"type:varchar(32)"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LedgerEvent) TableName() string {
	return "ledger_events"
}

// NewSaleEvent creates the ledger entry mirroring a sale row
func NewSaleEvent(sale *Sale) *LedgerEvent {
	qty := sale.Quantity
	invoice := sale.InvoiceNumber
	return &LedgerEvent{
		BaseEntity:     shared.NewBaseEntity(),
		DayID:          sale.DayID,
		BusinessDate:   sale.BusinessDate,
		EventType:      LedgerEventSale,
		CustomerID:     sale.CustomerID,
		ProductID:      &sale.ProductID,
		Quantity:       &qty,
		Amount:         sale.Amount,
		ReferenceID:    sale.ID,
		ReferenceTable: "sales",
		InvoiceNumber:  &invoice,
	}
}

// NewPaymentEvent creates the ledger entry mirroring a payment row
func NewPaymentEvent(payment *Payment, businessDate time.Time, notes string) *LedgerEvent {
	mode := payment.Mode
	return &LedgerEvent{
		BaseEntity:     shared.NewBaseEntity(),
		DayID:          payment.DayID,
		BusinessDate:   businessDate,
		EventType:      LedgerEventPayment,
		CustomerID:     payment.CustomerID,
		Amount:         payment.Amount,
		PaymentMode:    &mode,
		ReferenceID:    payment.ID,
		ReferenceTable: "payments",
		InvoiceNumber:  payment.InvoiceNumber,
		Notes:          notes,
	}
}

// LedgerLine is one row of a replayed customer ledger
type LedgerLine struct {
	Date        time.Time        `json:"date"`
	Type        LedgerEventType  `json:"type"`
	PaymentMode *PaymentMode     `json:"payment_mode"`
	Debit       *decimal.Decimal `json:"debit"`
	Credit      *decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal  `json:"balance"`
	Notes       string           `json:"notes"`
}

// Replay walks ledger events in chronological order accumulating the running
// balance: SALE adds to it, PAYMENT subtracts. The caller must supply events
// already ordered by (business_date, created_at).
func Replay(events []LedgerEvent) []LedgerLine {
	lines := make([]LedgerLine, 0, len(events))
	balance := decimal.Zero

	for _, e := range events {
		line := LedgerLine{
			Date:        e.CreatedAt,
			Type:        e.EventType,
			PaymentMode: e.PaymentMode,
			Notes:       e.Notes,
		}

		switch e.EventType {
		case LedgerEventSale:
			amount := e.Amount
			line.Debit = &amount
			balance = balance.Add(amount)
		case LedgerEventPayment:
			amount := e.Amount
			line.Credit = &amount
			balance = balance.Sub(amount)
		}

		line.Balance = balance.Round(2)
		lines = append(lines, line)
	}

	return lines
}

// ReplayBalance returns only the final running balance of an event stream
func ReplayBalance(events []LedgerEvent) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range events {
		switch e.EventType {
		case LedgerEventSale:
			balance = balance.Add(e.Amount)
		case LedgerEventPayment:
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}
