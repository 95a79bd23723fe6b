package dayops

import (
	"time"

	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDailyBalance is the per-customer balance snapshot created when a day
// opens: opening_balance is carried over from the previous day's closing
// balance. The ledger event stream, not this snapshot, is the authoritative
// source of a customer's dues.
type CustomerDailyBalance struct {
	shared.BaseEntity
	BusinessDate   time.Time       `gorm:"type:date;not null;uniqueIndex:idx_daily_balance_date_customer,priority:1"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_daily_balance_date_customer,priority:2"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	ClosingBalance decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerDailyBalance) TableName() string {
	return "customer_daily_balance"
}

// NewCustomerDailyBalance seeds a balance snapshot for a date. The closing
// balance starts equal to the opening balance.
func NewCustomerDailyBalance(businessDate time.Time, customerID uuid.UUID, opening decimal.Decimal) (*CustomerDailyBalance, error) {
	if businessDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Business date cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &CustomerDailyBalance{
		BaseEntity:     shared.NewBaseEntity(),
		BusinessDate:   truncateToDate(businessDate),
		CustomerID:     customerID,
		OpeningBalance: opening,
		ClosingBalance: opening,
	}, nil
}
