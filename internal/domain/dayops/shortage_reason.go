package dayops

import (
	"strings"

	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockShortageReason captures the human justification required before a day
// with a nonzero shortage may close. One row per (day, product); resubmitting
// overwrites the previous justification.
type StockShortageReason struct {
	shared.BaseEntity
	DayID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_shortage_reason_day_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_shortage_reason_day_product,priority:2"`
	ShortageQty decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Reason      string          `gorm:"type:text;not null"`
	EnteredBy   uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (StockShortageReason) TableName() string {
	return "stock_shortage_reasons"
}

// NewStockShortageReason creates a justification record. The shortage quantity
// must be recomputed server-side by the caller, never taken from client input.
func NewStockShortageReason(dayID, productID uuid.UUID, shortageQty decimal.Decimal, reason string, enteredBy uuid.UUID) (*StockShortageReason, error) {
	if dayID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DAY", "Day ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Shortage reason is required")
	}

	return &StockShortageReason{
		BaseEntity:  shared.NewBaseEntity(),
		DayID:       dayID,
		ProductID:   productID,
		ShortageQty: shortageQty,
		Reason:      strings.TrimSpace(reason),
		EnteredBy:   enteredBy,
	}, nil
}
