package dayops

import (
	"time"

	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDailyStock tracks the stock counters for one product on one business day.
// The row is filled in two write-once phases: the morning phase sets
// plant_load_qty and counter_opening_qty together, the closing phase sets
// counter_closing_qty and returned_to_plant_qty together. Once a phase is
// complete its fields never change.
type ProductDailyStock struct {
	shared.BaseEntity
	DayID              uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_daily_stock_day_product,priority:1"`
	ProductID          uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_daily_stock_day_product,priority:2"`
	PlantLoadQty       *decimal.Decimal `gorm:"type:decimal(14,3)"`
	CounterOpeningQty  *decimal.Decimal `gorm:"type:decimal(14,3)"`
	CounterClosingQty  *decimal.Decimal `gorm:"type:decimal(14,3)"`
	ReturnedToPlantQty *decimal.Decimal `gorm:"type:decimal(14,3)"`
	EnteredBy          *uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ProductDailyStock) TableName() string {
	return "daily_product_stock"
}

// NewProductDailyStock creates an empty stock row for a day-product combination
func NewProductDailyStock(dayID, productID uuid.UUID) (*ProductDailyStock, error) {
	if dayID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DAY", "Day ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &ProductDailyStock{
		BaseEntity: shared.NewBaseEntity(),
		DayID:      dayID,
		ProductID:  productID,
	}, nil
}

// MorningComplete reports whether both morning-phase fields are set
func (s *ProductDailyStock) MorningComplete() bool {
	return s.PlantLoadQty != nil && s.CounterOpeningQty != nil
}

// ClosingComplete reports whether both closing-phase fields are set
func (s *ProductDailyStock) ClosingComplete() bool {
	return s.CounterClosingQty != nil && s.ReturnedToPlantQty != nil
}

// RecordMorning sets the morning-phase quantities. prevClosing is the product's
// counter_closing_qty from the most recent CLOSED day (zero if none): the
// counter cannot open with more stock than the plant load plus what was left
// on the counter the previous evening.
func (s *ProductDailyStock) RecordMorning(plantLoad, counterOpening, prevClosing decimal.Decimal, enteredBy uuid.UUID) error {
	if s.MorningComplete() {
		return shared.NewDomainError("MORNING_ALREADY_COMPLETED", "Morning stock already completed for this product")
	}
	if plantLoad.IsNegative() || counterOpening.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Invalid morning quantities")
	}
	if counterOpening.GreaterThan(plantLoad.Add(prevClosing)) {
		return shared.NewDomainError("COUNTER_OPENING_EXCEEDED", "Counter opening exceeds total opening stock")
	}

	s.PlantLoadQty = &plantLoad
	s.CounterOpeningQty = &counterOpening
	s.EnteredBy = &enteredBy
	s.UpdatedAt = time.Now()

	return nil
}

// RecordClosing sets the closing-phase quantities. The morning phase must be
// complete first, and the closing phase is itself write-once.
func (s *ProductDailyStock) RecordClosing(counterClosing, returned decimal.Decimal, enteredBy uuid.UUID) error {
	if !s.MorningComplete() {
		return shared.NewDomainError("MORNING_NOT_COMPLETED", "Morning stock not completed for this product")
	}
	if s.ClosingComplete() {
		return shared.NewDomainError("CLOSING_ALREADY_COMPLETED", "Closing stock already completed for this product")
	}
	if counterClosing.IsNegative() || returned.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Invalid closing quantities")
	}

	s.CounterClosingQty = &counterClosing
	s.ReturnedToPlantQty = &returned
	s.EnteredBy = &enteredBy
	s.UpdatedAt = time.Now()

	return nil
}

// StockComplete reports whether every counter needed for reconciliation is set
func (s *ProductDailyStock) StockComplete() bool {
	return s.PlantLoadQty != nil && s.CounterClosingQty != nil && s.ReturnedToPlantQty != nil
}

// ComputeShortage returns the unexplained stock discrepancy for a product's day:
//
//	shortage = plant_load - sold - counter_closing - returned_to_plant
//
// Zero means the product reconciles. This is the single authoritative formula
// shared by the reconciliation view, the close-day gate and the shortage
// justification recorder.
func ComputeShortage(s *ProductDailyStock, soldQty decimal.Decimal) decimal.Decimal {
	return qtyOrZero(s.PlantLoadQty).
		Sub(soldQty).
		Sub(qtyOrZero(s.CounterClosingQty)).
		Sub(qtyOrZero(s.ReturnedToPlantQty))
}

// AvailableQuantity derives the sellable quantity for the day:
//
//	totalOpening = prevClosing + plant_load
//	available    = max(0, totalOpening - counter_opening - sold)
func AvailableQuantity(s *ProductDailyStock, prevClosing, soldQty decimal.Decimal) decimal.Decimal {
	totalOpening := prevClosing.Add(qtyOrZero(s.PlantLoadQty))
	available := totalOpening.Sub(qtyOrZero(s.CounterOpeningQty)).Sub(soldQty)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

func qtyOrZero(q *decimal.Decimal) decimal.Decimal {
	if q == nil {
		return decimal.Zero
	}
	return *q
}
