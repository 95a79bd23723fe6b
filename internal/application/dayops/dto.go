package dayops

import (
	"time"

	"github.com/dairyops/backend/internal/domain/dayops"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Close gate outcomes. A close request either transitions the day or is
// rejected with a structured payload naming the blocking products.
const (
	CloseResultClosed                = "CLOSED"
	CloseResultIncompleteStock       = "INCOMPLETE_STOCK"
	CloseResultJustificationRequired = "JUSTIFICATION_REQUIRED"
)

// DayResponse represents a business day in responses
type DayResponse struct {
	ID           uuid.UUID  `json:"id"`
	BusinessDate string     `json:"business_date"`
	Status       string     `json:"status"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	LockedAt     *time.Time `json:"locked_at,omitempty"`
}

// DayStatusResponse is the answer to "what is today's status"
type DayStatusResponse struct {
	BusinessDate string       `json:"business_date"`
	Status       string       `json:"status"`
	HasDayRecord bool         `json:"has_day_record"`
	Day          *DayResponse `json:"day,omitempty"`
}

// BlockingProduct names a product preventing day close
type BlockingProduct struct {
	ProductID   uuid.UUID        `json:"product_id"`
	ProductName string           `json:"product_name"`
	Missing     string           `json:"missing,omitempty"`
	Shortage    *decimal.Decimal `json:"shortage,omitempty"`
}

// CloseDayResult is the structured outcome of a close request
type CloseDayResult struct {
	Status   string            `json:"status"`
	Day      *DayResponse      `json:"day,omitempty"`
	Products []BlockingProduct `json:"products,omitempty"`
}

// RecordMorningRequest represents the morning stock entry payload
type RecordMorningRequest struct {
	ProductID         uuid.UUID       `json:"product_id" binding:"required"`
	PlantLoadQty      decimal.Decimal `json:"plant_load_qty"`
	CounterOpeningQty decimal.Decimal `json:"counter_opening_qty"`
}

// RecordClosingRequest represents the closing stock entry payload
type RecordClosingRequest struct {
	ProductID          uuid.UUID       `json:"product_id" binding:"required"`
	CounterClosingQty  decimal.Decimal `json:"counter_closing_qty"`
	ReturnedToPlantQty decimal.Decimal `json:"returned_to_plant_qty"`
}

// JustifyShortageRequest represents a shortage justification payload
type JustifyShortageRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Reason    string    `json:"reason" binding:"required"`
}

// StockRowResponse represents one product's stock row for the entry screens
type StockRowResponse struct {
	ProductID          uuid.UUID        `json:"product_id"`
	ProductName        string           `json:"product_name"`
	Unit               string           `json:"unit"`
	PrevCounterClosing decimal.Decimal  `json:"prev_counter_closing"`
	PlantLoadQty       *decimal.Decimal `json:"plant_load_qty"`
	CounterOpeningQty  *decimal.Decimal `json:"counter_opening_qty"`
	CounterClosingQty  *decimal.Decimal `json:"counter_closing_qty"`
	ReturnedToPlantQty *decimal.Decimal `json:"returned_to_plant_qty"`
	MorningComplete    bool             `json:"morning_complete"`
	ClosingComplete    bool             `json:"closing_complete"`
}

// AvailabilityResponse reports how much of a product can still be sold today
type AvailabilityResponse struct {
	ProductID          uuid.UUID       `json:"product_id"`
	PrevCounterClosing decimal.Decimal `json:"prev_counter_closing"`
	PlantLoad          decimal.Decimal `json:"plant_load"`
	CounterOpening     decimal.Decimal `json:"counter_opening"`
	Sold               decimal.Decimal `json:"sold"`
	Available          decimal.Decimal `json:"available"`
}

// ReconciliationRow is one product's end-of-day reconciliation view
type ReconciliationRow struct {
	ProductID          uuid.UUID       `json:"product_id"`
	ProductName        string          `json:"product_name"`
	PrevCounterClosing decimal.Decimal `json:"prev_counter_closing"`
	PlantLoad          decimal.Decimal `json:"plant_load"`
	TotalOpening       decimal.Decimal `json:"total_opening"`
	CounterOpening     decimal.Decimal `json:"counter_opening"`
	Sold               decimal.Decimal `json:"sold"`
	CounterClosing     decimal.Decimal `json:"counter_closing"`
	Returned           decimal.Decimal `json:"returned"`
	Shortage           decimal.Decimal `json:"shortage"`
	HasShortage        bool            `json:"has_shortage"`
	Justified          bool            `json:"justified"`
	Reason             string          `json:"reason,omitempty"`
	MorningComplete    bool            `json:"morning_complete"`
	ClosingComplete    bool            `json:"closing_complete"`
}

// JustificationResponse represents a stored shortage justification
type JustificationResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ShortageQty decimal.Decimal `json:"shortage_qty"`
	Reason      string          `json:"reason"`
}

func toDayResponse(day *dayops.BusinessDay) *DayResponse {
	if day == nil {
		return nil
	}
	return &DayResponse{
		ID:           day.ID,
		BusinessDate: day.BusinessDate.Format("2006-01-02"),
		Status:       day.Status.String(),
		ClosedAt:     day.ClosedAt,
		LockedAt:     day.LockedAt,
	}
}
