package dayops

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessDayRepository defines the interface for business day persistence
type BusinessDayRepository interface {
	// FindByDate finds the day row for a calendar date
	FindByDate(ctx context.Context, date time.Time) (*BusinessDay, error)

	// FindOpen finds the single OPEN day, if any
	FindOpen(ctx context.Context) (*BusinessDay, error)

	// FindLatest finds the most recent day regardless of status
	FindLatest(ctx context.Context) (*BusinessDay, error)

	// FindLatestClosed finds the most recent CLOSED day
	FindLatestClosed(ctx context.Context) (*BusinessDay, error)

	// FindLatestClosedBefore finds the most recent CLOSED day strictly before a date
	FindLatestClosedBefore(ctx context.Context, date time.Time) (*BusinessDay, error)

	// Create inserts a new day row; fails if a row for the date exists
	Create(ctx context.Context, day *BusinessDay) error

	// Save persists status transitions
	Save(ctx context.Context, day *BusinessDay) error
}

// ProductDailyStockRepository defines the interface for daily stock persistence
type ProductDailyStockRepository interface {
	// Find finds the stock row for a day-product combination
	Find(ctx context.Context, dayID, productID uuid.UUID) (*ProductDailyStock, error)

	// FindForUpdate finds the stock row holding a row-level lock for the
	// duration of the surrounding transaction. Concurrent submissions for the
	// same day-product must serialize on this lock.
	FindForUpdate(ctx context.Context, dayID, productID uuid.UUID) (*ProductDailyStock, error)

	// FindByDay finds all stock rows for a day
	FindByDay(ctx context.Context, dayID uuid.UUID) ([]ProductDailyStock, error)

	// PrevCounterClosing returns the product's counter_closing_qty from the
	// most recent CLOSED day before the given date, or zero if none exists
	PrevCounterClosing(ctx context.Context, productID uuid.UUID, before time.Time) (decimal.Decimal, error)

	// Save creates or updates a stock row
	Save(ctx context.Context, stock *ProductDailyStock) error
}

// StockShortageReasonRepository defines the interface for shortage justifications
type StockShortageReasonRepository interface {
	// Upsert inserts or overwrites the justification for a day-product
	Upsert(ctx context.Context, reason *StockShortageReason) error

	// Exists reports whether a justification row exists for a day-product
	Exists(ctx context.Context, dayID, productID uuid.UUID) (bool, error)

	// FindByDay finds all justifications for a day
	FindByDay(ctx context.Context, dayID uuid.UUID) ([]StockShortageReason, error)
}

// CustomerDailyBalanceRepository defines the interface for balance snapshots
type CustomerDailyBalanceRepository interface {
	// SeedIgnoreConflict inserts a snapshot, silently skipping rows that
	// already exist so that day-open retries stay idempotent
	SeedIgnoreConflict(ctx context.Context, balance *CustomerDailyBalance) error

	// FindByDateAndCustomer finds a snapshot row
	FindByDateAndCustomer(ctx context.Context, date time.Time, customerID uuid.UUID) (*CustomerDailyBalance, error)
}
