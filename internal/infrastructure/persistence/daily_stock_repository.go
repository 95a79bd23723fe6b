package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dairyops/backend/internal/domain/dayops"
)

// GormProductDailyStockRepository implements ProductDailyStockRepository using GORM
type GormProductDailyStockRepository struct {
	db *gorm.DB
}

// NewGormProductDailyStockRepository creates a new GormProductDailyStockRepository
func NewGormProductDailyStockRepository(db *gorm.DB) *GormProductDailyStockRepository {
	return &GormProductDailyStockRepository{db: db}
}

// Find finds the stock row for a day-product combination.
// Returns (nil, nil) when no row has been entered yet.
func (r *GormProductDailyStockRepository) Find(ctx context.Context, dayID, productID uuid.UUID) (*dayops.ProductDailyStock, error) {
	var stock dayops.ProductDailyStock
	if err := r.db.WithContext(ctx).
		Where("day_id = ? AND product_id = ?", dayID, productID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

// FindForUpdate finds the stock row holding a row-level lock until the
// surrounding transaction ends. SQLite serializes writers on the database
// file and rejects FOR UPDATE, so the lock clause is applied on Postgres only.
func (r *GormProductDailyStockRepository) FindForUpdate(ctx context.Context, dayID, productID uuid.UUID) (*dayops.ProductDailyStock, error) {
	tx := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var stock dayops.ProductDailyStock
	if err := tx.
		Where("day_id = ? AND product_id = ?", dayID, productID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

// FindByDay finds all stock rows for a day
func (r *GormProductDailyStockRepository) FindByDay(ctx context.Context, dayID uuid.UUID) ([]dayops.ProductDailyStock, error) {
	var stocks []dayops.ProductDailyStock
	if err := r.db.WithContext(ctx).
		Where("day_id = ?", dayID).
		Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// PrevCounterClosing returns the product's counter closing quantity from the
// most recent settled (CLOSED or LOCKED) day before the given date, or zero
// if the product has no prior settled entry.
func (r *GormProductDailyStockRepository) PrevCounterClosing(ctx context.Context, productID uuid.UUID, before time.Time) (decimal.Decimal, error) {
	var stock dayops.ProductDailyStock
	err := r.db.WithContext(ctx).
		Joins("JOIN day_status ON day_status.id = daily_product_stock.day_id").
		Where("daily_product_stock.product_id = ?", productID).
		Where("day_status.status IN ?", []dayops.DayStatus{dayops.DayStatusClosed, dayops.DayStatusLocked}).
		Where("day_status.business_date < ?", before).
		Order("day_status.business_date DESC").
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	if stock.CounterClosingQty == nil {
		return decimal.Zero, nil
	}
	return *stock.CounterClosingQty, nil
}

// Save creates or updates a stock row
func (r *GormProductDailyStockRepository) Save(ctx context.Context, stock *dayops.ProductDailyStock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

var _ dayops.ProductDailyStockRepository = (*GormProductDailyStockRepository)(nil)
