package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dairyops/backend/internal/domain/dayops"
)

// GormCustomerDailyBalanceRepository implements CustomerDailyBalanceRepository using GORM
type GormCustomerDailyBalanceRepository struct {
	db *gorm.DB
}

// NewGormCustomerDailyBalanceRepository creates a new GormCustomerDailyBalanceRepository
func NewGormCustomerDailyBalanceRepository(db *gorm.DB) *GormCustomerDailyBalanceRepository {
	return &GormCustomerDailyBalanceRepository{db: db}
}

// SeedIgnoreConflict inserts a snapshot, silently skipping rows that already
// exist so that day-open retries stay idempotent
func (r *GormCustomerDailyBalanceRepository) SeedIgnoreConflict(ctx context.Context, balance *dayops.CustomerDailyBalance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_date"}, {Name: "customer_id"}},
		DoNothing: true,
	}).Create(balance).Error
}

// FindByDateAndCustomer finds a snapshot row.
// Returns (nil, nil) when no snapshot exists for the date.
func (r *GormCustomerDailyBalanceRepository) FindByDateAndCustomer(ctx context.Context, date time.Time, customerID uuid.UUID) (*dayops.CustomerDailyBalance, error) {
	var balance dayops.CustomerDailyBalance
	if err := r.db.WithContext(ctx).
		Where("business_date = ? AND customer_id = ?", date, customerID).
		First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &balance, nil
}

var _ dayops.CustomerDailyBalanceRepository = (*GormCustomerDailyBalanceRepository)(nil)
