package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dairyops/backend/internal/domain/dayops"
)

// GormStockShortageReasonRepository implements StockShortageReasonRepository using GORM
type GormStockShortageReasonRepository struct {
	db *gorm.DB
}

// NewGormStockShortageReasonRepository creates a new GormStockShortageReasonRepository
func NewGormStockShortageReasonRepository(db *gorm.DB) *GormStockShortageReasonRepository {
	return &GormStockShortageReasonRepository{db: db}
}

// Upsert inserts or overwrites the justification for a day-product.
// Resubmitting keeps the latest reason and shortage quantity.
func (r *GormStockShortageReasonRepository) Upsert(ctx context.Context, reason *dayops.StockShortageReason) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"shortage_qty", "reason", "entered_by", "updated_at",
		}),
	}).Create(reason).Error
}

// Exists reports whether a justification row exists for a day-product
func (r *GormStockShortageReasonRepository) Exists(ctx context.Context, dayID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&dayops.StockShortageReason{}).
		Where("day_id = ? AND product_id = ?", dayID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByDay finds all justifications for a day
func (r *GormStockShortageReasonRepository) FindByDay(ctx context.Context, dayID uuid.UUID) ([]dayops.StockShortageReason, error) {
	var reasons []dayops.StockShortageReason
	if err := r.db.WithContext(ctx).
		Where("day_id = ?", dayID).
		Find(&reasons).Error; err != nil {
		return nil, err
	}
	return reasons, nil
}

var _ dayops.StockShortageReasonRepository = (*GormStockShortageReasonRepository)(nil)
