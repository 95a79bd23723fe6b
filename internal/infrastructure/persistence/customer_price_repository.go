package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dairyops/backend/internal/domain/catalog"
)

// GormCustomerProductPriceRepository implements CustomerProductPriceRepository using GORM
type GormCustomerProductPriceRepository struct {
	db *gorm.DB
}

// NewGormCustomerProductPriceRepository creates a new GormCustomerProductPriceRepository
func NewGormCustomerProductPriceRepository(db *gorm.DB) *GormCustomerProductPriceRepository {
	return &GormCustomerProductPriceRepository{db: db}
}

// Find finds the override for a customer-product combination.
// Returns (nil, nil) when no override exists.
func (r *GormCustomerProductPriceRepository) Find(ctx context.Context, customerID, productID uuid.UUID) (*catalog.CustomerProductPrice, error) {
	var price catalog.CustomerProductPrice
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

// FindByCustomer lists all overrides for a customer
func (r *GormCustomerProductPriceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]catalog.CustomerProductPrice, error) {
	var prices []catalog.CustomerProductPrice
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// Upsert inserts or replaces an override
func (r *GormCustomerProductPriceRepository) Upsert(ctx context.Context, price *catalog.CustomerProductPrice) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"custom_price", "updated_at",
		}),
	}).Create(price).Error
}

var _ catalog.CustomerProductPriceRepository = (*GormCustomerProductPriceRepository)(nil)
