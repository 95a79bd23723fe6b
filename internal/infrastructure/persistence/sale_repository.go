package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dairyops/backend/internal/domain/billing"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Create inserts an immutable sale line
func (r *GormSaleRepository) Create(ctx context.Context, sale *billing.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByInvoice finds all sale lines for an invoice
func (r *GormSaleRepository) FindByInvoice(ctx context.Context, invoiceNumber string) ([]billing.Sale, error) {
	var sales []billing.Sale
	if err := r.db.WithContext(ctx).
		Where("invoice_number = ?", invoiceNumber).
		Order("created_at ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// SumQuantityByDayAndProduct sums sold quantity for a product on a day
func (r *GormSaleRepository) SumQuantityByDayAndProduct(ctx context.Context, dayID, productID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&billing.Sale{}).
		Select("SUM(quantity)").
		Where("day_id = ? AND product_id = ?", dayID, productID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumQuantityByDay sums sold quantity per product for a day
func (r *GormSaleRepository) SumQuantityByDay(ctx context.Context, dayID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []struct {
		ProductID uuid.UUID
		Total     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.Sale{}).
		Select("product_id, SUM(quantity) AS total").
		Where("day_id = ?", dayID).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.ProductID] = row.Total
	}
	return totals, nil
}

// SumAmountByDay sums total sales amount for a day
func (r *GormSaleRepository) SumAmountByDay(ctx context.Context, dayID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&billing.Sale{}).
		Select("SUM(amount)").
		Where("day_id = ?", dayID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// CountDistinctCustomersByDate counts customers billed on a date
func (r *GormSaleRepository) CountDistinctCustomersByDate(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Sale{}).
		Where("business_date = ?", date).
		Distinct("customer_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ billing.SaleRepository = (*GormSaleRepository)(nil)
