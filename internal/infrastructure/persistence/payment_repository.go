package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dairyops/backend/internal/domain/billing"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts an immutable payment leg
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByInvoice finds all payment legs for an invoice
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, invoiceNumber string) ([]billing.Payment, error) {
	var payments []billing.Payment
	if err := r.db.WithContext(ctx).
		Where("invoice_number = ?", invoiceNumber).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// SumByDayAndMode sums collected amount for a day broken down by mode
func (r *GormPaymentRepository) SumByDayAndMode(ctx context.Context, dayID uuid.UUID) (map[billing.PaymentMode]decimal.Decimal, error) {
	var rows []struct {
		Mode  billing.PaymentMode
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.Payment{}).
		Select("mode, SUM(amount) AS total").
		Where("day_id = ?", dayID).
		Group("mode").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	totals := make(map[billing.PaymentMode]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Mode] = row.Total
	}
	return totals, nil
}

var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
