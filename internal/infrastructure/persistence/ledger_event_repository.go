package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dairyops/backend/internal/domain/billing"
)

// GormLedgerEventRepository implements LedgerEventRepository using GORM
type GormLedgerEventRepository struct {
	db *gorm.DB
}

// NewGormLedgerEventRepository creates a new GormLedgerEventRepository
func NewGormLedgerEventRepository(db *gorm.DB) *GormLedgerEventRepository {
	return &GormLedgerEventRepository{db: db}
}

// Append inserts a new ledger event. Events are never updated or deleted.
func (r *GormLedgerEventRepository) Append(ctx context.Context, event *billing.LedgerEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByCustomer finds a customer's events in ledger order
func (r *GormLedgerEventRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]billing.LedgerEvent, error) {
	var events []billing.LedgerEvent
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("business_date ASC, created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// BalanceByCustomer computes the customer's running balance in SQL.
// SALE events add to the balance, PAYMENT events subtract.
func (r *GormLedgerEventRepository) BalanceByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&billing.LedgerEvent{}).
		Select("SUM(CASE WHEN event_type = ? THEN amount ELSE -amount END)", billing.LedgerEventSale).
		Where("customer_id = ?", customerID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// BalancesByCustomer computes every customer's running balance
func (r *GormLedgerEventRepository) BalancesByCustomer(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []struct {
		CustomerID uuid.UUID
		Total      decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.LedgerEvent{}).
		Select("customer_id, SUM(CASE WHEN event_type = ? THEN amount ELSE -amount END) AS total", billing.LedgerEventSale).
		Group("customer_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	balances := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		balances[row.CustomerID] = row.Total
	}
	return balances, nil
}

var _ billing.LedgerEventRepository = (*GormLedgerEventRepository)(nil)
