package persistence

import (
	"context"

	"gorm.io/gorm"

	billingapp "github.com/dairyops/backend/internal/application/billing"
	dayopsapp "github.com/dairyops/backend/internal/application/dayops"
	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/dayops"
)

// gormTransactionalRepositories provides repositories bound to a single
// transaction. One struct serves both the day-lifecycle and billing scope
// interfaces; each sees only the accessors it declares.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Days() dayops.BusinessDayRepository {
	return NewGormBusinessDayRepository(r.tx)
}

func (r *gormTransactionalRepositories) Stocks() dayops.ProductDailyStockRepository {
	return NewGormProductDailyStockRepository(r.tx)
}

func (r *gormTransactionalRepositories) Shortages() dayops.StockShortageReasonRepository {
	return NewGormStockShortageReasonRepository(r.tx)
}

func (r *gormTransactionalRepositories) Balances() dayops.CustomerDailyBalanceRepository {
	return NewGormCustomerDailyBalanceRepository(r.tx)
}

func (r *gormTransactionalRepositories) Invoices() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sales() billing.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) Payments() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormTransactionalRepositories) LedgerEvents() billing.LedgerEventRepository {
	return NewGormLedgerEventRepository(r.tx)
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Customers() catalog.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormTransactionalRepositories) CustomerPrices() catalog.CustomerProductPriceRepository {
	return NewGormCustomerProductPriceRepository(r.tx)
}

// GormDayTransactionScope implements the day-lifecycle TransactionScope
// using GORM transactions
type GormDayTransactionScope struct {
	db *gorm.DB
}

// NewGormDayTransactionScope creates a new GormDayTransactionScope
func NewGormDayTransactionScope(db *gorm.DB) *GormDayTransactionScope {
	return &GormDayTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormDayTransactionScope) Execute(ctx context.Context, fn func(repos dayopsapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormBillingTransactionScope implements the billing TransactionScope
// using GORM transactions
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos billingapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

var _ dayopsapp.TransactionScope = (*GormDayTransactionScope)(nil)
var _ billingapp.TransactionScope = (*GormBillingTransactionScope)(nil)
var _ dayopsapp.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
var _ billingapp.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
