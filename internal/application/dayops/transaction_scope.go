package dayops

import (
	"context"

	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/dayops"
)

// TransactionScope provides transactional access to the repositories the day
// lifecycle needs. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and commit
// or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories used by the
// day lifecycle, stock entry and shortage justification services. All
// repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	// Days returns the business day repository scoped to the current transaction
	Days() dayops.BusinessDayRepository
	// Stocks returns the daily stock repository scoped to the current transaction
	Stocks() dayops.ProductDailyStockRepository
	// Shortages returns the shortage justification repository scoped to the current transaction
	Shortages() dayops.StockShortageReasonRepository
	// Balances returns the daily balance snapshot repository scoped to the current transaction
	Balances() dayops.CustomerDailyBalanceRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Customers returns the customer repository scoped to the current transaction
	Customers() catalog.CustomerRepository
	// Sales returns the sale repository scoped to the current transaction
	Sales() billing.SaleRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing against repositories that manage their own
// connections.
type NoOpTransactionScope struct {
	days      dayops.BusinessDayRepository
	stocks    dayops.ProductDailyStockRepository
	shortages dayops.StockShortageReasonRepository
	balances  dayops.CustomerDailyBalanceRepository
	products  catalog.ProductRepository
	customers catalog.CustomerRepository
	sales     billing.SaleRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	days dayops.BusinessDayRepository,
	stocks dayops.ProductDailyStockRepository,
	shortages dayops.StockShortageReasonRepository,
	balances dayops.CustomerDailyBalanceRepository,
	products catalog.ProductRepository,
	customers catalog.CustomerRepository,
	sales billing.SaleRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		days:      days,
		stocks:    stocks,
		shortages: shortages,
		balances:  balances,
		products:  products,
		customers: customers,
		sales:     sales,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Days returns the business day repository.
func (s *NoOpTransactionScope) Days() dayops.BusinessDayRepository { return s.days }

// Stocks returns the daily stock repository.
func (s *NoOpTransactionScope) Stocks() dayops.ProductDailyStockRepository { return s.stocks }

// Shortages returns the shortage justification repository.
func (s *NoOpTransactionScope) Shortages() dayops.StockShortageReasonRepository { return s.shortages }

// Balances returns the daily balance snapshot repository.
func (s *NoOpTransactionScope) Balances() dayops.CustomerDailyBalanceRepository { return s.balances }

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.products }

// Customers returns the customer repository.
func (s *NoOpTransactionScope) Customers() catalog.CustomerRepository { return s.customers }

// Sales returns the sale repository.
func (s *NoOpTransactionScope) Sales() billing.SaleRepository { return s.sales }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
