package billing

import (
	"context"

	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/dayops"
)

// TransactionScope provides transactional access to the repositories billing
// needs. Everything inside one Execute call commits or rolls back atomically;
// quick billing in particular writes invoice, sales, payments and ledger
// events as a single unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories used by the
// billing services. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Days returns the business day repository scoped to the current transaction
	Days() dayops.BusinessDayRepository
	// Stocks returns the daily stock repository scoped to the current transaction
	Stocks() dayops.ProductDailyStockRepository
	// Invoices returns the invoice repository scoped to the current transaction
	Invoices() billing.InvoiceRepository
	// Sales returns the sale repository scoped to the current transaction
	Sales() billing.SaleRepository
	// Payments returns the payment repository scoped to the current transaction
	Payments() billing.PaymentRepository
	// LedgerEvents returns the ledger event repository scoped to the current transaction
	LedgerEvents() billing.LedgerEventRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Customers returns the customer repository scoped to the current transaction
	Customers() catalog.CustomerRepository
	// CustomerPrices returns the price override repository scoped to the current transaction
	CustomerPrices() catalog.CustomerProductPriceRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing against repositories that manage their own
// connections.
type NoOpTransactionScope struct {
	days           dayops.BusinessDayRepository
	stocks         dayops.ProductDailyStockRepository
	invoices       billing.InvoiceRepository
	sales          billing.SaleRepository
	payments       billing.PaymentRepository
	ledgerEvents   billing.LedgerEventRepository
	products       catalog.ProductRepository
	customers      catalog.CustomerRepository
	customerPrices catalog.CustomerProductPriceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	days dayops.BusinessDayRepository,
	stocks dayops.ProductDailyStockRepository,
	invoices billing.InvoiceRepository,
	sales billing.SaleRepository,
	payments billing.PaymentRepository,
	ledgerEvents billing.LedgerEventRepository,
	products catalog.ProductRepository,
	customers catalog.CustomerRepository,
	customerPrices catalog.CustomerProductPriceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		days:           days,
		stocks:         stocks,
		invoices:       invoices,
		sales:          sales,
		payments:       payments,
		ledgerEvents:   ledgerEvents,
		products:       products,
		customers:      customers,
		customerPrices: customerPrices,
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

// Invoices returns the invoice repository.
func (s *NoOpTransactionScope) Invoices() billing.InvoiceRepository { return s.invoices }

// Sales returns the sale repository.
func (s *NoOpTransactionScope) Sales() billing.SaleRepository { return s.sales }

// Payments returns the payment repository.
func (s *NoOpTransactionScope) Payments() billing.PaymentRepository { return s.payments }

// LedgerEvents returns the ledger event repository.
func (s *NoOpTransactionScope) LedgerEvents() billing.LedgerEventRepository { return s.ledgerEvents }

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.products }

// Customers returns the customer repository.
func (s *NoOpTransactionScope) Customers() catalog.CustomerRepository { return s.customers }

// CustomerPrices returns the price override repository.
func (s *NoOpTransactionScope) CustomerPrices() catalog.CustomerProductPriceRepository {
	return s.customerPrices
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
