package billing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingapp "github.com/dairyops/backend/internal/application/billing"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/dairyops/backend/internal/infrastructure/persistence"
)

func TestLedgerService_ReplaysSalesAndPayments(t *testing.T) {
	f := newBillingFixture(t)
	day := f.openDay(t)
	product := f.createProduct(t, "Toned Milk", price(26))
	customer := f.createCustomer(t, "Ravi Tea Stall", "9800000001")
	f.stockMorning(t, day.ID, product.ID, 100)

	svc := billingapp.NewLedgerService(
		persistence.NewGormLedgerEventRepository(f.db),
		persistence.NewGormCustomerRepository(f.db),
	)

	_, err := f.billing.QuickBilling(context.Background(), f.actor, billingapp.QuickBillingRequest{
		CustomerID: customer.ID,
		Items: []billingapp.BillingItem{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(10)},
		},
		CashAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	ledger, err := svc.CustomerLedger(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Tea Stall", ledger.CustomerName)
	require.Len(t, ledger.Lines, 2)
	// 260 sale minus 100 cash
	assert.True(t, ledger.Balance.Equal(decimal.NewFromInt(160)))

	balance, err := svc.CustomerBalance(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(decimal.NewFromInt(160)))
}

func TestLedgerService_UnknownCustomer(t *testing.T) {
	f := newBillingFixture(t)

	svc := billingapp.NewLedgerService(
		persistence.NewGormLedgerEventRepository(f.db),
		persistence.NewGormCustomerRepository(f.db),
	)

	_, err := svc.CustomerLedger(context.Background(), uuid.New())
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", domainErr.Code)
}

func TestLedgerService_EmptyLedgerIsZero(t *testing.T) {
	f := newBillingFixture(t)
	customer := f.createCustomer(t, "New Shop", "9800000009")

	svc := billingapp.NewLedgerService(
		persistence.NewGormLedgerEventRepository(f.db),
		persistence.NewGormCustomerRepository(f.db),
	)

	ledger, err := svc.CustomerLedger(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Empty(t, ledger.Lines)
	assert.True(t, ledger.Balance.IsZero())
}

func TestInvoiceService_GetAndList(t *testing.T) {
	f := newBillingFixture(t)
	day := f.openDay(t)
	product := f.createProduct(t, "Toned Milk", price(26))
	customer := f.createCustomer(t, "Ravi Tea Stall", "9800000001")
	f.stockMorning(t, day.ID, product.ID, 100)

	svc := billingapp.NewInvoiceService(
		persistence.NewGormInvoiceRepository(f.db),
		persistence.NewGormSaleRepository(f.db),
		persistence.NewGormPaymentRepository(f.db),
		persistence.NewGormProductRepository(f.db),
	)

	billed, err := f.billing.QuickBilling(context.Background(), f.actor, billingapp.QuickBillingRequest{
		CustomerID: customer.ID,
		Items: []billingapp.BillingItem{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5)},
		},
		CashAmount: decimal.NewFromInt(130),
	})
	require.NoError(t, err)

	invoice, err := svc.Get(context.Background(), billed.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, billed.InvoiceNumber, invoice.InvoiceNumber)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "Toned Milk", invoice.Items[0].ProductName)
	require.Len(t, invoice.Payments, 1)
	assert.Equal(t, "cash", invoice.Payments[0].Mode)
	assert.True(t, invoice.Due.IsZero())

	list, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, billed.InvoiceNumber, list[0].InvoiceNumber)
}

func TestInvoiceService_GetUnknownNumber(t *testing.T) {
	f := newBillingFixture(t)

	svc := billingapp.NewInvoiceService(
		persistence.NewGormInvoiceRepository(f.db),
		persistence.NewGormSaleRepository(f.db),
		persistence.NewGormPaymentRepository(f.db),
		persistence.NewGormProductRepository(f.db),
	)

	_, err := svc.Get(context.Background(), "INV-20260310-9999")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVOICE_NOT_FOUND", domainErr.Code)
}
