package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingapp "github.com/dairyops/backend/internal/application/billing"
	dayopsapp "github.com/dairyops/backend/internal/application/dayops"
	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/dayops"
)

func TestGormDayTransactionScope_Commit(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormDayTransactionScope(db)
	ctx := context.Background()

	err := scope.Execute(ctx, func(repos dayopsapp.TransactionalRepositories) error {
		day, err := dayops.NewBusinessDay(date(2026, time.March, 10))
		if err != nil {
			return err
		}
		return repos.Days().Create(ctx, day)
	})
	require.NoError(t, err)

	found, err := NewGormBusinessDayRepository(db).FindOpen(ctx)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestGormDayTransactionScope_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormDayTransactionScope(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := scope.Execute(ctx, func(repos dayopsapp.TransactionalRepositories) error {
		day, createErr := dayops.NewBusinessDay(date(2026, time.March, 10))
		if createErr != nil {
			return createErr
		}
		if createErr := repos.Days().Create(ctx, day); createErr != nil {
			return createErr
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	found, err := NewGormBusinessDayRepository(db).FindOpen(ctx)
	require.NoError(t, err)
	assert.Nil(t, found, "insert must roll back with the failed transaction")
}

func TestGormBillingTransactionScope_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormBillingTransactionScope(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := scope.Execute(ctx, func(repos billingapp.TransactionalRepositories) error {
		invoice, createErr := billing.NewInvoice("INV-20260310-0001", uuid.New(), uuid.New(), date(2026, time.March, 10), nil)
		if createErr != nil {
			return createErr
		}
		if createErr := repos.Invoices().Create(ctx, invoice); createErr != nil {
			return createErr
		}
		sale, createErr := billing.NewSale(invoice.DayID, invoice.CustomerID, uuid.New(), invoice.BusinessDate,
			decimal.NewFromInt(2), decimal.RequireFromString("60"), invoice.Number)
		if createErr != nil {
			return createErr
		}
		if createErr := repos.Sales().Create(ctx, sale); createErr != nil {
			return createErr
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	invoice, err := NewGormInvoiceRepository(db).FindByNumber(ctx, "INV-20260310-0001")
	require.NoError(t, err)
	assert.Nil(t, invoice)

	sales, err := NewGormSaleRepository(db).FindByInvoice(ctx, "INV-20260310-0001")
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestGormBillingTransactionScope_CommitWritesAllRows(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormBillingTransactionScope(db)
	ctx := context.Background()

	err := scope.Execute(ctx, func(repos billingapp.TransactionalRepositories) error {
		invoice, err := billing.NewInvoice("INV-20260310-0001", uuid.New(), uuid.New(), date(2026, time.March, 10), nil)
		if err != nil {
			return err
		}
		if err := repos.Invoices().Create(ctx, invoice); err != nil {
			return err
		}
		payment, err := billing.NewPayment(invoice.DayID, invoice.CustomerID, billing.PaymentModeCash,
			decimal.RequireFromString("100"), &invoice.Number)
		if err != nil {
			return err
		}
		if err := repos.Payments().Create(ctx, payment); err != nil {
			return err
		}
		return repos.LedgerEvents().Append(ctx, billing.NewPaymentEvent(payment, invoice.BusinessDate, ""))
	})
	require.NoError(t, err)

	payments, err := NewGormPaymentRepository(db).FindByInvoice(ctx, "INV-20260310-0001")
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	balance, err := NewGormLedgerEventRepository(db).BalanceByCustomer(ctx, payments[0].CustomerID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-100").Equal(balance))
}
