package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairyops/backend/internal/domain/billing"
)

func mustPayment(t *testing.T, repo *GormPaymentRepository, dayID uuid.UUID, mode billing.PaymentMode, amount string, invoiceNumber *string) {
	t.Helper()

	payment, err := billing.NewPayment(dayID, uuid.New(), mode, decimal.RequireFromString(amount), invoiceNumber)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), payment))
}

func TestGormPaymentRepository_SumByDayAndMode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)

	dayID := uuid.New()
	invoice := "INV-20260310-0001"
	mustPayment(t, repo, dayID, billing.PaymentModeCash, "200.00", &invoice)
	mustPayment(t, repo, dayID, billing.PaymentModeCash, "50.00", nil)
	mustPayment(t, repo, dayID, billing.PaymentModeOnline, "120.00", &invoice)
	mustPayment(t, repo, uuid.New(), billing.PaymentModeCash, "999.00", nil)

	totals, err := repo.SumByDayAndMode(context.Background(), dayID)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.True(t, decimal.RequireFromString("250").Equal(totals[billing.PaymentModeCash]))
	assert.True(t, decimal.RequireFromString("120").Equal(totals[billing.PaymentModeOnline]))
}

func TestGormPaymentRepository_SumByDayAndMode_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)

	totals, err := repo.SumByDayAndMode(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestGormPaymentRepository_FindByInvoice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)

	dayID := uuid.New()
	invoice := "INV-20260310-0001"
	other := "INV-20260310-0002"
	mustPayment(t, repo, dayID, billing.PaymentModeCash, "100.00", &invoice)
	mustPayment(t, repo, dayID, billing.PaymentModeOnline, "40.00", &invoice)
	mustPayment(t, repo, dayID, billing.PaymentModeCash, "10.00", &other)
	mustPayment(t, repo, dayID, billing.PaymentModeCash, "10.00", nil)

	payments, err := repo.FindByInvoice(context.Background(), invoice)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}
