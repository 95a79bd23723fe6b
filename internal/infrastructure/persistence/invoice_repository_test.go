package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairyops/backend/internal/domain/billing"
)

func TestGormInvoiceRepository_CountByDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	dayID := uuid.New()
	otherDay := uuid.New()
	d := date(2026, time.March, 10)

	for _, seq := range []string{"0001", "0002"} {
		invoice, err := billing.NewInvoice("INV-20260310-"+seq, dayID, uuid.New(), d, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, invoice))
	}
	other, err := billing.NewInvoice("INV-20260309-0001", otherDay, uuid.New(), date(2026, time.March, 9), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	count, err := repo.CountByDay(ctx, dayID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormInvoiceRepository_FindByNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	invoice, err := billing.NewInvoice("INV-20260310-0001", uuid.New(), uuid.New(), date(2026, time.March, 10), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, invoice))

	require.NoError(t, invoice.Finalize(
		decimal.RequireFromString("150.00"),
		decimal.RequireFromString("100.00"),
		decimal.RequireFromString("0"),
	))
	require.NoError(t, repo.Save(ctx, invoice))

	found, err := repo.FindByNumber(ctx, "INV-20260310-0001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Finalized)
	assert.True(t, decimal.RequireFromString("50").Equal(found.Due), "got %s", found.Due)

	missing, err := repo.FindByNumber(ctx, "INV-20260310-9999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormInvoiceRepository_FindAllNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	for _, seq := range []string{"0001", "0002", "0003"} {
		invoice, err := billing.NewInvoice("INV-20260310-"+seq, uuid.New(), uuid.New(), date(2026, time.March, 10), nil)
		require.NoError(t, err)
		invoice.CreatedAt = invoice.CreatedAt.Add(time.Duration(len(seq)) * time.Millisecond)
		require.NoError(t, repo.Create(ctx, invoice))
	}

	invoices, err := repo.FindAll(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, invoices, 2)
}
