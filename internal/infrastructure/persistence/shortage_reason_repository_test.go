package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairyops/backend/internal/domain/dayops"
)

func TestGormStockShortageReasonRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockShortageReasonRepository(db)
	ctx := context.Background()

	day := mustOpenDay(t, db, date(2026, time.March, 10))
	productID := uuid.New()

	exists, err := repo.Exists(ctx, day.ID, productID)
	require.NoError(t, err)
	assert.False(t, exists)

	first, err := dayops.NewStockShortageReason(day.ID, productID, decimal.RequireFromString("3"), "2 packets damaged, 1 spoiled", uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, first))

	// resubmission replaces the earlier reason instead of erroring
	second, err := dayops.NewStockShortageReason(day.ID, productID, decimal.RequireFromString("4"), "Recounted: 4 packets damaged", uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, second))

	exists, err = repo.Exists(ctx, day.ID, productID)
	require.NoError(t, err)
	assert.True(t, exists)

	reasons, err := repo.FindByDay(ctx, day.ID)
	require.NoError(t, err)
	require.Len(t, reasons, 1)
	assert.Equal(t, "Recounted: 4 packets damaged", reasons[0].Reason)
	assert.True(t, decimal.RequireFromString("4").Equal(reasons[0].ShortageQty))
}

func TestGormStockShortageReasonRepository_FindByDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockShortageReasonRepository(db)
	ctx := context.Background()

	day := mustOpenDay(t, db, date(2026, time.March, 10))
	otherDay := mustClosedDay(t, db, date(2026, time.March, 9))

	for _, dayID := range []uuid.UUID{day.ID, day.ID, otherDay.ID} {
		reason, err := dayops.NewStockShortageReason(dayID, uuid.New(), decimal.RequireFromString("1"), "Spillage during transfer", uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, reason))
	}

	reasons, err := repo.FindByDay(ctx, day.ID)
	require.NoError(t, err)
	assert.Len(t, reasons, 2)
}
