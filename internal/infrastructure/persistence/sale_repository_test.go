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

func mustSale(t *testing.T, repo *GormSaleRepository, dayID, customerID, productID uuid.UUID, businessDate time.Time, qty, rate, invoiceNumber string) *billing.Sale {
	t.Helper()

	sale, err := billing.NewSale(dayID, customerID, productID, businessDate,
		decimal.RequireFromString(qty), decimal.RequireFromString(rate), invoiceNumber)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), sale))
	return sale
}

func TestGormSaleRepository_SumQuantityByDayAndProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	dayID := uuid.New()
	productID := uuid.New()
	d := date(2026, time.March, 10)

	mustSale(t, repo, dayID, uuid.New(), productID, d, "2.5", "60", "INV-20260310-0001")
	mustSale(t, repo, dayID, uuid.New(), productID, d, "1.5", "60", "INV-20260310-0002")
	mustSale(t, repo, dayID, uuid.New(), uuid.New(), d, "9", "30", "INV-20260310-0003")
	mustSale(t, repo, uuid.New(), uuid.New(), productID, d, "7", "60", "INV-20260309-0001")

	total, err := repo.SumQuantityByDayAndProduct(ctx, dayID, productID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4").Equal(total), "got %s", total)
}

func TestGormSaleRepository_SumQuantityByDayAndProduct_NoSales(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)

	total, err := repo.SumQuantityByDayAndProduct(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestGormSaleRepository_SumQuantityByDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)

	dayID := uuid.New()
	milk := uuid.New()
	curd := uuid.New()
	d := date(2026, time.March, 10)

	mustSale(t, repo, dayID, uuid.New(), milk, d, "3", "60", "INV-20260310-0001")
	mustSale(t, repo, dayID, uuid.New(), milk, d, "2", "60", "INV-20260310-0002")
	mustSale(t, repo, dayID, uuid.New(), curd, d, "1", "90", "INV-20260310-0003")

	totals, err := repo.SumQuantityByDay(context.Background(), dayID)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.True(t, decimal.RequireFromString("5").Equal(totals[milk]))
	assert.True(t, decimal.RequireFromString("1").Equal(totals[curd]))
}

func TestGormSaleRepository_SumAmountByDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)

	dayID := uuid.New()
	d := date(2026, time.March, 10)
	mustSale(t, repo, dayID, uuid.New(), uuid.New(), d, "2", "60", "INV-20260310-0001")
	mustSale(t, repo, dayID, uuid.New(), uuid.New(), d, "1", "90.50", "INV-20260310-0002")

	total, err := repo.SumAmountByDay(context.Background(), dayID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("210.50").Equal(total), "got %s", total)
}

func TestGormSaleRepository_CountDistinctCustomersByDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)

	dayID := uuid.New()
	repeat := uuid.New()
	d := date(2026, time.March, 10)

	mustSale(t, repo, dayID, repeat, uuid.New(), d, "1", "60", "INV-20260310-0001")
	mustSale(t, repo, dayID, repeat, uuid.New(), d, "1", "90", "INV-20260310-0002")
	mustSale(t, repo, dayID, uuid.New(), uuid.New(), d, "1", "60", "INV-20260310-0003")
	mustSale(t, repo, uuid.New(), uuid.New(), uuid.New(), date(2026, time.March, 9), "1", "60", "INV-20260309-0001")

	count, err := repo.CountDistinctCustomersByDate(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormSaleRepository_FindByInvoice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)

	dayID := uuid.New()
	d := date(2026, time.March, 10)
	mustSale(t, repo, dayID, uuid.New(), uuid.New(), d, "2", "60", "INV-20260310-0001")
	mustSale(t, repo, dayID, uuid.New(), uuid.New(), d, "1", "90", "INV-20260310-0001")
	mustSale(t, repo, dayID, uuid.New(), uuid.New(), d, "1", "60", "INV-20260310-0002")

	sales, err := repo.FindByInvoice(context.Background(), "INV-20260310-0001")
	require.NoError(t, err)
	assert.Len(t, sales, 2)
}
