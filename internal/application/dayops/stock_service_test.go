package dayops_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dayopsapp "github.com/dairyops/backend/internal/application/dayops"
	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/shared"
)

func TestStockService_RecordMorningAndClosing(t *testing.T) {
	f := newDayFixture(t)
	product := f.createProduct(t, "Full Cream Milk", 33)
	f.openDay(t)

	row, err := f.stock.RecordMorning(context.Background(), f.actor, dayopsapp.RecordMorningRequest{
		ProductID:         product.ID,
		PlantLoadQty:      decimal.NewFromInt(120),
		CounterOpeningQty: decimal.NewFromInt(110),
	})
	require.NoError(t, err)
	assert.True(t, row.MorningComplete)
	assert.False(t, row.ClosingComplete)
	require.NotNil(t, row.PlantLoadQty)
	assert.True(t, row.PlantLoadQty.Equal(decimal.NewFromInt(120)))

	row, err = f.stock.RecordClosing(context.Background(), f.actor, dayopsapp.RecordClosingRequest{
		ProductID:          product.ID,
		CounterClosingQty:  decimal.NewFromInt(30),
		ReturnedToPlantQty: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, row.ClosingComplete)
}

func TestStockService_MorningIsWriteOnce(t *testing.T) {
	f := newDayFixture(t)
	product := f.createProduct(t, "Full Cream Milk", 33)
	f.openDay(t)
	f.recordMorning(t, product.ID, 100, 100)

	_, err := f.stock.RecordMorning(context.Background(), f.actor, dayopsapp.RecordMorningRequest{
		ProductID:         product.ID,
		PlantLoadQty:      decimal.NewFromInt(200),
		CounterOpeningQty: decimal.NewFromInt(200),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MORNING_ALREADY_COMPLETED", domainErr.Code)
}

func TestStockService_MorningRejectsExcessCounterOpening(t *testing.T) {
	f := newDayFixture(t)
	product := f.createProduct(t, "Full Cream Milk", 33)
	f.openDay(t)

	// No previous closing, so counter opening may not exceed the plant load
	_, err := f.stock.RecordMorning(context.Background(), f.actor, dayopsapp.RecordMorningRequest{
		ProductID:         product.ID,
		PlantLoadQty:      decimal.NewFromInt(100),
		CounterOpeningQty: decimal.NewFromInt(101),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "COUNTER_OPENING_EXCEEDED", domainErr.Code)
}

func TestStockService_RecordMorningWithoutOpenDay(t *testing.T) {
	f := newDayFixture(t)
	product := f.createProduct(t, "Full Cream Milk", 33)

	_, err := f.stock.RecordMorning(context.Background(), f.actor, dayopsapp.RecordMorningRequest{
		ProductID:         product.ID,
		PlantLoadQty:      decimal.NewFromInt(100),
		CounterOpeningQty: decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, shared.ErrNoOpenDay)
}

func TestStockService_ClosingRequiresMorning(t *testing.T) {
	f := newDayFixture(t)
	product := f.createProduct(t, "Full Cream Milk", 33)
	f.openDay(t)

	_, err := f.stock.RecordClosing(context.Background(), f.actor, dayopsapp.RecordClosingRequest{
		ProductID:          product.ID,
		CounterClosingQty:  decimal.NewFromInt(10),
		ReturnedToPlantQty: decimal.Zero,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MORNING_NOT_COMPLETED", domainErr.Code)
}

func TestStockService_RecordMorningUnknownProduct(t *testing.T) {
	f := newDayFixture(t)
	f.openDay(t)

	_, err := f.stock.RecordMorning(context.Background(), f.actor, dayopsapp.RecordMorningRequest{
		ProductID:         uuid.New(),
		PlantLoadQty:      decimal.NewFromInt(10),
		CounterOpeningQty: decimal.NewFromInt(10),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
}

func TestStockService_AvailabilityDeductsSales(t *testing.T) {
	f := newDayFixture(t)
	product := f.createProduct(t, "Full Cream Milk", 33)
	customer := f.createCustomer(t, "Meena Stores", "9800000002")
	day := f.openDay(t)
	f.recordMorning(t, product.ID, 100, 40)

	sale, err := billing.NewSale(day.ID, customer.ID, product.ID, day.BusinessDate,
		decimal.NewFromInt(25), decimal.NewFromInt(33), "INV-TEST-0001")
	require.NoError(t, err)
	require.NoError(t, f.db.Create(sale).Error)

	avail, err := f.stock.Availability(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, avail.PlantLoad.Equal(decimal.NewFromInt(100)))
	assert.True(t, avail.CounterOpening.Equal(decimal.NewFromInt(40)))
	assert.True(t, avail.Sold.Equal(decimal.NewFromInt(25)))
	// prevClosing 0 + 100 load - 40 opening - 25 sold
	assert.True(t, avail.Available.Equal(decimal.NewFromInt(35)))
}

func TestStockService_DailyStockListsEveryActiveProduct(t *testing.T) {
	f := newDayFixture(t)
	milk := f.createProduct(t, "Toned Milk", 26)
	curd := f.createProduct(t, "Curd", 40)
	f.openDay(t)
	f.recordMorning(t, milk.ID, 80, 80)

	rows, err := f.stock.DailyStock(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := make(map[uuid.UUID]dayopsapp.StockRowResponse, len(rows))
	for _, r := range rows {
		byID[r.ProductID] = r
	}
	assert.True(t, byID[milk.ID].MorningComplete)
	assert.False(t, byID[curd.ID].MorningComplete)
	assert.Nil(t, byID[curd.ID].PlantLoadQty)
}

func TestStockService_ReconciliationFlagsShortage(t *testing.T) {
	f := newDayFixture(t)
	product := f.createProduct(t, "Toned Milk", 26)
	f.openDay(t)
	f.recordMorning(t, product.ID, 100, 100)
	f.recordClosing(t, product.ID, 85, 5)

	rows, err := f.stock.Reconciliation(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	// 100 loaded - 0 sold - 85 closing - 5 returned
	assert.True(t, row.Shortage.Equal(decimal.NewFromInt(10)))
	assert.True(t, row.HasShortage)
	assert.False(t, row.Justified)

	_, err = f.shortage.Justify(context.Background(), f.actor, dayopsapp.JustifyShortageRequest{
		ProductID: product.ID,
		Reason:    "Leaked packets",
	})
	require.NoError(t, err)

	rows, err = f.stock.Reconciliation(context.Background())
	require.NoError(t, err)
	assert.True(t, rows[0].Justified)
	assert.Equal(t, "Leaked packets", rows[0].Reason)
}

func TestStockService_ReconciliationFlagsOverage(t *testing.T) {
	f := newDayFixture(t)
	product := f.createProduct(t, "Toned Milk", 26)
	f.openDay(t)
	f.recordMorning(t, product.ID, 100, 100)
	f.recordClosing(t, product.ID, 110, 0)

	rows, err := f.stock.Reconciliation(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// 100 loaded - 0 sold - 110 closing: negative shortage still flags
	assert.True(t, rows[0].Shortage.Equal(decimal.NewFromInt(-10)))
	assert.True(t, rows[0].HasShortage)
}
