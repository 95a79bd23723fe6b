package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairyops/backend/internal/domain/catalog"
)

func TestGormCustomerProductPriceRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerProductPriceRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	productID := uuid.New()

	missing, err := repo.Find(ctx, customerID, productID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	first, err := catalog.NewCustomerProductPrice(customerID, productID, decimal.RequireFromString("55"))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, first))

	// second upsert replaces the price for the same customer-product pair
	second, err := catalog.NewCustomerProductPrice(customerID, productID, decimal.RequireFromString("58"))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, second))

	found, err := repo.Find(ctx, customerID, productID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, decimal.RequireFromString("58").Equal(found.CustomPrice))

	prices, err := repo.FindByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, prices, 1)
}
