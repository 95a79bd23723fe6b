package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/billing"
	"github.com/dairyops/backend/internal/domain/catalog"
	"github.com/dairyops/backend/internal/domain/dayops"
	"github.com/dairyops/backend/internal/domain/identity"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&dayops.BusinessDay{},
		&dayops.ProductDailyStock{},
		&dayops.StockShortageReason{},
		&dayops.CustomerDailyBalance{},
		&billing.Invoice{},
		&billing.Sale{},
		&billing.Payment{},
		&billing.LedgerEvent{},
		&catalog.Product{},
		&catalog.Customer{},
		&catalog.CustomerProductPrice{},
		&identity.User{},
		&audit.Log{},
	)
	require.NoError(t, err)

	return db
}

// date builds a UTC calendar date for fixtures
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// mustOpenDay inserts an OPEN business day for the given date
func mustOpenDay(t *testing.T, db *gorm.DB, d time.Time) *dayops.BusinessDay {
	t.Helper()

	day, err := dayops.NewBusinessDay(d)
	require.NoError(t, err)
	require.NoError(t, db.Create(day).Error)
	return day
}

// mustClosedDay inserts a CLOSED business day for the given date
func mustClosedDay(t *testing.T, db *gorm.DB, d time.Time) *dayops.BusinessDay {
	t.Helper()

	day, err := dayops.NewBusinessDay(d)
	require.NoError(t, err)
	require.NoError(t, day.Close())
	require.NoError(t, db.Create(day).Error)
	return day
}
