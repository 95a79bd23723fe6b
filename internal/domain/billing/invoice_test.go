package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceNumber(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV-20240110-0001", FormatInvoiceNumber(date, 1))
	assert.Equal(t, "INV-20240110-0042", FormatInvoiceNumber(date, 42))
	assert.Equal(t, "INV-20240110-12345", FormatInvoiceNumber(date, 12345))
}

func TestNewInvoice(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("starts empty and unfinalized", func(t *testing.T) {
		inv, err := NewInvoice("INV-20240110-0001", uuid.New(), uuid.New(), date, nil)
		require.NoError(t, err)

		assert.True(t, inv.Subtotal.IsZero())
		assert.True(t, inv.TotalPaid.IsZero())
		assert.True(t, inv.Due.IsZero())
		assert.False(t, inv.Finalized)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewInvoice("", uuid.New(), uuid.New(), date, nil)
		assert.Error(t, err)

		_, err = NewInvoice("INV-20240110-0001", uuid.Nil, uuid.New(), date, nil)
		assert.Error(t, err)

		_, err = NewInvoice("INV-20240110-0001", uuid.New(), uuid.Nil, date, nil)
		assert.Error(t, err)
	})
}

func TestInvoice_Finalize(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	newInvoice := func(t *testing.T) *Invoice {
		inv, err := NewInvoice("INV-20240110-0001", uuid.New(), uuid.New(), date, nil)
		require.NoError(t, err)
		return inv
	}

	t.Run("computes due as subtotal minus paid", func(t *testing.T) {
		inv := newInvoice(t)

		require.NoError(t, inv.Finalize(decimal.NewFromInt(200), decimal.NewFromInt(150), decimal.Zero))
		assert.True(t, decimal.NewFromInt(200).Equal(inv.Subtotal))
		assert.True(t, decimal.NewFromInt(150).Equal(inv.TotalPaid))
		assert.True(t, decimal.NewFromInt(50).Equal(inv.Due))
		assert.True(t, inv.Finalized)
	})

	t.Run("due is not clamped on overpayment", func(t *testing.T) {
		inv := newInvoice(t)

		require.NoError(t, inv.Finalize(decimal.NewFromInt(100), decimal.NewFromInt(80), decimal.NewFromInt(50)))
		assert.True(t, decimal.NewFromInt(-30).Equal(inv.Due))
	})

	t.Run("finalize is write-once", func(t *testing.T) {
		inv := newInvoice(t)
		require.NoError(t, inv.Finalize(decimal.NewFromInt(100), decimal.Zero, decimal.Zero))

		err := inv.Finalize(decimal.NewFromInt(500), decimal.Zero, decimal.Zero)
		require.Error(t, err)
		assert.True(t, decimal.NewFromInt(100).Equal(inv.Subtotal))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		inv := newInvoice(t)
		assert.Error(t, inv.Finalize(decimal.NewFromInt(-1), decimal.Zero, decimal.Zero))
	})
}

func TestNewSale(t *testing.T) {
	t.Run("amount is quantity times rate", func(t *testing.T) {
		sale, err := NewSale(uuid.New(), uuid.New(), uuid.New(), time.Now(), decimal.NewFromInt(10), decimal.NewFromInt(20), "INV-20240110-0001")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(200).Equal(sale.Amount))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewSale(uuid.New(), uuid.New(), uuid.New(), time.Now(), decimal.Zero, decimal.NewFromInt(20), "INV-20240110-0001")
		assert.Error(t, err)
	})
}

func TestNewPayment(t *testing.T) {
	t.Run("valid modes", func(t *testing.T) {
		for _, mode := range []PaymentMode{PaymentModeCash, PaymentModeOnline} {
			_, err := NewPayment(uuid.New(), uuid.New(), mode, decimal.NewFromInt(10), nil)
			assert.NoError(t, err)
		}
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), uuid.New(), PaymentMode("cheque"), decimal.NewFromInt(10), nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), uuid.New(), PaymentModeCash, decimal.Zero, nil)
		assert.Error(t, err)
	})
}
