package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundingPolicy(t *testing.T) {
	// 1234 yen at 10% yields 123.4 before rounding
	tax := decimal.NewFromInt(1234).Mul(decimal.NewFromFloat(0.10))

	t.Run("floor", func(t *testing.T) {
		assert.True(t, RoundingPolicy(RoundingFloor).Apply(tax).Equal(decimal.NewFromInt(123)))
	})

	t.Run("ceil", func(t *testing.T) {
		assert.True(t, RoundingPolicy(RoundingCeil).Apply(tax).Equal(decimal.NewFromInt(124)))
	})

	t.Run("round", func(t *testing.T) {
		assert.True(t, RoundingPolicy(RoundingRound).Apply(tax).Equal(decimal.NewFromInt(123)))
		half := decimal.NewFromFloat(123.5)
		assert.True(t, RoundingPolicy(RoundingRound).Apply(half).Equal(decimal.NewFromInt(124)))
	})

	t.Run("parse rejects unknown policies", func(t *testing.T) {
		_, err := ParseRoundingPolicy("bankers")
		assert.Error(t, err)

		p, err := ParseRoundingPolicy("ceil")
		require.NoError(t, err)
		assert.Equal(t, RoundingPolicy(RoundingCeil), p)
	})
}

func TestFormatInvoiceNumber(t *testing.T) {
	periodEnd := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("default format", func(t *testing.T) {
		got := FormatInvoiceNumber("", periodEnd, 1)
		assert.Equal(t, "2025-06-30-001", got)
	})

	t.Run("custom format without padding", func(t *testing.T) {
		got := FormatInvoiceNumber("INV{year}{month}-{seq}", periodEnd, 12)
		assert.Equal(t, "INV20256-12", got)
	})

	t.Run("padding applies per placeholder", func(t *testing.T) {
		got := FormatInvoiceNumber("{year}/{month:02d}/{seq:05d}", periodEnd, 7)
		assert.Equal(t, "2025/06/00007", got)
	})

	t.Run("repeated placeholders", func(t *testing.T) {
		got := FormatInvoiceNumber("{seq:03d}-{seq:03d}", periodEnd, 2)
		assert.Equal(t, "002-002", got)
	})
}

func TestNewInvoice(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("creates draft", func(t *testing.T) {
		inv, err := NewInvoice(1, "2025-06-30-001", TypeFlower, start, end,
			decimal.NewFromInt(500), decimal.NewFromInt(10000), decimal.NewFromInt(9500))
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, inv.Status)
		assert.True(t, inv.CarryoverAmount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewInvoice(1, "x", "misc", start, end,
			decimal.Zero, decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		_, err := NewInvoice(1, "x", TypeFlower, end, start,
			decimal.Zero, decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestInvoiceSetBracketTotals(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("brackets are rounded independently", func(t *testing.T) {
		inv, err := NewInvoice(1, "n", TypeFlower, start, end,
			decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		// 10%: 1234 * 0.10 = 123.4 -> floor 123
		// 8%:  555 * 0.08 = 44.4  -> floor 44
		inv.SetBracketTotals(decimal.NewFromInt(1234), decimal.NewFromInt(555), RoundingPolicy(RoundingFloor))
		assert.True(t, inv.TaxAmount10.Equal(decimal.NewFromInt(123)))
		assert.True(t, inv.TaxAmount08.Equal(decimal.NewFromInt(44)))
		assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(1956)))
	})

	t.Run("carryover is added to the total", func(t *testing.T) {
		inv, err := NewInvoice(1, "n", TypeFlower, start, end,
			decimal.NewFromInt(1000), decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		inv.SetBracketTotals(decimal.NewFromInt(1000), decimal.Zero, RoundingPolicy(RoundingFloor))
		assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(2100)))
	})

	t.Run("ceil widens each bracket", func(t *testing.T) {
		inv, err := NewInvoice(1, "n", TypeFlower, start, end,
			decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		inv.SetBracketTotals(decimal.NewFromInt(1234), decimal.NewFromInt(555), RoundingPolicy(RoundingCeil))
		assert.True(t, inv.TaxAmount10.Equal(decimal.NewFromInt(124)))
		assert.True(t, inv.TaxAmount08.Equal(decimal.NewFromInt(45)))
	})
}

func TestInvoiceUpdateStatus(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	t.Run("sent stamps SentAt", func(t *testing.T) {
		inv, err := NewInvoice(1, "n", TypeFlower, start, end,
			decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, inv.UpdateStatus(StatusSent, now))
		assert.Equal(t, StatusSent, inv.Status)
		require.NotNil(t, inv.SentAt)
		assert.True(t, inv.SentAt.Equal(now))
	})

	t.Run("other statuses do not stamp SentAt", func(t *testing.T) {
		inv, err := NewInvoice(1, "n", TypeFlower, start, end,
			decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, inv.UpdateStatus(StatusPaid, now))
		assert.Nil(t, inv.SentAt)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		inv, err := NewInvoice(1, "n", TypeFlower, start, end,
			decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		err = inv.UpdateStatus("archived", now)
		assert.Error(t, err)
		assert.Equal(t, StatusDraft, inv.Status)
	})
}

func TestNewPayment(t *testing.T) {
	date := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)

	t.Run("defaults method to transfer", func(t *testing.T) {
		p, err := NewPayment(3, decimal.NewFromInt(10000), date, "", "みずほ銀行", "")
		require.NoError(t, err)
		assert.Equal(t, MethodTransfer, p.PaymentMethod)
	})

	t.Run("negative amounts are accepted as corrections", func(t *testing.T) {
		p, err := NewPayment(3, decimal.NewFromInt(-500), date, MethodCash, "", "過入金の返金")
		require.NoError(t, err)
		assert.True(t, p.Amount.IsNegative())
	})

	t.Run("requires an invoice", func(t *testing.T) {
		_, err := NewPayment(0, decimal.NewFromInt(100), date, MethodCash, "", "")
		assert.Error(t, err)
	})
}
