package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/aerodesk/flightops_backend/internal/core/billing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLineAmounts(t *testing.T) {
	tests := []struct {
		name          string
		quantity      string
		unitPrice     string
		taxRate       string
		amount        string
		taxAmount     string
		lineTotal     string
		rateInclusive string
	}{
		{
			name:     "simple hour at standard rate",
			quantity: "1", unitPrice: "180", taxRate: "0.15",
			amount: "180", taxAmount: "27", lineTotal: "207", rateInclusive: "207",
		},
		{
			name:     "fractional hours round half up",
			quantity: "1.3", unitPrice: "185.50", taxRate: "0.15",
			amount: "241.15", taxAmount: "36.17", lineTotal: "277.32", rateInclusive: "213.33",
		},
		{
			name:     "zero tax rate",
			quantity: "2", unitPrice: "55.25", taxRate: "0",
			amount: "110.50", taxAmount: "0", lineTotal: "110.50", rateInclusive: "55.25",
		},
		{
			name:     "half cent rounds up",
			quantity: "0.5", unitPrice: "0.01", taxRate: "0.15",
			amount: "0.01", taxAmount: "0", lineTotal: "0.01", rateInclusive: "0.01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.ComputeLineAmounts(dec(tt.quantity), dec(tt.unitPrice), dec(tt.taxRate))
			assert.True(t, dec(tt.amount).Equal(got.Amount), "amount: want %s got %s", tt.amount, got.Amount)
			assert.True(t, dec(tt.taxAmount).Equal(got.TaxAmount), "taxAmount: want %s got %s", tt.taxAmount, got.TaxAmount)
			assert.True(t, dec(tt.lineTotal).Equal(got.LineTotal), "lineTotal: want %s got %s", tt.lineTotal, got.LineTotal)
			assert.True(t, dec(tt.rateInclusive).Equal(got.RateInclusive), "rateInclusive: want %s got %s", tt.rateInclusive, got.RateInclusive)
		})
	}
}

func TestComputeLineAmounts_LineTotalEqualsStoredParts(t *testing.T) {
	// The contract is that re-deriving lineTotal from the stored amount and
	// taxAmount reproduces it exactly, whatever the inputs were.
	quantities := []string{"0.1", "1.3", "2.7", "10.55"}
	prices := []string{"0.01", "99.99", "185.50", "1234.567"}
	rates := []string{"0", "0.1", "0.15", "0.2"}

	for _, q := range quantities {
		for _, p := range prices {
			for _, r := range rates {
				got := billing.ComputeLineAmounts(dec(q), dec(p), dec(r))
				assert.True(t, got.LineTotal.Equal(got.Amount.Add(got.TaxAmount)),
					"q=%s p=%s r=%s: %s != %s + %s", q, p, r, got.LineTotal, got.Amount, got.TaxAmount)
			}
		}
	}
}

func TestSumLineAmounts(t *testing.T) {
	lines := []billing.LineAmounts{
		billing.ComputeLineAmounts(dec("1.3"), dec("185.50"), dec("0.15")),
		billing.ComputeLineAmounts(dec("1.3"), dec("95"), dec("0.15")),
		billing.ComputeLineAmounts(dec("1"), dec("25"), dec("0")),
	}

	totals := billing.SumLineAmounts(lines)

	assert.True(t, totals.Subtotal.Equal(dec("241.15").Add(dec("123.50")).Add(dec("25"))))
	assert.True(t, totals.TotalAmount.Equal(totals.Subtotal.Add(totals.TaxTotal)),
		"totalAmount must be the plain sum of rounded line values")
}

func TestSumLineAmounts_Empty(t *testing.T) {
	totals := billing.SumLineAmounts(nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxTotal.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
}

func TestRound2(t *testing.T) {
	assert.True(t, billing.Round2(dec("1.005")).Equal(dec("1.01")), "half rounds up")
	assert.True(t, billing.Round2(dec("1.004")).Equal(dec("1.00")))
	assert.True(t, billing.Round2(dec("-1.005")).Equal(dec("-1.01")))
}

func TestRound1(t *testing.T) {
	assert.True(t, billing.Round1(dec("1.35")).Equal(dec("1.4")), "half rounds up")
	assert.True(t, billing.Round1(dec("1.34")).Equal(dec("1.3")))
}
