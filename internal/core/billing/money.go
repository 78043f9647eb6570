package billing

import "github.com/shopspring/decimal"

// LineAmounts holds the derived monetary fields of one line item. There are
// deliberately no setters: derived values exist only as outputs of
// ComputeLineAmounts and are never accepted from a caller.
type LineAmounts struct {
	Amount        decimal.Decimal
	TaxAmount     decimal.Decimal
	LineTotal     decimal.Decimal
	RateInclusive decimal.Decimal
}

// Round2 rounds half-up to 2 decimal places. Every derived monetary field is
// rounded exactly once.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Round1 rounds half-up to 1 decimal place, used for meter-time deltas.
func Round1(d decimal.Decimal) decimal.Decimal {
	return d.Round(1)
}

// ComputeLineAmounts derives the monetary fields of a line item, in order:
//
//	amount        = round2(quantity * unitPrice)
//	taxAmount     = round2(amount * taxRate)
//	lineTotal     = round2(amount + taxAmount)
//	rateInclusive = round2(unitPrice * (1 + taxRate))
//
// Each field is rounded once from its stored precursors, so re-deriving any
// field from the persisted values reproduces the persisted result exactly:
// lineTotal always equals the sum of the stored amount and taxAmount.
func ComputeLineAmounts(quantity, unitPrice, taxRate decimal.Decimal) LineAmounts {
	amount := Round2(quantity.Mul(unitPrice))
	taxAmount := Round2(amount.Mul(taxRate))
	lineTotal := Round2(amount.Add(taxAmount))
	rateInclusive := Round2(unitPrice.Mul(decimal.NewFromInt(1).Add(taxRate)))
	return LineAmounts{
		Amount:        amount,
		TaxAmount:     taxAmount,
		LineTotal:     lineTotal,
		RateInclusive: rateInclusive,
	}
}

// InvoiceTotals aggregates item amounts into invoice-level sums.
type InvoiceTotals struct {
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	TotalAmount decimal.Decimal
}

// SumLineAmounts computes invoice aggregates as plain sums over the current
// item set. The per-line rounding contract guarantees
// TotalAmount == Subtotal + TaxTotal without further rounding.
func SumLineAmounts(lines []LineAmounts) InvoiceTotals {
	totals := InvoiceTotals{
		Subtotal:    decimal.Zero,
		TaxTotal:    decimal.Zero,
		TotalAmount: decimal.Zero,
	}
	for _, l := range lines {
		totals.Subtotal = totals.Subtotal.Add(l.Amount)
		totals.TaxTotal = totals.TaxTotal.Add(l.TaxAmount)
		totals.TotalAmount = totals.TotalAmount.Add(l.LineTotal)
	}
	return totals
}
