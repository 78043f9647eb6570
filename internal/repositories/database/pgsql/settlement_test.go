package pgsql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pendingInvoice(total string, paid string) models.Invoice {
	return models.Invoice{
		InvoiceID:   "inv-1",
		Status:      string(domain.InvoicePending),
		TotalAmount: dec(total),
		TotalPaid:   dec(paid),
		BalanceDue:  dec(total).Sub(dec(paid)),
		DueDate:     time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyPaymentToInvoice(t *testing.T) {
	beforeDue := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	afterDue := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)

	t.Run("full payment marks pending invoice paid", func(t *testing.T) {
		inv := applyPaymentToInvoice(pendingInvoice("419.35", "0"), models.Payment{Amount: dec("419.35"), PaymentDate: beforeDue})

		assert.Equal(t, string(domain.InvoicePaid), inv.Status)
		assert.True(t, dec("419.35").Equal(inv.TotalPaid))
		assert.True(t, inv.BalanceDue.IsZero())
	})

	t.Run("partial payment leaves invoice pending", func(t *testing.T) {
		inv := applyPaymentToInvoice(pendingInvoice("419.35", "0"), models.Payment{Amount: dec("200"), PaymentDate: beforeDue})

		assert.Equal(t, string(domain.InvoicePending), inv.Status)
		assert.True(t, dec("219.35").Equal(inv.BalanceDue))
	})

	t.Run("full payment marks overdue invoice paid", func(t *testing.T) {
		overdue := pendingInvoice("100", "0")
		overdue.Status = string(domain.InvoiceOverdue)

		inv := applyPaymentToInvoice(overdue, models.Payment{Amount: dec("100"), PaymentDate: afterDue})

		assert.Equal(t, string(domain.InvoicePaid), inv.Status)
	})

	t.Run("overpayment goes paid with negative balance", func(t *testing.T) {
		inv := applyPaymentToInvoice(pendingInvoice("100", "0"), models.Payment{Amount: dec("150"), PaymentDate: beforeDue})

		assert.Equal(t, string(domain.InvoicePaid), inv.Status)
		assert.True(t, dec("-50").Equal(inv.BalanceDue))
	})

	t.Run("reversal drops paid invoice back to pending", func(t *testing.T) {
		paid := pendingInvoice("419.35", "419.35")
		paid.Status = string(domain.InvoicePaid)

		inv := applyPaymentToInvoice(paid, models.Payment{Amount: dec("-419.35"), PaymentDate: beforeDue})

		assert.Equal(t, string(domain.InvoicePending), inv.Status)
		assert.True(t, inv.TotalPaid.IsZero())
		assert.True(t, dec("419.35").Equal(inv.BalanceDue))
	})

	t.Run("reversal past the due date drops paid invoice to overdue", func(t *testing.T) {
		paid := pendingInvoice("419.35", "419.35")
		paid.Status = string(domain.InvoicePaid)

		inv := applyPaymentToInvoice(paid, models.Payment{Amount: dec("-419.35"), PaymentDate: afterDue})

		assert.Equal(t, string(domain.InvoiceOverdue), inv.Status)
	})

	t.Run("reversal of a partial payment keeps the invoice pending", func(t *testing.T) {
		inv := applyPaymentToInvoice(pendingInvoice("419.35", "200"), models.Payment{Amount: dec("-200"), PaymentDate: beforeDue})

		assert.Equal(t, string(domain.InvoicePending), inv.Status)
		assert.True(t, dec("419.35").Equal(inv.BalanceDue))
	})

	t.Run("paid totals and balance stay conserved", func(t *testing.T) {
		inv := pendingInvoice("300", "0")
		inv = applyPaymentToInvoice(inv, models.Payment{Amount: dec("120"), PaymentDate: beforeDue})
		inv = applyPaymentToInvoice(inv, models.Payment{Amount: dec("180"), PaymentDate: beforeDue})

		assert.Equal(t, string(domain.InvoicePaid), inv.Status)
		assert.True(t, inv.TotalAmount.Sub(inv.TotalPaid).Equal(inv.BalanceDue))
	})
}

func TestApplyCreditToInvoice(t *testing.T) {
	t.Run("credit against paid invoice refunds it", func(t *testing.T) {
		paid := pendingInvoice("142.03", "142.03")
		paid.Status = string(domain.InvoicePaid)

		inv := applyCreditToInvoice(paid, dec("142.03"))

		assert.Equal(t, string(domain.InvoiceRefunded), inv.Status)
		assert.True(t, dec("284.06").Equal(inv.TotalPaid))
		assert.True(t, dec("-142.03").Equal(inv.BalanceDue))
	})

	t.Run("credit covering a pending invoice marks it paid", func(t *testing.T) {
		inv := applyCreditToInvoice(pendingInvoice("100", "0"), dec("100"))

		assert.Equal(t, string(domain.InvoicePaid), inv.Status)
		assert.True(t, inv.BalanceDue.IsZero())
	})

	t.Run("partial credit leaves the invoice pending", func(t *testing.T) {
		inv := applyCreditToInvoice(pendingInvoice("100", "0"), dec("40"))

		assert.Equal(t, string(domain.InvoicePending), inv.Status)
		assert.True(t, dec("60").Equal(inv.BalanceDue))
	})

	t.Run("credit covering an overdue invoice marks it paid", func(t *testing.T) {
		overdue := pendingInvoice("100", "30")
		overdue.Status = string(domain.InvoiceOverdue)

		inv := applyCreditToInvoice(overdue, dec("70"))

		assert.Equal(t, string(domain.InvoicePaid), inv.Status)
	})
}

func TestInvoiceCountsTowardBalance(t *testing.T) {
	counts := []domain.InvoiceStatus{domain.InvoicePending, domain.InvoiceOverdue, domain.InvoicePaid}
	for _, status := range counts {
		assert.True(t, invoiceCountsTowardBalance(string(status)), string(status))
	}
	excluded := []domain.InvoiceStatus{domain.InvoiceDraft, domain.InvoiceCancelled, domain.InvoiceRefunded}
	for _, status := range excluded {
		assert.False(t, invoiceCountsTowardBalance(string(status)), string(status))
	}
}
