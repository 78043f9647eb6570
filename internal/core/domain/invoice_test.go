package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

func TestInvoiceStatusValid(t *testing.T) {
	for _, s := range []domain.InvoiceStatus{
		domain.InvoiceDraft, domain.InvoicePending, domain.InvoicePaid,
		domain.InvoiceOverdue, domain.InvoiceCancelled, domain.InvoiceRefunded,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, domain.InvoiceStatus("archived").Valid())
	assert.False(t, domain.InvoiceStatus("").Valid())
}

func TestInvoiceStatusCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.InvoiceStatus
		allowed  bool
	}{
		{domain.InvoiceDraft, domain.InvoicePending, true},
		{domain.InvoiceDraft, domain.InvoiceCancelled, true},
		{domain.InvoiceDraft, domain.InvoicePaid, false},
		{domain.InvoiceDraft, domain.InvoiceRefunded, false},

		{domain.InvoicePending, domain.InvoicePaid, true},
		{domain.InvoicePending, domain.InvoiceOverdue, true},
		{domain.InvoicePending, domain.InvoiceCancelled, true},
		{domain.InvoicePending, domain.InvoiceDraft, false},

		{domain.InvoiceOverdue, domain.InvoicePaid, true},
		{domain.InvoiceOverdue, domain.InvoicePending, true},
		{domain.InvoiceOverdue, domain.InvoiceCancelled, true},
		{domain.InvoiceOverdue, domain.InvoiceRefunded, false},

		// Reversals and credit notes may move a paid invoice.
		{domain.InvoicePaid, domain.InvoicePending, true},
		{domain.InvoicePaid, domain.InvoiceOverdue, true},
		{domain.InvoicePaid, domain.InvoiceRefunded, true},
		{domain.InvoicePaid, domain.InvoiceCancelled, false},
		{domain.InvoicePaid, domain.InvoiceDraft, false},

		{domain.InvoiceCancelled, domain.InvoicePending, false},
		{domain.InvoiceCancelled, domain.InvoiceDraft, false},
		{domain.InvoiceRefunded, domain.InvoicePending, false},
		{domain.InvoiceRefunded, domain.InvoicePaid, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestInvoiceStatusFieldMutable(t *testing.T) {
	allFields := []string{
		domain.FieldReference, domain.FieldIssueDate, domain.FieldDueDate,
		domain.FieldUserID, domain.FieldNotes, domain.FieldStatus,
	}

	t.Run("paid and refunded reject every write", func(t *testing.T) {
		for _, s := range []domain.InvoiceStatus{domain.InvoicePaid, domain.InvoiceRefunded} {
			for _, f := range allFields {
				assert.False(t, s.FieldMutable(f, true), "%s privileged %s", s, f)
				assert.False(t, s.FieldMutable(f, false), "%s non-privileged %s", s, f)
			}
		}
	})

	t.Run("privileged callers may write any field on draft", func(t *testing.T) {
		for _, f := range allFields {
			assert.True(t, domain.InvoiceDraft.FieldMutable(f, true), f)
		}
	})

	t.Run("non-privileged pending writes are status and notes only", func(t *testing.T) {
		assert.True(t, domain.InvoicePending.FieldMutable(domain.FieldStatus, false))
		assert.True(t, domain.InvoicePending.FieldMutable(domain.FieldNotes, false))
		assert.False(t, domain.InvoicePending.FieldMutable(domain.FieldDueDate, false))
		assert.False(t, domain.InvoicePending.FieldMutable(domain.FieldReference, false))
	})

	t.Run("cancelled restricts privileged callers too", func(t *testing.T) {
		assert.True(t, domain.InvoiceCancelled.FieldMutable(domain.FieldNotes, true))
		assert.False(t, domain.InvoiceCancelled.FieldMutable(domain.FieldDueDate, true))
	})

	t.Run("unknown status rejects writes", func(t *testing.T) {
		assert.False(t, domain.InvoiceStatus("archived").FieldMutable(domain.FieldNotes, true))
	})
}
