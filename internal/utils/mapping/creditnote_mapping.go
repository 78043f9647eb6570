package mapping

import (
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/models"
)

// ToModelCreditNote converts a domain CreditNote to a model CreditNote
func ToModelCreditNote(d domain.CreditNote) models.CreditNote {
	return models.CreditNote{
		CreditNoteID:     d.CreditNoteID,
		CreditNoteNumber: d.CreditNoteNumber,
		InvoiceID:        d.InvoiceID,
		UserID:           d.UserID,
		Status:           string(d.Status),
		Reason:           d.Reason,
		Subtotal:         d.Subtotal,
		TaxTotal:         d.TaxTotal,
		TotalAmount:      d.TotalAmount,
		IssueDate:        d.IssueDate,
		AppliedAt:        d.AppliedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditNote converts a model CreditNote to a domain CreditNote
func ToDomainCreditNote(m models.CreditNote) domain.CreditNote {
	return domain.CreditNote{
		CreditNoteID:     m.CreditNoteID,
		CreditNoteNumber: m.CreditNoteNumber,
		InvoiceID:        m.InvoiceID,
		UserID:           m.UserID,
		Status:           domain.CreditNoteStatus(m.Status),
		Reason:           m.Reason,
		Subtotal:         m.Subtotal,
		TaxTotal:         m.TaxTotal,
		TotalAmount:      m.TotalAmount,
		IssueDate:        m.IssueDate,
		AppliedAt:        m.AppliedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditNoteSlice converts a slice of model CreditNotes to a slice of domain CreditNotes
func ToDomainCreditNoteSlice(ms []models.CreditNote) []domain.CreditNote {
	ds := make([]domain.CreditNote, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditNote(m)
	}
	return ds
}

// ToModelCreditNoteItem converts a domain CreditNoteItem to a model CreditNoteItem
func ToModelCreditNoteItem(d domain.CreditNoteItem) models.CreditNoteItem {
	return models.CreditNoteItem{
		ItemID:        d.ItemID,
		CreditNoteID:  d.CreditNoteID,
		Description:   d.Description,
		Quantity:      d.Quantity,
		UnitPrice:     d.UnitPrice,
		TaxRate:       d.TaxRate,
		Amount:        d.Amount,
		TaxAmount:     d.TaxAmount,
		LineTotal:     d.LineTotal,
		RateInclusive: d.RateInclusive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditNoteItem converts a model CreditNoteItem to a domain CreditNoteItem
func ToDomainCreditNoteItem(m models.CreditNoteItem) domain.CreditNoteItem {
	return domain.CreditNoteItem{
		ItemID:        m.ItemID,
		CreditNoteID:  m.CreditNoteID,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TaxRate:       m.TaxRate,
		Amount:        m.Amount,
		TaxAmount:     m.TaxAmount,
		LineTotal:     m.LineTotal,
		RateInclusive: m.RateInclusive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditNoteItemSlice converts a slice of model CreditNoteItems to a slice of domain CreditNoteItems
func ToDomainCreditNoteItemSlice(ms []models.CreditNoteItem) []domain.CreditNoteItem {
	ds := make([]domain.CreditNoteItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditNoteItem(m)
	}
	return ds
}
