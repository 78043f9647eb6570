package mapping

import (
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		UserID:        d.UserID,
		BookingID:     d.BookingID,
		Status:        string(d.Status),
		Reference:     d.Reference,
		Notes:         d.Notes,
		Subtotal:      d.Subtotal,
		TaxTotal:      d.TaxTotal,
		TotalAmount:   d.TotalAmount,
		TotalPaid:     d.TotalPaid,
		BalanceDue:    d.BalanceDue,
		TaxRate:       d.TaxRate,
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		DeletedAt:     d.DeletedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		UserID:        m.UserID,
		BookingID:     m.BookingID,
		Status:        domain.InvoiceStatus(m.Status),
		Reference:     m.Reference,
		Notes:         m.Notes,
		Subtotal:      m.Subtotal,
		TaxTotal:      m.TaxTotal,
		TotalAmount:   m.TotalAmount,
		TotalPaid:     m.TotalPaid,
		BalanceDue:    m.BalanceDue,
		TaxRate:       m.TaxRate,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		DeletedAt:     m.DeletedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to a slice of domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToModelInvoiceItem converts a domain InvoiceItem to a model InvoiceItem
func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:        d.ItemID,
		InvoiceID:     d.InvoiceID,
		ChargeableID:  d.ChargeableID,
		Description:   d.Description,
		Quantity:      d.Quantity,
		UnitPrice:     d.UnitPrice,
		TaxRate:       d.TaxRate,
		TaxRateSource: string(d.TaxRateSource),
		Amount:        d.Amount,
		TaxAmount:     d.TaxAmount,
		LineTotal:     d.LineTotal,
		RateInclusive: d.RateInclusive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoiceItem converts a model InvoiceItem to a domain InvoiceItem
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:        m.ItemID,
		InvoiceID:     m.InvoiceID,
		ChargeableID:  m.ChargeableID,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TaxRate:       m.TaxRate,
		TaxRateSource: domain.TaxRateSource(m.TaxRateSource),
		Amount:        m.Amount,
		TaxAmount:     m.TaxAmount,
		LineTotal:     m.LineTotal,
		RateInclusive: m.RateInclusive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceItemSlice converts a slice of model InvoiceItems to a slice of domain InvoiceItems
func ToDomainInvoiceItemSlice(ms []models.InvoiceItem) []domain.InvoiceItem {
	ds := make([]domain.InvoiceItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceItem(m)
	}
	return ds
}
