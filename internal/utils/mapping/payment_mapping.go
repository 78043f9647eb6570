package mapping

import (
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:     d.PaymentID,
		PaymentNumber: d.PaymentNumber,
		InvoiceID:     d.InvoiceID,
		UserID:        d.UserID,
		Amount:        d.Amount,
		Method:        string(d.Method),
		Reference:     d.Reference,
		Notes:         d.Notes,
		ReversalOf:    d.ReversalOf,
		PaymentDate:   d.PaymentDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:     m.PaymentID,
		PaymentNumber: m.PaymentNumber,
		InvoiceID:     m.InvoiceID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Method:        domain.PaymentMethod(m.Method),
		Reference:     m.Reference,
		Notes:         m.Notes,
		ReversalOf:    m.ReversalOf,
		PaymentDate:   m.PaymentDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
