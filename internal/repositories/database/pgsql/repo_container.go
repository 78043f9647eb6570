package pgsql

import (
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	creditNoteRepo := newPgxCreditNoteRepository(dbPool)
	rateRepo := newPgxRateRepository(dbPool)
	flightRepo := newPgxFlightRepository(dbPool)
	membershipRepo := newPgxMembershipRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		InvoiceRepo:    invoiceRepo,
		PaymentRepo:    paymentRepo,
		CreditNoteRepo: creditNoteRepo,
		RateRepo:       rateRepo,
		FlightRepo:     flightRepo,
		MembershipRepo: membershipRepo,
		UserRepo:       userRepo,
	}
}
