package services

import (
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repository and service
// dependencies. Handlers only ever see this container.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	rateSvc := NewRateService(repos.RateRepo, cfg)
	invoiceSvc := NewInvoiceService(repos.InvoiceRepo, repos.RateRepo, rateSvc)
	paymentSvc := NewPaymentService(repos.PaymentRepo, repos.CreditNoteRepo, repos.InvoiceRepo, repos.UserRepo, rateSvc)
	statementSvc := NewStatementService(repos.InvoiceRepo, repos.PaymentRepo, repos.CreditNoteRepo, repos.UserRepo)
	flightChargeSvc := NewFlightChargeService(repos.FlightRepo, rateSvc, cfg)
	membershipSvc := NewMembershipService(repos.MembershipRepo, repos.InvoiceRepo, invoiceSvc, cfg)
	userSvc := NewUserService(repos.UserRepo)
	authSvc := NewAuthService(repos.UserRepo, cfg)

	return &portssvc.ServiceContainer{
		Rate:         rateSvc,
		Invoice:      invoiceSvc,
		Payment:      paymentSvc,
		Statement:    statementSvc,
		FlightCharge: flightChargeSvc,
		Membership:   membershipSvc,
		User:         userSvc,
		Auth:         authSvc,
	}
}
