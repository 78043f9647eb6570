package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
)

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceItem), args.Error(1)
}

func (m *MockInvoiceRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InvoiceItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceItem), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByUser(ctx context.Context, userID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) InsertItem(ctx context.Context, item domain.InvoiceItem) (*domain.Invoice, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateItem(ctx context.Context, item domain.InvoiceItem) (*domain.Invoice, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) DeleteItem(ctx context.Context, itemID string, actorUserID string, at time.Time) (*domain.Invoice, error) {
	args := m.Called(ctx, itemID, actorUserID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceFields(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) TransitionInvoiceStatus(ctx context.Context, invoiceID string, next domain.InvoiceStatus, actorUserID string, at time.Time) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, next, actorUserID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SoftDeleteDraftInvoice(ctx context.Context, invoiceID string, actorUserID string, at time.Time) (int, error) {
	args := m.Called(ctx, invoiceID, actorUserID, at)
	return args.Int(0), args.Error(1)
}

// MockPaymentRepository is a mock type for the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment domain.Payment, strict bool) (*domain.Payment, *domain.Invoice, error) {
	args := m.Called(ctx, payment, strict)
	var p *domain.Payment
	var inv *domain.Invoice
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Payment)
	}
	if args.Get(1) != nil {
		inv = args.Get(1).(*domain.Invoice)
	}
	return p, inv, args.Error(2)
}

func (m *MockPaymentRepository) ReversePayment(ctx context.Context, reversal domain.Payment, corrective *domain.Payment) (*domain.Invoice, error) {
	args := m.Called(ctx, reversal, corrective)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// MockCreditNoteRepository is a mock type for the CreditNoteRepositoryFacade interface
type MockCreditNoteRepository struct {
	mock.Mock
}

func (m *MockCreditNoteRepository) CreateCreditNote(ctx context.Context, note domain.CreditNote, items []domain.CreditNoteItem) (*domain.CreditNote, error) {
	args := m.Called(ctx, note, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	args := m.Called(ctx, creditNoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) ApplyCreditNote(ctx context.Context, creditNoteID string, actorUserID string, at time.Time) (*domain.CreditNote, *domain.Invoice, error) {
	args := m.Called(ctx, creditNoteID, actorUserID, at)
	var note *domain.CreditNote
	var inv *domain.Invoice
	if args.Get(0) != nil {
		note = args.Get(0).(*domain.CreditNote)
	}
	if args.Get(1) != nil {
		inv = args.Get(1).(*domain.Invoice)
	}
	return note, inv, args.Error(2)
}

func (m *MockCreditNoteRepository) ListAppliedCreditNotesByUser(ctx context.Context, userID string) ([]domain.CreditNote, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditNote), args.Error(1)
}

// MockRateRepository is a mock type for the RateRepositoryFacade interface
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindAircraftRate(ctx context.Context, aircraftID, flightTypeID string, date time.Time) (*domain.AircraftRate, error) {
	args := m.Called(ctx, aircraftID, flightTypeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AircraftRate), args.Error(1)
}

func (m *MockRateRepository) FindInstructorRate(ctx context.Context, instructorID string, date time.Time) (*domain.InstructorRate, error) {
	args := m.Called(ctx, instructorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstructorRate), args.Error(1)
}

func (m *MockRateRepository) FindLandingFee(ctx context.Context, chargeableID, aircraftTypeID string) (*domain.LandingFee, error) {
	args := m.Called(ctx, chargeableID, aircraftTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandingFee), args.Error(1)
}

func (m *MockRateRepository) FindChargeable(ctx context.Context, chargeableID string) (*domain.Chargeable, error) {
	args := m.Called(ctx, chargeableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chargeable), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockMembershipRepository is a mock type for the MembershipRepositoryFacade interface
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindActiveMembership(ctx context.Context, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindMembershipType(ctx context.Context, membershipTypeID string) (*domain.MembershipType, error) {
	args := m.Called(ctx, membershipTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipType), args.Error(1)
}

func (m *MockMembershipRepository) SaveRenewal(ctx context.Context, membership domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) LinkInvoice(ctx context.Context, membershipID, invoiceID string, actorUserID string) error {
	args := m.Called(ctx, membershipID, invoiceID, actorUserID)
	return args.Error(0)
}

// MockFlightRepository is a mock type for the FlightRepositoryFacade interface
type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockFlightRepository) FindAircraftByID(ctx context.Context, aircraftID string) (*domain.Aircraft, error) {
	args := m.Called(ctx, aircraftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aircraft), args.Error(1)
}

func (m *MockFlightRepository) FindFlightTypeByID(ctx context.Context, flightTypeID string) (*domain.FlightType, error) {
	args := m.Called(ctx, flightTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightType), args.Error(1)
}

func (m *MockFlightRepository) FindFlightLogByBooking(ctx context.Context, bookingID string) (*domain.FlightLog, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightLog), args.Error(1)
}

func (m *MockFlightRepository) CompleteFlight(ctx context.Context, log domain.FlightLog, invoice domain.Invoice, items []domain.InvoiceItem) (*portsrepo.CompleteFlightResult, error) {
	args := m.Called(ctx, log, invoice, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.CompleteFlightResult), args.Error(1)
}
