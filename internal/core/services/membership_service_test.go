package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/core/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/platform/config"
)

// MockInvoiceService is a mock type for the InvoiceSvcFacade interface
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoice(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, userID string, actor domain.Actor) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) AddItem(ctx context.Context, invoiceID string, req dto.CreateInvoiceItemRequest, actor domain.Actor) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateInvoiceItemRequest, actor domain.Actor) (*domain.Invoice, error) {
	args := m.Called(ctx, itemID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) DeleteItem(ctx context.Context, itemID string, actor domain.Actor) (*domain.Invoice, error) {
	args := m.Called(ctx, itemID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) TransitionStatus(ctx context.Context, invoiceID string, next domain.InvoiceStatus, actor domain.Actor) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, next, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) DeleteDraftInvoice(ctx context.Context, invoiceID string, actor domain.Actor) (int, error) {
	args := m.Called(ctx, invoiceID, actor)
	return args.Int(0), args.Error(1)
}

// --- Test Suite Setup ---

type MembershipServiceTestSuite struct {
	suite.Suite
	mockMembershipRepo *MockMembershipRepository
	mockInvoiceRepo    *MockInvoiceRepository
	mockInvoiceSvc     *MockInvoiceService
	cfg                *config.Config
	service            portssvc.MembershipSvcFacade
}

func (suite *MembershipServiceTestSuite) SetupTest() {
	suite.mockMembershipRepo = new(MockMembershipRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockInvoiceSvc = new(MockInvoiceService)
	suite.cfg = testConfig()
	suite.service = services.NewMembershipService(
		suite.mockMembershipRepo, suite.mockInvoiceRepo, suite.mockInvoiceSvc, suite.cfg)
}

func (suite *MembershipServiceTestSuite) renewWithoutInvoice(req dto.RenewMembershipRequest) *dto.RenewMembershipResponse {
	suite.mockMembershipRepo.On("FindMembershipType", mock.Anything, req.MembershipTypeID).
		Return(&domain.MembershipType{MembershipTypeID: req.MembershipTypeID, Name: "Full member", Fee: dec("150"), GracePeriodDays: 60}, nil).Once()
	suite.mockMembershipRepo.On("FindActiveMembership", mock.Anything, req.UserID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMembershipRepo.On("SaveRenewal", mock.Anything, mock.AnythingOfType("domain.Membership")).
		Return(nil).Once()

	resp, err := suite.service.RenewMembership(context.Background(), req, adminActor)
	suite.Require().NoError(err)
	return resp
}

// --- Test Cases ---

func (suite *MembershipServiceTestSuite) TestRenewMembership_RollingPolicyAddsOneYear() {
	start := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	resp := suite.renewWithoutInvoice(dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
		StartDate:        &start,
	})

	suite.Equal(start.AddDate(1, 0, 0), resp.Membership.ExpiryDate)
	suite.Equal(60, resp.Membership.GracePeriodDays, "grace period from the membership type")
	suite.True(resp.Membership.IsActive)
	suite.Nil(resp.Membership.RenewalOf)
	suite.mockMembershipRepo.AssertExpectations(suite.T())
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_FixedPolicyExpiresOnAnniversary() {
	suite.cfg.MembershipYearPolicy = domain.MembershipYearFixed

	start := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	resp := suite.renewWithoutInvoice(dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
		StartDate:        &start,
	})

	// June 2026 start is past the April anniversary, so the year runs to
	// April 2027.
	suite.Equal(time.Date(2027, time.April, 1, 0, 0, 0, 0, time.UTC), resp.Membership.ExpiryDate)
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_FixedPolicyBeforeAnniversary() {
	suite.cfg.MembershipYearPolicy = domain.MembershipYearFixed

	start := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	resp := suite.renewWithoutInvoice(dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
		StartDate:        &start,
	})

	suite.Equal(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), resp.Membership.ExpiryDate)
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_ExpiryOverrideWins() {
	start := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	override := start.AddDate(0, 6, 0)
	resp := suite.renewWithoutInvoice(dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
		StartDate:        &start,
		ExpiryOverride:   &override,
	})

	suite.Equal(override, resp.Membership.ExpiryDate)
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_ExpiryBeforeStartRejected() {
	start := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	override := start.AddDate(0, -1, 0)

	suite.mockMembershipRepo.On("FindMembershipType", mock.Anything, "mt-full").
		Return(&domain.MembershipType{MembershipTypeID: "mt-full", Fee: dec("150")}, nil).Once()

	_, err := suite.service.RenewMembership(context.Background(), dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
		StartDate:        &start,
		ExpiryOverride:   &override,
	}, adminActor)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMembershipRepo.AssertNotCalled(suite.T(), "SaveRenewal", mock.Anything, mock.Anything)
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_LinksPriorMembership() {
	prior := &domain.Membership{MembershipID: "mem-old", UserID: "member-1", IsActive: true}

	suite.mockMembershipRepo.On("FindMembershipType", mock.Anything, "mt-full").
		Return(&domain.MembershipType{MembershipTypeID: "mt-full", Fee: dec("150"), GracePeriodDays: 30}, nil).Once()
	suite.mockMembershipRepo.On("FindActiveMembership", mock.Anything, "member-1").
		Return(prior, nil).Once()
	suite.mockMembershipRepo.On("SaveRenewal", mock.Anything, mock.AnythingOfType("domain.Membership")).
		Return(nil).Once()

	resp, err := suite.service.RenewMembership(context.Background(), dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
	}, adminActor)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Membership.RenewalOf)
	suite.Equal("mem-old", *resp.Membership.RenewalOf)
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_FeeInvoiceCreatedAndLinked() {
	invoice := &domain.Invoice{InvoiceID: "inv-1", InvoiceNumber: "INV-000009"}

	suite.mockMembershipRepo.On("FindMembershipType", mock.Anything, "mt-full").
		Return(&domain.MembershipType{MembershipTypeID: "mt-full", Name: "Full member", Fee: dec("150"), GracePeriodDays: 30}, nil).Once()
	suite.mockMembershipRepo.On("FindActiveMembership", mock.Anything, "member-1").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMembershipRepo.On("SaveRenewal", mock.Anything, mock.AnythingOfType("domain.Membership")).
		Return(nil).Once()
	suite.mockInvoiceSvc.On("CreateInvoice", mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest"), adminActor).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(dto.CreateInvoiceRequest)
			suite.Require().Len(req.Items, 1)
			suite.Equal("Full member membership fee", req.Items[0].Description)
			suite.True(dec("150").Equal(req.Items[0].UnitPrice))
		}).
		Return(invoice, nil).Once()
	suite.mockMembershipRepo.On("LinkInvoice", mock.Anything, mock.AnythingOfType("string"), "inv-1", adminActor.UserID).
		Return(nil).Once()

	resp, err := suite.service.RenewMembership(context.Background(), dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
		CreateInvoice:    true,
	}, adminActor)

	suite.Require().NoError(err)
	suite.Empty(resp.Warning)
	suite.Require().NotNil(resp.Invoice)
	suite.Equal("INV-000009", resp.Invoice.InvoiceNumber)
	suite.Equal(domain.MembershipUnpaid, resp.Membership.Status, "unpaid until the fee invoice settles")
	suite.mockInvoiceSvc.AssertExpectations(suite.T())
	suite.mockMembershipRepo.AssertExpectations(suite.T())
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_InvoiceFailureKeepsRenewal() {
	suite.mockMembershipRepo.On("FindMembershipType", mock.Anything, "mt-full").
		Return(&domain.MembershipType{MembershipTypeID: "mt-full", Name: "Full member", Fee: dec("150"), GracePeriodDays: 30}, nil).Once()
	suite.mockMembershipRepo.On("FindActiveMembership", mock.Anything, "member-1").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMembershipRepo.On("SaveRenewal", mock.Anything, mock.AnythingOfType("domain.Membership")).
		Return(nil).Once()
	suite.mockInvoiceSvc.On("CreateInvoice", mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest"), adminActor).
		Return(nil, apperrors.ErrInternal).Once()

	resp, err := suite.service.RenewMembership(context.Background(), dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
		CreateInvoice:    true,
	}, adminActor)

	suite.Require().NoError(err, "fee invoice failure never rolls the renewal back")
	suite.NotEmpty(resp.Warning)
	suite.Nil(resp.Invoice)
	suite.Equal(domain.MembershipActive, resp.Membership.Status)
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_ZeroFeeSkipsInvoice() {
	suite.mockMembershipRepo.On("FindMembershipType", mock.Anything, "mt-social").
		Return(&domain.MembershipType{MembershipTypeID: "mt-social", Name: "Social", Fee: dec("0"), GracePeriodDays: 30}, nil).Once()
	suite.mockMembershipRepo.On("FindActiveMembership", mock.Anything, "member-1").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMembershipRepo.On("SaveRenewal", mock.Anything, mock.AnythingOfType("domain.Membership")).
		Return(nil).Once()

	resp, err := suite.service.RenewMembership(context.Background(), dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-social",
		CreateInvoice:    true,
	}, adminActor)

	suite.Require().NoError(err)
	suite.Nil(resp.Invoice)
	suite.mockInvoiceSvc.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_NonPrivilegedForbidden() {
	_, err := suite.service.RenewMembership(context.Background(), dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
	}, memberActor)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *MembershipServiceTestSuite) TestRenewMembership_ZeroGraceFallsBackToConfig() {
	suite.mockMembershipRepo.On("FindMembershipType", mock.Anything, "mt-full").
		Return(&domain.MembershipType{MembershipTypeID: "mt-full", Fee: dec("150"), GracePeriodDays: 0}, nil).Once()
	suite.mockMembershipRepo.On("FindActiveMembership", mock.Anything, "member-1").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMembershipRepo.On("SaveRenewal", mock.Anything, mock.AnythingOfType("domain.Membership")).
		Return(nil).Once()

	resp, err := suite.service.RenewMembership(context.Background(), dto.RenewMembershipRequest{
		UserID:           "member-1",
		MembershipTypeID: "mt-full",
	}, adminActor)

	suite.Require().NoError(err)
	suite.Equal(suite.cfg.DefaultGracePeriodDays, resp.Membership.GracePeriodDays)
}

func (suite *MembershipServiceTestSuite) TestGetActiveMembership_DerivesStatus() {
	ctx := context.Background()
	invoiceID := "inv-1"
	membership := &domain.Membership{
		MembershipID:    "mem-1",
		UserID:          "member-1",
		StartDate:       time.Now().UTC().AddDate(0, -2, 0),
		ExpiryDate:      time.Now().UTC().AddDate(0, 10, 0),
		GracePeriodDays: 30,
		InvoiceID:       &invoiceID,
		IsActive:        true,
	}
	unpaidInvoice := &domain.Invoice{InvoiceID: invoiceID, Status: domain.InvoicePending}

	suite.mockMembershipRepo.On("FindActiveMembership", ctx, "member-1").Return(membership, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(unpaidInvoice, nil).Once()

	resp, err := suite.service.GetActiveMembership(ctx, "member-1", memberActor)

	suite.Require().NoError(err)
	suite.Equal(domain.MembershipUnpaid, resp.Status)
}

func (suite *MembershipServiceTestSuite) TestGetActiveMembership_OtherMemberForbidden() {
	other := domain.Actor{UserID: "member-2", Role: domain.RoleMember}
	_, err := suite.service.GetActiveMembership(context.Background(), "member-1", other)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestMembershipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipServiceTestSuite))
}
