package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/handlers"
	"github.com/aerodesk/flightops_backend/internal/middleware"
	"github.com/aerodesk/flightops_backend/internal/utils"
)

// --- Mock FlightChargeService ---
type MockFlightChargeService struct {
	mock.Mock
}

func (m *MockFlightChargeService) PreviewCharges(ctx context.Context, bookingID string, req dto.FlightChargeRequest, actor domain.Actor) (*dto.ChargePreviewResponse, error) {
	args := m.Called(ctx, bookingID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChargePreviewResponse), args.Error(1)
}

func (m *MockFlightChargeService) CompleteFlight(ctx context.Context, bookingID string, req dto.FlightChargeRequest, actor domain.Actor) (*dto.CompleteFlightResponse, error) {
	args := m.Called(ctx, bookingID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CompleteFlightResponse), args.Error(1)
}

var _ portssvc.FlightChargeSvcFacade = (*MockFlightChargeService)(nil)

// --- Test Suite ---
type FlightHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockFlightService *MockFlightChargeService
	jwtSecret         string
}

func (suite *FlightHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockFlightService = new(MockFlightChargeService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterFlightRoutes(v1, suite.mockFlightService)
}

func (suite *FlightHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "flightops-test")
	suite.Require().NoError(err, "Failed to sign test token")
	return token
}

func (suite *FlightHandlerTestSuite) chargeRequest() dto.FlightChargeRequest {
	return dto.FlightChargeRequest{
		MeterReadings: dto.MeterReadingsRequest{
			HobbsStart: decimal.RequireFromString("1250"),
			HobbsEnd:   decimal.RequireFromString("1251.3"),
			TachStart:  decimal.RequireFromString("1100"),
			TachEnd:    decimal.RequireFromString("1101.1"),
		},
		FlightTypeID: "ft-dual",
	}
}

// postPreview sends the request body to the preview endpoint as the given
// user and returns the recorded response.
func (suite *FlightHandlerTestSuite) postPreview(bookingID string, body []byte, userID string, role domain.Role) *httptest.ResponseRecorder {
	url := fmt.Sprintf("/api/v1/bookings/%s/charges/preview", bookingID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, role))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *FlightHandlerTestSuite) TestPreviewCharges_Success() {
	chargeReq := suite.chargeRequest()
	expected := &dto.ChargePreviewResponse{
		FlightLog: dto.FlightLogResponse{
			BookingID:    "bk-1",
			AircraftID:   "ac-1",
			FlightTypeID: "ft-dual",
			HobbsTime:    decimal.RequireFromString("1.3"),
			TachTime:     decimal.RequireFromString("1.1"),
			CreditedTime: decimal.RequireFromString("1.3"),
			DualTime:     decimal.RequireFromString("1.3"),
		},
		InvoiceItems: []dto.InvoiceItemResponse{
			{
				Description: "Aircraft charge ZK-ABC dual",
				Quantity:    decimal.RequireFromString("1.3"),
				UnitPrice:   decimal.RequireFromString("185.50"),
				Amount:      decimal.RequireFromString("241.15"),
				TaxAmount:   decimal.RequireFromString("36.17"),
				LineTotal:   decimal.RequireFromString("277.32"),
			},
		},
		Totals: dto.ChargeTotalsResponse{
			Subtotal:    decimal.RequireFromString("241.15"),
			TaxTotal:    decimal.RequireFromString("36.17"),
			TotalAmount: decimal.RequireFromString("277.32"),
		},
	}

	suite.mockFlightService.On("PreviewCharges",
		mock.AnythingOfType("*context.valueCtx"),
		"bk-1",
		chargeReq,
		domain.Actor{UserID: "member-1", Role: domain.RoleMember},
	).Return(expected, nil).Once()

	body, err := json.Marshal(chargeReq)
	suite.Require().NoError(err)
	w := suite.postPreview("bk-1", body, "member-1", domain.RoleMember)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ChargePreviewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("bk-1", resp.FlightLog.BookingID)
	suite.True(resp.Totals.TotalAmount.Equal(decimal.RequireFromString("277.32")))
	suite.Len(resp.InvoiceItems, 1)

	suite.mockFlightService.AssertExpectations(suite.T())
	suite.mockFlightService.AssertNotCalled(suite.T(), "CompleteFlight")
}

func (suite *FlightHandlerTestSuite) TestPreviewCharges_ValidationErrorReturns400() {
	chargeReq := suite.chargeRequest()
	suite.mockFlightService.On("PreviewCharges",
		mock.AnythingOfType("*context.valueCtx"), "bk-1", chargeReq, mock.AnythingOfType("domain.Actor"),
	).Return(nil, fmt.Errorf("hobbs end 1249.0 is before hobbs start 1250.0: %w", apperrors.ErrValidation)).Once()

	body, err := json.Marshal(chargeReq)
	suite.Require().NoError(err)
	w := suite.postPreview("bk-1", body, "member-1", domain.RoleMember)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "hobbs")
	suite.mockFlightService.AssertExpectations(suite.T())
}

func (suite *FlightHandlerTestSuite) TestPreviewCharges_MissingRateReturns404() {
	chargeReq := suite.chargeRequest()
	suite.mockFlightService.On("PreviewCharges",
		mock.AnythingOfType("*context.valueCtx"), "bk-1", chargeReq, mock.AnythingOfType("domain.Actor"),
	).Return(nil, fmt.Errorf("no hobbs rate for aircraft ac-1 flight type ft-dual: %w", apperrors.ErrRateNotConfigured)).Once()

	body, err := json.Marshal(chargeReq)
	suite.Require().NoError(err)
	w := suite.postPreview("bk-1", body, "member-1", domain.RoleMember)

	suite.Equal(http.StatusNotFound, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "no hobbs rate")
	suite.mockFlightService.AssertExpectations(suite.T())
}

func (suite *FlightHandlerTestSuite) TestPreviewCharges_UnknownBookingReturns404() {
	chargeReq := suite.chargeRequest()
	suite.mockFlightService.On("PreviewCharges",
		mock.AnythingOfType("*context.valueCtx"), "bk-missing", chargeReq, mock.AnythingOfType("domain.Actor"),
	).Return(nil, fmt.Errorf("booking bk-missing: %w", apperrors.ErrNotFound)).Once()

	body, err := json.Marshal(chargeReq)
	suite.Require().NoError(err)
	w := suite.postPreview("bk-missing", body, "member-1", domain.RoleMember)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockFlightService.AssertExpectations(suite.T())
}

func (suite *FlightHandlerTestSuite) TestPreviewCharges_OtherMemberReturns403() {
	chargeReq := suite.chargeRequest()
	suite.mockFlightService.On("PreviewCharges",
		mock.AnythingOfType("*context.valueCtx"), "bk-1", chargeReq, mock.AnythingOfType("domain.Actor"),
	).Return(nil, apperrors.ErrForbidden).Once()

	body, err := json.Marshal(chargeReq)
	suite.Require().NoError(err)
	w := suite.postPreview("bk-1", body, "member-2", domain.RoleMember)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockFlightService.AssertExpectations(suite.T())
}

func (suite *FlightHandlerTestSuite) TestPreviewCharges_MalformedBodyReturns400() {
	w := suite.postPreview("bk-1", []byte(`{"meterReadings": `), "member-1", domain.RoleMember)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockFlightService.AssertNotCalled(suite.T(), "PreviewCharges")
}

func (suite *FlightHandlerTestSuite) TestPreviewCharges_MissingTokenReturns401() {
	body, err := json.Marshal(suite.chargeRequest())
	suite.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, "/api/v1/bookings/bk-1/charges/preview", bytes.NewReader(body))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockFlightService.AssertNotCalled(suite.T(), "PreviewCharges")
}

// --- Run Test Suite ---
func TestFlightHandler(t *testing.T) {
	suite.Run(t, new(FlightHandlerTestSuite))
}
