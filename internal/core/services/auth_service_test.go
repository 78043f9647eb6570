package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/core/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/utils"
)

// --- Test Suite Setup ---

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	cfg := testConfig()
	cfg.JWTSecret = "test-secret"
	cfg.JWTExpiryDuration = time.Hour
	cfg.JWTIssuer = "flightops-test"
	suite.service = services.NewAuthService(suite.mockUserRepo, cfg)
}

// --- Test Cases ---

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse battery staple")
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       "member-1",
		Email:        "pilot@example.com",
		PasswordHash: hash,
		Role:         domain.RoleMember,
	}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "pilot@example.com").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{
		Email:    "pilot@example.com",
		Password: "correct horse battery staple",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
	suite.WithinDuration(time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(resp.Token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("member-1", claims.Subject)
	suite.Equal(string(domain.RoleMember), claims.Role)
	suite.Equal("flightops-test", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the right one")
	suite.Require().NoError(err)

	user := &domain.User{UserID: "member-1", Email: "pilot@example.com", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "pilot@example.com").Return(user, nil).Once()

	_, err = suite.service.Login(ctx, dto.LoginRequest{Email: "pilot@example.com", Password: "the wrong one"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Contains(err.Error(), "invalid credentials")
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmailIndistinguishable() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Contains(err.Error(), "invalid credentials")
	suite.NotContains(err.Error(), "not found")
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
