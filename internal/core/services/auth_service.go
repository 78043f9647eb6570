package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aerodesk/flightops_backend/internal/apperrors"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/middleware"
	"github.com/aerodesk/flightops_backend/internal/platform/config"
	"github.com/aerodesk/flightops_backend/internal/utils"
)

// authService issues bearer tokens carrying the user's role claim.
type authService struct {
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewAuthService creates a new AuthSvcFacade.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("user_id", user.UserID), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to sign token", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(s.cfg.JWTExpiryDuration),
	}, nil
}
