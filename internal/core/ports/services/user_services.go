package services

import (
	"context"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/dto"
)

// UserSvcFacade is the member lookup used across the billing core.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthSvcFacade issues bearer tokens. Authorization itself is carried as an
// opaque role claim consumed by the capability checks.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
