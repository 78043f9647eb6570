package repositories

import (
	"context"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
)

// UserRepositoryFacade is the minimal member lookup the billing core needs.
// The stored account balance is maintained by the payment, credit-note and
// invoice transactions; nothing writes it directly through this interface.
type UserRepositoryFacade interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
