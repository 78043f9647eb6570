package mapping

import (
	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/aerodesk/flightops_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		Email:          d.Email,
		Name:           d.Name,
		Role:           string(d.Role),
		PasswordHash:   d.PasswordHash,
		AccountBalance: d.AccountBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		Email:          m.Email,
		Name:           m.Name,
		Role:           domain.Role(m.Role),
		PasswordHash:   m.PasswordHash,
		AccountBalance: m.AccountBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
