package domain

import "github.com/shopspring/decimal"

// Role is the externally-resolved capability of a user. The billing core only
// ever asks two questions of it: is the caller privileged, and is the caller
// the owner of the record being touched.
type Role string

const (
	RoleMember     Role = "member"
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
	RoleOwner      Role = "owner"
)

// IsPrivileged reports whether the role may perform administrative mutations.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleOwner
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleStudent, RoleInstructor, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// Actor identifies the caller at a mutation boundary: who they are and the
// externally-resolved role they carry. Services only consult
// Role.IsPrivileged() and ownership.
type Actor struct {
	UserID string
	Role   Role
}

// IsPrivileged reports whether the actor may perform administrative mutations.
func (a Actor) IsPrivileged() bool {
	return a.Role.IsPrivileged()
}

// User is a member of the flight school. AccountBalance is the stored amount
// the member currently owes (negative means the school owes the member); it is
// the anchor the account statement reconciles backward from.
type User struct {
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PasswordHash   string          `json:"-"`
	Role           Role            `json:"role"`
	AccountBalance decimal.Decimal `json:"accountBalance"`
	AuditFields
}
