package models

import "github.com/shopspring/decimal"

// User is the users table row.
type User struct {
	UserID         string          `json:"userID" db:"user_id"`
	Email          string          `json:"email" db:"email"`
	Name           string          `json:"name" db:"name"`
	Role           string          `json:"role" db:"role"`
	PasswordHash   string          `json:"-" db:"password_hash"`
	AccountBalance decimal.Decimal `json:"accountBalance" db:"account_balance"`
	AuditFields
}
