package dto

import (
	"time"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementEntryResponse is one row of the account statement.
type StatementEntryResponse struct {
	Kind        domain.StatementEntryKind `json:"kind"`
	Date        time.Time                 `json:"date"`
	Description string                    `json:"description"`
	Reference   string                    `json:"reference,omitempty"`
	Amount      decimal.Decimal           `json:"amount"`
	Balance     decimal.Decimal           `json:"balance"`
}

// AccountStatementResponse is the assembled statement for a member.
type AccountStatementResponse struct {
	UserID         string                   `json:"userID"`
	Entries        []StatementEntryResponse `json:"entries"`
	OpeningBalance decimal.Decimal          `json:"openingBalance"`
	ClosingBalance decimal.Decimal          `json:"closingBalance"`
}

// ToAccountStatementResponse converts the domain statement to its DTO.
func ToAccountStatementResponse(s *domain.AccountStatement) AccountStatementResponse {
	entries := make([]StatementEntryResponse, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = StatementEntryResponse{
			Kind:        e.Kind,
			Date:        e.Date,
			Description: e.Description,
			Reference:   e.Reference,
			Amount:      e.Amount,
			Balance:     e.Balance,
		}
	}
	return AccountStatementResponse{
		UserID:         s.UserID,
		Entries:        entries,
		OpeningBalance: s.OpeningBalance,
		ClosingBalance: s.ClosingBalance,
	}
}
