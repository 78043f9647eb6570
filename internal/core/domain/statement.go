package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementEntryKind is the exhaustive set of entry types that can appear on
// an account statement. The statement builder switches over every kind; adding
// a kind without handling it in the merge is a compile-visible change, not a
// silent reconciliation gap.
type StatementEntryKind string

const (
	EntryInvoice        StatementEntryKind = "invoice"
	EntryPayment        StatementEntryKind = "payment"
	EntryCreditNote     StatementEntryKind = "credit_note"
	EntryOpeningBalance StatementEntryKind = "opening_balance"
)

// StatementEntry is one dated row of a member's account statement. Amount is
// signed: invoices increase what the member owes, payments and credit notes
// decrease it. Balance is the running account total after this entry.
type StatementEntry struct {
	Kind        StatementEntryKind `json:"kind"`
	Date        time.Time          `json:"date"`
	Description string             `json:"description"`
	Reference   string             `json:"reference"`
	Amount      decimal.Decimal    `json:"amount"`
	Balance     decimal.Decimal    `json:"balance"`
}

// AccountStatement is the assembled, chronologically ascending view.
type AccountStatement struct {
	UserID         string           `json:"userID"`
	Entries        []StatementEntry `json:"entries"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	ClosingBalance decimal.Decimal  `json:"closingBalance"`
}
