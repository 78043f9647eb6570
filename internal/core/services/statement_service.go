package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/aerodesk/flightops_backend/internal/core/domain"
	portsrepo "github.com/aerodesk/flightops_backend/internal/core/ports/repositories"
	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/middleware"
)

// statementService assembles member account statements from the invoice,
// payment and credit-note histories.
type statementService struct {
	invoiceRepo    portsrepo.InvoiceRepositoryFacade
	paymentRepo    portsrepo.PaymentRepositoryFacade
	creditNoteRepo portsrepo.CreditNoteRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
}

// NewStatementService creates a new StatementSvcFacade.
func NewStatementService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	creditNoteRepo portsrepo.CreditNoteRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
) portssvc.StatementSvcFacade {
	return &statementService{
		invoiceRepo:    invoiceRepo,
		paymentRepo:    paymentRepo,
		creditNoteRepo: creditNoteRepo,
		userRepo:       userRepo,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// statementIncludesInvoice reports whether an invoice appears on the
// statement. Drafts were never owed and cancellations were backed out;
// refunded invoices stay listed because their credit note entry offsets them.
func statementIncludesInvoice(status domain.InvoiceStatus) bool {
	switch status {
	case domain.InvoicePending, domain.InvoiceOverdue, domain.InvoicePaid, domain.InvoiceRefunded:
		return true
	}
	return false
}

// BuildStatement merges the member's invoices, payments and applied credit
// notes chronologically and reconciles running balances backward from the
// stored account balance, which is the single source of truth for what the
// member owes right now.
func (s *statementService) BuildStatement(ctx context.Context, userID string, actor domain.Actor) (*domain.AccountStatement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := ensureCanAccess(actor, userID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListInvoicesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	creditNotes, err := s.creditNoteRepo.ListAppliedCreditNotesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	invoiceNumbers := make(map[string]string, len(invoices))
	for _, inv := range invoices {
		invoiceNumbers[inv.InvoiceID] = inv.InvoiceNumber
	}

	entries := make([]domain.StatementEntry, 0, len(invoices)+len(payments)+len(creditNotes))

	for _, inv := range invoices {
		if !statementIncludesInvoice(inv.Status) {
			continue
		}
		entries = append(entries, domain.StatementEntry{
			Kind:        domain.EntryInvoice,
			Date:        inv.IssueDate,
			Description: "Invoice " + inv.InvoiceNumber,
			Reference:   inv.Reference,
			Amount:      inv.TotalAmount,
		})
	}
	for _, p := range payments {
		// A payment reads by what it settled: the linked invoice's number, or
		// "credit payment" for a standalone account credit.
		description := "Credit payment " + p.PaymentNumber
		if p.InvoiceID != nil {
			if number, ok := invoiceNumbers[*p.InvoiceID]; ok {
				description = "Payment for " + number
			}
		}
		if p.IsReversal() {
			description = "Payment reversal " + p.PaymentNumber
		}
		// Reversal rows carry a negated amount, so negating here flips them
		// back to a charge against the account.
		entries = append(entries, domain.StatementEntry{
			Kind:        domain.EntryPayment,
			Date:        p.PaymentDate,
			Description: description,
			Reference:   p.Reference,
			Amount:      p.Amount.Neg(),
		})
	}
	for _, note := range creditNotes {
		if note.AppliedAt == nil {
			continue
		}
		entries = append(entries, domain.StatementEntry{
			Kind:        domain.EntryCreditNote,
			Date:        *note.AppliedAt,
			Description: "Credit note " + note.CreditNoteNumber,
			Reference:   note.Reason,
			Amount:      note.TotalAmount.Neg(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	closing := user.AccountBalance
	opening := closing
	for _, e := range entries {
		opening = opening.Sub(e.Amount)
	}

	running := opening
	for i := range entries {
		running = running.Add(entries[i].Amount)
		entries[i].Balance = running
	}

	if len(entries) > 0 && !opening.IsZero() {
		openingEntry := domain.StatementEntry{
			Kind:        domain.EntryOpeningBalance,
			Date:        entries[0].Date.AddDate(0, 0, -1),
			Description: "Opening balance",
			Amount:      decimal.Zero,
			Balance:     opening,
		}
		entries = append([]domain.StatementEntry{openingEntry}, entries...)
	}

	logger.Info("Statement built",
		slog.String("user_id", userID),
		slog.Int("entries", len(entries)),
		slog.String("closing_balance", closing.StringFixed(2)))

	return &domain.AccountStatement{
		UserID:         userID,
		Entries:        entries,
		OpeningBalance: opening,
		ClosingBalance: closing,
	}, nil
}
