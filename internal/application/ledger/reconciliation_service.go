package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReconciliationService matches cash and bank postings against bank
// statements. Only entries touching a cash or bank account ever enter the
// queue; the journal engine marks everything else reconciled at birth.
type ReconciliationService struct {
	entryRepo   ledger.JournalEntryRepository
	accountRepo ledger.AccountRepository
	logger      *zap.Logger
}

// NewReconciliationService creates a ReconciliationService
func NewReconciliationService(entryRepo ledger.JournalEntryRepository, accountRepo ledger.AccountRepository, logger *zap.Logger) *ReconciliationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconciliationService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// ListUnreconciled returns the unreconciled postings of one cash/bank
// account up to the given date, each annotated with the signed amount on the
// account's own leg (positive where the balance grew).
func (s *ReconciliationService) ListUnreconciled(ctx context.Context, accountID uuid.UUID, asOf *time.Time, propertyID *uuid.UUID) ([]UnreconciledEntry, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("account not found")
		}
		return nil, err
	}
	if !account.IsCashOrBank() {
		return nil, shared.NewValidationError(
			"account " + account.Name + " is not a cash or bank account")
	}

	entries, err := s.entryRepo.FindUnreconciled(ctx, accountID, asOf, propertyID)
	if err != nil {
		return nil, err
	}

	result := make([]UnreconciledEntry, 0, len(entries))
	for _, entry := range entries {
		amount := decimal.Zero
		for _, line := range entry.Lines {
			if line.AccountID != accountID {
				continue
			}
			amount = amount.Add(account.Type.SignedDelta(line.Debit, line.Credit))
		}
		result = append(result, UnreconciledEntry{
			EntryID:       entry.ID,
			Date:          entry.Date,
			Description:   entry.Description,
			ReferenceType: entry.ReferenceType,
			Amount:        amount,
		})
	}
	return result, nil
}

// Reconcile marks the given entries as matched against a bank statement
// dated bankDate. Already reconciled entries just refresh their bank date,
// so re-running a statement import is harmless.
func (s *ReconciliationService) Reconcile(ctx context.Context, entryIDs []uuid.UUID, bankDate time.Time) error {
	if len(entryIDs) == 0 {
		return shared.NewValidationError("at least one entry id is required")
	}
	if bankDate.IsZero() {
		return shared.NewValidationError("bank date is required")
	}

	for _, id := range entryIDs {
		if _, err := s.entryRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("journal entry " + id.String() + " not found")
			}
			return err
		}
	}

	if err := s.entryRepo.MarkReconciled(ctx, entryIDs, bankDate); err != nil {
		return err
	}

	s.logger.Info("entries reconciled",
		zap.Int("count", len(entryIDs)),
		zap.Time("bank_date", bankDate))
	return nil
}
