package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillService reads the bill-wise AR/AP sub-ledger. All writes happen
// through the journal engine; this service only shapes what is outstanding
// and how a bill got there.
type BillService struct {
	billRepo    ledger.BillLedgerRepository
	accountRepo ledger.AccountRepository
	entryRepo   ledger.JournalEntryRepository
	logger      *zap.Logger
}

// NewBillService creates a BillService
func NewBillService(
	billRepo ledger.BillLedgerRepository,
	accountRepo ledger.AccountRepository,
	entryRepo ledger.JournalEntryRepository,
	logger *zap.Logger,
) *BillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillService{
		billRepo:    billRepo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		logger:      logger,
	}
}

// GetOutstanding returns pending bills for accounts of the given type,
// grouped per account with bills ordered by due date. Receivables come from
// ASSET accounts, payables from LIABILITY accounts.
func (s *BillService) GetOutstanding(ctx context.Context, accountType ledger.AccountType, propertyID *uuid.UUID) ([]OutstandingGroup, error) {
	if !accountType.IsValid() {
		return nil, shared.NewValidationError("invalid account type: " + string(accountType))
	}

	bills, err := s.billRepo.FindOutstanding(ctx, accountType, propertyID)
	if err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]int)
	groups := make([]OutstandingGroup, 0)
	for _, bill := range bills {
		i, ok := index[bill.AccountID]
		if !ok {
			i = len(groups)
			index[bill.AccountID] = i
			groups = append(groups, OutstandingGroup{
				AccountID:    bill.AccountID,
				AccountName:  bill.AccountName,
				TotalPending: decimal.Zero,
				Bills:        []ledger.BillLedger{},
			})
		}
		groups[i].TotalPending = groups[i].TotalPending.Add(bill.PendingAmount)
		groups[i].Bills = append(groups[i].Bills, bill.BillLedger)
	}
	return groups, nil
}

// GetBillHistory returns the bill header plus every journal leg that touched
// it, in posting order: the opening NewRef first, then each settlement.
func (s *BillService) GetBillHistory(ctx context.Context, accountID uuid.UUID, billRefNo string) (*ledger.BillLedger, []BillHistoryRow, error) {
	if billRefNo == "" {
		return nil, nil, shared.NewValidationError("bill reference number is required")
	}

	bill, err := s.billRepo.FindByRef(ctx, accountID, billRefNo)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewNotFoundError("bill " + billRefNo + " not found")
		}
		return nil, nil, err
	}

	entries, err := s.entryRepo.FindByBillRef(ctx, accountID, billRefNo)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]BillHistoryRow, 0, len(entries))
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if line.AccountID != accountID || line.BillRefNo != billRefNo || line.BillRefKind == nil {
				continue
			}
			rows = append(rows, BillHistoryRow{
				EntryID:     entry.ID,
				Date:        entry.Date,
				Description: entry.Description,
				Kind:        string(*line.BillRefKind),
				Debit:       line.Debit,
				Credit:      line.Credit,
			})
		}
	}
	return bill, rows, nil
}
