package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/report"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService derives financial statements from posted entries. Every
// report is computed from raw per-account debit/credit sums at read time;
// nothing here ever writes.
type ReportService struct {
	reportRepo  report.LedgerReportRepository
	accountRepo ledger.AccountRepository
	logger      *zap.Logger
}

// NewReportService creates a ReportService
func NewReportService(reportRepo report.LedgerReportRepository, accountRepo ledger.AccountRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reportRepo:  reportRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// ProfitAndLoss aggregates income and expense movement within the range.
// Accounts with zero movement are omitted.
func (s *ReportService) ProfitAndLoss(ctx context.Context, start, end *time.Time, propertyID *uuid.UUID) (*report.ProfitAndLossReport, error) {
	rows, err := s.reportRepo.AccountTotals(ctx, report.TotalsFilter{
		Types:      []ledger.AccountType{ledger.AccountTypeIncome, ledger.AccountTypeExpense},
		PropertyID: propertyID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return nil, err
	}

	result := &report.ProfitAndLossReport{
		PropertyID:   propertyID,
		StartDate:    start,
		EndDate:      end,
		Income:       []report.AccountLine{},
		Expense:      []report.AccountLine{},
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, row := range rows {
		amount := row.AccountType.SignedDelta(row.Debit, row.Credit)
		if amount.IsZero() {
			continue
		}
		line := report.AccountLine{
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			Amount:      amount,
		}
		switch row.AccountType {
		case ledger.AccountTypeIncome:
			result.Income = append(result.Income, line)
			result.TotalIncome = result.TotalIncome.Add(amount)
		case ledger.AccountTypeExpense:
			result.Expense = append(result.Expense, line)
			result.TotalExpense = result.TotalExpense.Add(amount)
		}
	}
	sortLines(result.Income)
	sortLines(result.Expense)
	result.NetProfit = result.TotalIncome.Sub(result.TotalExpense)
	return result, nil
}

// BalanceSheet aggregates asset, liability and equity balances up to the
// cutoff, folds retained earnings (lifetime net profit up to the cutoff)
// into equity, and self-checks that the sheet actually balances. A false
// IsBalanced means balances were mutated outside the journal engine.
func (s *ReportService) BalanceSheet(ctx context.Context, asOf *time.Time, propertyID *uuid.UUID) (*report.BalanceSheetReport, error) {
	rows, err := s.reportRepo.AccountTotals(ctx, report.TotalsFilter{
		PropertyID: propertyID,
		EndDate:    asOf,
	})
	if err != nil {
		return nil, err
	}

	result := &report.BalanceSheetReport{
		PropertyID:       propertyID,
		AsOfDate:         asOf,
		Assets:           []report.AccountLine{},
		Liabilities:      []report.AccountLine{},
		Equity:           []report.AccountLine{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		RetainedEarnings: decimal.Zero,
	}
	for _, row := range rows {
		amount := row.AccountType.SignedDelta(row.Debit, row.Credit)
		line := report.AccountLine{
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			Amount:      amount,
		}
		switch row.AccountType {
		case ledger.AccountTypeAsset:
			if !amount.IsZero() {
				result.Assets = append(result.Assets, line)
			}
			result.TotalAssets = result.TotalAssets.Add(amount)
		case ledger.AccountTypeLiability:
			if !amount.IsZero() {
				result.Liabilities = append(result.Liabilities, line)
			}
			result.TotalLiabilities = result.TotalLiabilities.Add(amount)
		case ledger.AccountTypeEquity:
			if !amount.IsZero() {
				result.Equity = append(result.Equity, line)
			}
			result.TotalEquity = result.TotalEquity.Add(amount)
		case ledger.AccountTypeIncome:
			result.RetainedEarnings = result.RetainedEarnings.Add(amount)
		case ledger.AccountTypeExpense:
			result.RetainedEarnings = result.RetainedEarnings.Sub(amount)
		}
	}
	sortLines(result.Assets)
	sortLines(result.Liabilities)
	sortLines(result.Equity)

	result.TotalEquity = result.TotalEquity.Add(result.RetainedEarnings)
	result.Difference = result.TotalAssets.Sub(result.TotalLiabilities.Add(result.TotalEquity))
	result.IsBalanced = result.Difference.Abs().LessThanOrEqual(ledger.AmountEpsilon)

	if !result.IsBalanced {
		s.logger.Error("balance sheet does not balance",
			zap.String("difference", result.Difference.String()))
	}
	return result, nil
}

// AccountLedger returns one account's statement over the range: an opening
// balance from everything posted strictly before the start, then each entry
// with its contra account names and a running balance.
func (s *ReportService) AccountLedger(ctx context.Context, accountID uuid.UUID, start, end time.Time, propertyID *uuid.UUID) (*report.LedgerReport, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("account not found")
		}
		return nil, err
	}
	if end.Before(start) {
		return nil, shared.NewValidationError("end date must not precede start date")
	}

	entries, err := s.reportRepo.EntriesForAccount(ctx, accountID, time.Time{}, end, propertyID)
	if err != nil {
		return nil, err
	}

	// entries arrive chronologically, so everything before start folds into
	// the opening balance and the rest carries the running balance forward
	opening := decimal.Zero
	pivot := 0
	for pivot < len(entries) && entries[pivot].Date.Before(start) {
		debit, credit := sumAccountLines(&entries[pivot], accountID)
		opening = opening.Add(account.Type.SignedDelta(debit, credit))
		pivot++
	}

	running := opening
	rows := make([]report.LedgerRow, 0, len(entries)-pivot)
	for _, entry := range entries[pivot:] {
		debit, credit := sumAccountLines(&entry, accountID)
		contra := make([]string, 0, len(entry.Lines)-1)
		for _, line := range entry.Lines {
			if line.AccountID != accountID {
				contra = appendUnique(contra, line.AccountName)
			}
		}
		running = running.Add(account.Type.SignedDelta(debit, credit))
		rows = append(rows, report.LedgerRow{
			EntryID:        entry.ID,
			Date:           entry.Date,
			Description:    entry.Description,
			ReferenceType:  entry.ReferenceType,
			ContraAccounts: contra,
			Debit:          debit,
			Credit:         credit,
			RunningBalance: running,
		})
	}

	closing := opening
	if len(rows) > 0 {
		closing = rows[len(rows)-1].RunningBalance
	}
	return &report.LedgerReport{
		AccountID:      account.ID,
		AccountName:    account.Name,
		AccountType:    account.Type,
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Rows:           rows,
	}, nil
}

// DayBook lists every posting of one calendar day with grand totals
func (s *ReportService) DayBook(ctx context.Context, day time.Time, propertyID *uuid.UUID) (*report.DayBookReport, error) {
	entries, err := s.reportRepo.EntriesForDay(ctx, day, propertyID)
	if err != nil {
		return nil, err
	}

	result := &report.DayBookReport{
		Date:        day,
		PropertyID:  propertyID,
		Entries:     make([]report.DayBookEntry, 0, len(entries)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for i := range entries {
		entry := &entries[i]
		debit, credit := entry.TotalDebit(), entry.TotalCredit()
		result.Entries = append(result.Entries, report.DayBookEntry{
			EntryID:     entry.ID,
			Date:        entry.Date,
			Description: entry.Description,
			Reference:   entry.ReferenceType,
			Lines:       entry.Lines,
			TotalDebit:  debit,
			TotalCredit: credit,
		})
		result.TotalDebit = result.TotalDebit.Add(debit)
		result.TotalCredit = result.TotalCredit.Add(credit)
	}
	return result, nil
}

// GSTSummary sums output tax collected and input tax credited per GST rate
// over the range. Output accounts are credit-positive liabilities, input
// accounts debit-positive assets; net payable is output minus input.
func (s *ReportService) GSTSummary(ctx context.Context, start, end time.Time, propertyID *uuid.UUID) (*report.GSTSummaryReport, error) {
	if end.Before(start) {
		return nil, shared.NewValidationError("end date must not precede start date")
	}

	rows, err := s.reportRepo.AccountTotals(ctx, report.TotalsFilter{
		PropertyID: propertyID,
		StartDate:  &start,
		EndDate:    &end,
	})
	if err != nil {
		return nil, err
	}

	byRate := make(map[string]*report.GSTRateLine)
	order := make([]string, 0)
	for _, row := range rows {
		if row.GSTType != ledger.GSTClassOutput && row.GSTType != ledger.GSTClassInput {
			continue
		}
		rate := decimal.Zero
		if row.GSTRate != nil {
			rate = *row.GSTRate
		}
		key := rate.String()
		line, ok := byRate[key]
		if !ok {
			line = &report.GSTRateLine{Rate: rate, OutputTax: decimal.Zero, InputTax: decimal.Zero}
			byRate[key] = line
			order = append(order, key)
		}
		if row.GSTType == ledger.GSTClassOutput {
			line.OutputTax = line.OutputTax.Add(row.Credit.Sub(row.Debit))
		} else {
			line.InputTax = line.InputTax.Add(row.Debit.Sub(row.Credit))
		}
	}

	result := &report.GSTSummaryReport{
		StartDate:  start,
		EndDate:    end,
		Rates:      make([]report.GSTRateLine, 0, len(byRate)),
		NetPayable: decimal.Zero,
	}
	sort.Slice(order, func(i, j int) bool {
		return byRate[order[i]].Rate.LessThan(byRate[order[j]].Rate)
	})
	for _, key := range order {
		line := byRate[key]
		result.Rates = append(result.Rates, *line)
		result.NetPayable = result.NetPayable.Add(line.OutputTax.Sub(line.InputTax))
	}
	return result, nil
}

func sortLines(lines []report.AccountLine) {
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].AccountName < lines[j].AccountName
	})
}

func sumAccountLines(entry *ledger.JournalEntry, accountID uuid.UUID) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, line := range entry.Lines {
		if line.AccountID == accountID {
			debit = debit.Add(line.Debit)
			credit = credit.Add(line.Credit)
		}
	}
	return debit, credit
}

func appendUnique(names []string, name string) []string {
	for _, existing := range names {
		if existing == name {
			return names
		}
	}
	return append(names, name)
}
