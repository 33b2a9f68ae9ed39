package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/report"
	"github.com/hostelbooks/backend/internal/domain/shared"
)

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeReportRepo serves canned totals and entries, filtered just enough for
// the service logic under test.
type fakeReportRepo struct {
	totals  []report.AccountTotalsRow
	entries []ledger.JournalEntry
}

func (r *fakeReportRepo) AccountTotals(_ context.Context, filter report.TotalsFilter) ([]report.AccountTotalsRow, error) {
	if len(filter.Types) == 0 {
		return r.totals, nil
	}
	allowed := make(map[ledger.AccountType]bool)
	for _, t := range filter.Types {
		allowed[t] = true
	}
	result := make([]report.AccountTotalsRow, 0)
	for _, row := range r.totals {
		if allowed[row.AccountType] {
			result = append(result, row)
		}
	}
	return result, nil
}

func (r *fakeReportRepo) EntriesForAccount(_ context.Context, accountID uuid.UUID, _, end time.Time, _ *uuid.UUID) ([]ledger.JournalEntry, error) {
	result := make([]ledger.JournalEntry, 0)
	for _, e := range r.entries {
		if e.Date.After(end) {
			continue
		}
		for _, line := range e.Lines {
			if line.AccountID == accountID {
				result = append(result, e)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeReportRepo) EntriesForDay(_ context.Context, day time.Time, _ *uuid.UUID) ([]ledger.JournalEntry, error) {
	result := make([]ledger.JournalEntry, 0)
	for _, e := range r.entries {
		if e.Date.Year() == day.Year() && e.Date.YearDay() == day.YearDay() {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*ledger.Account
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Account, error) {
	if a, ok := r.accounts[id]; ok {
		return a, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeAccountRepo) FindByName(context.Context, string) (*ledger.Account, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeAccountRepo) FindAll(context.Context, ledger.AccountFilter) ([]ledger.Account, error) {
	return nil, nil
}

func (r *fakeAccountRepo) Save(context.Context, *ledger.Account) error { return nil }

func (r *fakeAccountRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeAccountRepo) IncrementBalance(context.Context, uuid.UUID, decimal.Decimal) error {
	return nil
}

func (r *fakeAccountRepo) CountByCategory(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func totalsRow(name string, accountType ledger.AccountType, debit, credit string) report.AccountTotalsRow {
	return report.AccountTotalsRow{
		AccountID:   uuid.New(),
		AccountName: name,
		AccountType: accountType,
		GSTType:     ledger.GSTClassNone,
		Debit:       amt(debit),
		Credit:      amt(credit),
	}
}

func TestReportService_ProfitAndLoss(t *testing.T) {
	ctx := context.Background()

	repo := &fakeReportRepo{totals: []report.AccountTotalsRow{
		totalsRow("Rent Income", ledger.AccountTypeIncome, "0", "50000.00"),
		totalsRow("Mess Income", ledger.AccountTypeIncome, "500.00", "20500.00"),
		totalsRow("Salary Expense", ledger.AccountTypeExpense, "30000.00", "0"),
		totalsRow("Idle Expense", ledger.AccountTypeExpense, "0", "0"),
		totalsRow("HDFC Bank", ledger.AccountTypeAsset, "70000.00", "30000.00"),
	}}
	svc := NewReportService(repo, &fakeAccountRepo{}, nil)

	result, err := svc.ProfitAndLoss(ctx, nil, nil, nil)
	require.NoError(t, err)

	require.Len(t, result.Income, 2, "zero-movement and non-P&L accounts are omitted")
	require.Len(t, result.Expense, 1)
	assert.True(t, result.TotalIncome.Equal(amt("70000.00")))
	assert.True(t, result.TotalExpense.Equal(amt("30000.00")))
	assert.True(t, result.NetProfit.Equal(amt("40000.00")))

	// lines are sorted by account name
	assert.Equal(t, "Mess Income", result.Income[0].AccountName)
	assert.Equal(t, "Rent Income", result.Income[1].AccountName)
}

func TestReportService_BalanceSheet(t *testing.T) {
	ctx := context.Background()

	t.Run("folds retained earnings into equity and balances", func(t *testing.T) {
		// bank 50000 came in from rent income; capital 10000 from equity
		repo := &fakeReportRepo{totals: []report.AccountTotalsRow{
			totalsRow("HDFC Bank", ledger.AccountTypeAsset, "60000.00", "0"),
			totalsRow("Owner Capital", ledger.AccountTypeEquity, "0", "10000.00"),
			totalsRow("Rent Income", ledger.AccountTypeIncome, "0", "50000.00"),
		}}
		svc := NewReportService(repo, &fakeAccountRepo{}, nil)

		result, err := svc.BalanceSheet(ctx, nil, nil)
		require.NoError(t, err)

		assert.True(t, result.TotalAssets.Equal(amt("60000.00")))
		assert.True(t, result.RetainedEarnings.Equal(amt("50000.00")))
		assert.True(t, result.TotalEquity.Equal(amt("60000.00")))
		assert.True(t, result.IsBalanced)
		assert.True(t, result.Difference.IsZero())
	})

	t.Run("detects a ledger that does not balance", func(t *testing.T) {
		repo := &fakeReportRepo{totals: []report.AccountTotalsRow{
			totalsRow("HDFC Bank", ledger.AccountTypeAsset, "60000.00", "0"),
			totalsRow("Rent Income", ledger.AccountTypeIncome, "0", "50000.00"),
		}}
		svc := NewReportService(repo, &fakeAccountRepo{}, nil)

		result, err := svc.BalanceSheet(ctx, nil, nil)
		require.NoError(t, err)
		assert.False(t, result.IsBalanced)
		assert.True(t, result.Difference.Equal(amt("10000.00")))
	})

	t.Run("expenses reduce retained earnings", func(t *testing.T) {
		repo := &fakeReportRepo{totals: []report.AccountTotalsRow{
			totalsRow("HDFC Bank", ledger.AccountTypeAsset, "50000.00", "30000.00"),
			totalsRow("Rent Income", ledger.AccountTypeIncome, "0", "50000.00"),
			totalsRow("Salary Expense", ledger.AccountTypeExpense, "30000.00", "0"),
		}}
		svc := NewReportService(repo, &fakeAccountRepo{}, nil)

		result, err := svc.BalanceSheet(ctx, nil, nil)
		require.NoError(t, err)
		assert.True(t, result.RetainedEarnings.Equal(amt("20000.00")))
		assert.True(t, result.IsBalanced)
	})
}

func newLedgerEntry(date time.Time, description string, lines ...ledger.TransactionLine) ledger.JournalEntry {
	return ledger.JournalEntry{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        date,
		Description: description,
		Lines:       lines,
	}
}

func TestReportService_AccountLedger(t *testing.T) {
	ctx := context.Background()

	bankID := uuid.New()
	rentID := uuid.New()
	accountRepo := &fakeAccountRepo{accounts: map[uuid.UUID]*ledger.Account{
		bankID: {
			BaseEntity: shared.BaseEntity{ID: bankID},
			Name:       "HDFC Bank",
			Type:       ledger.AccountTypeAsset,
			Active:     true,
		},
	}}

	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	bankLine := func(debit, credit string) ledger.TransactionLine {
		return ledger.TransactionLine{ID: uuid.New(), AccountID: bankID, AccountName: "HDFC Bank", Debit: amt(debit), Credit: amt(credit)}
	}
	rentLine := func(debit, credit string) ledger.TransactionLine {
		return ledger.TransactionLine{ID: uuid.New(), AccountID: rentID, AccountName: "Rent Income", Debit: amt(debit), Credit: amt(credit)}
	}

	repo := &fakeReportRepo{entries: []ledger.JournalEntry{
		newLedgerEntry(day(1), "opening deposit", bankLine("10000.00", "0"), rentLine("0", "10000.00")),
		newLedgerEntry(day(10), "rent collected", bankLine("5000.00", "0"), rentLine("0", "5000.00")),
		newLedgerEntry(day(15), "refund paid", bankLine("0", "2000.00"), rentLine("2000.00", "0")),
		newLedgerEntry(day(25), "late rent", bankLine("3000.00", "0"), rentLine("0", "3000.00")),
	}}
	svc := NewReportService(repo, accountRepo, nil)

	t.Run("opening balance folds in everything before the start", func(t *testing.T) {
		result, err := svc.AccountLedger(ctx, bankID, day(5), day(20), nil)
		require.NoError(t, err)

		assert.True(t, result.OpeningBalance.Equal(amt("10000.00")))
		require.Len(t, result.Rows, 2)

		assert.True(t, result.Rows[0].Debit.Equal(amt("5000.00")))
		assert.True(t, result.Rows[0].RunningBalance.Equal(amt("15000.00")))
		assert.Equal(t, []string{"Rent Income"}, result.Rows[0].ContraAccounts)

		assert.True(t, result.Rows[1].Credit.Equal(amt("2000.00")))
		assert.True(t, result.Rows[1].RunningBalance.Equal(amt("13000.00")))

		assert.True(t, result.ClosingBalance.Equal(amt("13000.00")))
	})

	t.Run("empty range keeps closing equal to opening", func(t *testing.T) {
		result, err := svc.AccountLedger(ctx, bankID, day(27), day(28), nil)
		require.NoError(t, err)
		assert.True(t, result.OpeningBalance.Equal(amt("16000.00")))
		assert.Empty(t, result.Rows)
		assert.True(t, result.ClosingBalance.Equal(amt("16000.00")))
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := svc.AccountLedger(ctx, bankID, day(20), day(10), nil)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		_, err := svc.AccountLedger(ctx, uuid.New(), day(1), day(28), nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestReportService_DayBook(t *testing.T) {
	ctx := context.Background()

	bankID, rentID := uuid.New(), uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	line := func(accountID uuid.UUID, debit, credit string) ledger.TransactionLine {
		return ledger.TransactionLine{ID: uuid.New(), AccountID: accountID, Debit: amt(debit), Credit: amt(credit)}
	}

	repo := &fakeReportRepo{entries: []ledger.JournalEntry{
		newLedgerEntry(day, "rent", line(bankID, "5000.00", "0"), line(rentID, "0", "5000.00")),
		newLedgerEntry(day, "mess", line(bankID, "1200.00", "0"), line(rentID, "0", "1200.00")),
		newLedgerEntry(day.AddDate(0, 0, 1), "next day", line(bankID, "99.00", "0"), line(rentID, "0", "99.00")),
	}}
	svc := NewReportService(repo, &fakeAccountRepo{}, nil)

	result, err := svc.DayBook(ctx, day, nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.True(t, result.TotalDebit.Equal(amt("6200.00")))
	assert.True(t, result.TotalCredit.Equal(amt("6200.00")))
	assert.Len(t, result.Entries[0].Lines, 2)
}

func TestReportService_GSTSummary(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	gstRow := func(name string, class ledger.GSTClass, rate, debit, credit string) report.AccountTotalsRow {
		r := amt(rate)
		return report.AccountTotalsRow{
			AccountID:   uuid.New(),
			AccountName: name,
			AccountType: ledger.AccountTypeLiability,
			GSTType:     class,
			GSTRate:     &r,
			Debit:       amt(debit),
			Credit:      amt(credit),
		}
	}

	t.Run("sums output and input per rate", func(t *testing.T) {
		repo := &fakeReportRepo{totals: []report.AccountTotalsRow{
			gstRow("Output CGST 9%", ledger.GSTClassOutput, "9", "0", "4500.00"),
			gstRow("Output SGST 9%", ledger.GSTClassOutput, "9", "0", "4500.00"),
			gstRow("Input CGST 9%", ledger.GSTClassInput, "9", "1800.00", "0"),
			gstRow("Output IGST 18%", ledger.GSTClassOutput, "18", "0", "3600.00"),
			totalsRow("Rent Income", ledger.AccountTypeIncome, "0", "50000.00"),
		}}
		svc := NewReportService(repo, &fakeAccountRepo{}, nil)

		result, err := svc.GSTSummary(ctx, start, end, nil)
		require.NoError(t, err)
		require.Len(t, result.Rates, 2)

		byRate := map[string]report.GSTRateLine{}
		for _, line := range result.Rates {
			byRate[line.Rate.String()] = line
		}
		assert.True(t, byRate["9"].OutputTax.Equal(amt("9000.00")))
		assert.True(t, byRate["9"].InputTax.Equal(amt("1800.00")))
		assert.True(t, byRate["18"].OutputTax.Equal(amt("3600.00")))
		assert.True(t, result.NetPayable.Equal(amt("10800.00")))
	})

	t.Run("rates come back in numeric order", func(t *testing.T) {
		repo := &fakeReportRepo{totals: []report.AccountTotalsRow{
			gstRow("Output IGST 12%", ledger.GSTClassOutput, "12", "0", "1200.00"),
			gstRow("Output IGST 5%", ledger.GSTClassOutput, "5", "0", "500.00"),
			gstRow("Output IGST 18%", ledger.GSTClassOutput, "18", "0", "1800.00"),
		}}
		svc := NewReportService(repo, &fakeAccountRepo{}, nil)

		result, err := svc.GSTSummary(ctx, start, end, nil)
		require.NoError(t, err)
		require.Len(t, result.Rates, 3)
		assert.True(t, result.Rates[0].Rate.Equal(amt("5")))
		assert.True(t, result.Rates[1].Rate.Equal(amt("12")))
		assert.True(t, result.Rates[2].Rate.Equal(amt("18")))
	})

	t.Run("non-gst accounts are ignored", func(t *testing.T) {
		repo := &fakeReportRepo{totals: []report.AccountTotalsRow{
			totalsRow("Rent Income", ledger.AccountTypeIncome, "0", "50000.00"),
		}}
		svc := NewReportService(repo, &fakeAccountRepo{}, nil)

		result, err := svc.GSTSummary(ctx, start, end, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Rates)
		assert.True(t, result.NetPayable.IsZero())
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		svc := NewReportService(&fakeReportRepo{}, &fakeAccountRepo{}, nil)
		_, err := svc.GSTSummary(ctx, end, start, nil)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
