package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// AccountLine is one account's contribution to a statement section.
// Amount is signed by the account type's natural direction, so income
// shows credit-positive and expense debit-positive.
type AccountLine struct {
	AccountID   uuid.UUID       `json:"account_id"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitAndLossReport is income and expense movement over a period
type ProfitAndLossReport struct {
	PropertyID   *uuid.UUID      `json:"property_id,omitempty"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	Income       []AccountLine   `json:"income"`
	Expense      []AccountLine   `json:"expense"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

// BalanceSheetReport is the financial position as of a cutoff date.
// RetainedEarnings carries lifetime net profit into equity; Difference
// and IsBalanced expose the accounting identity check, since a nonzero
// difference means balances were changed outside posted entries.
type BalanceSheetReport struct {
	PropertyID       *uuid.UUID      `json:"property_id,omitempty"`
	AsOfDate         *time.Time      `json:"as_of_date,omitempty"`
	Assets           []AccountLine   `json:"assets"`
	Liabilities      []AccountLine   `json:"liabilities"`
	Equity           []AccountLine   `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	Difference       decimal.Decimal `json:"difference"`
	IsBalanced       bool            `json:"is_balanced"`
}

// LedgerRow is one entry on an account's statement
type LedgerRow struct {
	EntryID        uuid.UUID       `json:"entry_id"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	ReferenceType  string          `json:"reference_type,omitempty"`
	ContraAccounts []string        `json:"contra_accounts"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// LedgerReport is one account's statement over a period with opening and
// closing balances and a running balance per row
type LedgerReport struct {
	AccountID      uuid.UUID          `json:"account_id"`
	AccountName    string             `json:"account_name"`
	AccountType    ledger.AccountType `json:"account_type"`
	StartDate      time.Time          `json:"start_date"`
	EndDate        time.Time          `json:"end_date"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
	ClosingBalance decimal.Decimal    `json:"closing_balance"`
	Rows           []LedgerRow        `json:"rows"`
}

// DayBookEntry is one posting on the day book, with all its legs
type DayBookEntry struct {
	EntryID     uuid.UUID                `json:"entry_id"`
	Date        time.Time                `json:"date"`
	Description string                   `json:"description"`
	Reference   string                   `json:"reference,omitempty"`
	Lines       []ledger.TransactionLine `json:"transactions"`
	TotalDebit  decimal.Decimal          `json:"total_debit"`
	TotalCredit decimal.Decimal          `json:"total_credit"`
}

// DayBookReport lists every posting of one calendar day
type DayBookReport struct {
	Date        time.Time       `json:"date"`
	PropertyID  *uuid.UUID      `json:"property_id,omitempty"`
	Entries     []DayBookEntry  `json:"entries"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// GSTRateLine is tax movement for one GST rate
type GSTRateLine struct {
	Rate      decimal.Decimal `json:"rate"`
	OutputTax decimal.Decimal `json:"output_tax"`
	InputTax  decimal.Decimal `json:"input_tax"`
}

// GSTSummaryReport is output tax versus input credit per rate for a period
type GSTSummaryReport struct {
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Rates      []GSTRateLine   `json:"rates"`
	NetPayable decimal.Decimal `json:"net_payable"`
}

// AccountTotalsRow is the raw per-account debit/credit aggregate every
// statement is derived from
type AccountTotalsRow struct {
	AccountID   uuid.UUID
	AccountName string
	AccountType ledger.AccountType
	GSTType     ledger.GSTClass
	GSTRate     *decimal.Decimal
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// TotalsFilter narrows the totals aggregation. Nil fields mean unbounded.
type TotalsFilter struct {
	Types      []ledger.AccountType
	PropertyID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// LedgerReportRepository reads posted entries for reporting. All methods
// are read-only aggregations; reports never write.
type LedgerReportRepository interface {
	// AccountTotals sums posted debits and credits per account within the filter
	AccountTotals(ctx context.Context, filter TotalsFilter) ([]AccountTotalsRow, error)
	// EntriesForAccount returns entries touching the account within the range,
	// chronologically. A zero start means from the beginning of time.
	EntriesForAccount(ctx context.Context, accountID uuid.UUID, start, end time.Time, propertyID *uuid.UUID) ([]ledger.JournalEntry, error)
	// EntriesForDay returns every entry dated on the given calendar day
	EntriesForDay(ctx context.Context, day time.Time, propertyID *uuid.UUID) ([]ledger.JournalEntry, error)
}
