package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountFilter narrows account listings
type AccountFilter struct {
	Type       *AccountType
	CategoryID *uuid.UUID
	ActiveOnly bool
}

// AccountRepository persists the chart of accounts.
// Balance writes go through IncrementBalance so concurrent postings never
// lose updates; Save never touches the balance of an existing account.
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByName(ctx context.Context, name string) (*Account, error)
	FindAll(ctx context.Context, filter AccountFilter) ([]Account, error)
	Save(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementBalance applies a signed delta as an atomic in-database
	// increment, not a read-modify-write.
	IncrementBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// CategoryRepository persists account categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountCategory, error)
	FindByName(ctx context.Context, name string) (*AccountCategory, error)
	FindAll(ctx context.Context) ([]AccountCategory, error)
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, category *AccountCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountSettingRepository persists system-name mappings
type AccountSettingRepository interface {
	FindBySystemName(ctx context.Context, name SystemName) (*AccountSetting, error)
	FindAll(ctx context.Context) ([]AccountSetting, error)
	Upsert(ctx context.Context, setting *AccountSetting) error
}

// JournalEntryRepository persists journal entries and their legs.
// Entries are append-mostly: after Save the only mutation paths are
// MarkReconciled and, during an account replacement, RepointAccount.
type JournalEntryRepository interface {
	Save(ctx context.Context, entry *JournalEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)
	// CountLinesByAccount reports how many posted legs reference the account
	CountLinesByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	// RepointAccount moves every leg from one account to another
	RepointAccount(ctx context.Context, fromAccountID, toAccountID uuid.UUID) error
	FindUnreconciled(ctx context.Context, accountID uuid.UUID, asOf *time.Time, propertyID *uuid.UUID) ([]JournalEntry, error)
	MarkReconciled(ctx context.Context, entryIDs []uuid.UUID, bankDate time.Time) error
	// FindByBillRef returns entries carrying a leg against the given bill,
	// in posting order
	FindByBillRef(ctx context.Context, accountID uuid.UUID, billRefNo string) ([]JournalEntry, error)
}

// OutstandingBill is a pending bill joined with its account's name, the
// shape the outstanding report groups on.
type OutstandingBill struct {
	BillLedger
	AccountName string `json:"account_name"`
}

// BillLedgerRepository persists the bill-wise sub-ledger
type BillLedgerRepository interface {
	Save(ctx context.Context, bill *BillLedger) error
	// FindByRef returns the bill keyed by (accountID, billRefNo)
	FindByRef(ctx context.Context, accountID uuid.UUID, billRefNo string) (*BillLedger, error)
	// FindOutstanding returns pending bills for accounts of the given type,
	// ordered by due date
	FindOutstanding(ctx context.Context, accountType AccountType, propertyID *uuid.UUID) ([]OutstandingBill, error)
}
