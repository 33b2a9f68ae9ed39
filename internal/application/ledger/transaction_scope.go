package ledger

import (
	"context"

	"github.com/hostelbooks/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
//
// The scope is the "ambient transaction" of the journal engine: business
// workflows (fee payment, deposit, salary, ...) pass their own scope into
// PostEntryWithin so the ledger posting commits or aborts together with the
// business record; operator-facing entry points open and own a scope of
// their own.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all ledger repositories
// within one transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// Accounts returns the account repository scoped to the transaction
	Accounts() ledger.AccountRepository
	// Categories returns the category repository scoped to the transaction
	Categories() ledger.CategoryRepository
	// Settings returns the system-name mapping repository scoped to the transaction
	Settings() ledger.AccountSettingRepository
	// Entries returns the journal entry repository scoped to the transaction
	Entries() ledger.JournalEntryRepository
	// Bills returns the bill-ledger repository scoped to the transaction
	Bills() ledger.BillLedgerRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Useful for tests and read paths.
type NoOpTransactionScope struct {
	accounts   ledger.AccountRepository
	categories ledger.CategoryRepository
	settings   ledger.AccountSettingRepository
	entries    ledger.JournalEntryRepository
	bills      ledger.BillLedgerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	accounts ledger.AccountRepository,
	categories ledger.CategoryRepository,
	settings ledger.AccountSettingRepository,
	entries ledger.JournalEntryRepository,
	bills ledger.BillLedgerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		accounts:   accounts,
		categories: categories,
		settings:   settings,
		entries:    entries,
		bills:      bills,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Accounts returns the account repository.
func (s *NoOpTransactionScope) Accounts() ledger.AccountRepository { return s.accounts }

// Categories returns the category repository.
func (s *NoOpTransactionScope) Categories() ledger.CategoryRepository { return s.categories }

// Settings returns the mapping repository.
func (s *NoOpTransactionScope) Settings() ledger.AccountSettingRepository { return s.settings }

// Entries returns the journal entry repository.
func (s *NoOpTransactionScope) Entries() ledger.JournalEntryRepository { return s.entries }

// Bills returns the bill-ledger repository.
func (s *NoOpTransactionScope) Bills() ledger.BillLedgerRepository { return s.bills }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
