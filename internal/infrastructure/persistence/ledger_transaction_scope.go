package persistence

import (
	"context"

	appledger "github.com/hostelbooks/backend/internal/application/ledger"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormTransactionScope implements the ledger TransactionScope using GORM
// transactions. Every repository handed to the callback shares one database
// transaction, so a posting's entry, balance increments and bill rows
// commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all ledger repositories
// within one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Accounts returns the account repository scoped to the current transaction
func (r *gormTransactionalRepositories) Accounts() ledger.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// Categories returns the category repository scoped to the current transaction
func (r *gormTransactionalRepositories) Categories() ledger.CategoryRepository {
	return NewGormAccountCategoryRepository(r.tx)
}

// Settings returns the mapping repository scoped to the current transaction
func (r *gormTransactionalRepositories) Settings() ledger.AccountSettingRepository {
	return NewGormAccountSettingRepository(r.tx)
}

// Entries returns the journal entry repository scoped to the current transaction
func (r *gormTransactionalRepositories) Entries() ledger.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

// Bills returns the bill-ledger repository scoped to the current transaction
func (r *gormTransactionalRepositories) Bills() ledger.BillLedgerRepository {
	return NewGormBillLedgerRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appledger.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appledger.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
