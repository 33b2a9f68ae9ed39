package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/hostelbooks/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.AccountCategoryModel{},
		&models.AccountModel{},
		&models.AccountSettingModel{},
		&models.JournalEntryModel{},
		&models.TransactionLineModel{},
		&models.BillLedgerModel{},
	))
	return db
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedAccount(t *testing.T, db *gorm.DB, name string, accountType ledger.AccountType, configure ...func(*ledger.Account)) *ledger.Account {
	t.Helper()
	account := ledger.NewAccount(name, accountType)
	for _, fn := range configure {
		fn(account)
	}
	repo := NewGormAccountRepository(db)
	require.NoError(t, repo.Save(context.Background(), account))
	return account
}

func seedEntry(t *testing.T, db *gorm.DB, date time.Time, description string, lines ...ledger.TransactionLine) *ledger.JournalEntry {
	t.Helper()
	entry := &ledger.JournalEntry{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        date,
		Description: description,
		Lines:       lines,
	}
	repo := NewGormJournalEntryRepository(db)
	require.NoError(t, repo.Save(context.Background(), entry))
	return entry
}

func line(accountID uuid.UUID, accountName, debit, credit string) ledger.TransactionLine {
	return ledger.TransactionLine{
		ID:          uuid.New(),
		AccountID:   accountID,
		AccountName: accountName,
		Debit:       amt(debit),
		Credit:      amt(credit),
	}
}

func billLine(accountID uuid.UUID, accountName, debit, credit string, kind ledger.BillRefKind, refNo string) ledger.TransactionLine {
	l := line(accountID, accountName, debit, credit)
	l.BillRefKind = &kind
	l.BillRefNo = refNo
	return l
}
