package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/report"
	"github.com/hostelbooks/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerReportRepository implements LedgerReportRepository with
// read-only aggregation queries over posted entries.
type GormLedgerReportRepository struct {
	db *gorm.DB
}

// NewGormLedgerReportRepository creates a new GormLedgerReportRepository
func NewGormLedgerReportRepository(db *gorm.DB) *GormLedgerReportRepository {
	return &GormLedgerReportRepository{db: db}
}

// totalsRow is the scan target for the aggregation query
type totalsRow struct {
	AccountID   uuid.UUID
	AccountName string
	AccountType string
	GSTType     string
	GSTRate     *decimal.Decimal
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// AccountTotals sums posted debits and credits per account within the filter
func (r *GormLedgerReportRepository) AccountTotals(ctx context.Context, filter report.TotalsFilter) ([]report.AccountTotalsRow, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionLineModel{}).
		Select(`accounts.id AS account_id,
			accounts.name AS account_name,
			accounts.account_type AS account_type,
			accounts.gst_type AS gst_type,
			accounts.gst_rate AS gst_rate,
			COALESCE(SUM(transaction_lines.debit), 0) AS debit,
			COALESCE(SUM(transaction_lines.credit), 0) AS credit`).
		Joins("JOIN accounts ON accounts.id = transaction_lines.account_id").
		Joins("JOIN journal_entries ON journal_entries.id = transaction_lines.journal_entry_id").
		Group("accounts.id, accounts.name, accounts.account_type, accounts.gst_type, accounts.gst_rate")

	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		query = query.Where("accounts.account_type IN ?", types)
	}
	if filter.PropertyID != nil {
		query = query.Where("journal_entries.property_id = ?", *filter.PropertyID)
	}
	if filter.StartDate != nil {
		query = query.Where("journal_entries.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("journal_entries.date <= ?", *filter.EndDate)
	}

	var rows []totalsRow
	if err := query.Order("accounts.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]report.AccountTotalsRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, report.AccountTotalsRow{
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			AccountType: ledger.AccountType(row.AccountType),
			GSTType:     ledger.GSTClass(row.GSTType),
			GSTRate:     row.GSTRate,
			Debit:       row.Debit,
			Credit:      row.Credit,
		})
	}
	return result, nil
}

// EntriesForAccount returns entries touching the account within the range,
// in chronological order. A zero start means from the beginning of time.
func (r *GormLedgerReportRepository) EntriesForAccount(ctx context.Context, accountID uuid.UUID, start, end time.Time, propertyID *uuid.UUID) ([]ledger.JournalEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("id IN (?)", r.db.Model(&models.TransactionLineModel{}).
			Select("journal_entry_id").Where("account_id = ?", accountID)).
		Where("date <= ?", end)
	if !start.IsZero() {
		query = query.Where("date >= ?", start)
	}
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}

	var entryModels []models.JournalEntryModel
	if err := query.Preload("Lines").Order("date ASC, created_at ASC").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// EntriesForDay returns every entry dated on the given calendar day
func (r *GormLedgerReportRepository) EntriesForDay(ctx context.Context, day time.Time, propertyID *uuid.UUID) ([]ledger.JournalEntry, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("date >= ? AND date < ?", dayStart, dayEnd)
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}

	var entryModels []models.JournalEntryModel
	if err := query.Preload("Lines").Order("date ASC, created_at ASC").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// Ensure GormLedgerReportRepository implements LedgerReportRepository
var _ report.LedgerReportRepository = (*GormLedgerReportRepository)(nil)
