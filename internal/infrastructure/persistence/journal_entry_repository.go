package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/hostelbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormJournalEntryRepository implements JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// Save persists a journal entry with its lines
func (r *GormJournalEntryRepository) Save(ctx context.Context, entry *ledger.JournalEntry) error {
	var model models.JournalEntryModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds an entry by its ID with lines loaded
func (r *GormJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.JournalEntry, error) {
	var model models.JournalEntryModel
	if err := r.db.WithContext(ctx).Preload("Lines").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountLinesByAccount reports how many posted legs reference the account
func (r *GormJournalEntryRepository) CountLinesByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TransactionLineModel{}).
		Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}

// RepointAccount moves every leg from one account to another, carrying the
// target's current name onto the moved lines.
func (r *GormJournalEntryRepository) RepointAccount(ctx context.Context, fromAccountID, toAccountID uuid.UUID) error {
	var target models.AccountModel
	if err := r.db.WithContext(ctx).First(&target, "id = ?", toAccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	return r.db.WithContext(ctx).Model(&models.TransactionLineModel{}).
		Where("account_id = ?", fromAccountID).
		Updates(map[string]any{
			"account_id":   toAccountID,
			"account_name": target.Name,
		}).Error
}

// FindUnreconciled returns unreconciled entries touching the account,
// oldest first, optionally bounded by date and property.
func (r *GormJournalEntryRepository) FindUnreconciled(ctx context.Context, accountID uuid.UUID, asOf *time.Time, propertyID *uuid.UUID) ([]ledger.JournalEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("is_reconciled = ?", false).
		Where("id IN (?)", r.db.Model(&models.TransactionLineModel{}).
			Select("journal_entry_id").Where("account_id = ?", accountID))
	if asOf != nil {
		query = query.Where("date <= ?", *asOf)
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

// MarkReconciled flags the entries as matched against a statement dated
// bankDate. Re-marking an already reconciled entry refreshes its bank date.
func (r *GormJournalEntryRepository) MarkReconciled(ctx context.Context, entryIDs []uuid.UUID, bankDate time.Time) error {
	if len(entryIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("id IN ?", entryIDs).
		Updates(map[string]any{
			"is_reconciled": true,
			"bank_date":     bankDate,
		}).Error
}

// FindByBillRef returns entries carrying a leg against the bill, in posting order
func (r *GormJournalEntryRepository) FindByBillRef(ctx context.Context, accountID uuid.UUID, billRefNo string) ([]ledger.JournalEntry, error) {
	var entryModels []models.JournalEntryModel
	err := r.db.WithContext(ctx).Model(&models.JournalEntryModel{}).
		Where("id IN (?)", r.db.Model(&models.TransactionLineModel{}).
			Select("journal_entry_id").
			Where("account_id = ? AND bill_ref_no = ?", accountID, billRefNo)).
		Preload("Lines").
		Order("date ASC, created_at ASC").
		Find(&entryModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

func toDomainEntries(entryModels []models.JournalEntryModel) []ledger.JournalEntry {
	entries := make([]ledger.JournalEntry, 0, len(entryModels))
	for i := range entryModels {
		entries = append(entries, *entryModels[i].ToDomain())
	}
	return entries
}

// Ensure GormJournalEntryRepository implements JournalEntryRepository
var _ ledger.JournalEntryRepository = (*GormJournalEntryRepository)(nil)
