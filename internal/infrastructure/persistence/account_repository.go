package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/hostelbooks/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds an account by its unique name
func (r *GormAccountRepository) FindByName(ctx context.Context, name string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds accounts matching the filter, ordered by name
func (r *GormAccountRepository) FindAll(ctx context.Context, filter ledger.AccountFilter) ([]ledger.Account, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{})
	if filter.Type != nil {
		query = query.Where("account_type = ?", string(*filter.Type))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var accountModels []models.AccountModel
	if err := query.Order("name ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]ledger.Account, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, *accountModels[i].ToDomain())
	}
	return accounts, nil
}

// Save creates or updates an account. The balance column is deliberately
// excluded on update: balances move only through IncrementBalance.
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	var model models.AccountModel
	model.FromDomain(account)

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", account.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return r.db.WithContext(ctx).Create(&model).Error
	}
	return r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", account.ID).
		Omit("balance", "created_at").
		Select("name", "account_type", "category_id", "gst_type", "gst_rate",
			"maintains_bill_wise", "is_cash_equivalent", "active", "updated_at").
		Updates(&model).Error
}

// Delete removes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IncrementBalance applies a signed delta as an atomic in-database increment
// so concurrent postings never lose updates.
func (r *GormAccountRepository) IncrementBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByCategory reports how many accounts are assigned to the category
func (r *GormAccountRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// Ensure GormAccountRepository implements AccountRepository
var _ ledger.AccountRepository = (*GormAccountRepository)(nil)
