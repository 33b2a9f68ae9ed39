package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/hostelbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAccountCategoryRepository implements CategoryRepository using GORM
type GormAccountCategoryRepository struct {
	db *gorm.DB
}

// NewGormAccountCategoryRepository creates a new GormAccountCategoryRepository
func NewGormAccountCategoryRepository(db *gorm.DB) *GormAccountCategoryRepository {
	return &GormAccountCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormAccountCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountCategory, error) {
	var model models.AccountCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a category by its unique name
func (r *GormAccountCategoryRepository) FindByName(ctx context.Context, name string) (*ledger.AccountCategory, error) {
	var model models.AccountCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all categories ordered by name
func (r *GormAccountCategoryRepository) FindAll(ctx context.Context) ([]ledger.AccountCategory, error) {
	var categoryModels []models.AccountCategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]ledger.AccountCategory, 0, len(categoryModels))
	for i := range categoryModels {
		categories = append(categories, *categoryModels[i].ToDomain())
	}
	return categories, nil
}

// HasChildren reports whether any category has this one as parent
func (r *GormAccountCategoryRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AccountCategoryModel{}).
		Where("parent_id = ?", id).Count(&count).Error
	return count > 0, err
}

// Save creates or updates a category
func (r *GormAccountCategoryRepository) Save(ctx context.Context, category *ledger.AccountCategory) error {
	var model models.AccountCategoryModel
	model.FromDomain(category)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a category
func (r *GormAccountCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountCategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAccountCategoryRepository implements CategoryRepository
var _ ledger.CategoryRepository = (*GormAccountCategoryRepository)(nil)
