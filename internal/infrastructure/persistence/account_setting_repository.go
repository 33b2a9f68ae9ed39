package persistence

import (
	"context"
	"errors"

	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/hostelbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountSettingRepository implements AccountSettingRepository using GORM
type GormAccountSettingRepository struct {
	db *gorm.DB
}

// NewGormAccountSettingRepository creates a new GormAccountSettingRepository
func NewGormAccountSettingRepository(db *gorm.DB) *GormAccountSettingRepository {
	return &GormAccountSettingRepository{db: db}
}

// FindBySystemName finds the mapping for a system name
func (r *GormAccountSettingRepository) FindBySystemName(ctx context.Context, name ledger.SystemName) (*ledger.AccountSetting, error) {
	var model models.AccountSettingModel
	if err := r.db.WithContext(ctx).First(&model, "system_name = ?", string(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every configured mapping ordered by system name
func (r *GormAccountSettingRepository) FindAll(ctx context.Context) ([]ledger.AccountSetting, error) {
	var settingModels []models.AccountSettingModel
	if err := r.db.WithContext(ctx).Order("system_name ASC").Find(&settingModels).Error; err != nil {
		return nil, err
	}
	settings := make([]ledger.AccountSetting, 0, len(settingModels))
	for i := range settingModels {
		settings = append(settings, *settingModels[i].ToDomain())
	}
	return settings, nil
}

// Upsert creates the mapping or repoints an existing one, keyed on the
// system name's unique index.
func (r *GormAccountSettingRepository) Upsert(ctx context.Context, setting *ledger.AccountSetting) error {
	var model models.AccountSettingModel
	model.FromDomain(setting)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "system_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"account_id", "description", "updated_by", "updated_at"}),
	}).Create(&model).Error
}

// Ensure GormAccountSettingRepository implements AccountSettingRepository
var _ ledger.AccountSettingRepository = (*GormAccountSettingRepository)(nil)
