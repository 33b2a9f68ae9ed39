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

// GormBillLedgerRepository implements BillLedgerRepository using GORM
type GormBillLedgerRepository struct {
	db *gorm.DB
}

// NewGormBillLedgerRepository creates a new GormBillLedgerRepository
func NewGormBillLedgerRepository(db *gorm.DB) *GormBillLedgerRepository {
	return &GormBillLedgerRepository{db: db}
}

// Save creates or updates a bill
func (r *GormBillLedgerRepository) Save(ctx context.Context, bill *ledger.BillLedger) error {
	var model models.BillLedgerModel
	model.FromDomain(bill)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByRef returns the bill keyed by (accountID, billRefNo)
func (r *GormBillLedgerRepository) FindByRef(ctx context.Context, accountID uuid.UUID, billRefNo string) (*ledger.BillLedger, error) {
	var model models.BillLedgerModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND bill_ref_no = ?", accountID, billRefNo).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// billRow is the scan target for the outstanding join
type billRow struct {
	models.BillLedgerModel
	AccountName string
}

// FindOutstanding returns pending bills on accounts of the given type,
// ordered by due date with undated bills last.
func (r *GormBillLedgerRepository) FindOutstanding(ctx context.Context, accountType ledger.AccountType, propertyID *uuid.UUID) ([]ledger.OutstandingBill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillLedgerModel{}).
		Select("bill_ledgers.*, accounts.name AS account_name").
		Joins("JOIN accounts ON accounts.id = bill_ledgers.account_id").
		Where("bill_ledgers.status = ?", string(ledger.BillStatusPending)).
		Where("accounts.account_type = ?", string(accountType))
	if propertyID != nil {
		query = query.Where("bill_ledgers.property_id = ?", *propertyID)
	}

	var rows []billRow
	if err := query.
		Order("accounts.name ASC").
		Order("CASE WHEN bill_ledgers.due_date IS NULL THEN 1 ELSE 0 END").
		Order("bill_ledgers.due_date ASC").
		Order("bill_ledgers.bill_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	bills := make([]ledger.OutstandingBill, 0, len(rows))
	for i := range rows {
		bills = append(bills, ledger.OutstandingBill{
			BillLedger:  *rows[i].BillLedgerModel.ToDomain(),
			AccountName: rows[i].AccountName,
		})
	}
	return bills, nil
}

// Ensure GormBillLedgerRepository implements BillLedgerRepository
var _ ledger.BillLedgerRepository = (*GormBillLedgerRepository)(nil)
