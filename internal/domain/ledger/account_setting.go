package ledger

import (
	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/shared"
)

// SystemName is a permanent, code-level key identifying a financial role
// (e.g. the core bank account) independent of which concrete ledger account
// currently fulfils it.
type SystemName string

const (
	SystemCoreBankAccount          SystemName = "CORE_BANK_ACCOUNT"
	SystemCashInHand               SystemName = "CASH_IN_HAND"
	SystemRentIncome               SystemName = "RENT_INCOME"
	SystemMessIncome               SystemName = "MESS_INCOME"
	SystemSecurityDepositLiability SystemName = "SECURITY_DEPOSIT_LIABILITY"
	SystemCommissionExpense        SystemName = "COMMISSION_EXPENSE"
	SystemSalaryExpense            SystemName = "SALARY_EXPENSE"
	SystemInventoryPurchase        SystemName = "INVENTORY_PURCHASE_EXPENSE"
	SystemAccountsReceivable       SystemName = "ACCOUNTS_RECEIVABLE"
	SystemAccountsPayable          SystemName = "ACCOUNTS_PAYABLE"
	SystemGSTOutputCGST            SystemName = "GST_OUTPUT_CGST"
	SystemGSTOutputSGST            SystemName = "GST_OUTPUT_SGST"
	SystemGSTOutputIGST            SystemName = "GST_OUTPUT_IGST"
	SystemGSTInputCGST             SystemName = "GST_INPUT_CGST"
	SystemGSTInputSGST             SystemName = "GST_INPUT_SGST"
	SystemGSTInputIGST             SystemName = "GST_INPUT_IGST"
)

// KnownSystemNames returns the fixed enumeration of valid system names.
// Mappings may only be registered for names in this list.
func KnownSystemNames() []SystemName {
	return []SystemName{
		SystemCoreBankAccount,
		SystemCashInHand,
		SystemRentIncome,
		SystemMessIncome,
		SystemSecurityDepositLiability,
		SystemCommissionExpense,
		SystemSalaryExpense,
		SystemInventoryPurchase,
		SystemAccountsReceivable,
		SystemAccountsPayable,
		SystemGSTOutputCGST,
		SystemGSTOutputSGST,
		SystemGSTOutputIGST,
		SystemGSTInputCGST,
		SystemGSTInputSGST,
		SystemGSTInputIGST,
	}
}

// IsValid checks whether the system name is part of the known enumeration
func (s SystemName) IsValid() bool {
	for _, known := range KnownSystemNames() {
		if s == known {
			return true
		}
	}
	return false
}

// String returns the string representation of SystemName
func (s SystemName) String() string {
	return string(s)
}

// AccountSetting maps one system name to the concrete account that fulfils
// it. Exactly one mapping exists per system name; its absence is a
// configuration error, never silently defaulted.
type AccountSetting struct {
	shared.BaseEntity
	SystemName  SystemName `json:"system_name"`
	AccountID   uuid.UUID  `json:"account_id"`
	Description string     `json:"description,omitempty"`
	UpdatedBy   string     `json:"updated_by,omitempty"`
}

// NewAccountSetting creates a mapping for the given system name
func NewAccountSetting(name SystemName, accountID uuid.UUID, description, updatedBy string) *AccountSetting {
	return &AccountSetting{
		BaseEntity:  shared.NewBaseEntity(),
		SystemName:  name,
		AccountID:   accountID,
		Description: description,
		UpdatedBy:   updatedBy,
	}
}

// Validate checks the mapping's own invariants
func (s *AccountSetting) Validate() error {
	if !s.SystemName.IsValid() {
		return shared.NewValidationError("unknown system name: " + string(s.SystemName))
	}
	if s.AccountID == uuid.Nil {
		return shared.NewValidationError("account id is required")
	}
	return nil
}
