package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountType classifies a ledger account and fixes its normal balance side.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the account type is a known type
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// DebitPositive reports whether the account's balance grows with debits.
// Asset and Expense accounts are debit-positive; Liability, Equity and
// Income accounts are credit-positive.
func (t AccountType) DebitPositive() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// SignedDelta converts a debit/credit pair into a signed balance movement
// for this account type.
func (t AccountType) SignedDelta(debit, credit decimal.Decimal) decimal.Decimal {
	if t.DebitPositive() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// GSTClass classifies an account for GST reporting purposes
type GSTClass string

const (
	GSTClassNone    GSTClass = "NONE"
	GSTClassOutput  GSTClass = "OUTPUT" // tax collected on income accounts
	GSTClassInput   GSTClass = "INPUT"  // tax credit on asset/liability accounts
	GSTClassTaxable GSTClass = "TAXABLE"
	GSTClassExempt  GSTClass = "EXEMPT"
)

// IsValid checks if the GST class is known
func (g GSTClass) IsValid() bool {
	switch g {
	case GSTClassNone, GSTClassOutput, GSTClassInput, GSTClassTaxable, GSTClassExempt:
		return true
	}
	return false
}

// Account is a ledger account in the chart of accounts.
// Balance is mutated exclusively by the journal engine; it always equals the
// sum of posted legs against the account, sign-adjusted by Type.
type Account struct {
	shared.BaseEntity
	Name              string           `json:"name"`
	Type              AccountType      `json:"account_type"`
	CategoryID        *uuid.UUID       `json:"category_id,omitempty"`
	GSTType           GSTClass         `json:"gst_type,omitempty"`
	GSTRate           *decimal.Decimal `json:"gst_rate,omitempty"`
	Balance           decimal.Decimal  `json:"balance"`
	MaintainsBillWise bool             `json:"maintains_bill_wise"`
	IsCashEquivalent  bool             `json:"is_cash_equivalent"`
	Active            bool             `json:"active"`
}

// NewAccount creates an active account with a zero balance
func NewAccount(name string, accountType AccountType) *Account {
	return &Account{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       accountType,
		GSTType:    GSTClassNone,
		Balance:    decimal.Zero,
		Active:     true,
	}
}

// Validate checks the account's own invariants
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return shared.NewValidationError("account name is required")
	}
	if !a.Type.IsValid() {
		return shared.NewValidationError("invalid account type: " + string(a.Type))
	}
	if a.GSTType != "" && !a.GSTType.IsValid() {
		return shared.NewValidationError("invalid gst type: " + string(a.GSTType))
	}
	return nil
}

// IsCashOrBank reports whether postings to this account need bank
// reconciliation. The explicit flag is authoritative; the name substring
// match is kept for charts created before the flag existed.
func (a *Account) IsCashOrBank() bool {
	if a.IsCashEquivalent {
		return true
	}
	lower := strings.ToLower(a.Name)
	return strings.Contains(lower, "bank") || strings.Contains(lower, "cash")
}

// Deactivate soft-deactivates the account; accounts referenced by postings
// are never physically removed without a replacement target.
func (a *Account) Deactivate() {
	a.Active = false
	a.Touch()
}
