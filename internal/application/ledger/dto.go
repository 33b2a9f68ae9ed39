package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest carries the fields for a new ledger account
type CreateAccountRequest struct {
	Name              string           `json:"name"`
	AccountType       string           `json:"account_type"`
	CategoryID        *uuid.UUID       `json:"category_id,omitempty"`
	GSTType           string           `json:"gst_type,omitempty"`
	GSTRate           *decimal.Decimal `json:"gst_rate,omitempty"`
	MaintainsBillWise bool             `json:"maintains_bill_wise"`
	IsCashEquivalent  bool             `json:"is_cash_equivalent"`
}

// UpdateAccountRequest carries the editable fields of an account.
// Balance and account type are not editable; balances move only through
// postings and type changes would re-sign history.
type UpdateAccountRequest struct {
	Name              *string          `json:"name,omitempty"`
	CategoryID        *uuid.UUID       `json:"category_id,omitempty"`
	GSTType           *string          `json:"gst_type,omitempty"`
	GSTRate           *decimal.Decimal `json:"gst_rate,omitempty"`
	MaintainsBillWise *bool            `json:"maintains_bill_wise,omitempty"`
	IsCashEquivalent  *bool            `json:"is_cash_equivalent,omitempty"`
	Active            *bool            `json:"active,omitempty"`
}

// AccountResponse is the account read model, with its category populated
type AccountResponse struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	AccountType       string            `json:"account_type"`
	Category          *CategoryResponse `json:"category,omitempty"`
	GSTType           string            `json:"gst_type,omitempty"`
	GSTRate           *decimal.Decimal  `json:"gst_rate,omitempty"`
	Balance           decimal.Decimal   `json:"balance"`
	MaintainsBillWise bool              `json:"maintains_bill_wise"`
	IsCashEquivalent  bool              `json:"is_cash_equivalent"`
	Active            bool              `json:"active"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ToAccountResponse converts a domain account to its read model
func ToAccountResponse(a *ledger.Account, category *ledger.AccountCategory) *AccountResponse {
	resp := &AccountResponse{
		ID:                a.ID,
		Name:              a.Name,
		AccountType:       string(a.Type),
		GSTType:           string(a.GSTType),
		GSTRate:           a.GSTRate,
		Balance:           a.Balance,
		MaintainsBillWise: a.MaintainsBillWise,
		IsCashEquivalent:  a.IsCashEquivalent,
		Active:            a.Active,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if category != nil {
		resp.Category = ToCategoryResponse(category)
	}
	return resp
}

// CreateCategoryRequest carries the fields for a new account category
type CreateCategoryRequest struct {
	Name        string     `json:"name"`
	AccountType string     `json:"account_type"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

// UpdateCategoryRequest carries the editable fields of a category
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
}

// CategoryResponse is the category read model
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	AccountType string     `json:"account_type"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToCategoryResponse converts a domain category to its read model
func ToCategoryResponse(c *ledger.AccountCategory) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		AccountType: string(c.Type),
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SetMappingRequest binds a system name to a concrete account
type SetMappingRequest struct {
	SystemName  string    `json:"system_name"`
	AccountID   uuid.UUID `json:"account_id"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
	Description string    `json:"description,omitempty"`
}

// MappingResponse is the system-name mapping read model
type MappingResponse struct {
	SystemName  string    `json:"system_name"`
	AccountID   uuid.UUID `json:"account_id"`
	AccountName string    `json:"account_name,omitempty"`
	Description string    `json:"description,omitempty"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BillReferenceInput attaches bill-wise tracking to a submitted leg
type BillReferenceInput struct {
	Kind      string     `json:"kind"`
	BillRefNo string     `json:"bill_ref_no"`
	BillDate  *time.Time `json:"bill_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

// LegInput is one submitted debit-or-credit line, addressed either by
// system name or by direct account id.
type LegInput struct {
	SystemName *string             `json:"system_name,omitempty"`
	AccountID  *uuid.UUID          `json:"account_id,omitempty"`
	Debit      decimal.Decimal     `json:"debit"`
	Credit     decimal.Decimal     `json:"credit"`
	Bill       *BillReferenceInput `json:"bill,omitempty"`
}

// ToDomainLeg converts the input to a validated domain leg
func (l LegInput) ToDomainLeg() (ledger.Leg, error) {
	leg := ledger.Leg{Debit: l.Debit, Credit: l.Credit}
	switch {
	case l.SystemName != nil && l.AccountID != nil:
		return leg, shared.NewValidationError("leg must reference exactly one of system name or account id")
	case l.SystemName != nil:
		leg.Ref = ledger.NewSystemNameRef(ledger.SystemName(*l.SystemName))
	case l.AccountID != nil:
		leg.Ref = ledger.NewAccountIDRef(*l.AccountID)
	}
	if l.Bill != nil {
		leg.Bill = &ledger.BillReference{
			Kind:      ledger.BillRefKind(l.Bill.Kind),
			BillRefNo: l.Bill.BillRefNo,
			BillDate:  l.Bill.BillDate,
			DueDate:   l.Bill.DueDate,
		}
	}
	if err := leg.Validate(); err != nil {
		return leg, err
	}
	return leg, nil
}

// PostEntryInput is the journal engine's posting request
type PostEntryInput struct {
	Date          time.Time  `json:"date"`
	Description   string     `json:"description"`
	PropertyID    *uuid.UUID `json:"property_id,omitempty"`
	KitchenID     *uuid.UUID `json:"kitchen_id,omitempty"`
	ReferenceID   string     `json:"reference_id,omitempty"`
	ReferenceType string     `json:"reference_type,omitempty"`
	PerformedBy   string     `json:"performed_by,omitempty"`
	Legs          []LegInput `json:"transactions"`
}

// GSTDetails describes the tax to synthesize onto a manual entry.
// Intra-state tax splits evenly into CGST and SGST; inter-state uses IGST.
type GSTDetails struct {
	Rate          decimal.Decimal `json:"rate"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	IsIntraState  bool            `json:"is_intra_state"`
	IsPurchase    bool            `json:"is_purchase"`
}

// OutstandingGroup is the pending bills of one account, ordered by due date
type OutstandingGroup struct {
	AccountID    uuid.UUID           `json:"account_id"`
	AccountName  string              `json:"account_name"`
	TotalPending decimal.Decimal     `json:"total_pending"`
	Bills        []ledger.BillLedger `json:"bills"`
}

// BillHistoryRow is one journal leg referencing a bill, in posting order
type BillHistoryRow struct {
	EntryID     uuid.UUID       `json:"entry_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// UnreconciledEntry is one cash/bank posting awaiting reconciliation,
// annotated with the signed amount on the account's own leg.
type UnreconciledEntry struct {
	EntryID       uuid.UUID       `json:"entry_id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	ReferenceType string          `json:"reference_type,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}
