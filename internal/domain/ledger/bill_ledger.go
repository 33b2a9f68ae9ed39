package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillStatus is the lifecycle state of a bill-wise sub-ledger entry.
// The transition is one-directional: Pending -> Cleared, no reopening.
type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING"
	BillStatusCleared BillStatus = "CLEARED"
)

// IsValid checks the bill status
func (s BillStatus) IsValid() bool {
	return s == BillStatusPending || s == BillStatusCleared
}

// BillLedger tracks one individual receivable or payable opened by a NewRef
// posting and settled by AgainstRef postings. PendingAmount is monotonically
// non-increasing and never goes negative beyond AmountEpsilon.
type BillLedger struct {
	shared.BaseEntity
	AccountID      uuid.UUID       `json:"account_id"`
	JournalEntryID uuid.UUID       `json:"journal_entry_id"`
	PropertyID     *uuid.UUID      `json:"property_id,omitempty"`
	BillRefNo      string          `json:"bill_ref_no"`
	BillDate       time.Time       `json:"bill_date"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	Status         BillStatus      `json:"status"`
}

// NewBillLedger opens a bill for the full amount
func NewBillLedger(accountID, journalEntryID uuid.UUID, propertyID *uuid.UUID, ref BillReference, amount decimal.Decimal) *BillLedger {
	billDate := time.Now()
	if ref.BillDate != nil {
		billDate = *ref.BillDate
	}
	return &BillLedger{
		BaseEntity:     shared.NewBaseEntity(),
		AccountID:      accountID,
		JournalEntryID: journalEntryID,
		PropertyID:     propertyID,
		BillRefNo:      ref.BillRefNo,
		BillDate:       billDate,
		DueDate:        ref.DueDate,
		TotalAmount:    amount,
		PendingAmount:  amount,
		Status:         BillStatusPending,
	}
}

// ApplySettlement reduces the pending amount by an AgainstRef posting.
// The settlement may not exceed the pending amount beyond AmountEpsilon;
// the bill clears once the remainder drops to the epsilon or below.
func (b *BillLedger) ApplySettlement(amount decimal.Decimal) error {
	if b.Status != BillStatusPending {
		return shared.NewDomainError(shared.CodeInvalidState, "bill "+b.BillRefNo+" is already cleared")
	}
	if amount.Sub(b.PendingAmount).GreaterThan(AmountEpsilon) {
		return shared.ErrInsufficientBill
	}
	b.PendingAmount = b.PendingAmount.Sub(amount)
	if b.PendingAmount.LessThanOrEqual(AmountEpsilon) {
		b.PendingAmount = decimal.Zero
		b.Status = BillStatusCleared
	}
	b.Touch()
	return nil
}
