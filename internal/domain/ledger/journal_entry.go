package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AmountEpsilon is the tolerance used for every monetary comparison in the
// ledger: entry balancing, bill settlement and the balance-sheet self check.
var AmountEpsilon = decimal.New(1, -2) // 0.01

// LegRef addresses the account of one leg either by system name or by a
// direct account id. Exactly one of the two is set; the reference is
// resolved to a concrete account before any balance math.
type LegRef struct {
	SystemName *SystemName `json:"system_name,omitempty"`
	AccountID  *uuid.UUID  `json:"account_id,omitempty"`
}

// NewSystemNameRef creates a leg reference addressed by system name
func NewSystemNameRef(name SystemName) LegRef {
	return LegRef{SystemName: &name}
}

// NewAccountIDRef creates a leg reference addressed by account id
func NewAccountIDRef(id uuid.UUID) LegRef {
	return LegRef{AccountID: &id}
}

// Validate checks that exactly one addressing mode is set
func (r LegRef) Validate() error {
	if (r.SystemName == nil) == (r.AccountID == nil) {
		return shared.NewValidationError("leg must reference exactly one of system name or account id")
	}
	if r.SystemName != nil && !r.SystemName.IsValid() {
		return shared.NewValidationError("unknown system name: " + string(*r.SystemName))
	}
	if r.AccountID != nil && *r.AccountID == uuid.Nil {
		return shared.NewValidationError("leg account id must not be empty")
	}
	return nil
}

// BillRefKind distinguishes opening a bill from settling one
type BillRefKind string

const (
	BillRefNew     BillRefKind = "NEW_REF"     // opens a bill on the account's increasing side
	BillRefAgainst BillRefKind = "AGAINST_REF" // settles a pending bill on the decreasing side
)

// IsValid checks the bill reference kind
func (k BillRefKind) IsValid() bool {
	return k == BillRefNew || k == BillRefAgainst
}

// BillReference attaches bill-wise tracking to a leg against a bill-wise
// account. NewRef opens a bill; AgainstRef settles an existing pending bill
// matched by account id and bill reference number.
type BillReference struct {
	Kind      BillRefKind `json:"kind"`
	BillRefNo string      `json:"bill_ref_no"`
	BillDate  *time.Time  `json:"bill_date,omitempty"`
	DueDate   *time.Time  `json:"due_date,omitempty"`
}

// Validate checks the bill reference's own invariants
func (b *BillReference) Validate() error {
	if !b.Kind.IsValid() {
		return shared.NewValidationError("invalid bill reference kind: " + string(b.Kind))
	}
	if b.BillRefNo == "" {
		return shared.NewValidationError("bill reference number is required")
	}
	return nil
}

// Leg is one unresolved debit-or-credit line submitted to the journal
// engine. At most one of Debit and Credit is non-zero.
type Leg struct {
	Ref    LegRef          `json:"ref"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
	Bill   *BillReference  `json:"bill,omitempty"`
}

// Validate checks the leg's own invariants
func (l *Leg) Validate() error {
	if err := l.Ref.Validate(); err != nil {
		return err
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return shared.NewValidationError("leg amounts must not be negative")
	}
	if l.Debit.IsZero() && l.Credit.IsZero() {
		return shared.NewValidationError("leg must carry a debit or credit amount")
	}
	if !l.Debit.IsZero() && !l.Credit.IsZero() {
		return shared.NewValidationError("leg must not carry both a debit and a credit")
	}
	if l.Bill != nil {
		return l.Bill.Validate()
	}
	return nil
}

// TransactionLine is one persisted leg of a journal entry, resolved to a
// concrete account.
type TransactionLine struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	AccountName string          `json:"account_name,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	BillRefKind *BillRefKind    `json:"bill_ref_kind,omitempty"`
	BillRefNo   string          `json:"bill_ref_no,omitempty"`
}

// BankReconciliation tracks whether a posting has been matched against a
// bank statement. It is the only mutable part of a saved journal entry.
type BankReconciliation struct {
	IsReconciled bool       `json:"is_reconciled"`
	BankDate     *time.Time `json:"bank_date,omitempty"`
}

// JournalEntry is one balanced double-entry posting. Once saved it is
// logically immutable except for the BankReconciliation sub-fields.
type JournalEntry struct {
	shared.BaseEntity
	Date               time.Time          `json:"date"`
	Description        string             `json:"description"`
	PropertyID         *uuid.UUID         `json:"property_id,omitempty"`
	KitchenID          *uuid.UUID         `json:"kitchen_id,omitempty"`
	ReferenceID        string             `json:"reference_id,omitempty"`
	ReferenceType      string             `json:"reference_type,omitempty"`
	PerformedBy        string             `json:"performed_by,omitempty"`
	Lines              []TransactionLine  `json:"transactions"`
	BankReconciliation BankReconciliation `json:"bank_reconciliation"`
}

// TotalDebit sums the debit side of all lines
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// IsBalanced reports whether debits equal credits within AmountEpsilon
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Sub(e.TotalCredit()).Abs().LessThanOrEqual(AmountEpsilon)
}

// Validate checks the persisted entry's invariants: at least two lines,
// balanced totals, and a non-zero value.
func (e *JournalEntry) Validate() error {
	if len(e.Lines) < 2 {
		return shared.NewValidationError("journal entry requires at least two legs")
	}
	if !e.IsBalanced() {
		return shared.ErrUnbalancedEntry
	}
	if e.TotalDebit().LessThanOrEqual(AmountEpsilon) {
		return shared.NewValidationError("journal entry must carry a non-zero amount")
	}
	return nil
}

// MarkReconciled flags the entry as matched against a bank statement.
// Re-marking an already reconciled entry only refreshes the bank date.
func (e *JournalEntry) MarkReconciled(bankDate time.Time) {
	e.BankReconciliation.IsReconciled = true
	e.BankReconciliation.BankDate = &bankDate
	e.Touch()
}
