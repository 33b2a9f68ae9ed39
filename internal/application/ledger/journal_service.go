package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// JournalService is the journal engine: the single write path of the ledger.
// Every posting goes through it, inside one transaction covering the entry,
// the balance increments and the bill-wise sub-ledger.
type JournalService struct {
	scope    TransactionScope
	resolver Resolver
	logger   *zap.Logger
}

// NewJournalService creates a JournalService
func NewJournalService(scope TransactionScope, resolver Resolver, logger *zap.Logger) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{
		scope:    scope,
		resolver: resolver,
		logger:   logger,
	}
}

// PostEntry validates, resolves and persists one balanced journal entry in
// a transaction of its own. Either everything lands (entry, lines, balance
// increments, bill rows) or nothing does.
func (s *JournalService) PostEntry(ctx context.Context, input PostEntryInput) (*ledger.JournalEntry, error) {
	var entry *ledger.JournalEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		posted, err := s.PostEntryWithin(ctx, repos, input)
		if err != nil {
			return err
		}
		entry = posted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PostEntryWithin posts an entry inside a transaction the caller already
// owns, so a business record and its ledger posting commit or abort
// together.
func (s *JournalService) PostEntryWithin(ctx context.Context, repos TransactionalRepositories, input PostEntryInput) (*ledger.JournalEntry, error) {
	legs, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveLegs(ctx, repos, legs)
	if err != nil {
		return nil, err
	}

	entry := s.buildEntry(input, resolved)
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := repos.Entries().Save(ctx, entry); err != nil {
		return nil, err
	}

	for _, r := range resolved {
		delta := r.account.Type.SignedDelta(r.leg.Debit, r.leg.Credit)
		if err := repos.Accounts().IncrementBalance(ctx, r.account.ID, delta); err != nil {
			return nil, err
		}
	}

	if err := s.applyBillReferences(ctx, repos, entry, resolved); err != nil {
		return nil, err
	}

	s.logger.Info("journal entry posted",
		zap.String("entry_id", entry.ID.String()),
		zap.String("amount", entry.TotalDebit().String()),
		zap.Int("legs", len(entry.Lines)),
		zap.Bool("reconciled", entry.BankReconciliation.IsReconciled))

	return entry, nil
}

// PostManualEntry posts an operator-submitted entry, synthesizing GST legs
// first when tax details are supplied. The submitted legs are expected to be
// out of balance by exactly the tax amount; balance is validated with the
// synthesized legs folded in.
func (s *JournalService) PostManualEntry(ctx context.Context, input PostEntryInput, gst *GSTDetails) (*ledger.JournalEntry, error) {
	if gst != nil {
		gstLegs, err := buildGSTLegs(*gst)
		if err != nil {
			return nil, err
		}
		input.Legs = append(input.Legs, gstLegs...)
	}
	return s.PostEntry(ctx, input)
}

// GetEntry loads a posted entry with its legs
func (s *JournalService) GetEntry(ctx context.Context, id uuid.UUID) (*ledger.JournalEntry, error) {
	var entry *ledger.JournalEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.Entries().FindByID(ctx, id)
		if err != nil {
			return err
		}
		entry = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// resolvedLeg pairs a validated leg with its resolved account
type resolvedLeg struct {
	leg     ledger.Leg
	account *ledger.Account
}

func (s *JournalService) validateInput(input PostEntryInput) ([]ledger.Leg, error) {
	if len(input.Legs) < 2 {
		return nil, shared.NewValidationError("journal entry requires at least two legs")
	}
	if input.Date.IsZero() {
		return nil, shared.NewValidationError("entry date is required")
	}

	legs := make([]ledger.Leg, 0, len(input.Legs))
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, in := range input.Legs {
		leg, err := in.ToDomainLeg()
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
		totalDebit = totalDebit.Add(leg.Debit)
		totalCredit = totalCredit.Add(leg.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(ledger.AmountEpsilon) {
		return nil, shared.ErrUnbalancedEntry
	}
	if totalDebit.LessThanOrEqual(ledger.AmountEpsilon) {
		return nil, shared.NewValidationError("journal entry must carry a non-zero amount")
	}
	return legs, nil
}

// resolveLegs turns every leg reference into a loaded account. System names
// resolve through the mapping layer; the account is then loaded inside the
// transaction so a concurrently deleted account aborts the posting.
func (s *JournalService) resolveLegs(ctx context.Context, repos TransactionalRepositories, legs []ledger.Leg) ([]resolvedLeg, error) {
	resolved := make([]resolvedLeg, 0, len(legs))
	for _, leg := range legs {
		var accountID uuid.UUID
		if leg.Ref.SystemName != nil {
			id, err := s.resolver.Resolve(ctx, *leg.Ref.SystemName)
			if err != nil {
				return nil, err
			}
			accountID = id
		} else {
			accountID = *leg.Ref.AccountID
		}

		account, err := repos.Accounts().FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewNotFoundError("account " + accountID.String() + " not found")
			}
			return nil, err
		}
		if !account.Active {
			return nil, shared.NewDomainError(shared.CodeInvalidState,
				"account "+account.Name+" is inactive")
		}
		// Bill-wise accounts only move through their sub-ledger; a bare leg
		// would desync the balance from the sum of bill pending amounts.
		if account.MaintainsBillWise && leg.Bill == nil {
			return nil, shared.NewValidationError(
				"account " + account.Name + " maintains bill-wise balances; each leg against it requires a bill reference")
		}
		resolved = append(resolved, resolvedLeg{leg: leg, account: account})
	}
	return resolved, nil
}

// buildEntry assembles the persisted entry. Reconciliation starts pending
// only when the entry touches a cash or bank account; everything else is
// born reconciled and never shows up in the reconciliation queue.
func (s *JournalService) buildEntry(input PostEntryInput, resolved []resolvedLeg) *ledger.JournalEntry {
	touchesCash := false
	lines := make([]ledger.TransactionLine, 0, len(resolved))
	for _, r := range resolved {
		if r.account.IsCashOrBank() {
			touchesCash = true
		}
		line := ledger.TransactionLine{
			ID:          uuid.New(),
			AccountID:   r.account.ID,
			AccountName: r.account.Name,
			Debit:       r.leg.Debit,
			Credit:      r.leg.Credit,
		}
		if r.leg.Bill != nil {
			kind := r.leg.Bill.Kind
			line.BillRefKind = &kind
			line.BillRefNo = r.leg.Bill.BillRefNo
		}
		lines = append(lines, line)
	}

	return &ledger.JournalEntry{
		BaseEntity:    shared.NewBaseEntity(),
		Date:          input.Date,
		Description:   input.Description,
		PropertyID:    input.PropertyID,
		KitchenID:     input.KitchenID,
		ReferenceID:   input.ReferenceID,
		ReferenceType: input.ReferenceType,
		PerformedBy:   input.PerformedBy,
		Lines:         lines,
		BankReconciliation: ledger.BankReconciliation{
			IsReconciled: !touchesCash,
		},
	}
}

// applyBillReferences maintains the bill-wise sub-ledger for legs carrying a
// bill reference. NewRef must sit on the account's increasing side and opens
// a bill; AgainstRef must sit on the decreasing side and settles one.
func (s *JournalService) applyBillReferences(ctx context.Context, repos TransactionalRepositories, entry *ledger.JournalEntry, resolved []resolvedLeg) error {
	for _, r := range resolved {
		if r.leg.Bill == nil {
			continue
		}
		if !r.account.MaintainsBillWise {
			return shared.NewValidationError(
				"account " + r.account.Name + " does not maintain bill-wise balances")
		}

		amount := r.leg.Debit
		onDebitSide := true
		if amount.IsZero() {
			amount = r.leg.Credit
			onDebitSide = false
		}
		increasing := onDebitSide == r.account.Type.DebitPositive()

		switch r.leg.Bill.Kind {
		case ledger.BillRefNew:
			if !increasing {
				return shared.ErrBillDirection
			}
			if existing, err := repos.Bills().FindByRef(ctx, r.account.ID, r.leg.Bill.BillRefNo); err == nil && existing != nil {
				return shared.NewConflictError(
					"bill " + r.leg.Bill.BillRefNo + " already exists for account " + r.account.Name)
			} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			bill := ledger.NewBillLedger(r.account.ID, entry.ID, entry.PropertyID, *r.leg.Bill, amount)
			if err := repos.Bills().Save(ctx, bill); err != nil {
				return err
			}

		case ledger.BillRefAgainst:
			if increasing {
				return shared.ErrBillDirection
			}
			bill, err := repos.Bills().FindByRef(ctx, r.account.ID, r.leg.Bill.BillRefNo)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewNotFoundError(
						"bill " + r.leg.Bill.BillRefNo + " not found for account " + r.account.Name)
				}
				return err
			}
			if err := bill.ApplySettlement(amount); err != nil {
				return err
			}
			if err := repos.Bills().Save(ctx, bill); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildGSTLegs synthesizes the tax legs for a manual entry. Intra-state tax
// splits evenly into CGST and SGST; inter-state goes entirely to IGST. Sales
// credit the output tax accounts, purchases debit the input tax accounts.
func buildGSTLegs(gst GSTDetails) ([]LegInput, error) {
	if gst.Rate.IsNegative() || gst.TaxableAmount.IsNegative() {
		return nil, shared.NewValidationError("gst rate and taxable amount must not be negative")
	}
	tax := gst.TaxableAmount.Mul(gst.Rate).Div(decimal.NewFromInt(100)).Round(2)
	if tax.IsZero() {
		return nil, nil
	}

	makeLeg := func(name ledger.SystemName, amount decimal.Decimal) LegInput {
		n := string(name)
		leg := LegInput{SystemName: &n}
		if gst.IsPurchase {
			leg.Debit = amount
		} else {
			leg.Credit = amount
		}
		return leg
	}

	if !gst.IsIntraState {
		name := ledger.SystemGSTOutputIGST
		if gst.IsPurchase {
			name = ledger.SystemGSTInputIGST
		}
		return []LegInput{makeLeg(name, tax)}, nil
	}

	half := tax.Div(decimal.NewFromInt(2)).Round(2)
	cgstName, sgstName := ledger.SystemGSTOutputCGST, ledger.SystemGSTOutputSGST
	if gst.IsPurchase {
		cgstName, sgstName = ledger.SystemGSTInputCGST, ledger.SystemGSTInputSGST
	}
	// Any odd paisa from the split lands on the CGST half so the two legs
	// still sum to the full tax.
	return []LegInput{
		makeLeg(cgstName, tax.Sub(half)),
		makeLeg(sgstName, half),
	}, nil
}
