package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
)

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func debitLegByID(id uuid.UUID, amount string) LegInput {
	return LegInput{AccountID: &id, Debit: amt(amount)}
}

func creditLegByID(id uuid.UUID, amount string) LegInput {
	return LegInput{AccountID: &id, Credit: amt(amount)}
}

func debitLegBySystem(name ledger.SystemName, amount string) LegInput {
	n := string(name)
	return LegInput{SystemName: &n, Debit: amt(amount)}
}

func creditLegBySystem(name ledger.SystemName, amount string) LegInput {
	n := string(name)
	return LegInput{SystemName: &n, Credit: amt(amount)}
}

func entryInput(legs ...LegInput) PostEntryInput {
	return PostEntryInput{
		Date:        time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Description: "test posting",
		Legs:        legs,
	}
}

func TestJournalService_PostEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("balanced posting persists the entry and moves balances", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		entry, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "5000.00"),
			creditLegByID(rent.ID, "5000.00"),
		))

		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Len(t, entry.Lines, 2)

		saved, err := f.entries.FindByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "test posting", saved.Description)

		assert.True(t, f.accounts.balance(bank.ID).Equal(amt("5000.00")), "asset grows with debit")
		assert.True(t, f.accounts.balance(rent.ID).Equal(amt("5000.00")), "income grows with credit")
	})

	t.Run("unbalanced posting is rejected and leaves no trace", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		_, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "5000.00"),
			creditLegByID(rent.ID, "4900.00"),
		))

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrUnbalancedEntry)
		assert.True(t, f.accounts.balance(bank.ID).IsZero())
		assert.True(t, f.accounts.balance(rent.ID).IsZero())
		assert.Empty(t, f.entries.entries)
	})

	t.Run("single leg is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)

		_, err := f.journal.PostEntry(ctx, entryInput(debitLegByID(bank.ID, "100.00")))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("missing date is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		input := entryInput(debitLegByID(bank.ID, "100.00"), creditLegByID(rent.ID, "100.00"))
		input.Date = time.Time{}
		_, err := f.journal.PostEntry(ctx, input)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("system name legs resolve through the mapping layer", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)
		f.mapSystemName(ledger.SystemCoreBankAccount, bank.ID)
		f.mapSystemName(ledger.SystemRentIncome, rent.ID)

		entry, err := f.journal.PostEntry(ctx, entryInput(
			debitLegBySystem(ledger.SystemCoreBankAccount, "8000.00"),
			creditLegBySystem(ledger.SystemRentIncome, "8000.00"),
		))

		require.NoError(t, err)
		assert.Equal(t, bank.ID, entry.Lines[0].AccountID)
		assert.Equal(t, "HDFC Bank", entry.Lines[0].AccountName)
		assert.Equal(t, rent.ID, entry.Lines[1].AccountID)
	})

	t.Run("unmapped system name fails with a configuration error", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		f.mapSystemName(ledger.SystemCoreBankAccount, bank.ID)

		_, err := f.journal.PostEntry(ctx, entryInput(
			debitLegBySystem(ledger.SystemCoreBankAccount, "8000.00"),
			creditLegBySystem(ledger.SystemRentIncome, "8000.00"),
		))

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrConfiguration)
		assert.True(t, f.accounts.balance(bank.ID).IsZero(), "no partial balance movement")
	})

	t.Run("inactive account aborts the posting", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		closed := f.addAccount("Closed Income", ledger.AccountTypeIncome, func(a *ledger.Account) {
			a.Active = false
		})

		_, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "100.00"),
			creditLegByID(closed.ID, "100.00"),
		))

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("unknown account id aborts the posting", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)

		_, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "100.00"),
			creditLegByID(uuid.New(), "100.00"),
		))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("liability and expense move on their own sides", func(t *testing.T) {
		f := newLedgerFixture()
		salary := f.addAccount("Salary Expense", ledger.AccountTypeExpense)
		payable := f.addAccount("Salaries Payable", ledger.AccountTypeLiability)

		_, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(salary.ID, "30000.00"),
			creditLegByID(payable.ID, "30000.00"),
		))

		require.NoError(t, err)
		assert.True(t, f.accounts.balance(salary.ID).Equal(amt("30000.00")))
		assert.True(t, f.accounts.balance(payable.ID).Equal(amt("30000.00")))
	})
}

func TestJournalService_ReconciliationAtBirth(t *testing.T) {
	ctx := context.Background()

	t.Run("cash or bank leg leaves the entry pending reconciliation", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		entry, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "5000.00"),
			creditLegByID(rent.ID, "5000.00"),
		))

		require.NoError(t, err)
		assert.False(t, entry.BankReconciliation.IsReconciled)
	})

	t.Run("entry without cash legs is born reconciled", func(t *testing.T) {
		f := newLedgerFixture()
		salary := f.addAccount("Salary Expense", ledger.AccountTypeExpense)
		payable := f.addAccount("Salaries Payable", ledger.AccountTypeLiability)

		entry, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(salary.ID, "30000.00"),
			creditLegByID(payable.ID, "30000.00"),
		))

		require.NoError(t, err)
		assert.True(t, entry.BankReconciliation.IsReconciled)
	})

	t.Run("cash equivalent flag counts even without a cash name", func(t *testing.T) {
		f := newLedgerFixture()
		wallet := f.addAccount("Paytm Wallet", ledger.AccountTypeAsset, func(a *ledger.Account) {
			a.IsCashEquivalent = true
		})
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		entry, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(wallet.ID, "5000.00"),
			creditLegByID(rent.ID, "5000.00"),
		))

		require.NoError(t, err)
		assert.False(t, entry.BankReconciliation.IsReconciled)
	})
}

func TestJournalService_BillReferences(t *testing.T) {
	ctx := context.Background()

	billLeg := func(leg LegInput, kind ledger.BillRefKind, refNo string) LegInput {
		leg.Bill = &BillReferenceInput{Kind: string(kind), BillRefNo: refNo}
		return leg
	}

	t.Run("new ref on the increasing side opens a bill", func(t *testing.T) {
		f := newLedgerFixture()
		receivable := f.addAccount("Accounts Receivable", ledger.AccountTypeAsset, func(a *ledger.Account) {
			a.MaintainsBillWise = true
		})
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		entry, err := f.journal.PostEntry(ctx, entryInput(
			billLeg(debitLegByID(receivable.ID, "5000.00"), ledger.BillRefNew, "INV-001"),
			creditLegByID(rent.ID, "5000.00"),
		))

		require.NoError(t, err)
		bill, err := f.bills.FindByRef(ctx, receivable.ID, "INV-001")
		require.NoError(t, err)
		assert.Equal(t, entry.ID, bill.JournalEntryID)
		assert.True(t, bill.TotalAmount.Equal(amt("5000.00")))
		assert.True(t, bill.PendingAmount.Equal(amt("5000.00")))
		assert.Equal(t, ledger.BillStatusPending, bill.Status)
	})

	t.Run("against ref settles a pending bill", func(t *testing.T) {
		f := newLedgerFixture()
		receivable := f.addAccount("Accounts Receivable", ledger.AccountTypeAsset, func(a *ledger.Account) {
			a.MaintainsBillWise = true
		})
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)

		_, err := f.journal.PostEntry(ctx, entryInput(
			billLeg(debitLegByID(receivable.ID, "5000.00"), ledger.BillRefNew, "INV-001"),
			creditLegByID(rent.ID, "5000.00"),
		))
		require.NoError(t, err)

		_, err = f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "2000.00"),
			billLeg(creditLegByID(receivable.ID, "2000.00"), ledger.BillRefAgainst, "INV-001"),
		))
		require.NoError(t, err)

		bill, err := f.bills.FindByRef(ctx, receivable.ID, "INV-001")
		require.NoError(t, err)
		assert.True(t, bill.PendingAmount.Equal(amt("3000.00")))
		assert.Equal(t, ledger.BillStatusPending, bill.Status)

		_, err = f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "3000.00"),
			billLeg(creditLegByID(receivable.ID, "3000.00"), ledger.BillRefAgainst, "INV-001"),
		))
		require.NoError(t, err)

		bill, err = f.bills.FindByRef(ctx, receivable.ID, "INV-001")
		require.NoError(t, err)
		assert.True(t, bill.PendingAmount.IsZero())
		assert.Equal(t, ledger.BillStatusCleared, bill.Status)
	})

	t.Run("new ref on the decreasing side is a direction mismatch", func(t *testing.T) {
		f := newLedgerFixture()
		receivable := f.addAccount("Accounts Receivable", ledger.AccountTypeAsset, func(a *ledger.Account) {
			a.MaintainsBillWise = true
		})
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)

		_, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "2000.00"),
			billLeg(creditLegByID(receivable.ID, "2000.00"), ledger.BillRefNew, "INV-002"),
		))

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrBillDirection)
	})

	t.Run("against ref on the increasing side is a direction mismatch", func(t *testing.T) {
		f := newLedgerFixture()
		receivable := f.addAccount("Accounts Receivable", ledger.AccountTypeAsset, func(a *ledger.Account) {
			a.MaintainsBillWise = true
		})
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		_, err := f.journal.PostEntry(ctx, entryInput(
			billLeg(debitLegByID(receivable.ID, "2000.00"), ledger.BillRefAgainst, "INV-003"),
			creditLegByID(rent.ID, "2000.00"),
		))

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrBillDirection)
	})

	t.Run("duplicate new ref for the same account is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		receivable := f.addAccount("Accounts Receivable", ledger.AccountTypeAsset, func(a *ledger.Account) {
			a.MaintainsBillWise = true
		})
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		post := func() error {
			_, err := f.journal.PostEntry(ctx, entryInput(
				billLeg(debitLegByID(receivable.ID, "1000.00"), ledger.BillRefNew, "INV-004"),
				creditLegByID(rent.ID, "1000.00"),
			))
			return err
		}

		require.NoError(t, post())
		err := post()
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("against ref for a missing bill is not found", func(t *testing.T) {
		f := newLedgerFixture()
		receivable := f.addAccount("Accounts Receivable", ledger.AccountTypeAsset, func(a *ledger.Account) {
			a.MaintainsBillWise = true
		})
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)

		_, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "500.00"),
			billLeg(creditLegByID(receivable.ID, "500.00"), ledger.BillRefAgainst, "INV-MISSING"),
		))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("settlement beyond the pending amount aborts the posting", func(t *testing.T) {
		f := newLedgerFixture()
		receivable := f.addAccount("Accounts Receivable", ledger.AccountTypeAsset, func(a *ledger.Account) {
			a.MaintainsBillWise = true
		})
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)

		_, err := f.journal.PostEntry(ctx, entryInput(
			billLeg(debitLegByID(receivable.ID, "1000.00"), ledger.BillRefNew, "INV-005"),
			creditLegByID(rent.ID, "1000.00"),
		))
		require.NoError(t, err)

		_, err = f.journal.PostEntry(ctx, entryInput(
			debitLegByID(bank.ID, "1500.00"),
			billLeg(creditLegByID(receivable.ID, "1500.00"), ledger.BillRefAgainst, "INV-005"),
		))

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientBill)

		bill, err := f.bills.FindByRef(ctx, receivable.ID, "INV-005")
		require.NoError(t, err)
		assert.True(t, bill.PendingAmount.Equal(amt("1000.00")), "failed posting leaves the bill untouched")
	})

	t.Run("bill reference against a plain account is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		plain := f.addAccount("Sundry Debtors", ledger.AccountTypeAsset)
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		_, err := f.journal.PostEntry(ctx, entryInput(
			billLeg(debitLegByID(plain.ID, "100.00"), ledger.BillRefNew, "INV-006"),
			creditLegByID(rent.ID, "100.00"),
		))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("bare leg against a bill-wise account is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		receivable := f.addAccount("Accounts Receivable", ledger.AccountTypeAsset, func(a *ledger.Account) {
			a.MaintainsBillWise = true
		})
		rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

		_, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(receivable.ID, "5000.00"),
			creditLegByID(rent.ID, "5000.00"),
		))

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.True(t, f.accounts.balance(receivable.ID).IsZero(), "balance must not move without a bill row")
		assert.Empty(t, f.entries.entries)
	})

	t.Run("payable new ref sits on the credit side", func(t *testing.T) {
		f := newLedgerFixture()
		payable := f.addAccount("Accounts Payable", ledger.AccountTypeLiability, func(a *ledger.Account) {
			a.MaintainsBillWise = true
		})
		purchases := f.addAccount("Mess Provisions", ledger.AccountTypeExpense)

		_, err := f.journal.PostEntry(ctx, entryInput(
			debitLegByID(purchases.ID, "7500.00"),
			billLeg(creditLegByID(payable.ID, "7500.00"), ledger.BillRefNew, "PUR-001"),
		))

		require.NoError(t, err)
		bill, err := f.bills.FindByRef(ctx, payable.ID, "PUR-001")
		require.NoError(t, err)
		assert.True(t, bill.PendingAmount.Equal(amt("7500.00")))
	})
}

func TestJournalService_PostManualEntry_GST(t *testing.T) {
	ctx := context.Background()

	setupGSTAccounts := func(f *ledgerFixture) {
		for _, name := range []ledger.SystemName{
			ledger.SystemGSTOutputCGST, ledger.SystemGSTOutputSGST, ledger.SystemGSTOutputIGST,
			ledger.SystemGSTInputCGST, ledger.SystemGSTInputSGST, ledger.SystemGSTInputIGST,
		} {
			acc := f.addAccount(string(name), ledger.AccountTypeLiability)
			f.mapSystemName(name, acc.ID)
		}
	}

	t.Run("intra-state sale splits tax into CGST and SGST", func(t *testing.T) {
		f := newLedgerFixture()
		setupGSTAccounts(f)
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		mess := f.addAccount("Mess Income", ledger.AccountTypeIncome)

		// 1000 taxable + 5% GST = 1050 received
		entry, err := f.journal.PostManualEntry(ctx, entryInput(
			debitLegByID(bank.ID, "1050.00"),
			creditLegByID(mess.ID, "1000.00"),
		), &GSTDetails{
			Rate:          amt("5"),
			TaxableAmount: amt("1000.00"),
			IsIntraState:  true,
		})

		require.NoError(t, err)
		require.Len(t, entry.Lines, 4)
		assert.True(t, entry.IsBalanced())

		taxByName := map[string]decimal.Decimal{}
		for _, line := range entry.Lines[2:] {
			taxByName[line.AccountName] = line.Credit
		}
		assert.True(t, taxByName[string(ledger.SystemGSTOutputCGST)].Equal(amt("25.00")))
		assert.True(t, taxByName[string(ledger.SystemGSTOutputSGST)].Equal(amt("25.00")))
	})

	t.Run("odd paisa from the split lands on CGST", func(t *testing.T) {
		f := newLedgerFixture()
		setupGSTAccounts(f)
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		mess := f.addAccount("Mess Income", ledger.AccountTypeIncome)

		// 18% of 100.85 = 18.15; the halves come out 9.07 + 9.08
		entry, err := f.journal.PostManualEntry(ctx, entryInput(
			debitLegByID(bank.ID, "119.00"),
			creditLegByID(mess.ID, "100.85"),
		), &GSTDetails{
			Rate:          amt("18"),
			TaxableAmount: amt("100.85"),
			IsIntraState:  true,
		})

		require.NoError(t, err)
		taxByName := map[string]decimal.Decimal{}
		for _, line := range entry.Lines[2:] {
			taxByName[line.AccountName] = line.Credit
		}
		cgst := taxByName[string(ledger.SystemGSTOutputCGST)]
		sgst := taxByName[string(ledger.SystemGSTOutputSGST)]
		assert.True(t, cgst.Add(sgst).Equal(amt("18.15")), "split sums to the full tax")
		assert.True(t, cgst.Sub(sgst).Abs().LessThanOrEqual(amt("0.01")), "halves differ by at most one paisa")
	})

	t.Run("inter-state sale goes entirely to IGST", func(t *testing.T) {
		f := newLedgerFixture()
		setupGSTAccounts(f)
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		mess := f.addAccount("Mess Income", ledger.AccountTypeIncome)

		entry, err := f.journal.PostManualEntry(ctx, entryInput(
			debitLegByID(bank.ID, "1180.00"),
			creditLegByID(mess.ID, "1000.00"),
		), &GSTDetails{
			Rate:          amt("18"),
			TaxableAmount: amt("1000.00"),
			IsIntraState:  false,
		})

		require.NoError(t, err)
		require.Len(t, entry.Lines, 3)
		assert.Equal(t, string(ledger.SystemGSTOutputIGST), entry.Lines[2].AccountName)
		assert.True(t, entry.Lines[2].Credit.Equal(amt("180.00")))
	})

	t.Run("purchase debits the input tax accounts", func(t *testing.T) {
		f := newLedgerFixture()
		setupGSTAccounts(f)
		provisions := f.addAccount("Mess Provisions", ledger.AccountTypeExpense)
		payable := f.addAccount("Sundry Creditors", ledger.AccountTypeLiability)

		entry, err := f.journal.PostManualEntry(ctx, entryInput(
			debitLegByID(provisions.ID, "1000.00"),
			creditLegByID(payable.ID, "1050.00"),
		), &GSTDetails{
			Rate:          amt("5"),
			TaxableAmount: amt("1000.00"),
			IsIntraState:  true,
			IsPurchase:    true,
		})

		require.NoError(t, err)
		require.Len(t, entry.Lines, 4)
		taxByName := map[string]decimal.Decimal{}
		for _, line := range entry.Lines[2:] {
			taxByName[line.AccountName] = line.Debit
		}
		assert.True(t, taxByName[string(ledger.SystemGSTInputCGST)].Equal(amt("25.00")))
		assert.True(t, taxByName[string(ledger.SystemGSTInputSGST)].Equal(amt("25.00")))
	})

	t.Run("zero tax synthesizes nothing", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		mess := f.addAccount("Mess Income", ledger.AccountTypeIncome)

		entry, err := f.journal.PostManualEntry(ctx, entryInput(
			debitLegByID(bank.ID, "1000.00"),
			creditLegByID(mess.ID, "1000.00"),
		), &GSTDetails{Rate: decimal.Zero, TaxableAmount: amt("1000.00"), IsIntraState: true})

		require.NoError(t, err)
		assert.Len(t, entry.Lines, 2)
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		mess := f.addAccount("Mess Income", ledger.AccountTypeIncome)

		_, err := f.journal.PostManualEntry(ctx, entryInput(
			debitLegByID(bank.ID, "1000.00"),
			creditLegByID(mess.ID, "1000.00"),
		), &GSTDetails{Rate: amt("-5"), TaxableAmount: amt("1000.00")})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("without gst details behaves like a plain posting", func(t *testing.T) {
		f := newLedgerFixture()
		bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
		mess := f.addAccount("Mess Income", ledger.AccountTypeIncome)

		entry, err := f.journal.PostManualEntry(ctx, entryInput(
			debitLegByID(bank.ID, "1000.00"),
			creditLegByID(mess.ID, "1000.00"),
		), nil)

		require.NoError(t, err)
		assert.Len(t, entry.Lines, 2)
	})
}

func TestJournalService_GetEntry(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	bank := f.addAccount("HDFC Bank", ledger.AccountTypeAsset)
	rent := f.addAccount("Rent Income", ledger.AccountTypeIncome)

	posted, err := f.journal.PostEntry(ctx, entryInput(
		debitLegByID(bank.ID, "5000.00"),
		creditLegByID(rent.ID, "5000.00"),
	))
	require.NoError(t, err)

	found, err := f.journal.GetEntry(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, posted.ID, found.ID)
	assert.Len(t, found.Lines, 2)

	_, err = f.journal.GetEntry(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
