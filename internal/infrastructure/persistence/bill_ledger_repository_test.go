package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
)

func TestGormBillLedgerRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormBillLedgerRepository(db)

	receivable := seedAccount(t, db, "Accounts Receivable", ledger.AccountTypeAsset)
	billDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	dueDate := billDate.AddDate(0, 0, 30)
	ref := ledger.BillReference{Kind: ledger.BillRefNew, BillRefNo: "INV-001", BillDate: &billDate, DueDate: &dueDate}
	bill := ledger.NewBillLedger(receivable.ID, uuid.New(), nil, ref, amt("5000.00"))

	require.NoError(t, repo.Save(ctx, bill))

	found, err := repo.FindByRef(ctx, receivable.ID, "INV-001")
	require.NoError(t, err)
	assert.Equal(t, bill.ID, found.ID)
	assert.True(t, found.TotalAmount.Equal(amt("5000.00")))
	assert.True(t, found.PendingAmount.Equal(amt("5000.00")))
	assert.Equal(t, ledger.BillStatusPending, found.Status)

	t.Run("settlement survives the round trip", func(t *testing.T) {
		require.NoError(t, found.ApplySettlement(amt("2000.00")))
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByRef(ctx, receivable.ID, "INV-001")
		require.NoError(t, err)
		assert.True(t, reloaded.PendingAmount.Equal(amt("3000.00")))
	})

	t.Run("missing bill is not found", func(t *testing.T) {
		_, err := repo.FindByRef(ctx, receivable.ID, "INV-404")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByRef(ctx, uuid.New(), "INV-001")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormBillLedgerRepository_FindOutstanding(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormBillLedgerRepository(db)

	receivable := seedAccount(t, db, "Accounts Receivable", ledger.AccountTypeAsset)
	payable := seedAccount(t, db, "Accounts Payable", ledger.AccountTypeLiability)

	billDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	save := func(accountID uuid.UUID, refNo string, dueDate *time.Time, amount string, status ledger.BillStatus) {
		ref := ledger.BillReference{Kind: ledger.BillRefNew, BillRefNo: refNo, BillDate: &billDate, DueDate: dueDate}
		bill := ledger.NewBillLedger(accountID, uuid.New(), nil, ref, amt(amount))
		bill.Status = status
		require.NoError(t, repo.Save(ctx, bill))
	}

	dueEarly := billDate.AddDate(0, 0, 10)
	dueLate := billDate.AddDate(0, 0, 40)
	save(receivable.ID, "INV-LATE", &dueLate, "1000.00", ledger.BillStatusPending)
	save(receivable.ID, "INV-EARLY", &dueEarly, "2000.00", ledger.BillStatusPending)
	save(receivable.ID, "INV-NODUE", nil, "3000.00", ledger.BillStatusPending)
	save(receivable.ID, "INV-DONE", &dueEarly, "500.00", ledger.BillStatusCleared)
	save(payable.ID, "PUR-001", &dueEarly, "700.00", ledger.BillStatusPending)

	t.Run("pending asset bills ordered by due date, undated last", func(t *testing.T) {
		bills, err := repo.FindOutstanding(ctx, ledger.AccountTypeAsset, nil)
		require.NoError(t, err)
		require.Len(t, bills, 3)
		assert.Equal(t, "INV-EARLY", bills[0].BillRefNo)
		assert.Equal(t, "INV-LATE", bills[1].BillRefNo)
		assert.Equal(t, "INV-NODUE", bills[2].BillRefNo)
		assert.Equal(t, "Accounts Receivable", bills[0].AccountName)
	})

	t.Run("liability side returns only payables", func(t *testing.T) {
		bills, err := repo.FindOutstanding(ctx, ledger.AccountTypeLiability, nil)
		require.NoError(t, err)
		require.Len(t, bills, 1)
		assert.Equal(t, "PUR-001", bills[0].BillRefNo)
	})
}
