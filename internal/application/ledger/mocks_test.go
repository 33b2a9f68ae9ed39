package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
)

// In-memory repository fakes backing the service tests. They implement the
// same not-found semantics as the gorm repositories so errors.Is checks
// behave identically.

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*ledger.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[uuid.UUID]*ledger.Account)}
}

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memAccountRepo) FindByName(_ context.Context, name string) (*ledger.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if strings.EqualFold(a.Name, name) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memAccountRepo) FindAll(_ context.Context, filter ledger.AccountFilter) ([]ledger.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]ledger.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		if filter.Type != nil && a.Type != *filter.Type {
			continue
		}
		if filter.ActiveOnly && !a.Active {
			continue
		}
		if filter.CategoryID != nil && (a.CategoryID == nil || *a.CategoryID != *filter.CategoryID) {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memAccountRepo) Save(_ context.Context, account *ledger.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.accounts[account.ID]
	copied := *account
	if ok {
		// Save never writes the balance of an existing account
		copied.Balance = existing.Balance
	}
	r.accounts[account.ID] = &copied
	return nil
}

func (r *memAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *memAccountRepo) IncrementBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return shared.ErrNotFound
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

func (r *memAccountRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, a := range r.accounts {
		if a.CategoryID != nil && *a.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *memAccountRepo) balance(id uuid.UUID) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		return a.Balance
	}
	return decimal.Zero
}

type memCategoryRepo struct {
	categories map[uuid.UUID]*ledger.AccountCategory
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[uuid.UUID]*ledger.AccountCategory)}
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.AccountCategory, error) {
	if c, ok := r.categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memCategoryRepo) FindByName(_ context.Context, name string) (*ledger.AccountCategory, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCategoryRepo) FindAll(_ context.Context) ([]ledger.AccountCategory, error) {
	result := make([]ledger.AccountCategory, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memCategoryRepo) HasChildren(_ context.Context, id uuid.UUID) (bool, error) {
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCategoryRepo) Save(_ context.Context, category *ledger.AccountCategory) error {
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type memSettingRepo struct {
	settings map[ledger.SystemName]*ledger.AccountSetting
	findErr  error
}

func newMemSettingRepo() *memSettingRepo {
	return &memSettingRepo{settings: make(map[ledger.SystemName]*ledger.AccountSetting)}
}

func (r *memSettingRepo) FindBySystemName(_ context.Context, name ledger.SystemName) (*ledger.AccountSetting, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if s, ok := r.settings[name]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memSettingRepo) FindAll(_ context.Context) ([]ledger.AccountSetting, error) {
	result := make([]ledger.AccountSetting, 0, len(r.settings))
	for _, s := range r.settings {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SystemName < result[j].SystemName })
	return result, nil
}

func (r *memSettingRepo) Upsert(_ context.Context, setting *ledger.AccountSetting) error {
	copied := *setting
	r.settings[setting.SystemName] = &copied
	return nil
}

type memEntryRepo struct {
	entries map[uuid.UUID]*ledger.JournalEntry
	order   []uuid.UUID
}

func newMemEntryRepo() *memEntryRepo {
	return &memEntryRepo{entries: make(map[uuid.UUID]*ledger.JournalEntry)}
}

func (r *memEntryRepo) Save(_ context.Context, entry *ledger.JournalEntry) error {
	copied := *entry
	copied.Lines = append([]ledger.TransactionLine(nil), entry.Lines...)
	if _, ok := r.entries[entry.ID]; !ok {
		r.order = append(r.order, entry.ID)
	}
	r.entries[entry.ID] = &copied
	return nil
}

func (r *memEntryRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.JournalEntry, error) {
	if e, ok := r.entries[id]; ok {
		copied := *e
		copied.Lines = append([]ledger.TransactionLine(nil), e.Lines...)
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memEntryRepo) CountLinesByAccount(_ context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	for _, e := range r.entries {
		for _, line := range e.Lines {
			if line.AccountID == accountID {
				count++
			}
		}
	}
	return count, nil
}

func (r *memEntryRepo) RepointAccount(_ context.Context, fromAccountID, toAccountID uuid.UUID) error {
	for _, e := range r.entries {
		for i := range e.Lines {
			if e.Lines[i].AccountID == fromAccountID {
				e.Lines[i].AccountID = toAccountID
			}
		}
	}
	return nil
}

func (r *memEntryRepo) FindUnreconciled(_ context.Context, accountID uuid.UUID, asOf *time.Time, propertyID *uuid.UUID) ([]ledger.JournalEntry, error) {
	result := make([]ledger.JournalEntry, 0)
	for _, id := range r.order {
		e := r.entries[id]
		if e.BankReconciliation.IsReconciled {
			continue
		}
		if asOf != nil && e.Date.After(*asOf) {
			continue
		}
		if propertyID != nil && (e.PropertyID == nil || *e.PropertyID != *propertyID) {
			continue
		}
		touches := false
		for _, line := range e.Lines {
			if line.AccountID == accountID {
				touches = true
			}
		}
		if touches {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *memEntryRepo) MarkReconciled(_ context.Context, entryIDs []uuid.UUID, bankDate time.Time) error {
	for _, id := range entryIDs {
		if e, ok := r.entries[id]; ok {
			e.MarkReconciled(bankDate)
		}
	}
	return nil
}

func (r *memEntryRepo) FindByBillRef(_ context.Context, accountID uuid.UUID, billRefNo string) ([]ledger.JournalEntry, error) {
	result := make([]ledger.JournalEntry, 0)
	for _, id := range r.order {
		e := r.entries[id]
		for _, line := range e.Lines {
			if line.AccountID == accountID && line.BillRefNo == billRefNo {
				result = append(result, *e)
				break
			}
		}
	}
	return result, nil
}

type memBillRepo struct {
	bills map[string]*ledger.BillLedger
}

func newMemBillRepo() *memBillRepo {
	return &memBillRepo{bills: make(map[string]*ledger.BillLedger)}
}

func billKey(accountID uuid.UUID, billRefNo string) string {
	return accountID.String() + "/" + billRefNo
}

func (r *memBillRepo) Save(_ context.Context, bill *ledger.BillLedger) error {
	copied := *bill
	r.bills[billKey(bill.AccountID, bill.BillRefNo)] = &copied
	return nil
}

func (r *memBillRepo) FindByRef(_ context.Context, accountID uuid.UUID, billRefNo string) (*ledger.BillLedger, error) {
	if b, ok := r.bills[billKey(accountID, billRefNo)]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memBillRepo) FindOutstanding(_ context.Context, accountType ledger.AccountType, propertyID *uuid.UUID) ([]ledger.OutstandingBill, error) {
	result := make([]ledger.OutstandingBill, 0)
	for _, b := range r.bills {
		if b.Status != ledger.BillStatusPending {
			continue
		}
		if propertyID != nil && (b.PropertyID == nil || *b.PropertyID != *propertyID) {
			continue
		}
		result = append(result, ledger.OutstandingBill{BillLedger: *b})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BillRefNo < result[j].BillRefNo })
	return result, nil
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[ledger.SystemName]uuid.UUID
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[ledger.SystemName]uuid.UUID)}
}

func (c *fakeCache) Get(name ledger.SystemName) (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.entries[name]
	return id, ok
}

func (c *fakeCache) Set(name ledger.SystemName, accountID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = accountID
}

func (c *fakeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[ledger.SystemName]uuid.UUID)
	c.invalidated++
}

func (c *fakeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

type fakeInvalidator struct {
	published int
	publishEr error
	callback  func()
}

func (f *fakeInvalidator) PublishInvalidateAll(context.Context) error {
	f.published++
	return f.publishEr
}

func (f *fakeInvalidator) Subscribe(ctx context.Context, callback func()) error {
	f.callback = callback
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeInvalidator) Close() error { return nil }

// ledgerFixture bundles the fakes plus every service wired over them
type ledgerFixture struct {
	accounts   *memAccountRepo
	categories *memCategoryRepo
	settings   *memSettingRepo
	entries    *memEntryRepo
	bills      *memBillRepo
	cache      *fakeCache
	scope      *NoOpTransactionScope
	mappings   *MappingService
	journal    *JournalService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		accounts:   newMemAccountRepo(),
		categories: newMemCategoryRepo(),
		settings:   newMemSettingRepo(),
		entries:    newMemEntryRepo(),
		bills:      newMemBillRepo(),
		cache:      newFakeCache(),
	}
	f.scope = NewNoOpTransactionScope(f.accounts, f.categories, f.settings, f.entries, f.bills)
	f.mappings = NewMappingService(f.settings, f.accounts, f.cache, nil, nil)
	f.journal = NewJournalService(f.scope, f.mappings, nil)
	return f
}

// addAccount saves an account and returns it
func (f *ledgerFixture) addAccount(name string, accountType ledger.AccountType, configure ...func(*ledger.Account)) *ledger.Account {
	account := ledger.NewAccount(name, accountType)
	for _, fn := range configure {
		fn(account)
	}
	_ = f.accounts.Save(context.Background(), account)
	return account
}

// mapSystemName registers a mapping without going through the admin API
func (f *ledgerFixture) mapSystemName(name ledger.SystemName, accountID uuid.UUID) {
	setting := ledger.NewAccountSetting(name, accountID, "", "test")
	_ = f.settings.Upsert(context.Background(), setting)
}
