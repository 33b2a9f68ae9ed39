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

// AccountService manages the chart of accounts
type AccountService struct {
	accountRepo  ledger.AccountRepository
	categoryRepo ledger.CategoryRepository
	entryRepo    ledger.JournalEntryRepository
	settingRepo  ledger.AccountSettingRepository
	scope        TransactionScope
	cache        ledger.SystemAccountCache
	logger       *zap.Logger
}

// NewAccountService creates an AccountService
func NewAccountService(
	accountRepo ledger.AccountRepository,
	categoryRepo ledger.CategoryRepository,
	entryRepo ledger.JournalEntryRepository,
	settingRepo ledger.AccountSettingRepository,
	scope TransactionScope,
	cache ledger.SystemAccountCache,
	logger *zap.Logger,
) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		entryRepo:    entryRepo,
		settingRepo:  settingRepo,
		scope:        scope,
		cache:        cache,
		logger:       logger,
	}
}

// CreateAccount registers a new account with a zero balance. Names are
// unique across the chart; opening balances are introduced by posting an
// entry against an equity account, never by editing the field.
func (s *AccountService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	accountType := ledger.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, shared.NewValidationError("invalid account type: " + req.AccountType)
	}

	if existing, err := s.accountRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewConflictError("account name already in use: " + req.Name)
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	account := ledger.NewAccount(req.Name, accountType)
	account.MaintainsBillWise = req.MaintainsBillWise
	account.IsCashEquivalent = req.IsCashEquivalent
	if req.GSTType != "" {
		account.GSTType = ledger.GSTClass(req.GSTType)
	}
	account.GSTRate = req.GSTRate

	var category *ledger.AccountCategory
	if req.CategoryID != nil {
		found, err := s.categoryRepo.FindByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewNotFoundError("category not found")
			}
			return nil, err
		}
		if found.Type != accountType {
			return nil, shared.NewValidationError(
				"category " + found.Name + " holds " + string(found.Type) + " accounts")
		}
		account.CategoryID = req.CategoryID
		category = found
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("name", account.Name),
		zap.String("type", string(account.Type)))

	return ToAccountResponse(account, category), nil
}

// GetAccount returns one account with its category populated
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("account not found")
		}
		return nil, err
	}
	return ToAccountResponse(account, s.loadCategory(ctx, account.CategoryID)), nil
}

// ListAccounts returns accounts matching the filter
func (s *AccountService) ListAccounts(ctx context.Context, filter ledger.AccountFilter) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	categories := make(map[uuid.UUID]*ledger.AccountCategory)
	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		var category *ledger.AccountCategory
		if accounts[i].CategoryID != nil {
			if cached, ok := categories[*accounts[i].CategoryID]; ok {
				category = cached
			} else if category = s.loadCategory(ctx, accounts[i].CategoryID); category != nil {
				categories[category.ID] = category
			}
		}
		responses = append(responses, *ToAccountResponse(&accounts[i], category))
	}
	return responses, nil
}

// UpdateAccount edits an account's descriptive fields. Type and balance are
// immutable: a type change would re-sign posted history, and balances move
// only through the journal engine.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("account not found")
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != account.Name {
		if existing, err := s.accountRepo.FindByName(ctx, *req.Name); err == nil && existing != nil && existing.ID != id {
			return nil, shared.NewConflictError("account name already in use: " + *req.Name)
		} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		account.Name = *req.Name
	}
	if req.CategoryID != nil {
		found, err := s.categoryRepo.FindByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewNotFoundError("category not found")
			}
			return nil, err
		}
		if found.Type != account.Type {
			return nil, shared.NewValidationError(
				"category " + found.Name + " holds " + string(found.Type) + " accounts")
		}
		account.CategoryID = req.CategoryID
	}
	if req.GSTType != nil {
		account.GSTType = ledger.GSTClass(*req.GSTType)
	}
	if req.GSTRate != nil {
		account.GSTRate = req.GSTRate
	}
	if req.MaintainsBillWise != nil {
		account.MaintainsBillWise = *req.MaintainsBillWise
	}
	if req.IsCashEquivalent != nil {
		account.IsCashEquivalent = *req.IsCashEquivalent
	}
	if req.Active != nil {
		account.Active = *req.Active
	}
	account.Touch()

	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return ToAccountResponse(account, s.loadCategory(ctx, account.CategoryID)), nil
}

// DeleteAccount removes an account. An account with posted legs needs a
// replacement of the same type: in one transaction every leg is repointed,
// the accumulated balance moves over, and system-name mappings follow.
// Without postings the account is simply removed.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID, moveToID *uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.Accounts().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("account not found")
			}
			return err
		}

		lineCount, err := repos.Entries().CountLinesByAccount(ctx, id)
		if err != nil {
			return err
		}

		if lineCount == 0 {
			if err := s.repointMappings(ctx, repos, id, moveToID); err != nil {
				return err
			}
			return repos.Accounts().Delete(ctx, id)
		}

		if moveToID == nil {
			return shared.NewDomainError(shared.CodeInvalidState,
				"account "+account.Name+" has postings; a replacement account is required")
		}
		if *moveToID == id {
			return shared.NewValidationError("replacement account must differ from the deleted one")
		}
		target, err := repos.Accounts().FindByID(ctx, *moveToID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewNotFoundError("replacement account not found")
			}
			return err
		}
		if target.Type != account.Type {
			return shared.NewValidationError(
				"replacement account must be of type " + string(account.Type))
		}

		if err := repos.Entries().RepointAccount(ctx, id, target.ID); err != nil {
			return err
		}
		if !account.Balance.IsZero() {
			if err := repos.Accounts().IncrementBalance(ctx, target.ID, account.Balance); err != nil {
				return err
			}
		}
		if err := s.repointMappings(ctx, repos, id, moveToID); err != nil {
			return err
		}
		if err := repos.Accounts().Delete(ctx, id); err != nil {
			return err
		}

		s.logger.Info("account deleted with history moved",
			zap.String("account_id", id.String()),
			zap.String("moved_to", target.ID.String()),
			zap.Int64("legs_repointed", lineCount),
			zap.String("balance_moved", account.Balance.String()))
		return nil
	})
}

// repointMappings moves system-name mappings off a deleted account. With no
// replacement a dangling mapping is refused, since it would turn every later
// resolve into a configuration error.
func (s *AccountService) repointMappings(ctx context.Context, repos TransactionalRepositories, id uuid.UUID, moveToID *uuid.UUID) error {
	settings, err := repos.Settings().FindAll(ctx)
	if err != nil {
		return err
	}
	for i := range settings {
		if settings[i].AccountID != id {
			continue
		}
		if moveToID == nil {
			return shared.NewDomainError(shared.CodeInvalidState,
				"account is mapped to system name "+string(settings[i].SystemName)+
					"; a replacement account is required")
		}
		settings[i].AccountID = *moveToID
		settings[i].Touch()
		if err := repos.Settings().Upsert(ctx, &settings[i]); err != nil {
			return err
		}
	}
	s.cache.InvalidateAll()
	return nil
}

// GetBalance returns the account's current balance
func (s *AccountService) GetBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, shared.NewNotFoundError("account not found")
		}
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *AccountService) loadCategory(ctx context.Context, id *uuid.UUID) *ledger.AccountCategory {
	if id == nil {
		return nil
	}
	category, err := s.categoryRepo.FindByID(ctx, *id)
	if err != nil {
		return nil
	}
	return category
}
