package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Resolver resolves a system name to the concrete account currently
// fulfilling it. An unresolvable name is a configuration error requiring
// admin intervention; it is never defaulted.
type Resolver interface {
	Resolve(ctx context.Context, name ledger.SystemName) (uuid.UUID, error)
}

// MappingService owns the system-name mapping table and its process-local
// cache. Mapping writes are rare admin actions; invalidation is whole-cache
// on every write, trading granularity for correctness.
type MappingService struct {
	settingRepo ledger.AccountSettingRepository
	accountRepo ledger.AccountRepository
	cache       ledger.SystemAccountCache
	invalidator ledger.CacheInvalidator // nil when running single-instance
	logger      *zap.Logger
}

// NewMappingService creates a MappingService. invalidator may be nil, in
// which case invalidation stays local to this process.
func NewMappingService(
	settingRepo ledger.AccountSettingRepository,
	accountRepo ledger.AccountRepository,
	cache ledger.SystemAccountCache,
	invalidator ledger.CacheInvalidator,
	logger *zap.Logger,
) *MappingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MappingService{
		settingRepo: settingRepo,
		accountRepo: accountRepo,
		cache:       cache,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Resolve returns the account id mapped to the system name, consulting the
// process-local cache first. A missing mapping or a mapping whose target
// account no longer exists fails with a configuration error; silently
// picking an account would corrupt the ledger.
func (s *MappingService) Resolve(ctx context.Context, name ledger.SystemName) (uuid.UUID, error) {
	if !name.IsValid() {
		return uuid.Nil, shared.NewValidationError("unknown system name: " + string(name))
	}
	if id, ok := s.cache.Get(name); ok {
		return id, nil
	}

	setting, err := s.settingRepo.FindBySystemName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("system name has no account mapping",
				zap.String("system_name", string(name)))
			return uuid.Nil, shared.NewConfigurationError(
				"no account mapped for system name " + string(name))
		}
		return uuid.Nil, err
	}

	if _, err := s.accountRepo.FindByID(ctx, setting.AccountID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("mapped account does not exist",
				zap.String("system_name", string(name)),
				zap.String("account_id", setting.AccountID.String()))
			return uuid.Nil, shared.NewConfigurationError(
				"account mapped for system name " + string(name) + " does not exist")
		}
		return uuid.Nil, err
	}

	s.cache.Set(name, setting.AccountID)
	return setting.AccountID, nil
}

// SetMapping validates and upserts a mapping, then invalidates every cache.
// The local cache clears synchronously; peer instances are notified through
// the invalidator.
func (s *MappingService) SetMapping(ctx context.Context, req SetMappingRequest) (*MappingResponse, error) {
	name := ledger.SystemName(req.SystemName)
	if !name.IsValid() {
		return nil, shared.NewValidationError("unknown system name: " + req.SystemName)
	}
	if req.AccountID == uuid.Nil {
		return nil, shared.NewValidationError("account id is required")
	}

	account, err := s.accountRepo.FindByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("account not found")
		}
		return nil, err
	}

	setting := ledger.NewAccountSetting(name, req.AccountID, req.Description, req.UpdatedBy)
	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	s.cache.InvalidateAll()
	if s.invalidator != nil {
		if err := s.invalidator.PublishInvalidateAll(ctx); err != nil {
			// Local cache is already clear; peers catch up on their next
			// mapping write or restart. Log loudly, don't fail the admin.
			s.logger.Warn("failed to broadcast mapping cache invalidation", zap.Error(err))
		}
	}

	s.logger.Info("system account mapping updated",
		zap.String("system_name", string(name)),
		zap.String("account_id", req.AccountID.String()),
		zap.String("updated_by", req.UpdatedBy))

	return &MappingResponse{
		SystemName:  string(name),
		AccountID:   req.AccountID,
		AccountName: account.Name,
		Description: req.Description,
		UpdatedBy:   req.UpdatedBy,
		UpdatedAt:   setting.UpdatedAt,
	}, nil
}

// ListMappings returns every configured mapping with its account name
func (s *MappingService) ListMappings(ctx context.Context) ([]MappingResponse, error) {
	settings, err := s.settingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]MappingResponse, 0, len(settings))
	for _, setting := range settings {
		resp := MappingResponse{
			SystemName:  string(setting.SystemName),
			AccountID:   setting.AccountID,
			Description: setting.Description,
			UpdatedBy:   setting.UpdatedBy,
			UpdatedAt:   setting.UpdatedAt,
		}
		if account, err := s.accountRepo.FindByID(ctx, setting.AccountID); err == nil {
			resp.AccountName = account.Name
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// KnownSystemNames returns the fixed enumeration of valid system names
func (s *MappingService) KnownSystemNames() []ledger.SystemName {
	return ledger.KnownSystemNames()
}

// InvalidateAll clears the local cache and notifies peer instances
func (s *MappingService) InvalidateAll(ctx context.Context) {
	s.cache.InvalidateAll()
	if s.invalidator != nil {
		if err := s.invalidator.PublishInvalidateAll(ctx); err != nil {
			s.logger.Warn("failed to broadcast mapping cache invalidation", zap.Error(err))
		}
	}
}

// StartInvalidationListener subscribes to peer invalidation signals and
// clears the local cache on each one. Blocks until the context is done;
// run it in a goroutine.
func (s *MappingService) StartInvalidationListener(ctx context.Context) error {
	if s.invalidator == nil {
		return nil
	}
	return s.invalidator.Subscribe(ctx, func() {
		s.cache.InvalidateAll()
		s.logger.Debug("system account cache invalidated by peer")
	})
}

var _ Resolver = (*MappingService)(nil)
