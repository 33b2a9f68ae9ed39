package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService manages the account category tree
type CategoryService struct {
	categoryRepo ledger.CategoryRepository
	accountRepo  ledger.AccountRepository
	logger       *zap.Logger
}

// NewCategoryService creates a CategoryService
func NewCategoryService(categoryRepo ledger.CategoryRepository, accountRepo ledger.AccountRepository, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		accountRepo:  accountRepo,
		logger:       logger,
	}
}

// CreateCategory creates a category, optionally under a parent of the same
// account type.
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	accountType := ledger.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, shared.NewValidationError("invalid account type: " + req.AccountType)
	}

	if existing, err := s.categoryRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewConflictError("category name already in use: " + req.Name)
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewNotFoundError("parent category not found")
			}
			return nil, err
		}
		if parent.Type != accountType {
			return nil, shared.NewValidationError(
				"parent category " + parent.Name + " holds " + string(parent.Type) + " accounts")
		}
	}

	category := ledger.NewAccountCategory(req.Name, accountType, req.ParentID)
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// GetCategory returns one category
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("category not found")
		}
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// ListCategories returns all categories as a flat list
func (s *CategoryService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// GetCategoryTree returns the categories grouped into their parent-pointer
// forest.
func (s *CategoryService) GetCategoryTree(ctx context.Context) ([]*ledger.CategoryNode, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.BuildCategoryTree(categories), nil
}

// UpdateCategory renames a category. The account type is fixed at creation.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("category not found")
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		if existing, err := s.categoryRepo.FindByName(ctx, *req.Name); err == nil && existing != nil && existing.ID != id {
			return nil, shared.NewConflictError("category name already in use: " + *req.Name)
		} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		category.Name = *req.Name
		category.Touch()
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// DeleteCategory removes a category that has no child categories and no
// accounts assigned to it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("category not found")
		}
		return err
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError(shared.CodeInvalidState, "category has child categories")
	}

	accountCount, err := s.accountRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if accountCount > 0 {
		return shared.NewDomainError(shared.CodeInvalidState, "category has accounts assigned")
	}

	return s.categoryRepo.Delete(ctx, id)
}
