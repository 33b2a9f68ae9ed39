package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/shared"
)

// AccountCategory groups accounts of one type into a parent-pointer tree.
// The tree is derived by grouping on ParentID, never denormalized.
type AccountCategory struct {
	shared.BaseEntity
	Name     string      `json:"name"`
	Type     AccountType `json:"account_type"`
	ParentID *uuid.UUID  `json:"parent_id,omitempty"`
}

// NewAccountCategory creates a category for the given account type
func NewAccountCategory(name string, accountType AccountType, parentID *uuid.UUID) *AccountCategory {
	return &AccountCategory{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       accountType,
		ParentID:   parentID,
	}
}

// Validate checks the category's own invariants
func (c *AccountCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewValidationError("category name is required")
	}
	if !c.Type.IsValid() {
		return shared.NewValidationError("invalid account type: " + string(c.Type))
	}
	return nil
}

// CategoryNode is one node of the derived category tree
type CategoryNode struct {
	AccountCategory
	Children []*CategoryNode `json:"children"`
}

// BuildCategoryTree groups flat parent-pointer categories into a forest of
// root nodes. Categories whose parent is missing from the input are treated
// as roots rather than dropped.
func BuildCategoryTree(categories []AccountCategory) []*CategoryNode {
	nodes := make(map[uuid.UUID]*CategoryNode, len(categories))
	for i := range categories {
		nodes[categories[i].ID] = &CategoryNode{
			AccountCategory: categories[i],
			Children:        []*CategoryNode{},
		}
	}

	roots := make([]*CategoryNode, 0)
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
