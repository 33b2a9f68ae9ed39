package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/hostelbooks/backend/internal/application/ledger"
	"github.com/hostelbooks/backend/internal/interfaces/http/dto"
)

// CategoryHandler handles account category API endpoints
type CategoryHandler struct {
	BaseHandler
	service *ledgerapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(service *ledgerapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CreateCategoryRequest represents a request to create an account category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required"`
	AccountType string     `json:"account_type" binding:"required,oneof=ASSET LIABILITY INCOME EXPENSE EQUITY"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory creates a new account category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), ledgerapp.CreateCategoryRequest{
		Name:        req.Name,
		AccountType: req.AccountType,
		ParentID:    req.ParentID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// GetCategory returns a single category by ID
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.service.GetCategory(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// ListCategories returns all categories as a flat list
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// GetCategoryTree returns categories nested by parent
func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	tree, err := h.service.GetCategoryTree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tree)
}

// UpdateCategory renames a category
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), uuid.MustParse(uriReq.ID), ledgerapp.UpdateCategoryRequest{
		Name: &req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// DeleteCategory deletes an unused category
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/tree", h.GetCategoryTree)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}
