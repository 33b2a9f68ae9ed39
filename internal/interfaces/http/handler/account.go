package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerapp "github.com/hostelbooks/backend/internal/application/ledger"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/interfaces/http/dto"
)

// AccountHandler handles chart-of-accounts API endpoints
type AccountHandler struct {
	BaseHandler
	service *ledgerapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(service *ledgerapp.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccountRequest represents a request to create a ledger account
type CreateAccountRequest struct {
	Name              string           `json:"name" binding:"required"`
	AccountType       string           `json:"account_type" binding:"required,oneof=ASSET LIABILITY INCOME EXPENSE EQUITY"`
	CategoryID        *uuid.UUID       `json:"category_id"`
	GSTType           string           `json:"gst_type" binding:"omitempty,oneof=NONE OUTPUT INPUT TAXABLE EXEMPT"`
	GSTRate           *decimal.Decimal `json:"gst_rate"`
	MaintainsBillWise bool             `json:"maintains_bill_wise"`
	IsCashEquivalent  bool             `json:"is_cash_equivalent"`
}

// UpdateAccountRequest represents a request to update a ledger account
type UpdateAccountRequest struct {
	Name              *string          `json:"name"`
	CategoryID        *uuid.UUID       `json:"category_id"`
	GSTType           *string          `json:"gst_type" binding:"omitempty,oneof=NONE OUTPUT INPUT TAXABLE EXEMPT"`
	GSTRate           *decimal.Decimal `json:"gst_rate"`
	MaintainsBillWise *bool            `json:"maintains_bill_wise"`
	IsCashEquivalent  *bool            `json:"is_cash_equivalent"`
	Active            *bool            `json:"active"`
}

// ListAccountsFilter represents filter parameters for account list
type ListAccountsFilter struct {
	Type       string `form:"type" binding:"omitempty,oneof=ASSET LIABILITY INCOME EXPENSE EQUITY"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	ActiveOnly bool   `form:"active_only"`
}

// DeleteAccountRequest carries the optional target for moving history
type DeleteAccountRequest struct {
	MoveToAccountID *uuid.UUID `json:"move_to_account_id"`
}

// CreateAccount creates a new ledger account
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	account, err := h.service.CreateAccount(c.Request.Context(), ledgerapp.CreateAccountRequest{
		Name:              req.Name,
		AccountType:       req.AccountType,
		CategoryID:        req.CategoryID,
		GSTType:           req.GSTType,
		GSTRate:           req.GSTRate,
		MaintainsBillWise: req.MaintainsBillWise,
		IsCashEquivalent:  req.IsCashEquivalent,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// GetAccount returns a single account by ID
func (h *AccountHandler) GetAccount(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	id := uuid.MustParse(req.ID)

	account, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// ListAccounts returns accounts matching the filter
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var filter ListAccountsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	domainFilter := ledger.AccountFilter{ActiveOnly: filter.ActiveOnly}
	if filter.Type != "" {
		t := ledger.AccountType(filter.Type)
		domainFilter.Type = &t
	}
	if filter.CategoryID != "" {
		id := uuid.MustParse(filter.CategoryID)
		domainFilter.CategoryID = &id
	}

	accounts, err := h.service.ListAccounts(c.Request.Context(), domainFilter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accounts)
}

// UpdateAccount updates an account's editable fields
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	id := uuid.MustParse(uriReq.ID)

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	account, err := h.service.UpdateAccount(c.Request.Context(), id, ledgerapp.UpdateAccountRequest{
		Name:              req.Name,
		CategoryID:        req.CategoryID,
		GSTType:           req.GSTType,
		GSTRate:           req.GSTRate,
		MaintainsBillWise: req.MaintainsBillWise,
		IsCashEquivalent:  req.IsCashEquivalent,
		Active:            req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// DeleteAccount deletes an account, optionally moving its history first
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	id := uuid.MustParse(uriReq.ID)

	var req DeleteAccountRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
			return
		}
	}

	if err := h.service.DeleteAccount(c.Request.Context(), id, req.MoveToAccountID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetBalance returns the current running balance of an account
func (h *AccountHandler) GetBalance(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	id := uuid.MustParse(req.ID)

	balance, err := h.service.GetBalance(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"account_id": id, "balance": balance})
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.GET("/:id/balance", h.GetBalance)
		accounts.POST("", h.CreateAccount)
		accounts.PUT("/:id", h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}
}
