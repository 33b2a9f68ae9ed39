package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/hostelbooks/backend/internal/application/ledger"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/interfaces/http/dto"
)

// BillHandler handles bill-wise sub-ledger API endpoints
type BillHandler struct {
	BaseHandler
	service *ledgerapp.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(service *ledgerapp.BillService) *BillHandler {
	return &BillHandler{service: service}
}

// OutstandingFilter represents filter parameters for outstanding bills
type OutstandingFilter struct {
	AccountType string `form:"account_type" binding:"required,oneof=ASSET LIABILITY INCOME EXPENSE EQUITY"`
	PropertyID  string `form:"property_id" binding:"omitempty,uuid"`
}

// BillHistoryFilter identifies one bill within an account
type BillHistoryFilter struct {
	BillRefNo string `form:"bill_ref_no" binding:"required"`
}

// GetOutstanding returns pending bills grouped by account.
// Receivables are listed with account_type=ASSET, payables with LIABILITY.
func (h *BillHandler) GetOutstanding(c *gin.Context) {
	var filter OutstandingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var propertyID *uuid.UUID
	if filter.PropertyID != "" {
		id := uuid.MustParse(filter.PropertyID)
		propertyID = &id
	}

	groups, err := h.service.GetOutstanding(c.Request.Context(), ledger.AccountType(filter.AccountType), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

// GetBillHistory returns a bill with every journal leg that touched it
func (h *BillHandler) GetBillHistory(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var filter BillHistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, history, err := h.service.GetBillHistory(c.Request.Context(), uuid.MustParse(uriReq.ID), filter.BillRefNo)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"bill": bill, "history": history})
}

// RegisterRoutes registers bill-wise sub-ledger routes
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.GET("/outstanding", h.GetOutstanding)
		bills.GET("/accounts/:id/history", h.GetBillHistory)
	}
}
