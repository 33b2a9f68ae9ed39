package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/hostelbooks/backend/internal/application/ledger"
	"github.com/hostelbooks/backend/internal/interfaces/http/dto"
)

// ReconciliationHandler handles bank reconciliation API endpoints
type ReconciliationHandler struct {
	BaseHandler
	service *ledgerapp.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(service *ledgerapp.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// UnreconciledFilter represents filter parameters for the unreconciled list
type UnreconciledFilter struct {
	AsOf       *time.Time `form:"as_of" time_format:"2006-01-02"`
	PropertyID string     `form:"property_id" binding:"omitempty,uuid"`
}

// ReconcileRequest marks a batch of entries as matched against a statement
type ReconcileRequest struct {
	EntryIDs []uuid.UUID `json:"entry_ids" binding:"required,min=1"`
	BankDate time.Time   `json:"bank_date" binding:"required"`
}

// ListUnreconciled returns the cash/bank postings of an account still
// awaiting a statement match
func (h *ReconciliationHandler) ListUnreconciled(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var filter UnreconciledFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var propertyID *uuid.UUID
	if filter.PropertyID != "" {
		id := uuid.MustParse(filter.PropertyID)
		propertyID = &id
	}

	entries, err := h.service.ListUnreconciled(c.Request.Context(), uuid.MustParse(uriReq.ID), filter.AsOf, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// Reconcile stamps a batch of entries with their bank statement date
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	if err := h.service.Reconcile(c.Request.Context(), req.EntryIDs, req.BankDate); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"reconciled": len(req.EntryIDs)})
}

// RegisterRoutes registers bank reconciliation routes
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reconciliation := rg.Group("/reconciliation")
	{
		reconciliation.GET("/accounts/:id/unreconciled", h.ListUnreconciled)
		reconciliation.POST("/reconcile", h.Reconcile)
	}
}
