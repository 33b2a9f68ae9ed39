package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerapp "github.com/hostelbooks/backend/internal/application/ledger"
	"github.com/hostelbooks/backend/internal/interfaces/http/dto"
)

// JournalHandler handles journal entry API endpoints
type JournalHandler struct {
	BaseHandler
	service *ledgerapp.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(service *ledgerapp.JournalService) *JournalHandler {
	return &JournalHandler{service: service}
}

// BillReferenceRequest attaches bill-wise tracking to a submitted leg
type BillReferenceRequest struct {
	Kind      string     `json:"kind" binding:"required,oneof=NEW_REF AGAINST_REF"`
	BillRefNo string     `json:"bill_ref_no" binding:"required"`
	BillDate  *time.Time `json:"bill_date"`
	DueDate   *time.Time `json:"due_date"`
}

// LegRequest is one submitted debit-or-credit line
type LegRequest struct {
	SystemName *string               `json:"system_name"`
	AccountID  *uuid.UUID            `json:"account_id"`
	Debit      decimal.Decimal       `json:"debit"`
	Credit     decimal.Decimal       `json:"credit"`
	Bill       *BillReferenceRequest `json:"bill"`
}

// PostEntryRequest represents a request to post a journal entry
type PostEntryRequest struct {
	Date          time.Time    `json:"date" binding:"required"`
	Description   string       `json:"description" binding:"required"`
	PropertyID    *uuid.UUID   `json:"property_id"`
	KitchenID     *uuid.UUID   `json:"kitchen_id"`
	ReferenceID   string       `json:"reference_id"`
	ReferenceType string       `json:"reference_type"`
	Legs          []LegRequest `json:"transactions" binding:"required,min=2"`
}

// GSTDetailsRequest describes tax to synthesize onto a manual entry
type GSTDetailsRequest struct {
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	TaxableAmount decimal.Decimal `json:"taxable_amount" binding:"required"`
	IsIntraState  bool            `json:"is_intra_state"`
	IsPurchase    bool            `json:"is_purchase"`
}

// PostManualEntryRequest represents an operator-submitted entry, optionally
// carrying GST details to synthesize tax legs from
type PostManualEntryRequest struct {
	PostEntryRequest
	GST *GSTDetailsRequest `json:"gst"`
}

func (r PostEntryRequest) toInput(actor string) ledgerapp.PostEntryInput {
	legs := make([]ledgerapp.LegInput, 0, len(r.Legs))
	for _, l := range r.Legs {
		leg := ledgerapp.LegInput{
			SystemName: l.SystemName,
			AccountID:  l.AccountID,
			Debit:      l.Debit,
			Credit:     l.Credit,
		}
		if l.Bill != nil {
			leg.Bill = &ledgerapp.BillReferenceInput{
				Kind:      l.Bill.Kind,
				BillRefNo: l.Bill.BillRefNo,
				BillDate:  l.Bill.BillDate,
				DueDate:   l.Bill.DueDate,
			}
		}
		legs = append(legs, leg)
	}
	return ledgerapp.PostEntryInput{
		Date:          r.Date,
		Description:   r.Description,
		PropertyID:    r.PropertyID,
		KitchenID:     r.KitchenID,
		ReferenceID:   r.ReferenceID,
		ReferenceType: r.ReferenceType,
		PerformedBy:   actor,
		Legs:          legs,
	}
}

// PostEntry posts a balanced journal entry
func (h *JournalHandler) PostEntry(c *gin.Context) {
	var req PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	entry, err := h.service.PostEntry(c.Request.Context(), req.toInput(getActor(c)))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// PostManualEntry posts an operator-submitted entry with optional GST synthesis
func (h *JournalHandler) PostManualEntry(c *gin.Context) {
	var req PostManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	var gst *ledgerapp.GSTDetails
	if req.GST != nil {
		gst = &ledgerapp.GSTDetails{
			Rate:          req.GST.Rate,
			TaxableAmount: req.GST.TaxableAmount,
			IsIntraState:  req.GST.IsIntraState,
			IsPurchase:    req.GST.IsPurchase,
		}
	}

	entry, err := h.service.PostManualEntry(c.Request.Context(), req.toInput(getActor(c)), gst)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// GetEntry returns a posted entry with its lines
func (h *JournalHandler) GetEntry(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.service.GetEntry(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// RegisterRoutes registers journal entry routes
func (h *JournalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/journal-entries")
	{
		entries.GET("/:id", h.GetEntry)
		entries.POST("", h.PostEntry)
		entries.POST("/manual", h.PostManualEntry)
	}
}
