package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/hostelbooks/backend/internal/application/report"
	"github.com/hostelbooks/backend/internal/interfaces/http/dto"
)

// ReportHandler handles financial report API endpoints
type ReportHandler struct {
	BaseHandler
	service *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// PeriodFilter represents an optional reporting period
type PeriodFilter struct {
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	PropertyID string     `form:"property_id" binding:"omitempty,uuid"`
}

// RequiredPeriodFilter represents a mandatory reporting period
type RequiredPeriodFilter struct {
	StartDate  time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate    time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
	PropertyID string    `form:"property_id" binding:"omitempty,uuid"`
}

// DayBookFilter selects the day to report on
type DayBookFilter struct {
	Date       time.Time `form:"date" time_format:"2006-01-02" binding:"required"`
	PropertyID string    `form:"property_id" binding:"omitempty,uuid"`
}

func parsePropertyID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id := uuid.MustParse(raw)
	return &id
}

// ProfitAndLoss returns income and expense totals for a period
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	var filter PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ProfitAndLoss(c.Request.Context(), filter.StartDate, filter.EndDate, parsePropertyID(filter.PropertyID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// BalanceSheet returns assets, liabilities and equity as of a date
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	var filter PeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.BalanceSheet(c.Request.Context(), filter.EndDate, parsePropertyID(filter.PropertyID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AccountLedger returns one account's statement with running balances
func (h *ReportHandler) AccountLedger(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var filter RequiredPeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AccountLedger(c.Request.Context(), uuid.MustParse(uriReq.ID), filter.StartDate, filter.EndDate, parsePropertyID(filter.PropertyID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DayBook returns every posting on one calendar day
func (h *ReportHandler) DayBook(c *gin.Context) {
	var filter DayBookFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.DayBook(c.Request.Context(), filter.Date, parsePropertyID(filter.PropertyID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GSTSummary returns output and input tax totals per rate for a period
func (h *ReportHandler) GSTSummary(c *gin.Context) {
	var filter RequiredPeriodFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GSTSummary(c.Request.Context(), filter.StartDate, filter.EndDate, parsePropertyID(filter.PropertyID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/profit-and-loss", h.ProfitAndLoss)
		reports.GET("/balance-sheet", h.BalanceSheet)
		reports.GET("/ledger/:id", h.AccountLedger)
		reports.GET("/day-book", h.DayBook)
		reports.GET("/gst-summary", h.GSTSummary)
	}
}
