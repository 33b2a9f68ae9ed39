package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/hostelbooks/backend/internal/application/ledger"
	"github.com/hostelbooks/backend/internal/interfaces/http/dto"
)

// MappingHandler handles system account mapping API endpoints
type MappingHandler struct {
	BaseHandler
	service *ledgerapp.MappingService
}

// NewMappingHandler creates a new MappingHandler
func NewMappingHandler(service *ledgerapp.MappingService) *MappingHandler {
	return &MappingHandler{service: service}
}

// SetMappingRequest represents a request to bind a system name to an account
type SetMappingRequest struct {
	SystemName  string    `json:"system_name" binding:"required"`
	AccountID   uuid.UUID `json:"account_id" binding:"required"`
	Description string    `json:"description"`
}

// SetMapping creates or replaces a system name mapping
func (h *MappingHandler) SetMapping(c *gin.Context) {
	var req SetMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	mapping, err := h.service.SetMapping(c.Request.Context(), ledgerapp.SetMappingRequest{
		SystemName:  req.SystemName,
		AccountID:   req.AccountID,
		Description: req.Description,
		UpdatedBy:   getActor(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mapping)
}

// ListMappings returns all configured system name mappings
func (h *MappingHandler) ListMappings(c *gin.Context) {
	mappings, err := h.service.ListMappings(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mappings)
}

// ListSystemNames returns the known system names a mapping may use
func (h *MappingHandler) ListSystemNames(c *gin.Context) {
	h.Success(c, h.service.KnownSystemNames())
}

// InvalidateCache drops the resolver cache on every running instance
func (h *MappingHandler) InvalidateCache(c *gin.Context) {
	h.service.InvalidateAll(c.Request.Context())
	h.Success(c, gin.H{"invalidated": true})
}

// RegisterRoutes registers system mapping routes
func (h *MappingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mappings := rg.Group("/system-mappings")
	{
		mappings.GET("", h.ListMappings)
		mappings.GET("/names", h.ListSystemNames)
		mappings.PUT("", h.SetMapping)
		mappings.POST("/invalidate-cache", h.InvalidateCache)
	}
}
