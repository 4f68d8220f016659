package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/flower8718/backend/internal/application/inventory"
	settingsapp "github.com/flower8718/backend/internal/application/settings"
	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/flower8718/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles warehouse stock, arrivals, transfers,
// disposals and stocktake adjustments.
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
	settingsService  *settingsapp.SettingsService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(
	inventoryService *inventoryapp.InventoryService,
	settingsService *settingsapp.SettingsService,
) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		settingsService:  settingsService,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.GET("/stock", h.ListStock)
		inv.GET("/stock/long-term", h.LongTermStock)
		inv.GET("/stock/:item_id", h.GetStock)
		inv.GET("/arrivals", h.ListArrivals)
		inv.POST("/arrivals", h.RecordArrival)
		inv.GET("/transfers", h.ListTransfers)
		inv.POST("/transfers", h.RecordTransfer)
		inv.POST("/supply-transfers", h.RecordSupplyTransfer)
		inv.POST("/disposals", h.RecordDisposal)
		inv.POST("/adjustments", h.RecordAdjustment)
	}
}

// ListStock returns the aggregate ledger, in-stock items first
func (h *InventoryHandler) ListStock(c *gin.Context) {
	var q dto.ListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{Offset: q.Offset, Limit: q.Limit}
	stock, err := h.inventoryService.ListStock(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, stock, len(stock), q.Offset, q.Limit)
}

// GetStock returns one item's aggregate stock with its open lots
func (h *InventoryHandler) GetStock(c *gin.Context) {
	itemID, ok := parseID(c, "item_id")
	if !ok {
		h.InvalidID(c)
		return
	}

	stock, err := h.inventoryService.GetStock(c.Request.Context(), itemID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, stock)
}

// LongTermStock lists items sitting in the warehouse longer than the
// alert threshold. The days query overrides the configured default.
func (h *InventoryHandler) LongTermStock(c *gin.Context) {
	var q struct {
		Days int `form:"days" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	days := q.Days
	if days == 0 {
		configured, err := h.settingsService.InventoryAlertDays(c.Request.Context())
		if err != nil {
			h.DomainError(c, err)
			return
		}
		days = configured
	}

	stock, err := h.inventoryService.LongTermStock(c.Request.Context(), days, time.Now())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, stock)
}

// ListArrivals returns arrival lots for one item
func (h *InventoryHandler) ListArrivals(c *gin.Context) {
	var q struct {
		ItemID uint `form:"item_id" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	arrivals, err := h.inventoryService.ListArrivals(c.Request.Context(), q.ItemID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, arrivals)
}

// RecordArrival registers an incoming lot and tops up the aggregate ledger
func (h *InventoryHandler) RecordArrival(c *gin.Context) {
	var req inventoryapp.RecordArrivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	arrival, err := h.inventoryService.RecordArrival(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, arrival)
}

// listTransfersQuery captures the transfer listing filters
type listTransfersQuery struct {
	dto.ListRequest
	StoreID  uint       `form:"store_id"`
	ItemID   uint       `form:"item_id"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
}

// ListTransfers returns transfers, newest first
func (h *InventoryHandler) ListTransfers(c *gin.Context) {
	var q listTransfersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := inventory.TransferFilter{
		StoreID:  q.StoreID,
		ItemID:   q.ItemID,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	}
	filter.Offset = q.Offset
	filter.Limit = q.Limit

	transfers, err := h.inventoryService.ListTransfers(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, transfers, len(transfers), q.Offset, q.Limit)
}

// RecordTransfer moves stock from the warehouse to a store. When a lot
// is named the transfer also draws down that lot.
func (h *InventoryHandler) RecordTransfer(c *gin.Context) {
	var req inventoryapp.RecordTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.inventoryService.RecordTransfer(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, transfer)
}

// RecordSupplyTransfer moves supply stock to a store
func (h *InventoryHandler) RecordSupplyTransfer(c *gin.Context) {
	var req inventoryapp.RecordSupplyTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.inventoryService.RecordSupplyTransfer(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, transfer)
}

// RecordDisposal discards stock from the warehouse
func (h *InventoryHandler) RecordDisposal(c *gin.Context) {
	var req inventoryapp.RecordDisposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.inventoryService.RecordDisposal(c.Request.Context(), req); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RecordAdjustment applies a stocktake correction
func (h *InventoryHandler) RecordAdjustment(c *gin.Context) {
	var req inventoryapp.RecordAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.inventoryService.RecordAdjustment(c.Request.Context(), req); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
