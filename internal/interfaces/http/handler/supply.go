package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/flower8718/backend/internal/application/catalog"
)

// SupplyHandler handles supply master endpoints. Supplies carry their
// own stock counter instead of the arrival lot ledger.
type SupplyHandler struct {
	BaseHandler
	supplyService *catalogapp.SupplyService
}

// NewSupplyHandler creates a new SupplyHandler
func NewSupplyHandler(supplyService *catalogapp.SupplyService) *SupplyHandler {
	return &SupplyHandler{supplyService: supplyService}
}

// RegisterRoutes registers supply routes
func (h *SupplyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	supplies := rg.Group("/supplies")
	{
		supplies.GET("", h.List)
		supplies.POST("", h.Create)
		supplies.PUT("/sort-orders", h.UpdateSortOrders)
		supplies.GET("/:id", h.Get)
		supplies.PUT("/:id", h.Update)
		supplies.DELETE("/:id", h.Delete)
		supplies.POST("/:id/stock", h.AddStock)
		supplies.GET("/:id/price-history", h.PriceHistory)
	}
}

// List returns supplies, active ones first
func (h *SupplyHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	supplies, err := h.supplyService.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, supplies)
}

// Create registers a new supply
func (h *SupplyHandler) Create(c *gin.Context) {
	var req catalogapp.CreateSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supply, err := h.supplyService.Create(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, supply)
}

// Get returns one supply
func (h *SupplyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	supply, err := h.supplyService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, supply)
}

// Update applies a partial update; price changes are recorded
func (h *SupplyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	var req catalogapp.UpdateSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supply, err := h.supplyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, supply)
}

// Delete removes a supply and cascades through its price history and
// transfer rows
func (h *SupplyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.supplyService.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AddStock increases a supply's stock counter
func (h *SupplyHandler) AddStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	var req catalogapp.SupplyStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supply, err := h.supplyService.AddStock(c.Request.Context(), id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, supply)
}

// PriceHistory returns a supply's price changes, newest first
func (h *SupplyHandler) PriceHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	history, err := h.supplyService.PriceHistory(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, history)
}

// UpdateSortOrders reorders supplies for display
func (h *SupplyHandler) UpdateSortOrders(c *gin.Context) {
	var req catalogapp.SortOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.supplyService.UpdateSortOrders(c.Request.Context(), req); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
