package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/flower8718/backend/internal/application/catalog"
	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/interfaces/http/dto"
)

// ItemHandler handles flower item master endpoints
type ItemHandler struct {
	BaseHandler
	itemService *catalogapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *catalogapp.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// RegisterRoutes registers item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.GET("", h.List)
		items.POST("", h.Create)
		items.PUT("/sort-orders", h.UpdateSortOrders)
		items.GET("/code/:code", h.GetByCode)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
		items.GET("/:id/price-history", h.PriceHistory)
	}
}

// listItemsQuery captures the item listing filters
type listItemsQuery struct {
	dto.ListRequest
	Category string `form:"category"`
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
}

// List returns items filtered by category, search term and active flag
func (h *ItemHandler) List(c *gin.Context) {
	var q listItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := catalog.ItemFilter{
		Category: q.Category,
		Search:   q.Search,
		IsActive: q.IsActive,
	}
	filter.Offset = q.Offset
	filter.Limit = q.Limit

	items, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, len(items), q.Offset, q.Limit)
}

// Create registers a new item; a blank code gets one generated
func (h *ItemHandler) Create(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, item)
}

// Get returns one item
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, item)
}

// GetByCode returns one item looked up by its 4-digit code
func (h *ItemHandler) GetByCode(c *gin.Context) {
	item, err := h.itemService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Update applies a partial update; a price change is recorded in the history
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	var req catalogapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes an item and cascades through its dependent records.
// Invoice snapshot lines survive with the item reference cleared.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// PriceHistory returns an item's price changes, newest first
func (h *ItemHandler) PriceHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	history, err := h.itemService.PriceHistory(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, history)
}

// UpdateSortOrders reorders items for display
func (h *ItemHandler) UpdateSortOrders(c *gin.Context) {
	var req catalogapp.SortOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.itemService.UpdateSortOrders(c.Request.Context(), req); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
