package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/flower8718/backend/internal/application/partner"
)

// StoreHandler handles store master endpoints
type StoreHandler struct {
	BaseHandler
	storeService *partnerapp.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *partnerapp.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// RegisterRoutes registers store routes
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores")
	{
		stores.GET("", h.List)
		stores.POST("", h.Create)
		stores.PUT("/sort-orders", h.UpdateSortOrders)
		stores.GET("/:id", h.Get)
		stores.PUT("/:id", h.Update)
		stores.DELETE("/:id", h.Deactivate)
	}
}

// List returns stores, active ones by default
func (h *StoreHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	stores, err := h.storeService.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, stores)
}

// Create registers a new store
func (h *StoreHandler) Create(c *gin.Context) {
	var req partnerapp.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, store)
}

// Get returns one store
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	store, err := h.storeService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, store)
}

// Update applies a partial update to a store
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	var req partnerapp.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	store, err := h.storeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, store)
}

// Deactivate soft-deletes a store so its history stays intact
func (h *StoreHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.storeService.Deactivate(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateSortOrders reorders stores for display
func (h *StoreHandler) UpdateSortOrders(c *gin.Context) {
	var req partnerapp.SortOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.storeService.UpdateSortOrders(c.Request.Context(), req); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
