package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/flower8718/backend/internal/application/settings"
)

// SettingsHandler handles system configuration endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.SettingsService
	taxRateService  *settingsapp.TaxRateService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.SettingsService, taxRateService *settingsapp.TaxRateService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, taxRateService: taxRateService}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	{
		settings.GET("", h.All)
		settings.PUT("", h.SetAll)
		settings.GET("/:key", h.Get)
		settings.PUT("/:key", h.Set)
	}
	taxRates := rg.Group("/tax-rates")
	{
		taxRates.GET("", h.ListTaxRates)
		taxRates.POST("", h.CreateTaxRate)
	}
}

// All returns every setting with defaults filled in
func (h *SettingsHandler) All(c *gin.Context) {
	values, err := h.settingsService.All(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, values)
}

// SetAll validates and stores a batch of settings
func (h *SettingsHandler) SetAll(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if len(req) == 0 {
		h.BadRequest(c, "No settings given")
		return
	}

	if err := h.settingsService.SetAll(c.Request.Context(), req); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Get returns one setting value
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	value, err := h.settingsService.Get(c.Request.Context(), key)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"key": key, "value": value})
}

// Set validates and stores one setting
func (h *SettingsHandler) Set(c *gin.Context) {
	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	key := c.Param("key")
	if err := h.settingsService.Set(c.Request.Context(), key, req.Value); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ListTaxRates returns the consumption tax rate master
func (h *SettingsHandler) ListTaxRates(c *gin.Context) {
	rates, err := h.taxRateService.List(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, rates)
}

// CreateTaxRate registers a new tax rate row
func (h *SettingsHandler) CreateTaxRate(c *gin.Context) {
	var req settingsapp.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.taxRateService.Create(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, rate)
}
