package handler

import (
	"github.com/gin-gonic/gin"

	alertapp "github.com/flower8718/backend/internal/application/alert"
)

// AlertHandler handles the import error alert endpoints
type AlertHandler struct {
	BaseHandler
	alertService *alertapp.AlertService
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alertService *alertapp.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// RegisterRoutes registers alert routes
func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup) {
	alerts := rg.Group("/alerts")
	{
		alerts.GET("", h.List)
		alerts.GET("/count", h.PendingCount)
		alerts.PUT("/:id/resolve", h.Resolve)
	}
}

// List returns alerts, pending ones by default
func (h *AlertHandler) List(c *gin.Context) {
	includeResolved := c.Query("include_resolved") == "true"
	alerts, err := h.alertService.List(c.Request.Context(), includeResolved)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, alerts)
}

// PendingCount returns the number of unresolved alerts for the badge
func (h *AlertHandler) PendingCount(c *gin.Context) {
	count, err := h.alertService.PendingCount(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// Resolve marks an alert as handled
func (h *AlertHandler) Resolve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	alert, err := h.alertService.Resolve(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, alert)
}
