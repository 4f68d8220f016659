package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	billingapp "github.com/flower8718/backend/internal/application/billing"
	"github.com/flower8718/backend/internal/domain/billing"
	"github.com/flower8718/backend/internal/interfaces/http/dto"
)

// InvoiceHandler handles invoice generation and lifecycle endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.POST("/generate", h.Generate)
		invoices.GET("/:id", h.Get)
		invoices.PUT("/:id/status", h.UpdateStatus)
		invoices.DELETE("/:id", h.Delete)
	}
}

// Generate builds one invoice from a store's transfers over a period.
// Line items are snapshotted so later master edits leave the invoice
// untouched.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req billingapp.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Generate(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, invoice)
}

// listInvoicesQuery captures the invoice listing filters
type listInvoicesQuery struct {
	dto.ListRequest
	StoreID     *uint      `form:"store_id"`
	InvoiceType string     `form:"invoice_type" binding:"omitempty,oneof=flower supply contractor"`
	Status      string     `form:"status" binding:"omitempty,oneof=draft generated sent paid"`
	PeriodFrom  *time.Time `form:"period_from" time_format:"2006-01-02"`
	PeriodTo    *time.Time `form:"period_to" time_format:"2006-01-02"`
}

// List returns invoices, newest period first
func (h *InvoiceHandler) List(c *gin.Context) {
	var q listInvoicesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := billing.InvoiceFilter{
		StoreID:     q.StoreID,
		InvoiceType: q.InvoiceType,
		Status:      q.Status,
		PeriodFrom:  q.PeriodFrom,
		PeriodTo:    q.PeriodTo,
	}
	filter.Offset = q.Offset
	filter.Limit = q.Limit

	invoices, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, len(invoices), q.Offset, q.Limit)
}

// Get returns one invoice with its snapshot lines
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// UpdateStatus moves an invoice through draft, generated, sent and paid
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	var req billingapp.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Delete removes an invoice together with its lines and payments
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
