package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	billingapp "github.com/flower8718/backend/internal/application/billing"
)

// PaymentHandler handles payment recording and the monthly
// confirmation view.
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.GET("", h.ListByInvoice)
		payments.POST("", h.Record)
		payments.GET("/confirmation", h.Confirmation)
		payments.DELETE("/:id", h.Delete)
	}
}

// Record registers money received against an invoice. Negative amounts
// are accepted as corrections.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.Record(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, payment)
}

// ListByInvoice returns an invoice's payments, oldest first
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	var q struct {
		InvoiceID uint `form:"invoice_id" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, err := h.paymentService.ListByInvoice(c.Request.Context(), q.InvoiceID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, payments)
}

// Confirmation returns the per-store paid-versus-billed roundup for a
// closing month.
func (h *PaymentHandler) Confirmation(c *gin.Context) {
	var q struct {
		Year  int `form:"year" binding:"required,min=2000,max=2100"`
		Month int `form:"month" binding:"required,min=1,max=12"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	confirmation, err := h.paymentService.Confirmation(c.Request.Context(), q.Year, time.Month(q.Month))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, confirmation)
}

// Delete removes a payment row. The invoice status is untouched; the
// confirmation view reflects the new balance.
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
