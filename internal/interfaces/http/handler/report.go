package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/flower8718/backend/internal/application/report"
)

// ReportHandler handles the monthly sales and profit report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/monthly", h.Monthly)
		reports.GET("/supplier-summary", h.SupplierSummary)
		reports.GET("/purchase-delivery", h.PurchaseDelivery)
		reports.GET("/ranking", h.Ranking)
		reports.GET("/daily", h.Daily)
		reports.GET("/category", h.Category)
		reports.GET("/profit", h.Profit)
		reports.GET("/shipping-costs", h.ShippingCosts)
	}
}

// yearMonthQuery is the common report period selector
type yearMonthQuery struct {
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// Monthly returns per-store sales totals for one month
func (h *ReportHandler) Monthly(c *gin.Context) {
	var q yearMonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.MonthlySales(c.Request.Context(), q.Year, time.Month(q.Month))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// SupplierSummary returns per-supplier purchase totals for one month
func (h *ReportHandler) SupplierSummary(c *gin.Context) {
	var q yearMonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.SupplierSummary(c.Request.Context(), q.Year, time.Month(q.Month))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// PurchaseDelivery returns the daily purchase versus delivery
// comparison for one month
func (h *ReportHandler) PurchaseDelivery(c *gin.Context) {
	var q yearMonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.PurchaseDeliveryComparison(c.Request.Context(), q.Year, time.Month(q.Month))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Ranking returns the best selling items for one month
func (h *ReportHandler) Ranking(c *gin.Context) {
	var q struct {
		yearMonthQuery
		Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.ItemRanking(c.Request.Context(), q.Year, time.Month(q.Month), q.Limit)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Daily returns day-by-day sales for one month, optionally one store
func (h *ReportHandler) Daily(c *gin.Context) {
	var q struct {
		yearMonthQuery
		StoreID *uint `form:"store_id"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.DailySales(c.Request.Context(), q.Year, time.Month(q.Month), q.StoreID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Category returns sales grouped by item category for one month
func (h *ReportHandler) Category(c *gin.Context) {
	var q yearMonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.CategorySales(c.Request.Context(), q.Year, time.Month(q.Month))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Profit returns the monthly profit statement, optionally for one store
func (h *ReportHandler) Profit(c *gin.Context) {
	var q struct {
		yearMonthQuery
		StoreID *uint `form:"store_id"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.ProfitReport(c.Request.Context(), q.Year, time.Month(q.Month), q.StoreID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// ShippingCosts itemizes the month's transport expenses
func (h *ReportHandler) ShippingCosts(c *gin.Context) {
	var q yearMonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.ShippingCosts(c.Request.Context(), q.Year, time.Month(q.Month))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}
