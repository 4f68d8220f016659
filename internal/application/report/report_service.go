package report

import (
	"context"
	"time"

	"github.com/flower8718/backend/internal/domain/finance"
	"github.com/flower8718/backend/internal/domain/report"
	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MonthlySalesResponse is the per-store delivery breakdown for one month
type MonthlySalesResponse struct {
	Year          int                 `json:"year"`
	Month         int                 `json:"month"`
	Stores        []report.StoreSales `json:"stores"`
	TotalSales    decimal.Decimal     `json:"total_sales"`
	TotalPurchase decimal.Decimal     `json:"total_purchase"`
	TotalMargin   decimal.Decimal     `json:"total_margin"`
}

// SupplierSummaryResponse is the per-supplier purchase breakdown for
// one month
type SupplierSummaryResponse struct {
	Year       int                        `json:"year"`
	Month      int                        `json:"month"`
	Suppliers  []report.SupplierPurchases `json:"suppliers"`
	GrandTotal decimal.Decimal            `json:"grand_total"`
}

// PurchaseDeliveryDay compares one day's arrivals against its transfers
type PurchaseDeliveryDay struct {
	Date             string          `json:"date"`
	PurchaseQuantity int             `json:"purchase_quantity"`
	PurchaseAmount   decimal.Decimal `json:"purchase_amount"`
	DeliveryQuantity int             `json:"delivery_quantity"`
	DeliveryAmount   decimal.Decimal `json:"delivery_amount"`
	Difference       decimal.Decimal `json:"difference"`
}

// PeriodTotals holds one ten-day bucket of the comparison
type PeriodTotals struct {
	Purchase decimal.Decimal `json:"purchase"`
	Delivery decimal.Decimal `json:"delivery"`
}

// PurchaseDeliveryResponse is the daily purchase versus delivery
// comparison with ten-day period subtotals
type PurchaseDeliveryResponse struct {
	Year            int                     `json:"year"`
	Month           int                     `json:"month"`
	Daily           []PurchaseDeliveryDay   `json:"daily"`
	PeriodTotals    map[string]PeriodTotals `json:"period_totals"`
	TotalPurchase   decimal.Decimal         `json:"total_purchase"`
	TotalDelivery   decimal.Decimal         `json:"total_delivery"`
	TotalDifference decimal.Decimal         `json:"total_difference"`
}

// ProfitSummary is the arithmetic core of the monthly profit statement
type ProfitSummary struct {
	TotalPurchase   decimal.Decimal `json:"total_purchase"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	GrossMargin     decimal.Decimal `json:"gross_margin"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	TotalSupplyCost decimal.Decimal `json:"total_supply_cost"`
	OperatingProfit decimal.Decimal `json:"operating_profit"`
	TotalQuantity   int             `json:"total_quantity"`
}

// ProfitReportResponse is the monthly profit statement: revenue minus
// wholesale cost, expenses by category and supply cost
type ProfitReportResponse struct {
	Year               int                        `json:"year"`
	Month              int                        `json:"month"`
	StoreID            *uint                      `json:"store_id"`
	Summary            ProfitSummary              `json:"summary"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expenses_by_category"`
	StoreBreakdown     []report.StoreSales        `json:"store_breakdown"`
}

// ShippingCostItem is one freight expense row in the shipping report
type ShippingCostItem struct {
	StoreID     *uint           `json:"store_id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	Note        string          `json:"note"`
}

// ShippingCostsResponse itemizes the month's freight expenses
type ShippingCostsResponse struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Items []ShippingCostItem `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// ReportService builds the analytics views over the arrival, transfer
// and expense ledgers
type ReportService struct {
	reportRepo  report.ReportRepository
	expenseRepo finance.ExpenseRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.ReportRepository, expenseRepo finance.ExpenseRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, expenseRepo: expenseRepo}
}

// monthWindow returns the inclusive first and last day of a month.
func monthWindow(year int, month time.Month) (time.Time, time.Time, error) {
	if month < time.January || month > time.December {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_INPUT", "Month must be between 1 and 12")
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to, nil
}

// MonthlySales aggregates each store's transfers for a month
func (s *ReportService) MonthlySales(ctx context.Context, year int, month time.Month) (*MonthlySalesResponse, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	stores, err := s.reportRepo.SalesByStore(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totalSales, totalPurchase, totalMargin := decimal.Zero, decimal.Zero, decimal.Zero
	for _, row := range stores {
		totalSales = totalSales.Add(row.SalesAmount)
		totalPurchase = totalPurchase.Add(row.PurchaseAmount)
		totalMargin = totalMargin.Add(row.MarginAmount)
	}

	return &MonthlySalesResponse{
		Year:          year,
		Month:         int(month),
		Stores:        stores,
		TotalSales:    totalSales,
		TotalPurchase: totalPurchase,
		TotalMargin:   totalMargin,
	}, nil
}

// SupplierSummary aggregates each supplier's arrivals for a month
func (s *ReportService) SupplierSummary(ctx context.Context, year int, month time.Month) (*SupplierSummaryResponse, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	suppliers, err := s.reportRepo.PurchasesBySupplier(ctx, from, to)
	if err != nil {
		return nil, err
	}

	grandTotal := decimal.Zero
	for _, row := range suppliers {
		grandTotal = grandTotal.Add(row.PurchaseAmount)
	}

	return &SupplierSummaryResponse{
		Year:       year,
		Month:      int(month),
		Suppliers:  suppliers,
		GrandTotal: grandTotal,
	}, nil
}

// periodKey buckets a day of month into the three ten-day periods.
func periodKey(day int) string {
	switch {
	case day <= 10:
		return "1-10"
	case day <= 20:
		return "11-20"
	default:
		return "21-end"
	}
}

// PurchaseDeliveryComparison merges daily arrival and transfer totals
// into one timeline with ten-day period subtotals
func (s *ReportService) PurchaseDeliveryComparison(ctx context.Context, year int, month time.Month) (*PurchaseDeliveryResponse, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	purchases, err := s.reportRepo.DailyPurchases(ctx, from, to)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.reportRepo.DailySales(ctx, from, to, nil)
	if err != nil {
		return nil, err
	}

	type daySide struct {
		quantity int
		amount   decimal.Decimal
	}
	purchaseByDay := make(map[string]daySide, len(purchases))
	for _, row := range purchases {
		purchaseByDay[row.Date] = daySide{quantity: row.Quantity, amount: row.Amount}
	}
	deliveryByDay := make(map[string]daySide, len(deliveries))
	for _, row := range deliveries {
		deliveryByDay[row.Date.Format("2006-01-02")] = daySide{quantity: row.Quantity, amount: row.SalesAmount}
	}

	periods := map[string]PeriodTotals{
		"1-10":   {Purchase: decimal.Zero, Delivery: decimal.Zero},
		"11-20":  {Purchase: decimal.Zero, Delivery: decimal.Zero},
		"21-end": {Purchase: decimal.Zero, Delivery: decimal.Zero},
	}

	daily := make([]PurchaseDeliveryDay, 0, to.Day())
	totalPurchase, totalDelivery := decimal.Zero, decimal.Zero
	for day := 1; day <= to.Day(); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		purchase := purchaseByDay[date]
		delivery := deliveryByDay[date]
		if purchase.quantity == 0 && delivery.quantity == 0 {
			continue
		}

		key := periodKey(day)
		bucket := periods[key]
		bucket.Purchase = bucket.Purchase.Add(purchase.amount)
		bucket.Delivery = bucket.Delivery.Add(delivery.amount)
		periods[key] = bucket

		totalPurchase = totalPurchase.Add(purchase.amount)
		totalDelivery = totalDelivery.Add(delivery.amount)

		daily = append(daily, PurchaseDeliveryDay{
			Date:             date,
			PurchaseQuantity: purchase.quantity,
			PurchaseAmount:   purchase.amount,
			DeliveryQuantity: delivery.quantity,
			DeliveryAmount:   delivery.amount,
			Difference:       delivery.amount.Sub(purchase.amount),
		})
	}

	return &PurchaseDeliveryResponse{
		Year:            year,
		Month:           int(month),
		Daily:           daily,
		PeriodTotals:    periods,
		TotalPurchase:   totalPurchase,
		TotalDelivery:   totalDelivery,
		TotalDifference: totalDelivery.Sub(totalPurchase),
	}, nil
}

// ItemRanking returns the month's best selling items
func (s *ReportService) ItemRanking(ctx context.Context, year int, month time.Month, limit int) ([]report.ItemRanking, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.reportRepo.ItemRanking(ctx, from, to, limit)
}

// DailySales returns the month's per-day sales trend
func (s *ReportService) DailySales(ctx context.Context, year int, month time.Month, storeID *uint) ([]report.DailySales, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.DailySales(ctx, from, to, storeID)
}

// CategorySales returns the month's sales per item category
func (s *ReportService) CategorySales(ctx context.Context, year int, month time.Month) ([]report.CategorySales, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.SalesByCategory(ctx, from, to)
}

// ProfitReport builds the monthly profit statement. Purchases come
// from the arrival ledger and are warehouse-wide; revenue, expenses
// and supply cost narrow to one store when requested.
func (s *ReportService) ProfitReport(ctx context.Context, year int, month time.Month, storeID *uint) (*ProfitReportResponse, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	totalPurchase, err := s.reportRepo.PurchaseTotal(ctx, from, to)
	if err != nil {
		return nil, err
	}
	totals, err := s.reportRepo.SalesTotals(ctx, from, to, storeID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.SumByCategory(ctx, from, to, storeID)
	if err != nil {
		return nil, err
	}
	supplyCost, err := s.reportRepo.SupplyCostTotal(ctx, from, to, storeID)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.reportRepo.SalesByStore(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totalExpenses := decimal.Zero
	for _, amount := range expenses {
		totalExpenses = totalExpenses.Add(amount)
	}

	grossProfit := totals.SalesAmount.Sub(totals.CostAmount)
	grossMargin := decimal.Zero
	if totals.SalesAmount.IsPositive() {
		grossMargin = grossProfit.Div(totals.SalesAmount).Mul(decimal.NewFromInt(100)).Round(1)
	}

	return &ProfitReportResponse{
		Year:    year,
		Month:   int(month),
		StoreID: storeID,
		Summary: ProfitSummary{
			TotalPurchase:   totalPurchase,
			TotalRevenue:    totals.SalesAmount,
			TotalCost:       totals.CostAmount,
			GrossProfit:     grossProfit,
			GrossMargin:     grossMargin,
			TotalExpenses:   totalExpenses,
			TotalSupplyCost: supplyCost,
			OperatingProfit: grossProfit.Sub(totalExpenses).Sub(supplyCost),
			TotalQuantity:   totals.Quantity,
		},
		ExpensesByCategory: expenses,
		StoreBreakdown:     breakdown,
	}, nil
}

// ShippingCosts itemizes the month's transport expenses
func (s *ReportService) ShippingCosts(ctx context.Context, year int, month time.Month) (*ShippingCostsResponse, error) {
	from, to, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.FindAll(ctx, finance.ExpenseFilter{
		Category: finance.CategoryTransport,
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, err
	}

	items := make([]ShippingCostItem, len(expenses))
	total := decimal.Zero
	for i, expense := range expenses {
		total = total.Add(expense.Amount)
		items[i] = ShippingCostItem{
			StoreID:     expense.StoreID,
			Category:    expense.Category,
			Description: expense.Description,
			Amount:      expense.Amount,
			ExpenseDate: expense.ExpenseDate,
			Note:        expense.Note,
		}
	}

	return &ShippingCostsResponse{
		Year:  year,
		Month: int(month),
		Items: items,
		Total: total,
	}, nil
}
