package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StoreSales aggregates one store's transfer activity over a period.
// PurchaseAmount is the wholesale value of the delivered quantity.
type StoreSales struct {
	StoreID        uint            `json:"store_id"`
	StoreName      string          `json:"store_name"`
	TransferCount  int             `json:"transfer_count"`
	Quantity       int             `json:"quantity"`
	SalesAmount    decimal.Decimal `json:"sales_amount"`
	PurchaseAmount decimal.Decimal `json:"purchase_amount"`
	MarginAmount   decimal.Decimal `json:"margin_amount"`
}

// SupplierPurchases aggregates one supplier's arrivals over a period.
type SupplierPurchases struct {
	SupplierID     uint            `json:"supplier_id"`
	SupplierName   string          `json:"supplier_name"`
	ArrivalCount   int             `json:"arrival_count"`
	Quantity       int             `json:"quantity"`
	PurchaseAmount decimal.Decimal `json:"purchase_amount"`
}

// DailyPurchases aggregates arrivals per calendar day. The date is a
// plain YYYY-MM-DD string so it can be merged with transfer days.
type DailyPurchases struct {
	Date     string          `json:"date"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// ItemRanking is one row of the item sales ranking.
type ItemRanking struct {
	ItemID      uint            `json:"item_id"`
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name"`
	Quantity    int             `json:"quantity"`
	SalesAmount decimal.Decimal `json:"sales_amount"`
}

// DailySales aggregates transfers per calendar day.
type DailySales struct {
	Date        time.Time       `json:"date"`
	Quantity    int             `json:"quantity"`
	SalesAmount decimal.Decimal `json:"sales_amount"`
}

// CategorySales aggregates transfers per item category.
type CategorySales struct {
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	SalesAmount decimal.Decimal `json:"sales_amount"`
}

// SalesTotals holds period-wide sales, wholesale cost and margin sums.
// Margin only covers transfers whose wholesale price was captured.
type SalesTotals struct {
	SalesAmount  decimal.Decimal `json:"sales_amount"`
	CostAmount   decimal.Decimal `json:"cost_amount"`
	MarginAmount decimal.Decimal `json:"margin_amount"`
	Quantity     int             `json:"quantity"`
}

// ReportRepository runs read-only aggregations over the transfer and
// expense tables. Date ranges are inclusive on both ends.
type ReportRepository interface {
	// SalesByStore aggregates sales and margin per store
	SalesByStore(ctx context.Context, from, to time.Time) ([]StoreSales, error)

	// ItemRanking returns the best selling items by sales amount
	ItemRanking(ctx context.Context, from, to time.Time, limit int) ([]ItemRanking, error)

	// DailySales aggregates sales per day, optionally for one store
	DailySales(ctx context.Context, from, to time.Time, storeID *uint) ([]DailySales, error)

	// SalesByCategory aggregates sales per item category
	SalesByCategory(ctx context.Context, from, to time.Time) ([]CategorySales, error)

	// SalesTotals sums sales, cost, margin and quantity over the
	// period, optionally for one store
	SalesTotals(ctx context.Context, from, to time.Time, storeID *uint) (*SalesTotals, error)

	// PurchasesBySupplier aggregates arrivals per supplier, largest
	// purchase amount first
	PurchasesBySupplier(ctx context.Context, from, to time.Time) ([]SupplierPurchases, error)

	// DailyPurchases aggregates arrivals per calendar day
	DailyPurchases(ctx context.Context, from, to time.Time) ([]DailyPurchases, error)

	// PurchaseTotal sums the wholesale value of all arrivals in the period
	PurchaseTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// SupplyCostTotal sums the value of supply transfers in the
	// period, optionally for one store
	SupplyCostTotal(ctx context.Context, from, to time.Time, storeID *uint) (decimal.Decimal, error)
}
