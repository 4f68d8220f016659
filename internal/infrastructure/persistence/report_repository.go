package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/report"
)

// GormReportRepository runs read-only aggregations over the transfer
// tables. Transfer dates are stored as plain dates, so grouping by the
// column itself works on both Postgres and SQLite.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// SalesByStore aggregates sales, wholesale cost and margin per store
func (r *GormReportRepository) SalesByStore(ctx context.Context, from, to time.Time) ([]report.StoreSales, error) {
	var rows []report.StoreSales
	if err := r.db.WithContext(ctx).
		Table("transfers").
		Select("transfers.store_id AS store_id, stores.name AS store_name, COUNT(transfers.id) AS transfer_count, COALESCE(SUM(transfers.quantity), 0) AS quantity, COALESCE(SUM(transfers.quantity * transfers.unit_price), 0) AS sales_amount, COALESCE(SUM(transfers.quantity * transfers.wholesale_price), 0) AS purchase_amount, COALESCE(SUM(transfers.margin), 0) AS margin_amount").
		Joins("JOIN stores ON stores.id = transfers.store_id").
		Where("transfers.transferred_at >= ? AND transfers.transferred_at <= ?", from, to).
		Group("transfers.store_id, stores.name, stores.sort_order").
		Order("stores.sort_order asc, transfers.store_id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ItemRanking returns the best selling items by sales amount
func (r *GormReportRepository) ItemRanking(ctx context.Context, from, to time.Time, limit int) ([]report.ItemRanking, error) {
	var rows []report.ItemRanking
	if err := r.db.WithContext(ctx).
		Table("transfers").
		Select("transfers.item_id AS item_id, items.item_code AS item_code, items.name AS item_name, COALESCE(SUM(transfers.quantity), 0) AS quantity, COALESCE(SUM(transfers.quantity * transfers.unit_price), 0) AS sales_amount").
		Joins("JOIN items ON items.id = transfers.item_id").
		Where("transfers.transferred_at >= ? AND transfers.transferred_at <= ?", from, to).
		Group("transfers.item_id, items.item_code, items.name").
		Order("sales_amount desc").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DailySales aggregates sales per day, optionally for one store
func (r *GormReportRepository) DailySales(ctx context.Context, from, to time.Time, storeID *uint) ([]report.DailySales, error) {
	query := r.db.WithContext(ctx).
		Table("transfers").
		Select("transferred_at AS date, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(quantity * unit_price), 0) AS sales_amount").
		Where("transferred_at >= ? AND transferred_at <= ?", from, to)
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var rows []report.DailySales
	if err := query.
		Group("transferred_at").
		Order("transferred_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SalesByCategory aggregates sales per item category
func (r *GormReportRepository) SalesByCategory(ctx context.Context, from, to time.Time) ([]report.CategorySales, error) {
	var rows []report.CategorySales
	if err := r.db.WithContext(ctx).
		Table("transfers").
		Select("items.category AS category, COALESCE(SUM(transfers.quantity), 0) AS quantity, COALESCE(SUM(transfers.quantity * transfers.unit_price), 0) AS sales_amount").
		Joins("JOIN items ON items.id = transfers.item_id").
		Where("transfers.transferred_at >= ? AND transfers.transferred_at <= ?", from, to).
		Group("items.category").
		Order("sales_amount desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SalesTotals sums sales, cost, margin and quantity over the period
func (r *GormReportRepository) SalesTotals(ctx context.Context, from, to time.Time, storeID *uint) (*report.SalesTotals, error) {
	query := r.db.WithContext(ctx).
		Table("transfers").
		Select("COALESCE(SUM(quantity * unit_price), 0) AS sales_amount, COALESCE(SUM(quantity * wholesale_price), 0) AS cost_amount, COALESCE(SUM(margin), 0) AS margin_amount, COALESCE(SUM(quantity), 0) AS quantity").
		Where("transferred_at >= ? AND transferred_at <= ?", from, to)
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var totals report.SalesTotals
	if err := query.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

// PurchasesBySupplier aggregates arrivals per supplier. Suppliers
// without arrivals in the period still get a zero row.
func (r *GormReportRepository) PurchasesBySupplier(ctx context.Context, from, to time.Time) ([]report.SupplierPurchases, error) {
	var rows []report.SupplierPurchases
	if err := r.db.WithContext(ctx).
		Table("suppliers").
		Select("suppliers.id AS supplier_id, suppliers.name AS supplier_name, COUNT(arrivals.id) AS arrival_count, COALESCE(SUM(arrivals.quantity), 0) AS quantity, COALESCE(SUM(arrivals.quantity * arrivals.wholesale_price), 0) AS purchase_amount").
		Joins("LEFT JOIN arrivals ON arrivals.supplier_id = suppliers.id AND arrivals.arrived_at >= ? AND arrivals.arrived_at < ?", from, to.AddDate(0, 0, 1)).
		Group("suppliers.id, suppliers.name").
		Order("purchase_amount desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyPurchases aggregates arrivals per calendar day. Arrived-at is a
// timestamp, so the day is cut with DATE(), which both backends support.
func (r *GormReportRepository) DailyPurchases(ctx context.Context, from, to time.Time) ([]report.DailyPurchases, error) {
	var rows []report.DailyPurchases
	if err := r.db.WithContext(ctx).
		Table("arrivals").
		Select("DATE(arrived_at) AS date, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(quantity * wholesale_price), 0) AS amount").
		Where("arrived_at >= ? AND arrived_at < ?", from, to.AddDate(0, 0, 1)).
		Group("DATE(arrived_at)").
		Order("date asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// PurchaseTotal sums the wholesale value of all arrivals in the period
func (r *GormReportRepository) PurchaseTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Table("arrivals").
		Select("COALESCE(SUM(quantity * wholesale_price), 0) AS total").
		Where("arrived_at >= ? AND arrived_at < ?", from, to.AddDate(0, 0, 1)).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SupplyCostTotal sums the value of supply transfers in the period
func (r *GormReportRepository) SupplyCostTotal(ctx context.Context, from, to time.Time, storeID *uint) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Table("supply_transfers").
		Select("COALESCE(SUM(quantity * unit_price), 0) AS total").
		Where("transferred_at >= ? AND transferred_at <= ?", from, to)
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var row struct {
		Total decimal.Decimal
	}
	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

var _ report.ReportRepository = (*GormReportRepository)(nil)
