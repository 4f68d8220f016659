package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/billing"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID loads an invoice with its line items
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll lists invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	query := r.db.WithContext(ctx).Model(&billing.Invoice{})

	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.InvoiceType != "" {
		query = query.Where("invoice_type = ?", filter.InvoiceType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PeriodFrom != nil {
		query = query.Where("period_end >= ?", *filter.PeriodFrom)
	}
	if filter.PeriodTo != nil {
		query = query.Where("period_end < ?", *filter.PeriodTo)
	}
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "period_end desc, id desc"
	}

	var invoices []billing.Invoice
	if err := query.Order(orderBy).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// CountByStoreAndPeriodEnd counts existing invoices that share the same
// store and period end, used for sequence numbering
func (r *GormInvoiceRepository) CountByStoreAndPeriodEnd(ctx context.Context, storeID uint, periodEnd time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("store_id = ? AND period_end = ?", storeID, periodEnd).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByPeriodEndRange returns invoices whose period end falls in [from, to]
func (r *GormInvoiceRepository) FindByPeriodEndRange(ctx context.Context, from, to time.Time) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	if err := r.db.WithContext(ctx).
		Where("period_end >= ? AND period_end <= ?", from, to).
		Order("store_id asc, period_end asc, id asc").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice together with its line items
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Delete removes an invoice, its line items and its payments
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&billing.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&billing.InvoiceItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&billing.Invoice{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
