package billing

import (
	"context"
	"time"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	shared.Filter
	StoreID     *uint
	InvoiceType string
	Status      string
	PeriodFrom  *time.Time
	PeriodTo    *time.Time
}

// InvoiceRepository defines the persistence interface for invoices.
type InvoiceRepository interface {
	// FindByID loads an invoice with its line items.
	FindByID(ctx context.Context, id uint) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	// CountByStoreAndPeriodEnd counts existing invoices that share the
	// same store and period end, used for sequence numbering.
	CountByStoreAndPeriodEnd(ctx context.Context, storeID uint, periodEnd time.Time) (int64, error)
	// FindByPeriodEndRange returns invoices whose period end falls in
	// [from, to], for the monthly payment confirmation view.
	FindByPeriodEndRange(ctx context.Context, from, to time.Time) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uint) error
}

// PaymentRepository defines the persistence interface for payments.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*Payment, error)
	FindByInvoice(ctx context.Context, invoiceID uint) ([]Payment, error)
	// SumByInvoice totals payments per invoice for the given invoice IDs.
	SumByInvoice(ctx context.Context, invoiceIDs []uint) (map[uint]decimal.Decimal, error)
	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uint) error
}
