package billing

import (
	"time"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Invoice types
const (
	TypeFlower     = "flower"
	TypeSupply     = "supply"
	TypeContractor = "contractor"
)

// Invoice statuses. Transitions are advisory: the data model does not
// forbid moving a sent invoice back to draft.
const (
	StatusDraft     = "draft"
	StatusGenerated = "generated"
	StatusSent      = "sent"
	StatusPaid      = "paid"
)

// Invoice is an immutable billing snapshot of a store's transfer
// activity over a period, with split consumption-tax subtotals.
type Invoice struct {
	shared.BaseEntity
	StoreID           uint            `gorm:"not null;index" json:"store_id"`
	InvoiceNumber     string          `gorm:"size:50;not null" json:"invoice_number"`
	InvoiceType       string          `gorm:"size:20;not null" json:"invoice_type"`
	PeriodStart       time.Time       `gorm:"type:date;not null" json:"period_start"`
	PeriodEnd         time.Time       `gorm:"type:date;not null;index" json:"period_end"`
	PrevInvoiceAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"prev_invoice_amount"`
	PrevPaymentAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"prev_payment_amount"`
	CarryoverAmount   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"carryover_amount"`
	Subtotal10        decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"subtotal_10"`
	TaxAmount10       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"tax_amount_10"`
	Subtotal08        decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"subtotal_08"`
	TaxAmount08       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"tax_amount_08"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_amount"`
	Status            string          `gorm:"size:20;default:draft" json:"status"`
	SentAt            *time.Time      `json:"sent_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// ValidInvoiceType reports whether t is a known invoice type.
func ValidInvoiceType(t string) bool {
	switch t {
	case TypeFlower, TypeSupply, TypeContractor:
		return true
	}
	return false
}

// NewInvoice creates a draft invoice shell; subtotals are filled by the
// generation service after line items are classified.
func NewInvoice(storeID uint, number, invoiceType string, periodStart, periodEnd time.Time, carryover, prevInvoice, prevPayment decimal.Decimal) (*Invoice, error) {
	if !ValidInvoiceType(invoiceType) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice type must be flower, supply or contractor")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Period end must not precede period start")
	}

	return &Invoice{
		StoreID:           storeID,
		InvoiceNumber:     number,
		InvoiceType:       invoiceType,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		CarryoverAmount:   carryover,
		PrevInvoiceAmount: prevInvoice,
		PrevPaymentAmount: prevPayment,
		Status:            StatusDraft,
	}, nil
}

// SetBracketTotals computes per-bracket tax with the given policy and
// derives the grand total. Each bracket is rounded independently; the
// total is the sum of the rounded parts plus the carryover.
func (inv *Invoice) SetBracketTotals(subtotal10, subtotal08 decimal.Decimal, policy RoundingPolicy) {
	inv.Subtotal10 = subtotal10
	inv.Subtotal08 = subtotal08
	inv.TaxAmount10 = policy.Apply(subtotal10.Mul(decimal.NewFromFloat(0.10)))
	inv.TaxAmount08 = policy.Apply(subtotal08.Mul(decimal.NewFromFloat(0.08)))
	inv.TotalAmount = inv.Subtotal10.Add(inv.TaxAmount10).
		Add(inv.Subtotal08).Add(inv.TaxAmount08).
		Add(inv.CarryoverAmount)
}

// UpdateStatus moves the invoice to a new lifecycle status.
// Transitioning to sent stamps SentAt.
func (inv *Invoice) UpdateStatus(status string, now time.Time) error {
	switch status {
	case StatusDraft, StatusGenerated, StatusSent, StatusPaid:
	default:
		return shared.ErrInvalidStatus
	}
	inv.Status = status
	if status == StatusSent {
		inv.SentAt = &now
	}
	return nil
}

// InvoiceItem is a line-item snapshot of a transfer taken at invoice
// generation time. It is decoupled from the live Item and Transfer rows
// so later edits never retroactively alter an issued invoice.
type InvoiceItem struct {
	shared.BaseEntity
	InvoiceID     uint            `gorm:"not null;index" json:"invoice_id"`
	ItemID        *uint           `json:"item_id"` // nil for supply lines
	ItemName      string          `gorm:"size:200;not null" json:"item_name"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"tax_rate"`
	TransferredAt time.Time       `gorm:"type:date;not null" json:"transferred_at"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
