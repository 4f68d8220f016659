package billing

import (
	"time"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payment methods
const (
	MethodTransfer = "transfer"
	MethodCash     = "cash"
	MethodOther    = "other"
)

// Payment records money received against an invoice. Many payments may
// apply to one invoice. The amount is deliberately not checked for
// positivity: negative rows serve as refund/correction entries.
type Payment struct {
	shared.BaseEntity
	InvoiceID     uint            `gorm:"not null;index" json:"invoice_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"type:date;not null" json:"payment_date"`
	PaymentMethod string          `gorm:"size:50;default:transfer" json:"payment_method"`
	BankName      string          `gorm:"size:100" json:"bank_name"`
	Note          string          `gorm:"type:text" json:"note"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment row against an invoice.
func NewPayment(invoiceID uint, amount decimal.Decimal, date time.Time, method, bankName, note string) (*Payment, error) {
	if invoiceID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice ID is required")
	}
	if method == "" {
		method = MethodTransfer
	}

	return &Payment{
		InvoiceID:     invoiceID,
		Amount:        amount,
		PaymentDate:   date,
		PaymentMethod: method,
		BankName:      bankName,
		Note:          note,
	}, nil
}
