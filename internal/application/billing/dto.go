package billing

import (
	"time"

	"github.com/flower8718/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// GenerateInvoiceRequest asks for one invoice covering a store's
// transfers over a period. The carryover amounts are optional; when
// all three are omitted they are derived from the store's previous
// invoice and its payments.
type GenerateInvoiceRequest struct {
	StoreID           uint             `json:"store_id" binding:"required"`
	InvoiceType       string           `json:"invoice_type" binding:"required,oneof=flower supply contractor"`
	PeriodStart       time.Time        `json:"period_start" binding:"required" time_format:"2006-01-02"`
	PeriodEnd         time.Time        `json:"period_end" binding:"required" time_format:"2006-01-02"`
	PrevInvoiceAmount *decimal.Decimal `json:"prev_invoice_amount"`
	PrevPaymentAmount *decimal.Decimal `json:"prev_payment_amount"`
	CarryoverAmount   *decimal.Decimal `json:"carryover_amount"`
}

// UpdateInvoiceStatusRequest moves an invoice through its lifecycle
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft generated sent paid"`
}

// InvoiceItemResponse represents one snapshot line
type InvoiceItemResponse struct {
	ID            uint            `json:"id"`
	ItemID        *uint           `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TransferredAt time.Time       `json:"transferred_at"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                uint                  `json:"id"`
	StoreID           uint                  `json:"store_id"`
	InvoiceNumber     string                `json:"invoice_number"`
	InvoiceType       string                `json:"invoice_type"`
	PeriodStart       time.Time             `json:"period_start"`
	PeriodEnd         time.Time             `json:"period_end"`
	PrevInvoiceAmount decimal.Decimal       `json:"prev_invoice_amount"`
	PrevPaymentAmount decimal.Decimal       `json:"prev_payment_amount"`
	CarryoverAmount   decimal.Decimal       `json:"carryover_amount"`
	Subtotal10        decimal.Decimal       `json:"subtotal_10"`
	TaxAmount10       decimal.Decimal       `json:"tax_amount_10"`
	Subtotal08        decimal.Decimal       `json:"subtotal_08"`
	TaxAmount08       decimal.Decimal       `json:"tax_amount_08"`
	TotalAmount       decimal.Decimal       `json:"total_amount"`
	Status            string                `json:"status"`
	SentAt            *time.Time            `json:"sent_at"`
	Items             []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts an invoice to a response DTO
func ToInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, line := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:            line.ID,
			ItemID:        line.ItemID,
			ItemName:      line.ItemName,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			Subtotal:      line.Subtotal,
			TaxRate:       line.TaxRate,
			TransferredAt: line.TransferredAt,
		}
	}

	return &InvoiceResponse{
		ID:                inv.ID,
		StoreID:           inv.StoreID,
		InvoiceNumber:     inv.InvoiceNumber,
		InvoiceType:       inv.InvoiceType,
		PeriodStart:       inv.PeriodStart,
		PeriodEnd:         inv.PeriodEnd,
		PrevInvoiceAmount: inv.PrevInvoiceAmount,
		PrevPaymentAmount: inv.PrevPaymentAmount,
		CarryoverAmount:   inv.CarryoverAmount,
		Subtotal10:        inv.Subtotal10,
		TaxAmount10:       inv.TaxAmount10,
		Subtotal08:        inv.Subtotal08,
		TaxAmount08:       inv.TaxAmount08,
		TotalAmount:       inv.TotalAmount,
		Status:            inv.Status,
		SentAt:            inv.SentAt,
		Items:             items,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

// RecordPaymentRequest registers money received against an invoice
type RecordPaymentRequest struct {
	InvoiceID     uint            `json:"invoice_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate   *time.Time      `json:"payment_date" time_format:"2006-01-02"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=transfer cash other"`
	BankName      string          `json:"bank_name" binding:"max=100"`
	Note          string          `json:"note"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uint            `json:"id"`
	InvoiceID     uint            `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	BankName      string          `json:"bank_name"`
	Note          string          `json:"note"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a payment to a response DTO
func ToPaymentResponse(p *billing.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		BankName:      p.BankName,
		Note:          p.Note,
		CreatedAt:     p.CreatedAt,
	}
}

// ConfirmationRow is one line of the monthly payment confirmation view:
// an invoice, what has been paid against it, and the difference.
type ConfirmationRow struct {
	InvoiceID     uint            `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	StoreID       uint            `json:"store_id"`
	PeriodEnd     time.Time       `json:"period_end"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Difference    decimal.Decimal `json:"difference"`
	Status        string          `json:"status"`
}

// ConfirmationResponse is the monthly confirmation view: the invoice
// rows plus their grand totals.
type ConfirmationResponse struct {
	Rows            []ConfirmationRow `json:"rows"`
	TotalBilled     decimal.Decimal   `json:"total_billed"`
	TotalPaid       decimal.Decimal   `json:"total_paid"`
	TotalDifference decimal.Decimal   `json:"total_difference"`
}
