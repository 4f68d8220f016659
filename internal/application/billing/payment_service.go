package billing

import (
	"context"
	"time"

	"github.com/flower8718/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// PaymentService records payments against invoices and builds the
// monthly payment confirmation view.
type PaymentService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(invoiceRepo billing.InvoiceRepository, paymentRepo billing.PaymentRepository) *PaymentService {
	return &PaymentService{invoiceRepo: invoiceRepo, paymentRepo: paymentRepo}
}

// Record registers a payment row against an invoice. The invoice
// status is never touched here; marking an invoice paid is an explicit
// status update.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	if _, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID); err != nil {
		return nil, err
	}

	date := time.Now()
	if req.PaymentDate != nil {
		date = *req.PaymentDate
	}

	payment, err := billing.NewPayment(req.InvoiceID, req.Amount, date, req.PaymentMethod, req.BankName, req.Note)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return ToPaymentResponse(payment), nil
}

// ListByInvoice returns payments recorded against an invoice
func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID uint) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = *ToPaymentResponse(&payments[i])
	}
	return responses, nil
}

// Delete removes a payment row
func (s *PaymentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.paymentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.paymentRepo.Delete(ctx, id)
}

// Confirmation builds the monthly confirmation view: every invoice
// whose period ends in the given month, with paid totals, the
// outstanding difference, and grand totals across the month.
func (s *PaymentService) Confirmation(ctx context.Context, year int, month time.Month) (*ConfirmationResponse, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	resp := &ConfirmationResponse{
		Rows:            []ConfirmationRow{},
		TotalBilled:     decimal.Zero,
		TotalPaid:       decimal.Zero,
		TotalDifference: decimal.Zero,
	}

	invoices, err := s.invoiceRepo.FindByPeriodEndRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return resp, nil
	}

	ids := make([]uint, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].ID
	}
	sums, err := s.paymentRepo.SumByInvoice(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range invoices {
		inv := &invoices[i]
		paid := decimal.Zero
		if sum, ok := sums[inv.ID]; ok {
			paid = sum
		}
		diff := inv.TotalAmount.Sub(paid)
		resp.Rows = append(resp.Rows, ConfirmationRow{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			StoreID:       inv.StoreID,
			PeriodEnd:     inv.PeriodEnd,
			TotalAmount:   inv.TotalAmount,
			PaidAmount:    paid,
			Difference:    diff,
			Status:        inv.Status,
		})
		resp.TotalBilled = resp.TotalBilled.Add(inv.TotalAmount)
		resp.TotalPaid = resp.TotalPaid.Add(paid)
		resp.TotalDifference = resp.TotalDifference.Add(diff)
	}
	return resp, nil
}
