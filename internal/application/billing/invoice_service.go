package billing

import (
	"context"
	"time"

	"github.com/flower8718/backend/internal/domain/billing"
	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/flower8718/backend/internal/domain/partner"
	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"

	appsettings "github.com/flower8718/backend/internal/application/settings"
)

// InvoiceService generates and manages invoices. Generation snapshots
// the period's transfers into immutable line items, splits them into
// the 10% and 8% tax brackets, and rolls the previous balance forward.
type InvoiceService struct {
	storeRepo          partner.StoreRepository
	transferRepo       inventory.TransferRepository
	supplyTransferRepo inventory.SupplyTransferRepository
	itemRepo           catalog.ItemRepository
	supplyRepo         catalog.SupplyRepository
	invoiceRepo        billing.InvoiceRepository
	paymentRepo        billing.PaymentRepository
	settingsService    *appsettings.SettingsService
	txScope            TransactionScope
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	storeRepo partner.StoreRepository,
	transferRepo inventory.TransferRepository,
	supplyTransferRepo inventory.SupplyTransferRepository,
	itemRepo catalog.ItemRepository,
	supplyRepo catalog.SupplyRepository,
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	settingsService *appsettings.SettingsService,
	txScope TransactionScope,
) *InvoiceService {
	return &InvoiceService{
		storeRepo:          storeRepo,
		transferRepo:       transferRepo,
		supplyTransferRepo: supplyTransferRepo,
		itemRepo:           itemRepo,
		supplyRepo:         supplyRepo,
		invoiceRepo:        invoiceRepo,
		paymentRepo:        paymentRepo,
		settingsService:    settingsService,
		txScope:            txScope,
	}
}

// invoiceLines holds classified snapshot lines and bracket subtotals.
type invoiceLines struct {
	items      []billing.InvoiceItem
	subtotal10 decimal.Decimal
	subtotal08 decimal.Decimal
}

// Generate creates a draft invoice for a store and period. The
// period's transfers become snapshot lines; an empty period is an
// error, not an empty invoice.
func (s *InvoiceService) Generate(ctx context.Context, req GenerateInvoiceRequest) (*InvoiceResponse, error) {
	if _, err := s.storeRepo.FindByID(ctx, req.StoreID); err != nil {
		return nil, err
	}

	lines, err := s.collectLines(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(lines.items) == 0 {
		return nil, shared.ErrNoTransfersInPeriod
	}

	policy, err := s.settingsService.RoundingPolicy(ctx)
	if err != nil {
		return nil, err
	}
	format, err := s.settingsService.InvoiceNumberFormat(ctx)
	if err != nil {
		return nil, err
	}

	prevInvoice, prevPayment, carryover, err := s.resolveCarryover(ctx, req)
	if err != nil {
		return nil, err
	}

	var invoice *billing.Invoice
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		count, err := repos.InvoiceRepo().CountByStoreAndPeriodEnd(ctx, req.StoreID, req.PeriodEnd)
		if err != nil {
			return err
		}
		number := billing.FormatInvoiceNumber(format, req.PeriodEnd, int(count)+1)

		invoice, err = billing.NewInvoice(req.StoreID, number, req.InvoiceType, req.PeriodStart, req.PeriodEnd,
			carryover, prevInvoice, prevPayment)
		if err != nil {
			return err
		}
		invoice.SetBracketTotals(lines.subtotal10, lines.subtotal08, policy)
		invoice.Items = lines.items

		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// collectLines snapshots the period's transfers into invoice lines and
// accumulates per-bracket subtotals.
func (s *InvoiceService) collectLines(ctx context.Context, req GenerateInvoiceRequest) (*invoiceLines, error) {
	lines := &invoiceLines{}

	switch req.InvoiceType {
	case billing.TypeSupply:
		transfers, err := s.supplyTransferRepo.FindByStoreAndPeriod(ctx, req.StoreID, req.PeriodStart, req.PeriodEnd)
		if err != nil {
			return nil, err
		}
		for i := range transfers {
			t := &transfers[i]
			supply, err := s.supplyRepo.FindByID(ctx, t.SupplyID)
			if err != nil {
				return nil, err
			}
			lines.add(nil, supply.Name, t.Quantity, t.UnitPrice, supply.TaxRate, t.TransferredAt)
		}
	default:
		transfers, err := s.transferRepo.FindByStoreAndPeriod(ctx, req.StoreID, req.PeriodStart, req.PeriodEnd)
		if err != nil {
			return nil, err
		}
		for i := range transfers {
			t := &transfers[i]
			item, err := s.itemRepo.FindByID(ctx, t.ItemID)
			if err != nil {
				return nil, err
			}
			name := item.Name
			if item.Variety != "" {
				name = item.Name + " " + item.Variety
			}
			itemID := t.ItemID
			lines.add(&itemID, name, t.Quantity, t.UnitPrice, item.TaxRate, t.TransferredAt)
		}
	}
	return lines, nil
}

// add appends one snapshot line and routes its subtotal to a bracket.
// Standard-rate lines feed the 10% subtotal; any other rate lands in
// the reduced subtotal, and the line keeps the item's own rate.
func (l *invoiceLines) add(itemID *uint, name string, quantity int, unitPrice, taxRate decimal.Decimal, transferredAt time.Time) {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if taxRate.Equal(catalog.TaxRateStandard) {
		l.subtotal10 = l.subtotal10.Add(subtotal)
	} else {
		l.subtotal08 = l.subtotal08.Add(subtotal)
	}

	l.items = append(l.items, billing.InvoiceItem{
		ItemID:        itemID,
		ItemName:      name,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		Subtotal:      subtotal,
		TaxRate:       taxRate,
		TransferredAt: transferredAt,
	})
}

// resolveCarryover prefers amounts stated in the request. When none
// are given, the store's most recent invoice before the period and the
// payments against it supply them.
func (s *InvoiceService) resolveCarryover(ctx context.Context, req GenerateInvoiceRequest) (prevInvoice, prevPayment, carryover decimal.Decimal, err error) {
	if req.PrevInvoiceAmount == nil && req.PrevPaymentAmount == nil && req.CarryoverAmount == nil {
		prevInvoice, prevPayment, err = s.previousBalance(ctx, req.StoreID, req.PeriodStart)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, decimal.Decimal{}, err
		}
		return prevInvoice, prevPayment, prevInvoice.Sub(prevPayment), nil
	}

	prevInvoice, prevPayment = decimal.Zero, decimal.Zero
	if req.PrevInvoiceAmount != nil {
		prevInvoice = *req.PrevInvoiceAmount
	}
	if req.PrevPaymentAmount != nil {
		prevPayment = *req.PrevPaymentAmount
	}
	carryover = prevInvoice.Sub(prevPayment)
	if req.CarryoverAmount != nil {
		carryover = *req.CarryoverAmount
	}
	return prevInvoice, prevPayment, carryover, nil
}

// previousBalance finds the store's most recent invoice before the new
// period and the payments recorded against it.
func (s *InvoiceService) previousBalance(ctx context.Context, storeID uint, periodStart time.Time) (prevInvoice, prevPayment decimal.Decimal, err error) {
	before := periodStart
	filter := billing.InvoiceFilter{
		Filter:   shared.Filter{Limit: 1, OrderBy: "period_end desc"},
		StoreID:  &storeID,
		PeriodTo: &before,
	}
	previous, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	if len(previous) == 0 {
		return decimal.Zero, decimal.Zero, nil
	}

	prev := previous[0]
	sums, err := s.paymentRepo.SumByInvoice(ctx, []uint{prev.ID})
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	paid := decimal.Zero
	if sum, ok := sums[prev.ID]; ok {
		paid = sum
	}
	return prev.TotalAmount, paid, nil
}

// Get returns an invoice with its line items
func (s *InvoiceService) Get(ctx context.Context, id uint) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// List returns invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, filter billing.InvoiceFilter) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *ToInvoiceResponse(&invoices[i])
	}
	return responses, nil
}

// UpdateStatus moves an invoice through its lifecycle
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uint, req UpdateInvoiceStatusRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.UpdateStatus(req.Status, time.Now()); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(invoice), nil
}

// Delete removes an invoice and its line items. Source transfers are
// untouched; regenerating the period produces a fresh invoice.
func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.invoiceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.invoiceRepo.Delete(ctx, id)
}
