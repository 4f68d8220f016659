package billing

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flower8718/backend/internal/domain/billing"
	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/flower8718/backend/internal/domain/partner"
	"github.com/flower8718/backend/internal/domain/settings"
	"github.com/flower8718/backend/internal/domain/shared"

	appsettings "github.com/flower8718/backend/internal/application/settings"
)

type fakeBillingStoreRepo struct {
	stores map[uint]*partner.Store
}

func (r *fakeBillingStoreRepo) FindByID(_ context.Context, id uint) (*partner.Store, error) {
	if store, ok := r.stores[id]; ok {
		copied := *store
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeBillingStoreRepo) FindActive(_ context.Context) ([]partner.Store, error) {
	var out []partner.Store
	for _, store := range r.stores {
		if store.IsActive {
			out = append(out, *store)
		}
	}
	return out, nil
}

func (r *fakeBillingStoreRepo) FindAll(_ context.Context) ([]partner.Store, error) {
	var out []partner.Store
	for _, store := range r.stores {
		out = append(out, *store)
	}
	return out, nil
}

func (r *fakeBillingStoreRepo) Save(_ context.Context, store *partner.Store) error {
	copied := *store
	r.stores[store.ID] = &copied
	return nil
}

func (r *fakeBillingStoreRepo) UpdateSortOrders(_ context.Context, _ map[uint]int) error {
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[uint]*billing.Invoice
	nextID   uint
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uint]*billing.Invoice), nextID: 1}
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id uint) (*billing.Invoice, error) {
	if inv, ok := r.invoices[id]; ok {
		copied := *inv
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInvoiceRepo) FindAll(_ context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	var out []billing.Invoice
	for _, inv := range r.invoices {
		if filter.StoreID != nil && inv.StoreID != *filter.StoreID {
			continue
		}
		if filter.InvoiceType != "" && inv.InvoiceType != filter.InvoiceType {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if filter.PeriodFrom != nil && inv.PeriodEnd.Before(*filter.PeriodFrom) {
			continue
		}
		if filter.PeriodTo != nil && !inv.PeriodEnd.Before(*filter.PeriodTo) {
			continue
		}
		out = append(out, *inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodEnd.After(out[j].PeriodEnd) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeInvoiceRepo) CountByStoreAndPeriodEnd(_ context.Context, storeID uint, periodEnd time.Time) (int64, error) {
	var count int64
	for _, inv := range r.invoices {
		if inv.StoreID == storeID && inv.PeriodEnd.Equal(periodEnd) {
			count++
		}
	}
	return count, nil
}

func (r *fakeInvoiceRepo) FindByPeriodEndRange(_ context.Context, from, to time.Time) ([]billing.Invoice, error) {
	var out []billing.Invoice
	for _, inv := range r.invoices {
		if inv.PeriodEnd.Before(from) || inv.PeriodEnd.After(to) {
			continue
		}
		out = append(out, *inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeInvoiceRepo) Save(_ context.Context, invoice *billing.Invoice) error {
	if invoice.ID == 0 {
		invoice.ID = r.nextID
		r.nextID++
	}
	copied := *invoice
	r.invoices[invoice.ID] = &copied
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id uint) error {
	delete(r.invoices, id)
	return nil
}

type fakePaymentRepo struct {
	payments map[uint]*billing.Payment
	nextID   uint
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uint]*billing.Payment), nextID: 1}
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uint) (*billing.Payment, error) {
	if p, ok := r.payments[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePaymentRepo) FindByInvoice(_ context.Context, invoiceID uint) ([]billing.Payment, error) {
	var out []billing.Payment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePaymentRepo) SumByInvoice(_ context.Context, invoiceIDs []uint) (map[uint]decimal.Decimal, error) {
	wanted := make(map[uint]bool, len(invoiceIDs))
	for _, id := range invoiceIDs {
		wanted[id] = true
	}
	sums := make(map[uint]decimal.Decimal)
	for _, p := range r.payments {
		if wanted[p.InvoiceID] {
			sums[p.InvoiceID] = sums[p.InvoiceID].Add(p.Amount)
		}
	}
	return sums, nil
}

func (r *fakePaymentRepo) Save(_ context.Context, payment *billing.Payment) error {
	if payment.ID == 0 {
		payment.ID = r.nextID
		r.nextID++
	}
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, id uint) error {
	delete(r.payments, id)
	return nil
}

type fakePeriodTransferRepo struct {
	transfers []inventory.Transfer
}

func (r *fakePeriodTransferRepo) FindByID(_ context.Context, id uint) (*inventory.Transfer, error) {
	for i := range r.transfers {
		if r.transfers[i].ID == id {
			copied := r.transfers[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePeriodTransferRepo) FindAll(_ context.Context, _ inventory.TransferFilter) ([]inventory.Transfer, error) {
	return append([]inventory.Transfer(nil), r.transfers...), nil
}

func (r *fakePeriodTransferRepo) FindByStoreAndPeriod(_ context.Context, storeID uint, from, to time.Time) ([]inventory.Transfer, error) {
	var out []inventory.Transfer
	for _, t := range r.transfers {
		if t.StoreID != storeID || t.TransferredAt.Before(from) || t.TransferredAt.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakePeriodTransferRepo) Save(_ context.Context, transfer *inventory.Transfer) error {
	r.transfers = append(r.transfers, *transfer)
	return nil
}

type fakePeriodSupplyTransferRepo struct {
	transfers []inventory.SupplyTransfer
}

func (r *fakePeriodSupplyTransferRepo) FindAll(_ context.Context, _ inventory.SupplyTransferFilter) ([]inventory.SupplyTransfer, error) {
	return append([]inventory.SupplyTransfer(nil), r.transfers...), nil
}

func (r *fakePeriodSupplyTransferRepo) FindByStoreAndPeriod(_ context.Context, storeID uint, from, to time.Time) ([]inventory.SupplyTransfer, error) {
	var out []inventory.SupplyTransfer
	for _, t := range r.transfers {
		if t.StoreID != storeID || t.TransferredAt.Before(from) || t.TransferredAt.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakePeriodSupplyTransferRepo) Save(_ context.Context, transfer *inventory.SupplyTransfer) error {
	r.transfers = append(r.transfers, *transfer)
	return nil
}

type fakeCatalogItemRepo struct {
	items map[uint]*catalog.Item
}

func (r *fakeCatalogItemRepo) FindByID(_ context.Context, id uint) (*catalog.Item, error) {
	if item, ok := r.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCatalogItemRepo) FindByCode(_ context.Context, code string) (*catalog.Item, error) {
	for _, item := range r.items {
		if item.ItemCode == code {
			copied := *item
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCatalogItemRepo) FindByNameAndVariety(_ context.Context, name, variety string) (*catalog.Item, error) {
	for _, item := range r.items {
		if item.Name == name && (variety == "" || item.Variety == variety) {
			copied := *item
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCatalogItemRepo) FindAll(_ context.Context, _ catalog.ItemFilter) ([]catalog.Item, error) {
	var out []catalog.Item
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeCatalogItemRepo) AllCodes(_ context.Context) ([]string, error) {
	var codes []string
	for _, item := range r.items {
		codes = append(codes, item.ItemCode)
	}
	return codes, nil
}

func (r *fakeCatalogItemRepo) Save(_ context.Context, item *catalog.Item) error {
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeCatalogItemRepo) UpdateSortOrders(_ context.Context, _ map[uint]int) error {
	return nil
}

type fakeCatalogSupplyRepo struct {
	supplies map[uint]*catalog.Supply
}

func (r *fakeCatalogSupplyRepo) FindByID(_ context.Context, id uint) (*catalog.Supply, error) {
	if supply, ok := r.supplies[id]; ok {
		copied := *supply
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCatalogSupplyRepo) FindAll(_ context.Context, _ bool) ([]catalog.Supply, error) {
	var out []catalog.Supply
	for _, supply := range r.supplies {
		out = append(out, *supply)
	}
	return out, nil
}

func (r *fakeCatalogSupplyRepo) Save(_ context.Context, supply *catalog.Supply) error {
	copied := *supply
	r.supplies[supply.ID] = &copied
	return nil
}

func (r *fakeCatalogSupplyRepo) UpdateSortOrders(_ context.Context, _ map[uint]int) error {
	return nil
}

type fakeSettingRepo struct {
	values map[string]string
}

func (r *fakeSettingRepo) FindByKey(_ context.Context, key string) (*settings.Setting, error) {
	if value, ok := r.values[key]; ok {
		return &settings.Setting{Key: key, Value: value}, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSettingRepo) FindAll(_ context.Context) ([]settings.Setting, error) {
	var out []settings.Setting
	for key, value := range r.values {
		out = append(out, settings.Setting{Key: key, Value: value})
	}
	return out, nil
}

func (r *fakeSettingRepo) Save(_ context.Context, setting *settings.Setting) error {
	r.values[setting.Key] = setting.Value
	return nil
}

type billingFixture struct {
	storeRepo          *fakeBillingStoreRepo
	invoiceRepo        *fakeInvoiceRepo
	paymentRepo        *fakePaymentRepo
	transferRepo       *fakePeriodTransferRepo
	supplyTransferRepo *fakePeriodSupplyTransferRepo
	itemRepo           *fakeCatalogItemRepo
	supplyRepo         *fakeCatalogSupplyRepo
	settingRepo        *fakeSettingRepo
	invoices           *InvoiceService
	payments           *PaymentService
}

func newBillingFixture() *billingFixture {
	f := &billingFixture{
		storeRepo:          &fakeBillingStoreRepo{stores: make(map[uint]*partner.Store)},
		invoiceRepo:        newFakeInvoiceRepo(),
		paymentRepo:        newFakePaymentRepo(),
		transferRepo:       &fakePeriodTransferRepo{},
		supplyTransferRepo: &fakePeriodSupplyTransferRepo{},
		itemRepo:           &fakeCatalogItemRepo{items: make(map[uint]*catalog.Item)},
		supplyRepo:         &fakeCatalogSupplyRepo{supplies: make(map[uint]*catalog.Supply)},
		settingRepo:        &fakeSettingRepo{values: make(map[string]string)},
	}
	honten := &partner.Store{Name: "本店", IsActive: true}
	honten.ID = 1
	f.storeRepo.stores[1] = honten
	shiten := &partner.Store{Name: "駅前支店", IsActive: true}
	shiten.ID = 2
	f.storeRepo.stores[2] = shiten

	settingsService := appsettings.NewSettingsService(f.settingRepo)
	scope := NewNoOpTransactionScope(f.invoiceRepo, f.paymentRepo)
	f.invoices = NewInvoiceService(f.storeRepo, f.transferRepo, f.supplyTransferRepo, f.itemRepo, f.supplyRepo,
		f.invoiceRepo, f.paymentRepo, settingsService, scope)
	f.payments = NewPaymentService(f.invoiceRepo, f.paymentRepo)
	return f
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (f *billingFixture) addItem(id uint, name, variety string, taxRate decimal.Decimal) {
	item := &catalog.Item{Name: name, Variety: variety, TaxRate: taxRate, IsActive: true}
	item.ID = id
	f.itemRepo.items[id] = item
}

func (f *billingFixture) addTransfer(storeID, itemID uint, quantity int, unitPrice string, day time.Time) {
	f.transferRepo.transfers = append(f.transferRepo.transfers, inventory.Transfer{
		StoreID:       storeID,
		ItemID:        itemID,
		Quantity:      quantity,
		UnitPrice:     decimal.RequireFromString(unitPrice),
		TransferredAt: day,
	})
}

func TestGenerateInvoice(t *testing.T) {
	ctx := context.Background()
	periodStart := date(2026, time.June, 1)
	periodEnd := date(2026, time.June, 30)

	t.Run("splits lines into tax brackets and rounds each independently", func(t *testing.T) {
		f := newBillingFixture()
		f.addItem(1, "バラ", "アバランチェ", catalog.TaxRateStandard)
		f.addItem(2, "仏花セット", "", catalog.TaxRateReduced)
		f.addTransfer(1, 1, 10, "305", date(2026, time.June, 5))
		f.addTransfer(1, 2, 4, "501", date(2026, time.June, 12))

		resp, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:     1,
			InvoiceType: billing.TypeFlower,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		require.NoError(t, err)

		assert.Equal(t, "2026-06-30-001", resp.InvoiceNumber)
		assert.Equal(t, billing.StatusDraft, resp.Status)
		assert.True(t, resp.Subtotal10.Equal(decimal.RequireFromString("3050")))
		assert.True(t, resp.TaxAmount10.Equal(decimal.RequireFromString("305")))
		assert.True(t, resp.Subtotal08.Equal(decimal.RequireFromString("2004")))
		// 2004 * 0.08 = 160.32, floored by the default policy
		assert.True(t, resp.TaxAmount08.Equal(decimal.RequireFromString("160")))
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("5519")))

		require.Len(t, resp.Items, 2)
		assert.Equal(t, "バラ アバランチェ", resp.Items[0].ItemName)
		assert.Equal(t, "仏花セット", resp.Items[1].ItemName)
		assert.True(t, resp.Items[0].Subtotal.Equal(decimal.RequireFromString("3050")))
	})

	t.Run("non-standard rates fall into the reduced subtotal keeping their own rate", func(t *testing.T) {
		f := newBillingFixture()
		f.addItem(1, "胡蝶蘭", "", decimal.RequireFromString("0.05"))
		f.addTransfer(1, 1, 2, "8000", date(2026, time.June, 20))

		resp, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:     1,
			InvoiceType: billing.TypeFlower,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		require.NoError(t, err)

		assert.True(t, resp.Subtotal10.IsZero())
		assert.True(t, resp.Subtotal08.Equal(decimal.RequireFromString("16000")))
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].TaxRate.Equal(decimal.RequireFromString("0.05")))
	})

	t.Run("a freshly generated invoice starts as a draft", func(t *testing.T) {
		f := newBillingFixture()
		f.addItem(1, "ガーベラ", "", catalog.TaxRateStandard)
		f.addTransfer(1, 1, 3, "120", date(2026, time.June, 2))

		resp, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:     1,
			InvoiceType: billing.TypeFlower,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		require.NoError(t, err)
		assert.Equal(t, billing.StatusDraft, resp.Status)

		stored, err := f.invoiceRepo.FindByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.StatusDraft, stored.Status)
	})

	t.Run("unknown store is rejected before generating", func(t *testing.T) {
		f := newBillingFixture()
		f.addItem(1, "ヒマワリ", "", catalog.TaxRateStandard)
		f.addTransfer(9, 1, 5, "90", date(2026, time.June, 14))

		_, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:     9,
			InvoiceType: billing.TypeFlower,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Empty(t, f.invoiceRepo.invoices)
	})

	t.Run("carries the previous unpaid balance forward", func(t *testing.T) {
		f := newBillingFixture()
		previous := &billing.Invoice{
			StoreID:       1,
			InvoiceNumber: "2026-05-31-001",
			InvoiceType:   billing.TypeFlower,
			PeriodStart:   date(2026, time.May, 1),
			PeriodEnd:     date(2026, time.May, 31),
			TotalAmount:   decimal.RequireFromString("10000"),
			Status:        billing.StatusSent,
		}
		require.NoError(t, f.invoiceRepo.Save(ctx, previous))
		require.NoError(t, f.paymentRepo.Save(ctx, &billing.Payment{
			InvoiceID: previous.ID,
			Amount:    decimal.RequireFromString("6000"),
		}))

		f.addItem(1, "カーネーション", "", catalog.TaxRateStandard)
		f.addTransfer(1, 1, 10, "100", date(2026, time.June, 3))

		resp, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:     1,
			InvoiceType: billing.TypeFlower,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		require.NoError(t, err)

		assert.True(t, resp.PrevInvoiceAmount.Equal(decimal.RequireFromString("10000")))
		assert.True(t, resp.PrevPaymentAmount.Equal(decimal.RequireFromString("6000")))
		assert.True(t, resp.CarryoverAmount.Equal(decimal.RequireFromString("4000")))
		// 1000 subtotal + 100 tax + 4000 carryover
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("5100")))
	})

	t.Run("explicit carryover amounts override the derivation", func(t *testing.T) {
		f := newBillingFixture()
		previous := &billing.Invoice{
			StoreID:       1,
			InvoiceNumber: "2026-05-31-001",
			InvoiceType:   billing.TypeFlower,
			PeriodStart:   date(2026, time.May, 1),
			PeriodEnd:     date(2026, time.May, 31),
			TotalAmount:   decimal.RequireFromString("10000"),
			Status:        billing.StatusSent,
		}
		require.NoError(t, f.invoiceRepo.Save(ctx, previous))

		f.addItem(1, "カスミソウ", "", catalog.TaxRateStandard)
		f.addTransfer(1, 1, 10, "100", date(2026, time.June, 3))

		prevInvoice := decimal.RequireFromString("8000")
		prevPayment := decimal.RequireFromString("5000")
		carryover := decimal.RequireFromString("3000")
		resp, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:           1,
			InvoiceType:       billing.TypeFlower,
			PeriodStart:       periodStart,
			PeriodEnd:         periodEnd,
			PrevInvoiceAmount: &prevInvoice,
			PrevPaymentAmount: &prevPayment,
			CarryoverAmount:   &carryover,
		})
		require.NoError(t, err)

		assert.True(t, resp.PrevInvoiceAmount.Equal(prevInvoice))
		assert.True(t, resp.PrevPaymentAmount.Equal(prevPayment))
		assert.True(t, resp.CarryoverAmount.Equal(carryover))
		// 1000 subtotal + 100 tax + 3000 stated carryover
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("4100")))
	})

	t.Run("partial carryover amounts fill the gaps with zero", func(t *testing.T) {
		f := newBillingFixture()
		f.addItem(1, "カスミソウ", "", catalog.TaxRateStandard)
		f.addTransfer(1, 1, 10, "100", date(2026, time.June, 3))

		prevInvoice := decimal.RequireFromString("2000")
		resp, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:           1,
			InvoiceType:       billing.TypeFlower,
			PeriodStart:       periodStart,
			PeriodEnd:         periodEnd,
			PrevInvoiceAmount: &prevInvoice,
		})
		require.NoError(t, err)

		assert.True(t, resp.PrevInvoiceAmount.Equal(prevInvoice))
		assert.True(t, resp.PrevPaymentAmount.IsZero())
		assert.True(t, resp.CarryoverAmount.Equal(prevInvoice))
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("3100")))
	})

	t.Run("invoice numbers increment within the same store and period end", func(t *testing.T) {
		f := newBillingFixture()
		f.addItem(1, "トルコキキョウ", "", catalog.TaxRateStandard)
		f.addTransfer(1, 1, 5, "200", date(2026, time.June, 10))

		req := GenerateInvoiceRequest{
			StoreID:     1,
			InvoiceType: billing.TypeFlower,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		}
		first, err := f.invoices.Generate(ctx, req)
		require.NoError(t, err)
		second, err := f.invoices.Generate(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, "2026-06-30-001", first.InvoiceNumber)
		assert.Equal(t, "2026-06-30-002", second.InvoiceNumber)
	})

	t.Run("empty period is an error rather than an empty invoice", func(t *testing.T) {
		f := newBillingFixture()

		_, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:     1,
			InvoiceType: billing.TypeFlower,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		assert.ErrorIs(t, err, shared.ErrNoTransfersInPeriod)
	})

	t.Run("supply invoices read the supply ledger", func(t *testing.T) {
		f := newBillingFixture()
		supply := &catalog.Supply{Name: "ラッピング袋", TaxRate: catalog.TaxRateStandard, IsActive: true}
		supply.ID = 7
		f.supplyRepo.supplies[7] = supply
		f.supplyTransferRepo.transfers = append(f.supplyTransferRepo.transfers, inventory.SupplyTransfer{
			StoreID:       1,
			SupplyID:      7,
			Quantity:      30,
			UnitPrice:     decimal.RequireFromString("50"),
			TransferredAt: date(2026, time.June, 8),
		})

		resp, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:     1,
			InvoiceType: billing.TypeSupply,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "ラッピング袋", resp.Items[0].ItemName)
		assert.Nil(t, resp.Items[0].ItemID)
		assert.True(t, resp.Subtotal10.Equal(decimal.RequireFromString("1500")))
	})

	t.Run("configured rounding policy applies to the tax amounts", func(t *testing.T) {
		f := newBillingFixture()
		f.settingRepo.values[settings.KeyTaxRounding] = "round"
		f.addItem(1, "スイートピー", "", catalog.TaxRateStandard)
		f.addTransfer(1, 1, 1, "105", date(2026, time.June, 15))

		resp, err := f.invoices.Generate(ctx, GenerateInvoiceRequest{
			StoreID:     1,
			InvoiceType: billing.TypeFlower,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		require.NoError(t, err)

		// 105 * 0.10 = 10.5 rounds up under half-up rounding
		assert.True(t, resp.TaxAmount10.Equal(decimal.RequireFromString("11")))
	})
}

func TestUpdateInvoiceStatus(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture()
	invoice := &billing.Invoice{
		StoreID:       1,
		InvoiceNumber: "2026-06-30-001",
		InvoiceType:   billing.TypeFlower,
		PeriodStart:   date(2026, time.June, 1),
		PeriodEnd:     date(2026, time.June, 30),
		Status:        billing.StatusGenerated,
	}
	require.NoError(t, f.invoiceRepo.Save(ctx, invoice))

	t.Run("moving to sent stamps the sent time", func(t *testing.T) {
		resp, err := f.invoices.UpdateStatus(ctx, invoice.ID, UpdateInvoiceStatusRequest{Status: billing.StatusSent})
		require.NoError(t, err)

		assert.Equal(t, billing.StatusSent, resp.Status)
		require.NotNil(t, resp.SentAt)

		stored, err := f.invoiceRepo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.StatusSent, stored.Status)
	})

	t.Run("unknown invoice is not found", func(t *testing.T) {
		_, err := f.invoices.UpdateStatus(ctx, 999, UpdateInvoiceStatusRequest{Status: billing.StatusPaid})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDeleteInvoice(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture()
	invoice := &billing.Invoice{
		StoreID:       1,
		InvoiceNumber: "2026-06-30-001",
		InvoiceType:   billing.TypeFlower,
		PeriodStart:   date(2026, time.June, 1),
		PeriodEnd:     date(2026, time.June, 30),
		Status:        billing.StatusDraft,
	}
	require.NoError(t, f.invoiceRepo.Save(ctx, invoice))

	require.NoError(t, f.invoices.Delete(ctx, invoice.ID))

	_, err := f.invoices.Get(ctx, invoice.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, f.invoices.Delete(ctx, invoice.ID), shared.ErrNotFound)
}
