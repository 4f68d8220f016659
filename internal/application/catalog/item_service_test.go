package catalog

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/shared"
)

type fakeItemRepo struct {
	items  map[uint]*catalog.Item
	nextID uint
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uint]*catalog.Item), nextID: 1}
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uint) (*catalog.Item, error) {
	if item, ok := r.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeItemRepo) FindByCode(_ context.Context, code string) (*catalog.Item, error) {
	for _, item := range r.items {
		if item.ItemCode == code {
			copied := *item
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeItemRepo) FindByNameAndVariety(_ context.Context, name, variety string) (*catalog.Item, error) {
	for _, item := range r.items {
		if item.Name == name && (variety == "" || item.Variety == variety) {
			copied := *item
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeItemRepo) FindAll(_ context.Context, filter catalog.ItemFilter) ([]catalog.Item, error) {
	var out []catalog.Item
	for _, item := range r.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.IsActive != nil && item.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeItemRepo) AllCodes(_ context.Context) ([]string, error) {
	var codes []string
	for _, item := range r.items {
		codes = append(codes, item.ItemCode)
	}
	return codes, nil
}

func (r *fakeItemRepo) Save(_ context.Context, item *catalog.Item) error {
	if item.ID == 0 {
		item.ID = r.nextID
		r.nextID++
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) UpdateSortOrders(_ context.Context, orders map[uint]int) error {
	for id, order := range orders {
		if item, ok := r.items[id]; ok {
			item.SortOrder = order
		}
	}
	return nil
}

type fakePriceChangeRepo struct {
	changes []catalog.PriceChange
}

func (r *fakePriceChangeRepo) FindByItem(_ context.Context, itemID uint) ([]catalog.PriceChange, error) {
	var out []catalog.PriceChange
	for i := len(r.changes) - 1; i >= 0; i-- {
		if r.changes[i].ItemID == itemID {
			out = append(out, r.changes[i])
		}
	}
	return out, nil
}

func (r *fakePriceChangeRepo) LatestPrices(_ context.Context) (map[uint]catalog.PriceChange, error) {
	latest := make(map[uint]catalog.PriceChange)
	for _, change := range r.changes {
		latest[change.ItemID] = change
	}
	return latest, nil
}

func (r *fakePriceChangeRepo) Save(_ context.Context, change *catalog.PriceChange) error {
	r.changes = append(r.changes, *change)
	return nil
}

// fakeCascadeScope records the cascade steps so tests can assert that
// dependent rows are removed before the item row itself.
type fakeCascadeScope struct {
	itemRepo *fakeItemRepo
	steps    []string
}

func (s *fakeCascadeScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *fakeCascadeScope) DeletePriceChanges(_ context.Context, _ uint) error {
	s.steps = append(s.steps, "price_changes")
	return nil
}

func (s *fakeCascadeScope) DeleteTransfers(_ context.Context, _ uint) error {
	s.steps = append(s.steps, "transfers")
	return nil
}

func (s *fakeCascadeScope) DeleteDisposals(_ context.Context, _ uint) error {
	s.steps = append(s.steps, "disposals")
	return nil
}

func (s *fakeCascadeScope) DeleteAdjustments(_ context.Context, _ uint) error {
	s.steps = append(s.steps, "adjustments")
	return nil
}

func (s *fakeCascadeScope) DeleteArrivals(_ context.Context, _ uint) error {
	s.steps = append(s.steps, "arrivals")
	return nil
}

func (s *fakeCascadeScope) DeleteInventory(_ context.Context, _ uint) error {
	s.steps = append(s.steps, "inventory")
	return nil
}

func (s *fakeCascadeScope) DeleteItem(_ context.Context, itemID uint) error {
	s.steps = append(s.steps, "item")
	delete(s.itemRepo.items, itemID)
	return nil
}

type itemFixture struct {
	itemRepo        *fakeItemRepo
	priceChangeRepo *fakePriceChangeRepo
	scope           *fakeCascadeScope
	service         *ItemService
}

func newItemFixture() *itemFixture {
	f := &itemFixture{
		itemRepo:        newFakeItemRepo(),
		priceChangeRepo: &fakePriceChangeRepo{},
	}
	f.scope = &fakeCascadeScope{itemRepo: f.itemRepo}
	f.service = NewItemService(f.itemRepo, f.priceChangeRepo, f.scope)
	return f
}

func priceOf(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit code is kept", func(t *testing.T) {
		f := newItemFixture()

		resp, err := f.service.Create(ctx, CreateItemRequest{
			ItemCode:         "1234",
			Name:             "バラ",
			Variety:          "サムライ",
			Category:         "切花",
			DefaultUnitPrice: priceOf("300"),
		})
		require.NoError(t, err)

		assert.Equal(t, "1234", resp.ItemCode)
		assert.Equal(t, "バラ", resp.Name)
		assert.True(t, resp.TaxRate.Equal(catalog.TaxRateStandard))
		assert.True(t, resp.IsActive)
	})

	t.Run("empty code gets a generated unique 4-digit code", func(t *testing.T) {
		f := newItemFixture()
		seeded, err := f.service.Create(ctx, CreateItemRequest{ItemCode: "1000", Name: "ユリ"})
		require.NoError(t, err)

		resp, err := f.service.Create(ctx, CreateItemRequest{Name: "カスミソウ"})
		require.NoError(t, err)

		assert.Len(t, resp.ItemCode, 4)
		assert.NotEqual(t, seeded.ItemCode, resp.ItemCode)
	})

	t.Run("duplicate code is rejected", func(t *testing.T) {
		f := newItemFixture()
		_, err := f.service.Create(ctx, CreateItemRequest{ItemCode: "1234", Name: "バラ"})
		require.NoError(t, err)

		_, err = f.service.Create(ctx, CreateItemRequest{ItemCode: "1234", Name: "ガーベラ"})
		assert.ErrorIs(t, err, catalog.ErrCodeTaken)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		f := newItemFixture()
		_, err := f.service.Create(ctx, CreateItemRequest{Name: "   "})
		require.Error(t, err)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("price change is logged to history", func(t *testing.T) {
		f := newItemFixture()
		created, err := f.service.Create(ctx, CreateItemRequest{
			ItemCode:         "2000",
			Name:             "チューリップ",
			DefaultUnitPrice: priceOf("150"),
		})
		require.NoError(t, err)

		resp, err := f.service.Update(ctx, created.ID, UpdateItemRequest{
			DefaultUnitPrice: priceOf("180"),
			PriceReason:      "市場価格の上昇",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.DefaultUnitPrice)
		assert.True(t, resp.DefaultUnitPrice.Equal(decimal.RequireFromString("180")))

		history, err := f.service.PriceHistory(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.NotNil(t, history[0].OldPrice)
		assert.True(t, history[0].OldPrice.Equal(decimal.RequireFromString("150")))
		assert.True(t, history[0].NewPrice.Equal(decimal.RequireFromString("180")))
		assert.Equal(t, "市場価格の上昇", history[0].Reason)
	})

	t.Run("unchanged price writes no history row", func(t *testing.T) {
		f := newItemFixture()
		created, err := f.service.Create(ctx, CreateItemRequest{
			ItemCode:         "2000",
			Name:             "チューリップ",
			DefaultUnitPrice: priceOf("150"),
		})
		require.NoError(t, err)

		_, err = f.service.Update(ctx, created.ID, UpdateItemRequest{DefaultUnitPrice: priceOf("150")})
		require.NoError(t, err)

		history, err := f.service.PriceHistory(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("changing to a taken code fails", func(t *testing.T) {
		f := newItemFixture()
		_, err := f.service.Create(ctx, CreateItemRequest{ItemCode: "3000", Name: "バラ"})
		require.NoError(t, err)
		other, err := f.service.Create(ctx, CreateItemRequest{ItemCode: "3001", Name: "ユリ"})
		require.NoError(t, err)

		taken := "3000"
		_, err = f.service.Update(ctx, other.ID, UpdateItemRequest{ItemCode: &taken})
		assert.ErrorIs(t, err, catalog.ErrCodeTaken)
	})

	t.Run("malformed code fails", func(t *testing.T) {
		f := newItemFixture()
		created, err := f.service.Create(ctx, CreateItemRequest{ItemCode: "3000", Name: "バラ"})
		require.NoError(t, err)

		bad := "31"
		_, err = f.service.Update(ctx, created.ID, UpdateItemRequest{ItemCode: &bad})
		assert.ErrorIs(t, err, catalog.ErrBadCode)
	})

	t.Run("deactivation keeps the row", func(t *testing.T) {
		f := newItemFixture()
		created, err := f.service.Create(ctx, CreateItemRequest{ItemCode: "3000", Name: "バラ"})
		require.NoError(t, err)

		inactive := false
		resp, err := f.service.Update(ctx, created.ID, UpdateItemRequest{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, resp.IsActive)

		_, err = f.service.Get(ctx, created.ID)
		assert.NoError(t, err)
	})
}

func TestDeleteItemCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("dependent rows are removed before the item", func(t *testing.T) {
		f := newItemFixture()
		created, err := f.service.Create(ctx, CreateItemRequest{ItemCode: "4000", Name: "ヒマワリ"})
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(ctx, created.ID))

		assert.Equal(t, []string{
			"price_changes", "transfers", "disposals", "adjustments",
			"arrivals", "inventory", "item",
		}, f.scope.steps)

		_, err = f.service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		f := newItemFixture()
		err := f.service.Delete(ctx, 99)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Empty(t, f.scope.steps)
	})
}
