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

type fakeSupplyRepo struct {
	supplies map[uint]*catalog.Supply
	nextID   uint
}

func newFakeSupplyRepo() *fakeSupplyRepo {
	return &fakeSupplyRepo{supplies: make(map[uint]*catalog.Supply), nextID: 1}
}

func (r *fakeSupplyRepo) FindByID(_ context.Context, id uint) (*catalog.Supply, error) {
	if supply, ok := r.supplies[id]; ok {
		copied := *supply
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSupplyRepo) FindAll(_ context.Context, includeInactive bool) ([]catalog.Supply, error) {
	var out []catalog.Supply
	for _, supply := range r.supplies {
		if !includeInactive && !supply.IsActive {
			continue
		}
		out = append(out, *supply)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsActive != out[j].IsActive {
			return out[i].IsActive
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeSupplyRepo) Save(_ context.Context, supply *catalog.Supply) error {
	if supply.ID == 0 {
		supply.ID = r.nextID
		r.nextID++
	}
	copied := *supply
	r.supplies[supply.ID] = &copied
	return nil
}

func (r *fakeSupplyRepo) UpdateSortOrders(_ context.Context, orders map[uint]int) error {
	for id, order := range orders {
		if supply, ok := r.supplies[id]; ok {
			supply.SortOrder = order
		}
	}
	return nil
}

type fakeSupplyPriceChangeRepo struct {
	changes []catalog.SupplyPriceChange
}

func (r *fakeSupplyPriceChangeRepo) FindBySupply(_ context.Context, supplyID uint) ([]catalog.SupplyPriceChange, error) {
	var out []catalog.SupplyPriceChange
	for i := len(r.changes) - 1; i >= 0; i-- {
		if r.changes[i].SupplyID == supplyID {
			out = append(out, r.changes[i])
		}
	}
	return out, nil
}

func (r *fakeSupplyPriceChangeRepo) Save(_ context.Context, change *catalog.SupplyPriceChange) error {
	r.changes = append(r.changes, *change)
	return nil
}

// fakeSupplyCascadeScope records the cascade steps and deletes the
// supply from the backing repo.
type fakeSupplyCascadeScope struct {
	supplyRepo *fakeSupplyRepo
	priceRepo  *fakeSupplyPriceChangeRepo
	steps      []string
}

func (s *fakeSupplyCascadeScope) Execute(ctx context.Context, fn func(repos SupplyTransactionalRepositories) error) error {
	return fn(s)
}

func (s *fakeSupplyCascadeScope) DeleteSupplyPriceChanges(_ context.Context, supplyID uint) error {
	s.steps = append(s.steps, "price_changes")
	var kept []catalog.SupplyPriceChange
	for _, change := range s.priceRepo.changes {
		if change.SupplyID != supplyID {
			kept = append(kept, change)
		}
	}
	s.priceRepo.changes = kept
	return nil
}

func (s *fakeSupplyCascadeScope) DeleteSupplyTransfers(_ context.Context, supplyID uint) error {
	s.steps = append(s.steps, "transfers")
	return nil
}

func (s *fakeSupplyCascadeScope) DeleteSupply(_ context.Context, supplyID uint) error {
	s.steps = append(s.steps, "supply")
	if _, ok := s.supplyRepo.supplies[supplyID]; !ok {
		return shared.ErrNotFound
	}
	delete(s.supplyRepo.supplies, supplyID)
	return nil
}

func newSupplyService() (*SupplyService, *fakeSupplyRepo, *fakeSupplyPriceChangeRepo) {
	repo := newFakeSupplyRepo()
	priceRepo := &fakeSupplyPriceChangeRepo{}
	scope := &fakeSupplyCascadeScope{supplyRepo: repo, priceRepo: priceRepo}
	return NewSupplyService(repo, priceRepo, scope), repo, priceRepo
}

func TestCreateSupply(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSupplyService()

	resp, err := svc.Create(ctx, CreateSupplyRequest{
		Name:      "ラッピング袋",
		UnitPrice: priceOf("50"),
	})
	require.NoError(t, err)

	assert.Equal(t, "ラッピング袋", resp.Name)
	assert.Equal(t, 0, resp.StockQuantity)
	assert.True(t, resp.TaxRate.Equal(catalog.TaxRateStandard))
	assert.True(t, resp.IsActive)
}

func TestUpdateSupply(t *testing.T) {
	ctx := context.Background()

	t.Run("price change is logged to history", func(t *testing.T) {
		svc, _, _ := newSupplyService()
		created, err := svc.Create(ctx, CreateSupplyRequest{Name: "リボン", UnitPrice: priceOf("30")})
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, UpdateSupplyRequest{
			UnitPrice:   priceOf("35"),
			PriceReason: "仕入先変更",
		})
		require.NoError(t, err)

		history, err := svc.PriceHistory(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.NotNil(t, history[0].OldPrice)
		assert.True(t, history[0].OldPrice.Equal(decimal.RequireFromString("30")))
		assert.True(t, history[0].NewPrice.Equal(decimal.RequireFromString("35")))
	})

	t.Run("unchanged price writes no history row", func(t *testing.T) {
		svc, _, _ := newSupplyService()
		created, err := svc.Create(ctx, CreateSupplyRequest{Name: "リボン", UnitPrice: priceOf("30")})
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, UpdateSupplyRequest{UnitPrice: priceOf("30")})
		require.NoError(t, err)

		history, err := svc.PriceHistory(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestAddSupplyStock(t *testing.T) {
	ctx := context.Background()

	t.Run("purchases accumulate", func(t *testing.T) {
		svc, repo, _ := newSupplyService()
		created, err := svc.Create(ctx, CreateSupplyRequest{Name: "給水スポンジ"})
		require.NoError(t, err)

		_, err = svc.AddStock(ctx, created.ID, SupplyStockRequest{Quantity: 100})
		require.NoError(t, err)
		resp, err := svc.AddStock(ctx, created.ID, SupplyStockRequest{Quantity: 50})
		require.NoError(t, err)

		assert.Equal(t, 150, resp.StockQuantity)

		stored, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 150, stored.StockQuantity)
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		svc, _, _ := newSupplyService()
		created, err := svc.Create(ctx, CreateSupplyRequest{Name: "給水スポンジ"})
		require.NoError(t, err)

		_, err = svc.AddStock(ctx, created.ID, SupplyStockRequest{Quantity: 0})
		require.Error(t, err)
	})
}

func TestDeleteSupplyCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("dependent rows go before the supply row", func(t *testing.T) {
		repo := newFakeSupplyRepo()
		priceRepo := &fakeSupplyPriceChangeRepo{}
		scope := &fakeSupplyCascadeScope{supplyRepo: repo, priceRepo: priceRepo}
		svc := NewSupplyService(repo, priceRepo, scope)

		created, err := svc.Create(ctx, CreateSupplyRequest{Name: "ラッピング袋", UnitPrice: priceOf("50")})
		require.NoError(t, err)
		_, err = svc.Update(ctx, created.ID, UpdateSupplyRequest{UnitPrice: priceOf("55")})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))
		assert.Equal(t, []string{"price_changes", "transfers", "supply"}, scope.steps)

		_, err = svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		history, err := svc.PriceHistory(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("unknown supply is reported before the cascade starts", func(t *testing.T) {
		repo := newFakeSupplyRepo()
		priceRepo := &fakeSupplyPriceChangeRepo{}
		scope := &fakeSupplyCascadeScope{supplyRepo: repo, priceRepo: priceRepo}
		svc := NewSupplyService(repo, priceRepo, scope)

		err := svc.Delete(ctx, 99)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Empty(t, scope.steps)
	})
}

func TestListSupplies(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newSupplyService()

	first, err := svc.Create(ctx, CreateSupplyRequest{Name: "ラッピング袋"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateSupplyRequest{Name: "旧型ブーケスタンド"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, second.ID, UpdateSupplyRequest{IsActive: &inactive})
	require.NoError(t, err)

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.FindByID(ctx, second.ID)
	assert.NoError(t, err)
}
