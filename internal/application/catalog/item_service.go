package catalog

import (
	"context"

	"github.com/flower8718/backend/internal/domain/catalog"
)

// ItemService handles item master operations
type ItemService struct {
	itemRepo        catalog.ItemRepository
	priceChangeRepo catalog.PriceChangeRepository
	txScope         TransactionScope
}

// NewItemService creates a new ItemService
func NewItemService(
	itemRepo catalog.ItemRepository,
	priceChangeRepo catalog.PriceChangeRepository,
	txScope TransactionScope,
) *ItemService {
	return &ItemService{
		itemRepo:        itemRepo,
		priceChangeRepo: priceChangeRepo,
		txScope:         txScope,
	}
}

// Create creates a new item. When no code is given, a unique 4-digit
// code is generated against the current code population.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	code := req.ItemCode
	if code == "" {
		taken, err := s.itemRepo.AllCodes(ctx)
		if err != nil {
			return nil, err
		}
		code, err = catalog.NewCodeGenerator(taken).Next()
		if err != nil {
			return nil, err
		}
	} else {
		if existing, err := s.itemRepo.FindByCode(ctx, code); err == nil && existing != nil {
			return nil, catalog.ErrCodeTaken
		}
	}

	taxRate := catalog.TaxRateStandard
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	item, err := catalog.NewItem(code, req.Name, req.Variety, req.Category, req.DefaultUnitPrice, taxRate)
	if err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// Get returns an item by ID
func (s *ItemService) Get(ctx context.Context, id uint) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// GetByCode returns an item by its 4-digit code
func (s *ItemService) GetByCode(ctx context.Context, code string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// List returns items matching the filter
func (s *ItemService) List(ctx context.Context, filter catalog.ItemFilter) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = *ToItemResponse(&items[i])
	}
	return responses, nil
}

// Update applies a partial update. A default price change is written to
// the price history before the item is saved.
func (s *ItemService) Update(ctx context.Context, id uint, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemCode != nil && *req.ItemCode != item.ItemCode {
		if !catalog.ValidItemCode(*req.ItemCode) {
			return nil, catalog.ErrBadCode
		}
		if existing, err := s.itemRepo.FindByCode(ctx, *req.ItemCode); err == nil && existing != nil && existing.ID != id {
			return nil, catalog.ErrCodeTaken
		}
		item.ItemCode = *req.ItemCode
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Variety != nil {
		item.Variety = *req.Variety
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.TaxRate != nil {
		item.TaxRate = *req.TaxRate
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if req.DefaultUnitPrice != nil {
		samePrice := item.DefaultUnitPrice != nil && item.DefaultUnitPrice.Equal(*req.DefaultUnitPrice)
		if !samePrice {
			change, err := item.ChangePrice(*req.DefaultUnitPrice, req.PriceReason)
			if err != nil {
				return nil, err
			}
			if err := s.priceChangeRepo.Save(ctx, change); err != nil {
				return nil, err
			}
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// Delete removes an item and every dependent row in one transaction.
// Price history, transfers, disposals, adjustments, arrival lots and
// the aggregate ledger row all go with it.
func (s *ItemService) Delete(ctx context.Context, id uint) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.DeletePriceChanges(ctx, id); err != nil {
			return err
		}
		if err := repos.DeleteTransfers(ctx, id); err != nil {
			return err
		}
		if err := repos.DeleteDisposals(ctx, id); err != nil {
			return err
		}
		if err := repos.DeleteAdjustments(ctx, id); err != nil {
			return err
		}
		if err := repos.DeleteArrivals(ctx, id); err != nil {
			return err
		}
		if err := repos.DeleteInventory(ctx, id); err != nil {
			return err
		}
		return repos.DeleteItem(ctx, id)
	})
}

// PriceHistory returns the price change log for an item, newest first
func (s *ItemService) PriceHistory(ctx context.Context, itemID uint) ([]PriceChangeResponse, error) {
	changes, err := s.priceChangeRepo.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	responses := make([]PriceChangeResponse, len(changes))
	for i := range changes {
		responses[i] = *ToPriceChangeResponse(&changes[i])
	}
	return responses, nil
}

// UpdateSortOrders applies a batch of display order changes
func (s *ItemService) UpdateSortOrders(ctx context.Context, req SortOrderRequest) error {
	return s.itemRepo.UpdateSortOrders(ctx, req.Orders)
}
