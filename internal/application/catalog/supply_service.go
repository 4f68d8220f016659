package catalog

import (
	"context"

	"github.com/flower8718/backend/internal/domain/catalog"
)

// SupplyService handles supply master operations
type SupplyService struct {
	supplyRepo      catalog.SupplyRepository
	priceChangeRepo catalog.SupplyPriceChangeRepository
	txScope         SupplyTransactionScope
}

// NewSupplyService creates a new SupplyService
func NewSupplyService(
	supplyRepo catalog.SupplyRepository,
	priceChangeRepo catalog.SupplyPriceChangeRepository,
	txScope SupplyTransactionScope,
) *SupplyService {
	return &SupplyService{
		supplyRepo:      supplyRepo,
		priceChangeRepo: priceChangeRepo,
		txScope:         txScope,
	}
}

// Create creates a new supply
func (s *SupplyService) Create(ctx context.Context, req CreateSupplyRequest) (*SupplyResponse, error) {
	supply, err := catalog.NewSupply(req.Name, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		supply.SortOrder = *req.SortOrder
	}

	if err := s.supplyRepo.Save(ctx, supply); err != nil {
		return nil, err
	}
	return ToSupplyResponse(supply), nil
}

// Get returns a supply by ID
func (s *SupplyService) Get(ctx context.Context, id uint) (*SupplyResponse, error) {
	supply, err := s.supplyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSupplyResponse(supply), nil
}

// List returns supplies; inactive ones are appended when requested
func (s *SupplyService) List(ctx context.Context, includeInactive bool) ([]SupplyResponse, error) {
	supplies, err := s.supplyRepo.FindAll(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]SupplyResponse, len(supplies))
	for i := range supplies {
		responses[i] = *ToSupplyResponse(&supplies[i])
	}
	return responses, nil
}

// Update applies a partial update, logging price changes to history
func (s *SupplyService) Update(ctx context.Context, id uint, req UpdateSupplyRequest) (*SupplyResponse, error) {
	supply, err := s.supplyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supply.Name = *req.Name
	}
	if req.SortOrder != nil {
		supply.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		supply.IsActive = *req.IsActive
	}

	if req.UnitPrice != nil {
		samePrice := supply.UnitPrice != nil && supply.UnitPrice.Equal(*req.UnitPrice)
		if !samePrice {
			change, err := supply.ChangePrice(*req.UnitPrice, req.PriceReason)
			if err != nil {
				return nil, err
			}
			if err := s.priceChangeRepo.Save(ctx, change); err != nil {
				return nil, err
			}
		}
	}

	if err := s.supplyRepo.Save(ctx, supply); err != nil {
		return nil, err
	}
	return ToSupplyResponse(supply), nil
}

// AddStock adds purchased stock to a supply
func (s *SupplyService) AddStock(ctx context.Context, id uint, req SupplyStockRequest) (*SupplyResponse, error) {
	supply, err := s.supplyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supply.AddStock(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.supplyRepo.Save(ctx, supply); err != nil {
		return nil, err
	}
	return ToSupplyResponse(supply), nil
}

// Delete removes a supply together with its price history and
// transfer rows in one transaction.
func (s *SupplyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.supplyRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.txScope.Execute(ctx, func(repos SupplyTransactionalRepositories) error {
		if err := repos.DeleteSupplyPriceChanges(ctx, id); err != nil {
			return err
		}
		if err := repos.DeleteSupplyTransfers(ctx, id); err != nil {
			return err
		}
		return repos.DeleteSupply(ctx, id)
	})
}

// PriceHistory returns the price change log for a supply, newest first
func (s *SupplyService) PriceHistory(ctx context.Context, supplyID uint) ([]SupplyPriceChangeResponse, error) {
	changes, err := s.priceChangeRepo.FindBySupply(ctx, supplyID)
	if err != nil {
		return nil, err
	}

	responses := make([]SupplyPriceChangeResponse, len(changes))
	for i := range changes {
		responses[i] = *ToSupplyPriceChangeResponse(&changes[i])
	}
	return responses, nil
}

// UpdateSortOrders applies a batch of display order changes
func (s *SupplyService) UpdateSortOrders(ctx context.Context, req SortOrderRequest) error {
	return s.supplyRepo.UpdateSortOrders(ctx, req.Orders)
}
