package partner

import (
	"context"

	"github.com/flower8718/backend/internal/domain/partner"
)

// StoreService handles store master operations
type StoreService struct {
	storeRepo partner.StoreRepository
}

// NewStoreService creates a new StoreService
func NewStoreService(storeRepo partner.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// Create creates a new store
func (s *StoreService) Create(ctx context.Context, req CreateStoreRequest) (*StoreResponse, error) {
	store, err := partner.NewStore(req.Name, req.OperationType, req.StoreType, req.Email, req.Color)
	if err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		store.SortOrder = *req.SortOrder
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

// Get returns a store by ID
func (s *StoreService) Get(ctx context.Context, id uint) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

// List returns stores ordered by sort order. Inactive stores are
// excluded unless includeInactive is set.
func (s *StoreService) List(ctx context.Context, includeInactive bool) ([]StoreResponse, error) {
	var (
		stores []partner.Store
		err    error
	)
	if includeInactive {
		stores, err = s.storeRepo.FindAll(ctx)
	} else {
		stores, err = s.storeRepo.FindActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = *ToStoreResponse(&stores[i])
	}
	return responses, nil
}

// Update applies a partial update to a store
func (s *StoreService) Update(ctx context.Context, id uint, req UpdateStoreRequest) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.OperationType != nil {
		store.OperationType = *req.OperationType
	}
	if req.StoreType != nil {
		store.StoreType = *req.StoreType
	}
	if req.Email != nil {
		store.Email = *req.Email
	}
	if req.Color != nil {
		store.Color = *req.Color
	}
	if req.SortOrder != nil {
		store.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		store.IsActive = *req.IsActive
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}
	return ToStoreResponse(store), nil
}

// Deactivate soft-disables a store. Historical transfers keep pointing
// at it, so stores are never hard-deleted.
func (s *StoreService) Deactivate(ctx context.Context, id uint) error {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	store.Deactivate()
	return s.storeRepo.Save(ctx, store)
}

// UpdateSortOrders applies a batch of display order changes
func (s *StoreService) UpdateSortOrders(ctx context.Context, req SortOrderRequest) error {
	return s.storeRepo.UpdateSortOrders(ctx, req.Orders)
}
