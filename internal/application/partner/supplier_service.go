package partner

import (
	"context"

	"github.com/flower8718/backend/internal/domain/partner"
)

// SupplierService handles supplier master operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.Email, req.CSVEncoding, req.CSVFormat)
	if err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		supplier.SortOrder = *req.SortOrder
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Get returns a supplier by ID
func (s *SupplierService) Get(ctx context.Context, id uint) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// List returns suppliers ordered by sort order
func (s *SupplierService) List(ctx context.Context, includeInactive bool) ([]SupplierResponse, error) {
	var (
		suppliers []partner.Supplier
		err       error
	)
	if includeInactive {
		suppliers, err = s.supplierRepo.FindAll(ctx)
	} else {
		suppliers, err = s.supplierRepo.FindActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = *ToSupplierResponse(&suppliers[i])
	}
	return responses, nil
}

// Update applies a partial update to a supplier
func (s *SupplierService) Update(ctx context.Context, id uint, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.CSVEncoding != nil {
		supplier.CSVEncoding = *req.CSVEncoding
	}
	if req.CSVFormat != nil {
		supplier.CSVFormat = *req.CSVFormat
	}
	if req.SortOrder != nil {
		supplier.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Deactivate soft-disables a supplier
func (s *SupplierService) Deactivate(ctx context.Context, id uint) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	supplier.IsActive = false
	return s.supplierRepo.Save(ctx, supplier)
}
