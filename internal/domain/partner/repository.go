package partner

import "context"

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	// FindByID finds a store by its ID
	FindByID(ctx context.Context, id uint) (*Store, error)

	// FindActive returns active stores ordered by sort order
	FindActive(ctx context.Context) ([]Store, error)

	// FindAll returns all stores ordered by sort order
	FindAll(ctx context.Context) ([]Store, error)

	// Save creates or updates a store
	Save(ctx context.Context, store *Store) error

	// UpdateSortOrders applies a batch of id -> sort order updates
	UpdateSortOrders(ctx context.Context, orders map[uint]int) error
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uint) (*Supplier, error)

	// FindActive returns active suppliers ordered by sort order
	FindActive(ctx context.Context) ([]Supplier, error)

	// FindAll returns all suppliers ordered by sort order
	FindAll(ctx context.Context) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error
}
