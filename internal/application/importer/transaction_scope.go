package importer

import (
	"context"

	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/inventory"
)

// TransactionScope runs a whole CSV import in one database
// transaction: either every row's item, arrival and ledger update
// lands, or none do.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories an import needs,
// all bound to the same transaction.
type TransactionalRepositories interface {
	// ItemRepo returns the item master repository scoped to the current transaction
	ItemRepo() catalog.ItemRepository
	// ArrivalRepo returns the lot ledger repository scoped to the current transaction
	ArrivalRepo() inventory.ArrivalRepository
	// InventoryRepo returns the aggregate ledger repository scoped to the current transaction
	InventoryRepo() inventory.InventoryRepository
}

// NoOpTransactionScope runs the function against plain repositories
// without a real transaction. Useful in tests.
type NoOpTransactionScope struct {
	itemRepo      catalog.ItemRepository
	arrivalRepo   inventory.ArrivalRepository
	inventoryRepo inventory.InventoryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	itemRepo catalog.ItemRepository,
	arrivalRepo inventory.ArrivalRepository,
	inventoryRepo inventory.InventoryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:      itemRepo,
		arrivalRepo:   arrivalRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the item master repository.
func (s *NoOpTransactionScope) ItemRepo() catalog.ItemRepository { return s.itemRepo }

// ArrivalRepo returns the lot ledger repository.
func (s *NoOpTransactionScope) ArrivalRepo() inventory.ArrivalRepository { return s.arrivalRepo }

// InventoryRepo returns the aggregate ledger repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryRepository {
	return s.inventoryRepo
}
