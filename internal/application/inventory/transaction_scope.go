package inventory

import (
	"context"

	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the stock ledgers.
// A transfer touches the arrival lot, the aggregate row and the
// transfer record; either all three change or none do.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock repositories
// within a transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// InventoryRepo returns the aggregate ledger repository scoped to the current transaction
	InventoryRepo() inventory.InventoryRepository
	// ArrivalRepo returns the lot ledger repository scoped to the current transaction
	ArrivalRepo() inventory.ArrivalRepository
	// TransferRepo returns the transfer repository scoped to the current transaction
	TransferRepo() inventory.TransferRepository
	// SupplyTransferRepo returns the supply transfer repository scoped to the current transaction
	SupplyTransferRepo() inventory.SupplyTransferRepository
	// DisposalRepo returns the disposal repository scoped to the current transaction
	DisposalRepo() inventory.DisposalRepository
	// AdjustmentRepo returns the adjustment repository scoped to the current transaction
	AdjustmentRepo() inventory.AdjustmentRepository
	// SupplyRepo returns the supply master repository scoped to the current transaction
	SupplyRepo() catalog.SupplyRepository
}

// NoOpTransactionScope runs the function against plain repositories
// without a real transaction. Useful in tests.
type NoOpTransactionScope struct {
	inventoryRepo      inventory.InventoryRepository
	arrivalRepo        inventory.ArrivalRepository
	transferRepo       inventory.TransferRepository
	supplyTransferRepo inventory.SupplyTransferRepository
	disposalRepo       inventory.DisposalRepository
	adjustmentRepo     inventory.AdjustmentRepository
	supplyRepo         catalog.SupplyRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	inventoryRepo inventory.InventoryRepository,
	arrivalRepo inventory.ArrivalRepository,
	transferRepo inventory.TransferRepository,
	supplyTransferRepo inventory.SupplyTransferRepository,
	disposalRepo inventory.DisposalRepository,
	adjustmentRepo inventory.AdjustmentRepository,
	supplyRepo catalog.SupplyRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		inventoryRepo:      inventoryRepo,
		arrivalRepo:        arrivalRepo,
		transferRepo:       transferRepo,
		supplyTransferRepo: supplyTransferRepo,
		disposalRepo:       disposalRepo,
		adjustmentRepo:     adjustmentRepo,
		supplyRepo:         supplyRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InventoryRepo returns the aggregate ledger repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryRepository { return s.inventoryRepo }

// ArrivalRepo returns the lot ledger repository.
func (s *NoOpTransactionScope) ArrivalRepo() inventory.ArrivalRepository { return s.arrivalRepo }

// TransferRepo returns the transfer repository.
func (s *NoOpTransactionScope) TransferRepo() inventory.TransferRepository { return s.transferRepo }

// SupplyTransferRepo returns the supply transfer repository.
func (s *NoOpTransactionScope) SupplyTransferRepo() inventory.SupplyTransferRepository {
	return s.supplyTransferRepo
}

// DisposalRepo returns the disposal repository.
func (s *NoOpTransactionScope) DisposalRepo() inventory.DisposalRepository { return s.disposalRepo }

// AdjustmentRepo returns the adjustment repository.
func (s *NoOpTransactionScope) AdjustmentRepo() inventory.AdjustmentRepository {
	return s.adjustmentRepo
}

// SupplyRepo returns the supply master repository.
func (s *NoOpTransactionScope) SupplyRepo() catalog.SupplyRepository { return s.supplyRepo }
