package persistence

import (
	"context"

	"gorm.io/gorm"

	appinv "github.com/flower8718/backend/internal/application/inventory"
	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/inventory"
)

// GormInventoryTransactionScope implements the stock TransactionScope
// using GORM transactions. A transfer touches the lot, the aggregate
// row and the transfer record; either all three change or none do.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryTxRepositories{tx: tx})
	})
}

type gormInventoryTxRepositories struct {
	tx *gorm.DB
}

// InventoryRepo returns the aggregate ledger repository scoped to the current transaction
func (r *gormInventoryTxRepositories) InventoryRepo() inventory.InventoryRepository {
	return NewGormInventoryRepository(r.tx)
}

// ArrivalRepo returns the lot ledger repository scoped to the current transaction
func (r *gormInventoryTxRepositories) ArrivalRepo() inventory.ArrivalRepository {
	return NewGormArrivalRepository(r.tx)
}

// TransferRepo returns the transfer repository scoped to the current transaction
func (r *gormInventoryTxRepositories) TransferRepo() inventory.TransferRepository {
	return NewGormTransferRepository(r.tx)
}

// SupplyTransferRepo returns the supply transfer repository scoped to the current transaction
func (r *gormInventoryTxRepositories) SupplyTransferRepo() inventory.SupplyTransferRepository {
	return NewGormSupplyTransferRepository(r.tx)
}

// DisposalRepo returns the disposal repository scoped to the current transaction
func (r *gormInventoryTxRepositories) DisposalRepo() inventory.DisposalRepository {
	return NewGormDisposalRepository(r.tx)
}

// AdjustmentRepo returns the adjustment repository scoped to the current transaction
func (r *gormInventoryTxRepositories) AdjustmentRepo() inventory.AdjustmentRepository {
	return NewGormAdjustmentRepository(r.tx)
}

// SupplyRepo returns the supply master repository scoped to the current transaction
func (r *gormInventoryTxRepositories) SupplyRepo() catalog.SupplyRepository {
	return NewGormSupplyRepository(r.tx)
}

var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinv.TransactionalRepositories = (*gormInventoryTxRepositories)(nil)
