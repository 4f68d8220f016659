package persistence

import (
	"context"

	"gorm.io/gorm"

	appimporter "github.com/flower8718/backend/internal/application/importer"
	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/inventory"
)

// GormImporterTransactionScope implements the import TransactionScope
// using GORM transactions. A whole CSV import commits or rolls back as
// one unit.
type GormImporterTransactionScope struct {
	db *gorm.DB
}

// NewGormImporterTransactionScope creates a new GormImporterTransactionScope
func NewGormImporterTransactionScope(db *gorm.DB) *GormImporterTransactionScope {
	return &GormImporterTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormImporterTransactionScope) Execute(ctx context.Context, fn func(repos appimporter.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormImporterTxRepositories{tx: tx})
	})
}

type gormImporterTxRepositories struct {
	tx *gorm.DB
}

// ItemRepo returns the item master repository scoped to the current transaction
func (r *gormImporterTxRepositories) ItemRepo() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// ArrivalRepo returns the lot ledger repository scoped to the current transaction
func (r *gormImporterTxRepositories) ArrivalRepo() inventory.ArrivalRepository {
	return NewGormArrivalRepository(r.tx)
}

// InventoryRepo returns the aggregate ledger repository scoped to the current transaction
func (r *gormImporterTxRepositories) InventoryRepo() inventory.InventoryRepository {
	return NewGormInventoryRepository(r.tx)
}

var _ appimporter.TransactionScope = (*GormImporterTransactionScope)(nil)
var _ appimporter.TransactionalRepositories = (*gormImporterTxRepositories)(nil)
