package persistence

import (
	"context"

	"gorm.io/gorm"

	appcatalog "github.com/flower8718/backend/internal/application/catalog"
	"github.com/flower8718/backend/internal/domain/billing"
	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormCatalogTransactionScope implements the catalog TransactionScope
// using GORM transactions. It backs the item cascade delete.
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope
func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCatalogTxRepositories{tx: tx})
	})
}

type gormCatalogTxRepositories struct {
	tx *gorm.DB
}

// DeletePriceChanges removes price history for the item
func (r *gormCatalogTxRepositories) DeletePriceChanges(ctx context.Context, itemID uint) error {
	return r.tx.WithContext(ctx).Where("item_id = ?", itemID).Delete(&catalog.PriceChange{}).Error
}

// DeleteTransfers removes transfer rows for the item. Invoice line
// items keep their snapshot columns, only the item reference is cut.
func (r *gormCatalogTxRepositories) DeleteTransfers(ctx context.Context, itemID uint) error {
	if err := r.tx.WithContext(ctx).
		Model(&billing.InvoiceItem{}).
		Where("item_id = ?", itemID).
		Update("item_id", nil).Error; err != nil {
		return err
	}
	return r.tx.WithContext(ctx).Where("item_id = ?", itemID).Delete(&inventory.Transfer{}).Error
}

// DeleteDisposals removes disposal rows for the item
func (r *gormCatalogTxRepositories) DeleteDisposals(ctx context.Context, itemID uint) error {
	return r.tx.WithContext(ctx).Where("item_id = ?", itemID).Delete(&inventory.Disposal{}).Error
}

// DeleteAdjustments removes adjustment rows for the item
func (r *gormCatalogTxRepositories) DeleteAdjustments(ctx context.Context, itemID uint) error {
	return r.tx.WithContext(ctx).Where("item_id = ?", itemID).Delete(&inventory.InventoryAdjustment{}).Error
}

// DeleteArrivals removes arrival lots for the item
func (r *gormCatalogTxRepositories) DeleteArrivals(ctx context.Context, itemID uint) error {
	return r.tx.WithContext(ctx).Where("item_id = ?", itemID).Delete(&inventory.Arrival{}).Error
}

// DeleteInventory removes the aggregate ledger row for the item
func (r *gormCatalogTxRepositories) DeleteInventory(ctx context.Context, itemID uint) error {
	return r.tx.WithContext(ctx).Where("item_id = ?", itemID).Delete(&inventory.Inventory{}).Error
}

// DeleteItem removes the item master row itself
func (r *gormCatalogTxRepositories) DeleteItem(ctx context.Context, itemID uint) error {
	result := r.tx.WithContext(ctx).Delete(&catalog.Item{}, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ appcatalog.TransactionScope = (*GormCatalogTransactionScope)(nil)
var _ appcatalog.TransactionalRepositories = (*gormCatalogTxRepositories)(nil)

// GormSupplyTransactionScope implements the supply cascade delete
// using GORM transactions.
type GormSupplyTransactionScope struct {
	db *gorm.DB
}

// NewGormSupplyTransactionScope creates a new GormSupplyTransactionScope
func NewGormSupplyTransactionScope(db *gorm.DB) *GormSupplyTransactionScope {
	return &GormSupplyTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormSupplyTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.SupplyTransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSupplyTxRepositories{tx: tx})
	})
}

type gormSupplyTxRepositories struct {
	tx *gorm.DB
}

// DeleteSupplyPriceChanges removes price history for the supply
func (r *gormSupplyTxRepositories) DeleteSupplyPriceChanges(ctx context.Context, supplyID uint) error {
	return r.tx.WithContext(ctx).Where("supply_id = ?", supplyID).Delete(&catalog.SupplyPriceChange{}).Error
}

// DeleteSupplyTransfers removes transfer rows for the supply. Invoice
// snapshot lines keep their columns, only the supply-linked transfers go.
func (r *gormSupplyTxRepositories) DeleteSupplyTransfers(ctx context.Context, supplyID uint) error {
	return r.tx.WithContext(ctx).Where("supply_id = ?", supplyID).Delete(&inventory.SupplyTransfer{}).Error
}

// DeleteSupply removes the supply master row itself
func (r *gormSupplyTxRepositories) DeleteSupply(ctx context.Context, supplyID uint) error {
	result := r.tx.WithContext(ctx).Delete(&catalog.Supply{}, supplyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ appcatalog.SupplyTransactionScope = (*GormSupplyTransactionScope)(nil)
var _ appcatalog.SupplyTransactionalRepositories = (*gormSupplyTxRepositories)(nil)
