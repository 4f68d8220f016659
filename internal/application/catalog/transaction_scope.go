package catalog

import (
	"context"
)

// TransactionScope runs item cascade deletion inside one database
// transaction so an item and its dependent rows disappear atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the deleters an item cascade needs,
// all bound to the same transaction. Deletion order matters: dependent
// rows go first, the item row last.
type TransactionalRepositories interface {
	// DeletePriceChanges removes price history for the item
	DeletePriceChanges(ctx context.Context, itemID uint) error
	// DeleteTransfers removes transfer rows for the item
	DeleteTransfers(ctx context.Context, itemID uint) error
	// DeleteDisposals removes disposal rows for the item
	DeleteDisposals(ctx context.Context, itemID uint) error
	// DeleteAdjustments removes adjustment rows for the item
	DeleteAdjustments(ctx context.Context, itemID uint) error
	// DeleteArrivals removes arrival lots for the item
	DeleteArrivals(ctx context.Context, itemID uint) error
	// DeleteInventory removes the aggregate ledger row for the item
	DeleteInventory(ctx context.Context, itemID uint) error
	// DeleteItem removes the item master row itself
	DeleteItem(ctx context.Context, itemID uint) error
}
