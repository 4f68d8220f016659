package catalog

import (
	"context"
)

// SupplyTransactionScope runs supply cascade deletion inside one
// database transaction.
type SupplyTransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos SupplyTransactionalRepositories) error) error
}

// SupplyTransactionalRepositories exposes the deleters a supply
// cascade needs, all bound to the same transaction. Dependent rows go
// first, the supply row last.
type SupplyTransactionalRepositories interface {
	// DeleteSupplyPriceChanges removes price history for the supply
	DeleteSupplyPriceChanges(ctx context.Context, supplyID uint) error
	// DeleteSupplyTransfers removes transfer rows for the supply
	DeleteSupplyTransfers(ctx context.Context, supplyID uint) error
	// DeleteSupply removes the supply master row itself
	DeleteSupply(ctx context.Context, supplyID uint) error
}
