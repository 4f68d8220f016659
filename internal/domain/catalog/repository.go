package catalog

import (
	"context"

	"github.com/flower8718/backend/internal/domain/shared"
)

// ItemFilter narrows item listing
type ItemFilter struct {
	shared.Filter
	Category string
	Search   string // matches name or item code
	IsActive *bool
}

// ItemRepository defines the interface for item master persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uint) (*Item, error)

	// FindByCode finds an item by its 4-digit code
	FindByCode(ctx context.Context, code string) (*Item, error)

	// FindByNameAndVariety finds an item by exact name, optionally narrowed by variety
	FindByNameAndVariety(ctx context.Context, name, variety string) (*Item, error)

	// FindAll lists items matching the filter, ordered by sort order then ID
	FindAll(ctx context.Context, filter ItemFilter) ([]Item, error)

	// AllCodes returns every item code currently assigned
	AllCodes(ctx context.Context) ([]string, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// UpdateSortOrders applies a batch of id -> sort order updates
	UpdateSortOrders(ctx context.Context, orders map[uint]int) error
}

// PriceChangeRepository defines the interface for price history persistence
type PriceChangeRepository interface {
	// FindByItem lists price changes for an item, newest first
	FindByItem(ctx context.Context, itemID uint) ([]PriceChange, error)

	// LatestPrices returns the most recent changed price per item
	LatestPrices(ctx context.Context) (map[uint]PriceChange, error)

	// Save persists a price change entry
	Save(ctx context.Context, change *PriceChange) error
}

// SupplyRepository defines the interface for supply master persistence
type SupplyRepository interface {
	// FindByID finds a supply by its ID
	FindByID(ctx context.Context, id uint) (*Supply, error)

	// FindAll lists supplies; inactive supplies sort after active ones
	FindAll(ctx context.Context, includeInactive bool) ([]Supply, error)

	// Save creates or updates a supply
	Save(ctx context.Context, supply *Supply) error

	// UpdateSortOrders applies a batch of id -> sort order updates
	UpdateSortOrders(ctx context.Context, orders map[uint]int) error
}

// SupplyPriceChangeRepository defines the interface for supply price history
type SupplyPriceChangeRepository interface {
	// FindBySupply lists price changes for a supply, newest first
	FindBySupply(ctx context.Context, supplyID uint) ([]SupplyPriceChange, error)

	// Save persists a supply price change entry
	Save(ctx context.Context, change *SupplyPriceChange) error
}
