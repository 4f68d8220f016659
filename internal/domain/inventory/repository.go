package inventory

import (
	"context"
	"time"

	"github.com/flower8718/backend/internal/domain/shared"
)

// TransferFilter narrows transfer listing
type TransferFilter struct {
	shared.Filter
	StoreID  uint
	ItemID   uint
	DateFrom *time.Time
	DateTo   *time.Time
}

// SupplyTransferFilter narrows supply transfer listing
type SupplyTransferFilter struct {
	shared.Filter
	StoreID  uint
	SupplyID uint
	DateFrom *time.Time
	DateTo   *time.Time
}

// LongTermStock describes an item whose oldest arrival exceeds the age
// threshold while aggregate stock is still positive.
type LongTermStock struct {
	ItemID        uint      `json:"item_id"`
	ItemCode      string    `json:"item_code"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity"`
	OldestArrival time.Time `json:"oldest_arrival"`
	AgeDays       int       `json:"age_days"`
}

// InventoryRepository defines the interface for the aggregate ledger
type InventoryRepository interface {
	// FindByItem finds the aggregate row for an item
	FindByItem(ctx context.Context, itemID uint) (*Inventory, error)

	// FindAll lists aggregate rows with positive quantity first
	FindAll(ctx context.Context, filter shared.Filter) ([]Inventory, error)

	// Save creates or updates an aggregate row
	Save(ctx context.Context, inv *Inventory) error

	// SumArrivedQuantity sums all arrival quantities for an item
	SumArrivedQuantity(ctx context.Context, itemID uint) (int, error)

	// SumTransferredQuantity sums all transfer quantities for an item
	SumTransferredQuantity(ctx context.Context, itemID uint) (int, error)

	// FindLongTermStock finds items whose oldest arrival is older than
	// the threshold and whose aggregate quantity is still positive
	FindLongTermStock(ctx context.Context, olderThan time.Time) ([]LongTermStock, error)
}

// ArrivalRepository defines the interface for the lot ledger
type ArrivalRepository interface {
	// FindByID finds an arrival lot by its ID
	FindByID(ctx context.Context, id uint) (*Arrival, error)

	// FindByItem lists lots for an item, newest first
	FindByItem(ctx context.Context, itemID uint) ([]Arrival, error)

	// FindAll lists lots, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Arrival, error)

	// Save creates or updates an arrival lot
	Save(ctx context.Context, arrival *Arrival) error
}

// TransferRepository defines the interface for transfer persistence
type TransferRepository interface {
	// FindByID finds a transfer by its ID
	FindByID(ctx context.Context, id uint) (*Transfer, error)

	// FindAll lists transfers matching the filter, newest first
	FindAll(ctx context.Context, filter TransferFilter) ([]Transfer, error)

	// FindByStoreAndPeriod lists a store's transfers with a transfer
	// date inside [from, to] inclusive
	FindByStoreAndPeriod(ctx context.Context, storeID uint, from, to time.Time) ([]Transfer, error)

	// Save persists a transfer
	Save(ctx context.Context, transfer *Transfer) error
}

// SupplyTransferRepository defines the interface for supply transfers
type SupplyTransferRepository interface {
	// FindAll lists supply transfers matching the filter, newest first
	FindAll(ctx context.Context, filter SupplyTransferFilter) ([]SupplyTransfer, error)

	// FindByStoreAndPeriod lists a store's supply transfers with a
	// transfer date inside [from, to] inclusive
	FindByStoreAndPeriod(ctx context.Context, storeID uint, from, to time.Time) ([]SupplyTransfer, error)

	// Save persists a supply transfer
	Save(ctx context.Context, transfer *SupplyTransfer) error
}

// DisposalRepository defines the interface for disposal records
type DisposalRepository interface {
	// FindByItem lists disposals for an item, newest first
	FindByItem(ctx context.Context, itemID uint) ([]Disposal, error)

	// Save persists a disposal
	Save(ctx context.Context, disposal *Disposal) error
}

// AdjustmentRepository defines the interface for adjustment records
type AdjustmentRepository interface {
	// FindByItem lists adjustments for an item, newest first
	FindByItem(ctx context.Context, itemID uint) ([]InventoryAdjustment, error)

	// Save persists an adjustment
	Save(ctx context.Context, adjustment *InventoryAdjustment) error
}
