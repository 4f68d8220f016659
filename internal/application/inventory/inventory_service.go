package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/flower8718/backend/internal/domain/shared"
)

// InventoryService keeps the two stock ledgers consistent: the per-item
// aggregate ledger and the per-lot arrival ledger. Every mutating
// operation runs inside a transaction scope.
type InventoryService struct {
	inventoryRepo inventory.InventoryRepository
	arrivalRepo   inventory.ArrivalRepository
	transferRepo  inventory.TransferRepository
	txScope       TransactionScope
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	inventoryRepo inventory.InventoryRepository,
	arrivalRepo inventory.ArrivalRepository,
	transferRepo inventory.TransferRepository,
	txScope TransactionScope,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		arrivalRepo:   arrivalRepo,
		transferRepo:  transferRepo,
		txScope:       txScope,
	}
}

// ensureAggregate loads the aggregate row for an item, creating it
// lazily when absent. Legacy data may have transfers without a ledger
// row; the baseline is reconstructed as arrivals minus transfers,
// floored at zero.
func ensureAggregate(ctx context.Context, repos TransactionalRepositories, itemID uint) (*inventory.Inventory, error) {
	inv, err := repos.InventoryRepo().FindByItem(ctx, itemID)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	arrived, err := repos.InventoryRepo().SumArrivedQuantity(ctx, itemID)
	if err != nil {
		return nil, err
	}
	transferred, err := repos.InventoryRepo().SumTransferredQuantity(ctx, itemID)
	if err != nil {
		return nil, err
	}

	inv = inventory.NewInventory(itemID, arrived-transferred, nil)
	if err := repos.InventoryRepo().Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// RecordArrival registers an incoming lot and adds it to the aggregate.
func (s *InventoryService) RecordArrival(ctx context.Context, req RecordArrivalRequest) (*ArrivalResponse, error) {
	arrivedAt := time.Now()
	if req.ArrivedAt != nil {
		arrivedAt = *req.ArrivedAt
	}

	arrival, err := inventory.NewArrival(req.ItemID, req.SupplierID, req.Quantity, req.WholesalePrice, req.SourceType, arrivedAt)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Reconstruct the aggregate before saving the lot so the lazy
		// baseline cannot include this arrival twice.
		agg, err := ensureAggregate(ctx, repos, req.ItemID)
		if err != nil {
			return err
		}
		if err := repos.ArrivalRepo().Save(ctx, arrival); err != nil {
			return err
		}
		if err := agg.Increase(req.Quantity); err != nil {
			return err
		}
		if req.WholesalePrice != nil {
			agg.UnitPrice = req.WholesalePrice
		}
		return repos.InventoryRepo().Save(ctx, agg)
	})
	if err != nil {
		return nil, err
	}
	return ToArrivalResponse(arrival), nil
}

// RecordTransfer registers an outbound transfer. When a lot is named,
// its remaining counter is consumed; the aggregate is decremented
// either way, and all three writes commit together.
func (s *InventoryService) RecordTransfer(ctx context.Context, req RecordTransferRequest) (*TransferResponse, error) {
	transferredAt := time.Now()
	if req.TransferredAt != nil {
		transferredAt = *req.TransferredAt
	}

	wholesale := req.WholesalePrice
	var transfer *inventory.Transfer

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.ArrivalID != nil {
			lot, err := repos.ArrivalRepo().FindByID(ctx, *req.ArrivalID)
			if err != nil {
				return err
			}
			if lot.ItemID != req.ItemID {
				return shared.NewDomainError("INVALID_INPUT", "Arrival lot belongs to a different item")
			}
			if err := lot.Consume(req.Quantity); err != nil {
				return err
			}
			if wholesale == nil {
				wholesale = lot.WholesalePrice
			}
			if err := repos.ArrivalRepo().Save(ctx, lot); err != nil {
				return err
			}
		}

		agg, err := ensureAggregate(ctx, repos, req.ItemID)
		if err != nil {
			return err
		}
		if err := agg.Decrease(req.Quantity); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, agg); err != nil {
			return err
		}

		transfer, err = inventory.NewTransfer(req.StoreID, req.ItemID, req.ArrivalID, req.Quantity, req.UnitPrice, wholesale, transferredAt)
		if err != nil {
			return err
		}
		return repos.TransferRepo().Save(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}
	return ToTransferResponse(transfer), nil
}

// RecordSupplyTransfer registers an outbound supply transfer, consuming
// the supply's own stock counter.
func (s *InventoryService) RecordSupplyTransfer(ctx context.Context, req RecordSupplyTransferRequest) (*SupplyTransferResponse, error) {
	transferredAt := time.Now()
	if req.TransferredAt != nil {
		transferredAt = *req.TransferredAt
	}

	var transfer *inventory.SupplyTransfer

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		supply, err := repos.SupplyRepo().FindByID(ctx, req.SupplyID)
		if err != nil {
			return err
		}
		if err := supply.ConsumeStock(req.Quantity); err != nil {
			return err
		}
		if err := repos.SupplyRepo().Save(ctx, supply); err != nil {
			return err
		}

		transfer, err = inventory.NewSupplyTransfer(req.StoreID, req.SupplyID, req.Quantity, req.UnitPrice, transferredAt)
		if err != nil {
			return err
		}
		return repos.SupplyTransferRepo().Save(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}
	return ToSupplyTransferResponse(transfer), nil
}

// RecordDisposal discards stock and decrements the aggregate.
func (s *InventoryService) RecordDisposal(ctx context.Context, req RecordDisposalRequest) error {
	disposal, err := inventory.NewDisposal(req.ItemID, req.Quantity, req.Reason)
	if err != nil {
		return err
	}

	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		agg, err := ensureAggregate(ctx, repos, req.ItemID)
		if err != nil {
			return err
		}
		if err := agg.Decrease(req.Quantity); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, agg); err != nil {
			return err
		}
		return repos.DisposalRepo().Save(ctx, disposal)
	})
}

// RecordAdjustment applies a signed stocktake correction to the
// aggregate. Unlike disposal, negative results are allowed.
func (s *InventoryService) RecordAdjustment(ctx context.Context, req RecordAdjustmentRequest) error {
	adjustment, err := inventory.NewInventoryAdjustment(req.ItemID, req.AdjustmentType, req.Quantity, req.Reason)
	if err != nil {
		return err
	}

	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		agg, err := ensureAggregate(ctx, repos, req.ItemID)
		if err != nil {
			return err
		}
		if err := agg.Adjust(req.Quantity); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, agg); err != nil {
			return err
		}
		return repos.AdjustmentRepo().Save(ctx, adjustment)
	})
}

// GetStock returns the aggregate row for an item, lazily reconstructing
// it from the ledgers when absent.
func (s *InventoryService) GetStock(ctx context.Context, itemID uint) (*StockResponse, error) {
	inv, err := s.inventoryRepo.FindByItem(ctx, itemID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		arrived, err := s.inventoryRepo.SumArrivedQuantity(ctx, itemID)
		if err != nil {
			return nil, err
		}
		transferred, err := s.inventoryRepo.SumTransferredQuantity(ctx, itemID)
		if err != nil {
			return nil, err
		}
		inv = inventory.NewInventory(itemID, arrived-transferred, nil)
		if err := s.inventoryRepo.Save(ctx, inv); err != nil {
			return nil, err
		}
	}
	return ToStockResponse(inv), nil
}

// ListStock returns aggregate rows, positive quantities first.
func (s *InventoryService) ListStock(ctx context.Context, filter shared.Filter) ([]StockResponse, error) {
	rows, err := s.inventoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockResponse, len(rows))
	for i := range rows {
		responses[i] = *ToStockResponse(&rows[i])
	}
	return responses, nil
}

// ListArrivals returns arrival lots for an item, newest first.
func (s *InventoryService) ListArrivals(ctx context.Context, itemID uint) ([]ArrivalResponse, error) {
	lots, err := s.arrivalRepo.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	responses := make([]ArrivalResponse, len(lots))
	for i := range lots {
		responses[i] = *ToArrivalResponse(&lots[i])
	}
	return responses, nil
}

// ListTransfers returns transfers matching the filter, newest first.
func (s *InventoryService) ListTransfers(ctx context.Context, filter inventory.TransferFilter) ([]TransferResponse, error) {
	transfers, err := s.transferRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TransferResponse, len(transfers))
	for i := range transfers {
		responses[i] = *ToTransferResponse(&transfers[i])
	}
	return responses, nil
}

// LongTermStock lists items whose oldest arrival is older than the
// given number of days while stock remains.
func (s *InventoryService) LongTermStock(ctx context.Context, olderThanDays int, now time.Time) ([]inventory.LongTermStock, error) {
	if olderThanDays <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Alert threshold must be positive")
	}
	threshold := now.AddDate(0, 0, -olderThanDays)
	return s.inventoryRepo.FindLongTermStock(ctx, threshold)
}
