package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer by its ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uint) (*inventory.Transfer, error) {
	var transfer inventory.Transfer
	if err := r.db.WithContext(ctx).First(&transfer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

// FindAll lists transfers matching the filter, newest first
func (r *GormTransferRepository) FindAll(ctx context.Context, filter inventory.TransferFilter) ([]inventory.Transfer, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Transfer{})

	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.ItemID != 0 {
		query = query.Where("item_id = ?", filter.ItemID)
	}
	if filter.DateFrom != nil {
		query = query.Where("transferred_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("transferred_at <= ?", *filter.DateTo)
	}
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var transfers []inventory.Transfer
	if err := query.
		Order("transferred_at desc, id desc").
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// FindByStoreAndPeriod lists a store's transfers with a transfer date
// inside [from, to] inclusive
func (r *GormTransferRepository) FindByStoreAndPeriod(ctx context.Context, storeID uint, from, to time.Time) ([]inventory.Transfer, error) {
	var transfers []inventory.Transfer
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND transferred_at >= ? AND transferred_at <= ?", storeID, from, to).
		Order("transferred_at asc, id asc").
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Save persists a transfer
func (r *GormTransferRepository) Save(ctx context.Context, transfer *inventory.Transfer) error {
	return r.db.WithContext(ctx).Save(transfer).Error
}

var _ inventory.TransferRepository = (*GormTransferRepository)(nil)

// GormSupplyTransferRepository implements SupplyTransferRepository using GORM
type GormSupplyTransferRepository struct {
	db *gorm.DB
}

// NewGormSupplyTransferRepository creates a new GormSupplyTransferRepository
func NewGormSupplyTransferRepository(db *gorm.DB) *GormSupplyTransferRepository {
	return &GormSupplyTransferRepository{db: db}
}

// FindAll lists supply transfers matching the filter, newest first
func (r *GormSupplyTransferRepository) FindAll(ctx context.Context, filter inventory.SupplyTransferFilter) ([]inventory.SupplyTransfer, error) {
	query := r.db.WithContext(ctx).Model(&inventory.SupplyTransfer{})

	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.SupplyID != 0 {
		query = query.Where("supply_id = ?", filter.SupplyID)
	}
	if filter.DateFrom != nil {
		query = query.Where("transferred_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("transferred_at <= ?", *filter.DateTo)
	}
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var transfers []inventory.SupplyTransfer
	if err := query.
		Order("transferred_at desc, id desc").
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// FindByStoreAndPeriod lists a store's supply transfers with a transfer
// date inside [from, to] inclusive
func (r *GormSupplyTransferRepository) FindByStoreAndPeriod(ctx context.Context, storeID uint, from, to time.Time) ([]inventory.SupplyTransfer, error) {
	var transfers []inventory.SupplyTransfer
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND transferred_at >= ? AND transferred_at <= ?", storeID, from, to).
		Order("transferred_at asc, id asc").
		Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Save persists a supply transfer
func (r *GormSupplyTransferRepository) Save(ctx context.Context, transfer *inventory.SupplyTransfer) error {
	return r.db.WithContext(ctx).Save(transfer).Error
}

var _ inventory.SupplyTransferRepository = (*GormSupplyTransferRepository)(nil)
