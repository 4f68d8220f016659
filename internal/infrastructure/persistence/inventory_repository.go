package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormInventoryRepository implements InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByItem finds the aggregate row for an item
func (r *GormInventoryRepository) FindByItem(ctx context.Context, itemID uint) (*inventory.Inventory, error) {
	var inv inventory.Inventory
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindAll lists aggregate rows with positive quantity first
func (r *GormInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Inventory, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Inventory{})
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var rows []inventory.Inventory
	if err := query.
		Order("quantity > 0 desc, item_id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates an aggregate row
func (r *GormInventoryRepository) Save(ctx context.Context, inv *inventory.Inventory) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

// SumArrivedQuantity sums all arrival quantities for an item
func (r *GormInventoryRepository) SumArrivedQuantity(ctx context.Context, itemID uint) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Arrival{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// SumTransferredQuantity sums all transfer quantities for an item
func (r *GormInventoryRepository) SumTransferredQuantity(ctx context.Context, itemID uint) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Transfer{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// FindLongTermStock finds items whose oldest arrival is older than the
// threshold and whose aggregate quantity is still positive
func (r *GormInventoryRepository) FindLongTermStock(ctx context.Context, olderThan time.Time) ([]inventory.LongTermStock, error) {
	type row struct {
		ItemID        uint
		ItemCode      string
		ItemName      string
		Quantity      int
		OldestArrival time.Time
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Table("inventory").
		Select("inventory.item_id AS item_id, items.item_code AS item_code, items.name AS item_name, inventory.quantity AS quantity, MIN(arrivals.arrived_at) AS oldest_arrival").
		Joins("JOIN items ON items.id = inventory.item_id").
		Joins("JOIN arrivals ON arrivals.item_id = inventory.item_id").
		Where("inventory.quantity > 0").
		Group("inventory.item_id, items.item_code, items.name, inventory.quantity").
		Having("MIN(arrivals.arrived_at) < ?", olderThan).
		Order("oldest_arrival asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]inventory.LongTermStock, 0, len(rows))
	for _, r := range rows {
		result = append(result, inventory.LongTermStock{
			ItemID:        r.ItemID,
			ItemCode:      r.ItemCode,
			ItemName:      r.ItemName,
			Quantity:      r.Quantity,
			OldestArrival: r.OldestArrival,
			AgeDays:       int(now.Sub(r.OldestArrival).Hours() / 24),
		})
	}
	return result, nil
}

var _ inventory.InventoryRepository = (*GormInventoryRepository)(nil)
