package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/catalog"
)

// GormPriceChangeRepository implements PriceChangeRepository using GORM
type GormPriceChangeRepository struct {
	db *gorm.DB
}

// NewGormPriceChangeRepository creates a new GormPriceChangeRepository
func NewGormPriceChangeRepository(db *gorm.DB) *GormPriceChangeRepository {
	return &GormPriceChangeRepository{db: db}
}

// FindByItem lists price changes for an item, newest first
func (r *GormPriceChangeRepository) FindByItem(ctx context.Context, itemID uint) ([]catalog.PriceChange, error) {
	var changes []catalog.PriceChange
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at desc, id desc").
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// LatestPrices returns the most recent changed price per item
func (r *GormPriceChangeRepository) LatestPrices(ctx context.Context) (map[uint]catalog.PriceChange, error) {
	var changes []catalog.PriceChange
	if err := r.db.WithContext(ctx).
		Order("created_at asc, id asc").
		Find(&changes).Error; err != nil {
		return nil, err
	}

	// ascending order means the last write per item wins
	latest := make(map[uint]catalog.PriceChange, len(changes))
	for _, change := range changes {
		latest[change.ItemID] = change
	}
	return latest, nil
}

// Save persists a price change entry
func (r *GormPriceChangeRepository) Save(ctx context.Context, change *catalog.PriceChange) error {
	return r.db.WithContext(ctx).Save(change).Error
}

var _ catalog.PriceChangeRepository = (*GormPriceChangeRepository)(nil)

// GormSupplyPriceChangeRepository implements SupplyPriceChangeRepository using GORM
type GormSupplyPriceChangeRepository struct {
	db *gorm.DB
}

// NewGormSupplyPriceChangeRepository creates a new GormSupplyPriceChangeRepository
func NewGormSupplyPriceChangeRepository(db *gorm.DB) *GormSupplyPriceChangeRepository {
	return &GormSupplyPriceChangeRepository{db: db}
}

// FindBySupply lists price changes for a supply, newest first
func (r *GormSupplyPriceChangeRepository) FindBySupply(ctx context.Context, supplyID uint) ([]catalog.SupplyPriceChange, error) {
	var changes []catalog.SupplyPriceChange
	if err := r.db.WithContext(ctx).
		Where("supply_id = ?", supplyID).
		Order("created_at desc, id desc").
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// Save persists a supply price change entry
func (r *GormSupplyPriceChangeRepository) Save(ctx context.Context, change *catalog.SupplyPriceChange) error {
	return r.db.WithContext(ctx).Save(change).Error
}

var _ catalog.SupplyPriceChangeRepository = (*GormSupplyPriceChangeRepository)(nil)
