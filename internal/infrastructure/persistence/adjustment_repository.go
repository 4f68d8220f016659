package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/inventory"
)

// GormDisposalRepository implements DisposalRepository using GORM
type GormDisposalRepository struct {
	db *gorm.DB
}

// NewGormDisposalRepository creates a new GormDisposalRepository
func NewGormDisposalRepository(db *gorm.DB) *GormDisposalRepository {
	return &GormDisposalRepository{db: db}
}

// FindByItem lists disposals for an item, newest first
func (r *GormDisposalRepository) FindByItem(ctx context.Context, itemID uint) ([]inventory.Disposal, error) {
	var disposals []inventory.Disposal
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at desc, id desc").
		Find(&disposals).Error; err != nil {
		return nil, err
	}
	return disposals, nil
}

// Save persists a disposal
func (r *GormDisposalRepository) Save(ctx context.Context, disposal *inventory.Disposal) error {
	return r.db.WithContext(ctx).Save(disposal).Error
}

var _ inventory.DisposalRepository = (*GormDisposalRepository)(nil)

// GormAdjustmentRepository implements AdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindByItem lists adjustments for an item, newest first
func (r *GormAdjustmentRepository) FindByItem(ctx context.Context, itemID uint) ([]inventory.InventoryAdjustment, error) {
	var adjustments []inventory.InventoryAdjustment
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at desc, id desc").
		Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// Save persists an adjustment
func (r *GormAdjustmentRepository) Save(ctx context.Context, adjustment *inventory.InventoryAdjustment) error {
	return r.db.WithContext(ctx).Save(adjustment).Error
}

var _ inventory.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
