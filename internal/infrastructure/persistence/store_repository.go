package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/partner"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uint) (*partner.Store, error) {
	var store partner.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// FindActive returns active stores ordered by sort order
func (r *GormStoreRepository) FindActive(ctx context.Context) ([]partner.Store, error) {
	var stores []partner.Store
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order asc, id asc").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// FindAll returns all stores ordered by sort order
func (r *GormStoreRepository) FindAll(ctx context.Context) ([]partner.Store, error) {
	var stores []partner.Store
	if err := r.db.WithContext(ctx).
		Order("sort_order asc, id asc").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, store *partner.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// UpdateSortOrders applies a batch of id -> sort order updates
func (r *GormStoreRepository) UpdateSortOrders(ctx context.Context, orders map[uint]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			if err := tx.Model(&partner.Store{}).
				Where("id = ?", id).
				Update("sort_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ partner.StoreRepository = (*GormStoreRepository)(nil)
