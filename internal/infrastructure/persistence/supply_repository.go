package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormSupplyRepository implements SupplyRepository using GORM
type GormSupplyRepository struct {
	db *gorm.DB
}

// NewGormSupplyRepository creates a new GormSupplyRepository
func NewGormSupplyRepository(db *gorm.DB) *GormSupplyRepository {
	return &GormSupplyRepository{db: db}
}

// FindByID finds a supply by its ID
func (r *GormSupplyRepository) FindByID(ctx context.Context, id uint) (*catalog.Supply, error) {
	var supply catalog.Supply
	if err := r.db.WithContext(ctx).First(&supply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supply, nil
}

// FindAll lists supplies; inactive supplies sort after active ones
func (r *GormSupplyRepository) FindAll(ctx context.Context, includeInactive bool) ([]catalog.Supply, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Supply{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var supplies []catalog.Supply
	if err := query.
		Order("is_active desc, sort_order asc, id asc").
		Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// Save creates or updates a supply
func (r *GormSupplyRepository) Save(ctx context.Context, supply *catalog.Supply) error {
	return r.db.WithContext(ctx).Save(supply).Error
}

// UpdateSortOrders applies a batch of id -> sort order updates
func (r *GormSupplyRepository) UpdateSortOrders(ctx context.Context, orders map[uint]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			if err := tx.Model(&catalog.Supply{}).
				Where("id = ?", id).
				Update("sort_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ catalog.SupplyRepository = (*GormSupplyRepository)(nil)
