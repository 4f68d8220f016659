package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormArrivalRepository implements ArrivalRepository using GORM
type GormArrivalRepository struct {
	db *gorm.DB
}

// NewGormArrivalRepository creates a new GormArrivalRepository
func NewGormArrivalRepository(db *gorm.DB) *GormArrivalRepository {
	return &GormArrivalRepository{db: db}
}

// FindByID finds an arrival lot by its ID
func (r *GormArrivalRepository) FindByID(ctx context.Context, id uint) (*inventory.Arrival, error) {
	var arrival inventory.Arrival
	if err := r.db.WithContext(ctx).First(&arrival, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &arrival, nil
}

// FindByItem lists lots for an item, newest first
func (r *GormArrivalRepository) FindByItem(ctx context.Context, itemID uint) ([]inventory.Arrival, error) {
	var arrivals []inventory.Arrival
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("arrived_at desc, id desc").
		Find(&arrivals).Error; err != nil {
		return nil, err
	}
	return arrivals, nil
}

// FindAll lists lots, newest first
func (r *GormArrivalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Arrival, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Arrival{})
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var arrivals []inventory.Arrival
	if err := query.
		Order("arrived_at desc, id desc").
		Find(&arrivals).Error; err != nil {
		return nil, err
	}
	return arrivals, nil
}

// Save creates or updates an arrival lot
func (r *GormArrivalRepository) Save(ctx context.Context, arrival *inventory.Arrival) error {
	return r.db.WithContext(ctx).Save(arrival).Error
}

var _ inventory.ArrivalRepository = (*GormArrivalRepository)(nil)
