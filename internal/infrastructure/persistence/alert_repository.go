package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/alert"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormAlertRepository implements AlertRepository using GORM
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GormAlertRepository
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// FindByID finds an alert by its ID
func (r *GormAlertRepository) FindByID(ctx context.Context, id uint) (*alert.ErrorAlert, error) {
	var a alert.ErrorAlert
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindPending lists unresolved alerts, newest first
func (r *GormAlertRepository) FindPending(ctx context.Context, filter shared.Filter) ([]alert.ErrorAlert, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", alert.StatusPending)
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var alerts []alert.ErrorAlert
	if err := query.
		Order("created_at desc, id desc").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindAll lists alerts, newest first
func (r *GormAlertRepository) FindAll(ctx context.Context, filter shared.Filter) ([]alert.ErrorAlert, error) {
	query := r.db.WithContext(ctx).Model(&alert.ErrorAlert{})
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var alerts []alert.ErrorAlert
	if err := query.
		Order("created_at desc, id desc").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// CountPending counts unresolved alerts
func (r *GormAlertRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&alert.ErrorAlert{}).
		Where("status = ?", alert.StatusPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an alert
func (r *GormAlertRepository) Save(ctx context.Context, a *alert.ErrorAlert) error {
	return r.db.WithContext(ctx).Save(a).Error
}

var _ alert.AlertRepository = (*GormAlertRepository)(nil)
