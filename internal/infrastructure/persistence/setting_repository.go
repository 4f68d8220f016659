package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flower8718/backend/internal/domain/settings"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormSettingRepository implements SettingRepository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindByKey finds a setting by its key
func (r *GormSettingRepository) FindByKey(ctx context.Context, key string) (*settings.Setting, error) {
	var setting settings.Setting
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// FindAll lists all settings ordered by key
func (r *GormSettingRepository) FindAll(ctx context.Context) ([]settings.Setting, error) {
	var all []settings.Setting
	if err := r.db.WithContext(ctx).
		Order("key asc").
		Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}

// Save upserts a setting by its key
func (r *GormSettingRepository) Save(ctx context.Context, setting *settings.Setting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
		}).
		Create(setting).Error
}

var _ settings.SettingRepository = (*GormSettingRepository)(nil)
