package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/settings"
)

// GormTaxRateRepository implements TaxRateRepository using GORM
type GormTaxRateRepository struct {
	db *gorm.DB
}

// NewGormTaxRateRepository creates a new GormTaxRateRepository
func NewGormTaxRateRepository(db *gorm.DB) *GormTaxRateRepository {
	return &GormTaxRateRepository{db: db}
}

// FindAll lists tax rates, newest effective date first
func (r *GormTaxRateRepository) FindAll(ctx context.Context) ([]settings.TaxRate, error) {
	var rates []settings.TaxRate
	if err := r.db.WithContext(ctx).
		Order("effective_from desc").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// Save persists a tax rate row
func (r *GormTaxRateRepository) Save(ctx context.Context, rate *settings.TaxRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

var _ settings.TaxRateRepository = (*GormTaxRateRepository)(nil)
