package settings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flower8718/backend/internal/domain/shared"
)

// TaxRate is one row of the consumption tax rate master. The invoice
// engine reads effective rates from settings; this master is the
// bookkeeping record behind them.
type TaxRate struct {
	shared.BaseEntity
	Name          string          `gorm:"size:50;not null" json:"name"`
	Rate          decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"rate"`
	EffectiveFrom time.Time       `gorm:"type:date;not null" json:"effective_from"`
	IsDefault     bool            `gorm:"default:false" json:"is_default"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
}

// TableName returns the table name for GORM
func (TaxRate) TableName() string {
	return "tax_rates"
}

// NewTaxRate creates a tax rate master row.
func NewTaxRate(name string, rate decimal.Decimal, effectiveFrom time.Time, isDefault bool) (*TaxRate, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tax rate name is required")
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tax rate must be between 0 and 1")
	}
	if effectiveFrom.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Effective date is required")
	}
	return &TaxRate{
		Name:          name,
		Rate:          rate,
		EffectiveFrom: effectiveFrom,
		IsDefault:     isDefault,
		IsActive:      true,
	}, nil
}

// TaxRateRepository defines the persistence interface for the tax
// rate master.
type TaxRateRepository interface {
	FindAll(ctx context.Context) ([]TaxRate, error)
	Save(ctx context.Context, rate *TaxRate) error
}
