package settings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flower8718/backend/internal/domain/settings"
)

// CreateTaxRateRequest registers a new consumption tax rate
type CreateTaxRateRequest struct {
	Name          string          `json:"name" binding:"required,max=50"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	EffectiveFrom time.Time       `json:"effective_from" binding:"required" time_format:"2006-01-02"`
	IsDefault     bool            `json:"is_default"`
}

// TaxRateResponse represents a tax rate master row in API responses
type TaxRateResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveFrom time.Time       `json:"effective_from"`
	IsDefault     bool            `json:"is_default"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToTaxRateResponse converts a tax rate to a response DTO
func ToTaxRateResponse(rate *settings.TaxRate) *TaxRateResponse {
	return &TaxRateResponse{
		ID:            rate.ID,
		Name:          rate.Name,
		Rate:          rate.Rate,
		EffectiveFrom: rate.EffectiveFrom,
		IsDefault:     rate.IsDefault,
		IsActive:      rate.IsActive,
		CreatedAt:     rate.CreatedAt,
	}
}

// TaxRateService maintains the consumption tax rate master.
type TaxRateService struct {
	taxRateRepo settings.TaxRateRepository
}

// NewTaxRateService creates a new TaxRateService
func NewTaxRateService(taxRateRepo settings.TaxRateRepository) *TaxRateService {
	return &TaxRateService{taxRateRepo: taxRateRepo}
}

// List returns every tax rate, newest effective date first.
func (s *TaxRateService) List(ctx context.Context) ([]TaxRateResponse, error) {
	rates, err := s.taxRateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]TaxRateResponse, len(rates))
	for i := range rates {
		responses[i] = *ToTaxRateResponse(&rates[i])
	}
	return responses, nil
}

// Create registers a tax rate row.
func (s *TaxRateService) Create(ctx context.Context, req CreateTaxRateRequest) (*TaxRateResponse, error) {
	rate, err := settings.NewTaxRate(req.Name, req.Rate, req.EffectiveFrom, req.IsDefault)
	if err != nil {
		return nil, err
	}
	if err := s.taxRateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	return ToTaxRateResponse(rate), nil
}
