package settings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flower8718/backend/internal/domain/settings"
	"github.com/flower8718/backend/internal/domain/shared"
)

type fakeTaxRateRepo struct {
	rates  []settings.TaxRate
	nextID uint
}

func (r *fakeTaxRateRepo) FindAll(_ context.Context) ([]settings.TaxRate, error) {
	out := make([]settings.TaxRate, len(r.rates))
	copy(out, r.rates)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].EffectiveFrom.After(out[i].EffectiveFrom) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeTaxRateRepo) Save(_ context.Context, rate *settings.TaxRate) error {
	if rate.ID == 0 {
		r.nextID++
		rate.ID = r.nextID
	}
	r.rates = append(r.rates, *rate)
	return nil
}

func TestCreateTaxRate(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a rate with defaults applied", func(t *testing.T) {
		svc := NewTaxRateService(&fakeTaxRateRepo{})

		resp, err := svc.Create(ctx, CreateTaxRateRequest{
			Name:          "軽減税率",
			Rate:          decimal.NewFromFloat(0.08),
			EffectiveFrom: time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
		assert.Equal(t, "軽減税率", resp.Name)
		assert.True(t, resp.Rate.Equal(decimal.NewFromFloat(0.08)))
		assert.False(t, resp.IsDefault)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects a rate of one or more", func(t *testing.T) {
		svc := NewTaxRateService(&fakeTaxRateRepo{})

		_, err := svc.Create(ctx, CreateTaxRateRequest{
			Name:          "無効な税率",
			Rate:          decimal.NewFromInt(10),
			EffectiveFrom: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		svc := NewTaxRateService(&fakeTaxRateRepo{})

		_, err := svc.Create(ctx, CreateTaxRateRequest{
			Rate:          decimal.NewFromFloat(0.10),
			EffectiveFrom: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		})
		require.Error(t, err)
	})
}

func TestListTaxRates(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTaxRateRepo{}
	svc := NewTaxRateService(repo)

	_, err := svc.Create(ctx, CreateTaxRateRequest{
		Name:          "旧税率",
		Rate:          decimal.NewFromFloat(0.08),
		EffectiveFrom: time.Date(2014, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaxRateRequest{
		Name:          "標準税率",
		Rate:          decimal.NewFromFloat(0.10),
		EffectiveFrom: time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC),
		IsDefault:     true,
	})
	require.NoError(t, err)

	rates, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "標準税率", rates[0].Name)
	assert.True(t, rates[0].IsDefault)
	assert.Equal(t, "旧税率", rates[1].Name)
}
