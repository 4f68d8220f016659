package settings

import (
	"context"
	"errors"
	"strconv"

	"github.com/flower8718/backend/internal/domain/billing"
	"github.com/flower8718/backend/internal/domain/settings"
	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SettingsService reads and writes the key/value settings table.
// Reads fall back to the built-in defaults for missing keys.
type SettingsService struct {
	settingRepo settings.SettingRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingRepo settings.SettingRepository) *SettingsService {
	return &SettingsService{settingRepo: settingRepo}
}

// Get returns the value for a key, falling back to its default.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	setting, err := s.settingRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			if def, ok := settings.Defaults()[key]; ok {
				return def, nil
			}
		}
		return "", err
	}
	return setting.Value, nil
}

// All returns every setting merged over the defaults.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	merged := settings.Defaults()
	stored, err := s.settingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range stored {
		merged[row.Key] = row.Value
	}
	return merged, nil
}

// Set upserts a single setting value.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	setting, err := s.settingRepo.FindByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		setting, err = settings.NewSetting(key, value, "")
		if err != nil {
			return err
		}
	} else {
		setting.Value = value
	}
	return s.settingRepo.Save(ctx, setting)
}

// SetAll upserts a batch of setting values.
func (s *SettingsService) SetAll(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if err := s.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// RoundingPolicy returns the configured tax rounding policy.
// A corrupt stored value falls back to floor.
func (s *SettingsService) RoundingPolicy(ctx context.Context) (billing.RoundingPolicy, error) {
	raw, err := s.Get(ctx, settings.KeyTaxRounding)
	if err != nil {
		return "", err
	}
	policy, err := billing.ParseRoundingPolicy(raw)
	if err != nil {
		return billing.RoundingPolicy(billing.RoundingFloor), nil
	}
	return policy, nil
}

// InvoiceNumberFormat returns the configured invoice number template.
func (s *SettingsService) InvoiceNumberFormat(ctx context.Context) (string, error) {
	return s.Get(ctx, settings.KeyInvoiceNumberFormat)
}

// InventoryAlertDays returns the long-term stock threshold in days.
func (s *SettingsService) InventoryAlertDays(ctx context.Context) (int, error) {
	return s.getInt(ctx, settings.KeyInventoryAlertDays)
}

// BackupRetentionDays returns how long backup archives are kept.
func (s *SettingsService) BackupRetentionDays(ctx context.Context) (int, error) {
	return s.getInt(ctx, settings.KeyBackupRetentionDays)
}

// FiscalYearStart returns the fiscal year's first month (1-12).
func (s *SettingsService) FiscalYearStart(ctx context.Context) (int, error) {
	return s.getInt(ctx, settings.KeyFiscalYearStart)
}

// TaxRates returns the standard and reduced consumption tax rates.
func (s *SettingsService) TaxRates(ctx context.Context) (standard, reduced decimal.Decimal, err error) {
	standard, err = s.getDecimal(ctx, settings.KeyTaxRate)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	reduced, err = s.getDecimal(ctx, settings.KeyTaxRateReduced)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}
	return standard, reduced, nil
}

func (s *SettingsService) getInt(ctx context.Context, key string) (int, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// fall back to the shipped default rather than failing the caller
		if def, ok := settings.Defaults()[key]; ok {
			return strconv.Atoi(def)
		}
		return 0, shared.NewDomainError("INVALID_STATE", "Setting "+key+" is not an integer")
	}
	return n, nil
}

func (s *SettingsService) getDecimal(ctx context.Context, key string) (decimal.Decimal, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		if def, ok := settings.Defaults()[key]; ok {
			return decimal.NewFromString(def)
		}
		return decimal.Decimal{}, shared.NewDomainError("INVALID_STATE", "Setting "+key+" is not a number")
	}
	return d, nil
}
