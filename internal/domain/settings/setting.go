package settings

import (
	"github.com/flower8718/backend/internal/domain/shared"
)

// Well-known setting keys.
const (
	KeyTaxRate             = "tax_rate"
	KeyTaxRateReduced      = "tax_rate_reduced"
	KeyTaxRounding         = "tax_rounding"
	KeyTaxCalculation      = "tax_calculation"
	KeyInventoryAlertDays  = "inventory_alert_days"
	KeyBackupRetentionDays = "backup_retention_days"
	KeyInvoiceNumberFormat = "invoice_number_format"
	KeyFiscalYearStart     = "fiscal_year_start"
	KeyCompanyName         = "company_name"
)

// Defaults returns the full default key/value map. Missing keys are
// backfilled from this map on read.
func Defaults() map[string]string {
	return map[string]string{
		KeyTaxRate:             "0.10",
		KeyTaxRateReduced:      "0.08",
		KeyTaxRounding:         "floor",
		KeyTaxCalculation:      "per_item",
		KeyInventoryAlertDays:  "5",
		KeyBackupRetentionDays: "30",
		KeyInvoiceNumberFormat: "{year}-{month:02d}-{day:02d}-{seq:03d}",
		KeyFiscalYearStart:     "4",
		KeyCompanyName:         "",
	}
}

// Setting is a single key/value row. All values are stored as strings
// and parsed by the application layer.
type Setting struct {
	shared.BaseEntity
	Key         string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string `gorm:"type:text;not null" json:"value"`
	Description string `gorm:"size:255" json:"description"`
}

// TableName returns the table name for GORM
func (Setting) TableName() string {
	return "settings"
}

// NewSetting creates a setting row.
func NewSetting(key, value, description string) (*Setting, error) {
	if key == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Setting key is required")
	}
	return &Setting{Key: key, Value: value, Description: description}, nil
}
