package catalog

import (
	"strings"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Supply represents a consumable good (wrapping paper, sleeves, buckets)
// with a single aggregate stock count and no lot-level tracking.
type Supply struct {
	shared.BaseEntity
	Name          string           `gorm:"size:200;not null" json:"name"`
	UnitPrice     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	TaxRate       decimal.Decimal  `gorm:"type:decimal(4,2);default:0.10" json:"tax_rate"`
	StockQuantity int              `gorm:"default:0" json:"stock_quantity"`
	SortOrder     int              `gorm:"default:99" json:"sort_order"`
	IsActive      bool             `gorm:"default:true" json:"is_active"`
}

// TableName returns the table name for GORM
func (Supply) TableName() string {
	return "supplies"
}

// NewSupply creates a new supply record.
func NewSupply(name string, unitPrice *decimal.Decimal) (*Supply, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supply name is required")
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	return &Supply{
		Name:      name,
		UnitPrice: unitPrice,
		TaxRate:   TaxRateStandard,
		SortOrder: 99,
		IsActive:  true,
	}, nil
}

// AddStock increases the stock count; quantity must be positive.
func (s *Supply) AddStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	s.StockQuantity += quantity
	return nil
}

// ConsumeStock decreases the stock count for an outbound transfer.
func (s *Supply) ConsumeStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if quantity > s.StockQuantity {
		return shared.ErrInsufficientStock
	}
	s.StockQuantity -= quantity
	return nil
}

// ChangePrice records the new unit price and returns the history entry.
func (s *Supply) ChangePrice(newPrice decimal.Decimal, reason string) (*SupplyPriceChange, error) {
	if newPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "New price cannot be negative")
	}
	change := &SupplyPriceChange{
		SupplyID: s.ID,
		OldPrice: s.UnitPrice,
		NewPrice: newPrice,
		Reason:   reason,
	}
	s.UnitPrice = &newPrice
	return change, nil
}
