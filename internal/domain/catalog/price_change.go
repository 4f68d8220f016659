package catalog

import (
	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceChange records one change of an item's default unit price.
type PriceChange struct {
	shared.BaseEntity
	ItemID   uint             `gorm:"not null;index" json:"item_id"`
	OldPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"old_price"`
	NewPrice decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"new_price"`
	Reason   string           `gorm:"type:text" json:"reason"`
}

// TableName returns the table name for GORM
func (PriceChange) TableName() string {
	return "price_changes"
}

// SupplyPriceChange records one change of a supply's unit price.
type SupplyPriceChange struct {
	shared.BaseEntity
	SupplyID uint             `gorm:"not null;index" json:"supply_id"`
	OldPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"old_price"`
	NewPrice decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"new_price"`
	Reason   string           `gorm:"type:text" json:"reason"`
}

// TableName returns the table name for GORM
func (SupplyPriceChange) TableName() string {
	return "supply_price_changes"
}
