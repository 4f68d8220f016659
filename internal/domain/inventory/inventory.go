package inventory

import (
	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Inventory is the aggregate stock ledger: one row per item. It is
// mutated by arrivals (+), transfers (−), disposals (−) and
// adjustments (±). The lot-level ledger lives on Arrival.
type Inventory struct {
	shared.BaseEntity
	ItemID    uint             `gorm:"not null;uniqueIndex" json:"item_id"`
	Quantity  int              `gorm:"not null;default:0" json:"quantity"`
	UnitPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
}

// TableName returns the table name for GORM
func (Inventory) TableName() string {
	return "inventory"
}

// NewInventory creates an aggregate row for an item. A negative baseline
// (more transferred than arrived in legacy data) is floored at zero.
func NewInventory(itemID uint, quantity int, unitPrice *decimal.Decimal) *Inventory {
	if quantity < 0 {
		quantity = 0
	}
	return &Inventory{
		ItemID:    itemID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

// Increase adds arrived stock to the aggregate.
func (inv *Inventory) Increase(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	inv.Quantity += quantity
	return nil
}

// Decrease removes stock for a transfer or disposal. The aggregate is
// never allowed to go negative; the caller's operation fails instead.
func (inv *Inventory) Decrease(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if quantity > inv.Quantity {
		return shared.ErrInsufficientStock
	}
	inv.Quantity -= quantity
	return nil
}

// Adjust applies a signed correction. Unlike Decrease there is no lower
// bound: stocktake corrections may drive the ledger through zero.
func (inv *Inventory) Adjust(delta int) error {
	if delta == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Adjustment quantity cannot be zero")
	}
	inv.Quantity += delta
	return nil
}
