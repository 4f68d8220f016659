package inventory

import (
	"github.com/flower8718/backend/internal/domain/shared"
)

// Adjustment types
const (
	AdjustmentIncrease   = "increase"
	AdjustmentDecrease   = "decrease"
	AdjustmentCorrection = "correction"
)

// Disposal records stock discarded from the warehouse (wilted flowers,
// breakage). It always decreases the aggregate ledger.
type Disposal struct {
	shared.BaseEntity
	ItemID   uint   `gorm:"not null;index" json:"item_id"`
	Quantity int    `gorm:"not null" json:"quantity"`
	Reason   string `gorm:"type:text" json:"reason"`
}

// TableName returns the table name for GORM
func (Disposal) TableName() string {
	return "disposals"
}

// NewDisposal validates and creates a disposal record.
func NewDisposal(itemID uint, quantity int, reason string) (*Disposal, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	return &Disposal{
		ItemID:   itemID,
		Quantity: quantity,
		Reason:   reason,
	}, nil
}

// InventoryAdjustment records a signed manual correction of the
// aggregate ledger. Unlike disposal it may increase stock, and no lower
// bound is enforced.
type InventoryAdjustment struct {
	shared.BaseEntity
	ItemID         uint   `gorm:"not null;index" json:"item_id"`
	AdjustmentType string `gorm:"size:20;not null" json:"adjustment_type"`
	Quantity       int    `gorm:"not null" json:"quantity"` // signed delta
	Reason         string `gorm:"type:text" json:"reason"`
}

// TableName returns the table name for GORM
func (InventoryAdjustment) TableName() string {
	return "inventory_adjustments"
}

// NewInventoryAdjustment validates and creates an adjustment record.
func NewInventoryAdjustment(itemID uint, adjustmentType string, quantity int, reason string) (*InventoryAdjustment, error) {
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Adjustment quantity cannot be zero")
	}
	switch adjustmentType {
	case AdjustmentIncrease, AdjustmentDecrease, AdjustmentCorrection:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Adjustment type must be increase, decrease or correction")
	}

	return &InventoryAdjustment{
		ItemID:         itemID,
		AdjustmentType: adjustmentType,
		Quantity:       quantity,
		Reason:         reason,
	}, nil
}
