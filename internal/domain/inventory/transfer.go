package inventory

import (
	"time"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Transfer records outbound movement of an item from the warehouse to a
// store. The sale and wholesale prices are captured at transfer time so
// the margin survives later master-data edits.
type Transfer struct {
	shared.BaseEntity
	StoreID        uint             `gorm:"not null;index" json:"store_id"`
	ItemID         uint             `gorm:"not null;index" json:"item_id"`
	ArrivalID      *uint            `gorm:"index" json:"arrival_id"` // originating lot, when attributed
	Quantity       int              `gorm:"not null" json:"quantity"`
	UnitPrice      decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	WholesalePrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"wholesale_price"`
	Margin         *decimal.Decimal `gorm:"type:decimal(10,2)" json:"margin"`
	TransferredAt  time.Time        `gorm:"type:date;not null;index" json:"transferred_at"`
}

// TableName returns the table name for GORM
func (Transfer) TableName() string {
	return "transfers"
}

// NewTransfer validates prices/quantity and computes the margin.
// The margin is only defined when both prices are present.
func NewTransfer(storeID, itemID uint, arrivalID *uint, quantity int, unitPrice decimal.Decimal, wholesalePrice *decimal.Decimal, transferredAt time.Time) (*Transfer, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	if wholesalePrice != nil && wholesalePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Wholesale price cannot be negative")
	}

	t := &Transfer{
		StoreID:        storeID,
		ItemID:         itemID,
		ArrivalID:      arrivalID,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		WholesalePrice: wholesalePrice,
		TransferredAt:  transferredAt,
	}
	t.Margin = t.CalculateMargin()
	return t, nil
}

// CalculateMargin returns (unit price − wholesale price) × quantity,
// or nil when the wholesale price was not captured.
func (t *Transfer) CalculateMargin() *decimal.Decimal {
	if t.WholesalePrice == nil {
		return nil
	}
	m := t.UnitPrice.Sub(*t.WholesalePrice).Mul(decimal.NewFromInt(int64(t.Quantity)))
	return &m
}

// Subtotal returns quantity × sale unit price.
func (t *Transfer) Subtotal() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// SupplyTransfer records outbound movement of a supply to a store.
// Supplies have no lot ledger; stock is tracked on the Supply row.
type SupplyTransfer struct {
	shared.BaseEntity
	StoreID       uint            `gorm:"not null;index" json:"store_id"`
	SupplyID      uint            `gorm:"not null;index" json:"supply_id"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TransferredAt time.Time       `gorm:"type:date;not null;index" json:"transferred_at"`
}

// TableName returns the table name for GORM
func (SupplyTransfer) TableName() string {
	return "supply_transfers"
}

// NewSupplyTransfer validates and creates a supply transfer record.
func NewSupplyTransfer(storeID, supplyID uint, quantity int, unitPrice decimal.Decimal, transferredAt time.Time) (*SupplyTransfer, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	return &SupplyTransfer{
		StoreID:       storeID,
		SupplyID:      supplyID,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TransferredAt: transferredAt,
	}, nil
}

// Subtotal returns quantity × unit price.
func (t *SupplyTransfer) Subtotal() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}
