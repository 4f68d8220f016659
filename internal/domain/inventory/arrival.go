package inventory

import (
	"time"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Arrival source types
const (
	SourceManual    = "manual"
	SourceCSVImport = "csv_import"
	SourcePDFImport = "pdf_import"
)

// Arrival is one incoming lot from a supplier. RemainingQuantity is a
// counter seeded from Quantity and decremented as transfers are
// attributed to this lot; 0 <= RemainingQuantity <= Quantity always.
type Arrival struct {
	shared.BaseEntity
	ItemID            uint             `gorm:"not null;index" json:"item_id"`
	SupplierID        uint             `gorm:"not null;index" json:"supplier_id"`
	Quantity          int              `gorm:"not null" json:"quantity"`
	WholesalePrice    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"wholesale_price"`
	RemainingQuantity int              `gorm:"not null" json:"remaining_quantity"`
	SourceType        string           `gorm:"size:20;default:manual" json:"source_type"`
	ArrivedAt         time.Time        `gorm:"not null;index" json:"arrived_at"`
}

// TableName returns the table name for GORM
func (Arrival) TableName() string {
	return "arrivals"
}

// NewArrival creates a lot with its remaining counter seeded from quantity.
func NewArrival(itemID, supplierID uint, quantity int, wholesalePrice *decimal.Decimal, sourceType string, arrivedAt time.Time) (*Arrival, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if wholesalePrice != nil && wholesalePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Wholesale price cannot be negative")
	}
	if sourceType == "" {
		sourceType = SourceManual
	}

	return &Arrival{
		ItemID:            itemID,
		SupplierID:        supplierID,
		Quantity:          quantity,
		WholesalePrice:    wholesalePrice,
		RemainingQuantity: quantity,
		SourceType:        sourceType,
		ArrivedAt:         arrivedAt,
	}, nil
}

// Consume attributes a transfer of the given quantity to this lot.
func (a *Arrival) Consume(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if quantity > a.RemainingQuantity {
		return shared.ErrInsufficientLotStock
	}
	a.RemainingQuantity -= quantity
	return nil
}

// FullyConsumed reports whether nothing remains of this lot.
func (a *Arrival) FullyConsumed() bool {
	return a.RemainingQuantity == 0
}

// AgeDays returns how many whole days have passed since arrival.
func (a *Arrival) AgeDays(now time.Time) int {
	return int(now.Sub(a.ArrivedAt).Hours() / 24)
}
