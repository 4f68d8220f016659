package catalog

import (
	"time"

	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to create a new item.
// An empty item code means one is generated.
type CreateItemRequest struct {
	ItemCode         string           `json:"item_code" binding:"omitempty,len=4,numeric"`
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	Variety          string           `json:"variety" binding:"max=200"`
	Category         string           `json:"category" binding:"max=50"`
	DefaultUnitPrice *decimal.Decimal `json:"default_unit_price"`
	TaxRate          *decimal.Decimal `json:"tax_rate"`
	SortOrder        *int             `json:"sort_order"`
}

// UpdateItemRequest represents a partial update; nil fields are untouched
type UpdateItemRequest struct {
	ItemCode         *string          `json:"item_code" binding:"omitempty,len=4,numeric"`
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Variety          *string          `json:"variety" binding:"omitempty,max=200"`
	Category         *string          `json:"category" binding:"omitempty,max=50"`
	DefaultUnitPrice *decimal.Decimal `json:"default_unit_price"`
	TaxRate          *decimal.Decimal `json:"tax_rate"`
	SortOrder        *int             `json:"sort_order"`
	IsActive         *bool            `json:"is_active"`
	PriceReason      string           `json:"price_reason"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID               uint             `json:"id"`
	ItemCode         string           `json:"item_code"`
	Name             string           `json:"name"`
	Variety          string           `json:"variety"`
	Category         string           `json:"category"`
	DefaultUnitPrice *decimal.Decimal `json:"default_unit_price"`
	TaxRate          decimal.Decimal  `json:"tax_rate"`
	SortOrder        int              `json:"sort_order"`
	IsActive         bool             `json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(i *catalog.Item) *ItemResponse {
	return &ItemResponse{
		ID:               i.ID,
		ItemCode:         i.ItemCode,
		Name:             i.Name,
		Variety:          i.Variety,
		Category:         i.Category,
		DefaultUnitPrice: i.DefaultUnitPrice,
		TaxRate:          i.TaxRate,
		SortOrder:        i.SortOrder,
		IsActive:         i.IsActive,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// PriceChangeResponse represents one price history entry
type PriceChangeResponse struct {
	ID        uint             `json:"id"`
	ItemID    uint             `json:"item_id"`
	OldPrice  *decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal  `json:"new_price"`
	Reason    string           `json:"reason"`
	ChangedAt time.Time        `json:"changed_at"`
}

// ToPriceChangeResponse converts a price change to a response DTO
func ToPriceChangeResponse(c *catalog.PriceChange) *PriceChangeResponse {
	return &PriceChangeResponse{
		ID:        c.ID,
		ItemID:    c.ItemID,
		OldPrice:  c.OldPrice,
		NewPrice:  c.NewPrice,
		Reason:    c.Reason,
		ChangedAt: c.CreatedAt,
	}
}

// SupplyPriceChangeResponse represents one supply price history entry
type SupplyPriceChangeResponse struct {
	ID        uint             `json:"id"`
	SupplyID  uint             `json:"supply_id"`
	OldPrice  *decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal  `json:"new_price"`
	Reason    string           `json:"reason"`
	ChangedAt time.Time        `json:"changed_at"`
}

// ToSupplyPriceChangeResponse converts a supply price change to a response DTO
func ToSupplyPriceChangeResponse(c *catalog.SupplyPriceChange) *SupplyPriceChangeResponse {
	return &SupplyPriceChangeResponse{
		ID:        c.ID,
		SupplyID:  c.SupplyID,
		OldPrice:  c.OldPrice,
		NewPrice:  c.NewPrice,
		Reason:    c.Reason,
		ChangedAt: c.CreatedAt,
	}
}

// CreateSupplyRequest represents a request to create a new supply
type CreateSupplyRequest struct {
	Name      string           `json:"name" binding:"required,min=1,max=200"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	SortOrder *int             `json:"sort_order"`
}

// UpdateSupplyRequest represents a partial update; nil fields are untouched
type UpdateSupplyRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	SortOrder   *int             `json:"sort_order"`
	IsActive    *bool            `json:"is_active"`
	PriceReason string           `json:"price_reason"`
}

// SupplyStockRequest adds stock to a supply
type SupplyStockRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// SupplyResponse represents a supply in API responses
type SupplyResponse struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal  `json:"tax_rate"`
	StockQuantity int              `json:"stock_quantity"`
	SortOrder     int              `json:"sort_order"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ToSupplyResponse converts a domain supply to a response DTO
func ToSupplyResponse(s *catalog.Supply) *SupplyResponse {
	return &SupplyResponse{
		ID:            s.ID,
		Name:          s.Name,
		UnitPrice:     s.UnitPrice,
		TaxRate:       s.TaxRate,
		StockQuantity: s.StockQuantity,
		SortOrder:     s.SortOrder,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// SortOrderRequest reorders rows by mapping IDs to sort positions
type SortOrderRequest struct {
	Orders map[uint]int `json:"orders" binding:"required"`
}
