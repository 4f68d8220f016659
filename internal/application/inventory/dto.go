package inventory

import (
	"time"

	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// RecordArrivalRequest registers one incoming lot
type RecordArrivalRequest struct {
	ItemID         uint             `json:"item_id" binding:"required"`
	SupplierID     uint             `json:"supplier_id" binding:"required"`
	Quantity       int              `json:"quantity" binding:"required,gt=0"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	SourceType     string           `json:"source_type" binding:"omitempty,oneof=manual csv_import pdf_import"`
	ArrivedAt      *time.Time       `json:"arrived_at"`
}

// ArrivalResponse represents an arrival lot in API responses
type ArrivalResponse struct {
	ID                uint             `json:"id"`
	ItemID            uint             `json:"item_id"`
	SupplierID        uint             `json:"supplier_id"`
	Quantity          int              `json:"quantity"`
	RemainingQuantity int              `json:"remaining_quantity"`
	WholesalePrice    *decimal.Decimal `json:"wholesale_price"`
	SourceType        string           `json:"source_type"`
	ArrivedAt         time.Time        `json:"arrived_at"`
	CreatedAt         time.Time        `json:"created_at"`
}

// ToArrivalResponse converts an arrival lot to a response DTO
func ToArrivalResponse(a *inventory.Arrival) *ArrivalResponse {
	return &ArrivalResponse{
		ID:                a.ID,
		ItemID:            a.ItemID,
		SupplierID:        a.SupplierID,
		Quantity:          a.Quantity,
		RemainingQuantity: a.RemainingQuantity,
		WholesalePrice:    a.WholesalePrice,
		SourceType:        a.SourceType,
		ArrivedAt:         a.ArrivedAt,
		CreatedAt:         a.CreatedAt,
	}
}

// RecordTransferRequest registers one outbound transfer to a store
type RecordTransferRequest struct {
	StoreID        uint             `json:"store_id" binding:"required"`
	ItemID         uint             `json:"item_id" binding:"required"`
	ArrivalID      *uint            `json:"arrival_id"`
	Quantity       int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice      decimal.Decimal  `json:"unit_price" binding:"required"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	TransferredAt  *time.Time       `json:"transferred_at"`
}

// TransferResponse represents a transfer in API responses
type TransferResponse struct {
	ID             uint             `json:"id"`
	StoreID        uint             `json:"store_id"`
	ItemID         uint             `json:"item_id"`
	ArrivalID      *uint            `json:"arrival_id"`
	Quantity       int              `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	Margin         *decimal.Decimal `json:"margin"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	TransferredAt  time.Time        `json:"transferred_at"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ToTransferResponse converts a transfer to a response DTO
func ToTransferResponse(t *inventory.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:             t.ID,
		StoreID:        t.StoreID,
		ItemID:         t.ItemID,
		ArrivalID:      t.ArrivalID,
		Quantity:       t.Quantity,
		UnitPrice:      t.UnitPrice,
		WholesalePrice: t.WholesalePrice,
		Margin:         t.Margin,
		Subtotal:       t.Subtotal(),
		TransferredAt:  t.TransferredAt,
		CreatedAt:      t.CreatedAt,
	}
}

// RecordSupplyTransferRequest registers one outbound supply transfer
type RecordSupplyTransferRequest struct {
	StoreID       uint            `json:"store_id" binding:"required"`
	SupplyID      uint            `json:"supply_id" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	TransferredAt *time.Time      `json:"transferred_at"`
}

// SupplyTransferResponse represents a supply transfer in API responses
type SupplyTransferResponse struct {
	ID            uint            `json:"id"`
	StoreID       uint            `json:"store_id"`
	SupplyID      uint            `json:"supply_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TransferredAt time.Time       `json:"transferred_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToSupplyTransferResponse converts a supply transfer to a response DTO
func ToSupplyTransferResponse(t *inventory.SupplyTransfer) *SupplyTransferResponse {
	return &SupplyTransferResponse{
		ID:            t.ID,
		StoreID:       t.StoreID,
		SupplyID:      t.SupplyID,
		Quantity:      t.Quantity,
		UnitPrice:     t.UnitPrice,
		Subtotal:      t.Subtotal(),
		TransferredAt: t.TransferredAt,
		CreatedAt:     t.CreatedAt,
	}
}

// RecordDisposalRequest discards stock from the warehouse
type RecordDisposalRequest struct {
	ItemID   uint   `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Reason   string `json:"reason"`
}

// RecordAdjustmentRequest applies a signed stocktake correction
type RecordAdjustmentRequest struct {
	ItemID         uint   `json:"item_id" binding:"required"`
	AdjustmentType string `json:"adjustment_type" binding:"required,oneof=increase decrease correction"`
	Quantity       int    `json:"quantity" binding:"required"`
	Reason         string `json:"reason"`
}

// StockResponse represents one aggregate ledger row
type StockResponse struct {
	ItemID    uint             `json:"item_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ToStockResponse converts an aggregate row to a response DTO
func ToStockResponse(inv *inventory.Inventory) *StockResponse {
	return &StockResponse{
		ItemID:    inv.ItemID,
		Quantity:  inv.Quantity,
		UnitPrice: inv.UnitPrice,
		UpdatedAt: inv.UpdatedAt,
	}
}
