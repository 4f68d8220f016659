package partner

import (
	"time"

	"github.com/flower8718/backend/internal/domain/partner"
)

// CreateStoreRequest represents a request to create a new store
type CreateStoreRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	OperationType string `json:"operation_type" binding:"required,oneof=headquarters franchise"`
	StoreType     string `json:"store_type" binding:"required,oneof=store online consignment"`
	Email         string `json:"email" binding:"omitempty,email,max=255"`
	Color         string `json:"color" binding:"omitempty,max=7"`
	SortOrder     *int   `json:"sort_order"`
}

// UpdateStoreRequest represents a partial update; nil fields are untouched
type UpdateStoreRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	OperationType *string `json:"operation_type" binding:"omitempty,oneof=headquarters franchise"`
	StoreType     *string `json:"store_type" binding:"omitempty,oneof=store online consignment"`
	Email         *string `json:"email" binding:"omitempty,email,max=255"`
	Color         *string `json:"color" binding:"omitempty,max=7"`
	SortOrder     *int    `json:"sort_order"`
	IsActive      *bool   `json:"is_active"`
}

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	OperationType string    `json:"operation_type"`
	StoreType     string    `json:"store_type"`
	Email         string    `json:"email"`
	Color         string    `json:"color"`
	SortOrder     int       `json:"sort_order"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToStoreResponse converts a domain store to a response DTO
func ToStoreResponse(s *partner.Store) *StoreResponse {
	return &StoreResponse{
		ID:            s.ID,
		Name:          s.Name,
		OperationType: s.OperationType,
		StoreType:     s.StoreType,
		Email:         s.Email,
		Color:         s.Color,
		SortOrder:     s.SortOrder,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// CreateSupplierRequest represents a request to create a new supplier
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Email       string `json:"email" binding:"omitempty,email,max=255"`
	CSVEncoding string `json:"csv_encoding" binding:"omitempty,oneof=utf-8 shift_jis cp932"`
	CSVFormat   string `json:"csv_format" binding:"omitempty,max=50"`
	SortOrder   *int   `json:"sort_order"`
}

// UpdateSupplierRequest represents a partial update; nil fields are untouched
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	CSVEncoding *string `json:"csv_encoding" binding:"omitempty,oneof=utf-8 shift_jis cp932"`
	CSVFormat   *string `json:"csv_format" binding:"omitempty,max=50"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CSVEncoding string    `json:"csv_encoding"`
	CSVFormat   string    `json:"csv_format"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier to a response DTO
func ToSupplierResponse(s *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		CSVEncoding: s.CSVEncoding,
		CSVFormat:   s.CSVFormat,
		SortOrder:   s.SortOrder,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SortOrderRequest reorders rows by mapping IDs to sort positions
type SortOrderRequest struct {
	Orders map[uint]int `json:"orders" binding:"required"`
}
