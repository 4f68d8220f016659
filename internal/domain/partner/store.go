package partner

import (
	"strings"

	"github.com/flower8718/backend/internal/domain/shared"
)

// Operation types for a store
const (
	OperationHeadquarters = "headquarters"
	OperationFranchise    = "franchise"
)

// Store types
const (
	StoreTypeStore       = "store"
	StoreTypeOnline      = "online"
	StoreTypeConsignment = "consignment"
)

// Store represents a retail store the warehouse delivers to.
type Store struct {
	shared.BaseEntity
	Name          string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	OperationType string `gorm:"size:20;not null" json:"operation_type"`
	StoreType     string `gorm:"size:20;not null" json:"store_type"`
	Email         string `gorm:"size:255" json:"email"`
	Color         string `gorm:"size:7" json:"color"` // display color, e.g. #E53935
	SortOrder     int    `gorm:"default:99" json:"sort_order"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store after validating its classification.
func NewStore(name, operationType, storeType, email, color string) (*Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store name is required")
	}
	switch operationType {
	case OperationHeadquarters, OperationFranchise:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Operation type must be headquarters or franchise")
	}
	switch storeType {
	case StoreTypeStore, StoreTypeOnline, StoreTypeConsignment:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Store type must be store, online or consignment")
	}

	return &Store{
		Name:          name,
		OperationType: operationType,
		StoreType:     storeType,
		Email:         email,
		Color:         color,
		SortOrder:     99,
		IsActive:      true,
	}, nil
}

// Deactivate soft-disables the store for display purposes.
func (s *Store) Deactivate() {
	s.IsActive = false
}
