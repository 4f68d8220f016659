package partner

import (
	"strings"

	"github.com/flower8718/backend/internal/domain/shared"
)

// Supported CSV encodings declared per supplier
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
	EncodingCP932    = "cp932"
)

// Supplier represents a wholesale market or vendor stock arrives from.
type Supplier struct {
	shared.BaseEntity
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Email       string `gorm:"size:255" json:"email"`
	CSVEncoding string `gorm:"size:20;default:utf-8" json:"csv_encoding"`
	CSVFormat   string `gorm:"size:50" json:"csv_format"`
	SortOrder   int    `gorm:"default:99" json:"sort_order"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier. The CSV encoding defaults to UTF-8.
func NewSupplier(name, email, csvEncoding, csvFormat string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name is required")
	}
	if csvEncoding == "" {
		csvEncoding = EncodingUTF8
	}

	return &Supplier{
		Name:        name,
		Email:       email,
		CSVEncoding: csvEncoding,
		CSVFormat:   csvFormat,
		SortOrder:   99,
		IsActive:    true,
	}, nil
}
