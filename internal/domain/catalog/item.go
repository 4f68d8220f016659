package catalog

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Tax rates used for invoice bracket classification
var (
	TaxRateStandard = decimal.NewFromFloat(0.10)
	TaxRateReduced  = decimal.NewFromFloat(0.08)
)

// DefaultCategory is assigned to items created implicitly by CSV import.
const DefaultCategory = "切花"

// Item code errors
var (
	ErrCodeTaken = shared.NewDomainError("ALREADY_EXISTS", "Item code is already in use")
	ErrBadCode   = shared.NewDomainError("INVALID_INPUT", "Item code must be 4 digits")
)

// Item represents one flower in the item master. The 4-digit code is
// randomly assigned at creation and may be changed later by hand.
type Item struct {
	shared.BaseEntity
	ItemCode         string           `gorm:"size:4;not null;uniqueIndex" json:"item_code"`
	Name             string           `gorm:"size:200;not null" json:"name"`
	Variety          string           `gorm:"size:200" json:"variety"`
	Category         string           `gorm:"size:50" json:"category"` // 切花 / 鉢花 / 資材 etc.
	DefaultUnitPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"default_unit_price"`
	TaxRate          decimal.Decimal  `gorm:"type:decimal(4,2);default:0.10" json:"tax_rate"`
	SortOrder        int              `gorm:"default:99" json:"sort_order"`
	IsActive         bool             `gorm:"default:true" json:"is_active"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item. An empty code means a random 4-digit code
// should be assigned by the caller via a CodeGenerator.
func NewItem(code, name, variety, category string, defaultUnitPrice *decimal.Decimal, taxRate decimal.Decimal) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item name is required")
	}
	if code != "" && !ValidItemCode(code) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item code must be 4 digits")
	}
	if taxRate.IsZero() {
		taxRate = TaxRateStandard
	}
	if defaultUnitPrice != nil && defaultUnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Default unit price cannot be negative")
	}

	return &Item{
		ItemCode:         code,
		Name:             name,
		Variety:          variety,
		Category:         category,
		DefaultUnitPrice: defaultUnitPrice,
		TaxRate:          taxRate,
		SortOrder:        99,
		IsActive:         true,
	}, nil
}

// ValidItemCode reports whether code is exactly four ASCII digits.
func ValidItemCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= 1000 && n <= 9999
}

// IsReducedRate reports whether the item falls into the 8% tax bracket.
func (i *Item) IsReducedRate() bool {
	return i.TaxRate.Equal(TaxRateReduced)
}

// ChangePrice records the new default price and returns the history entry.
func (i *Item) ChangePrice(newPrice decimal.Decimal, reason string) (*PriceChange, error) {
	if newPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "New price cannot be negative")
	}
	change := &PriceChange{
		ItemID:   i.ID,
		OldPrice: i.DefaultUnitPrice,
		NewPrice: newPrice,
		Reason:   reason,
	}
	i.DefaultUnitPrice = &newPrice
	return change, nil
}

// GenerateItemCode returns a random code in [1000, 9999]. The code space
// holds 9000 values, so callers must retry against the taken set; see
// CodeGenerator for the uniqueness loop.
func GenerateItemCode() string {
	return strconv.Itoa(1000 + rand.Intn(9000))
}

// CodeGenerator produces item codes that do not collide with taken codes.
type CodeGenerator struct {
	taken map[string]struct{}
}

// NewCodeGenerator creates a generator seeded with the already-taken codes.
func NewCodeGenerator(taken []string) *CodeGenerator {
	m := make(map[string]struct{}, len(taken))
	for _, c := range taken {
		m[c] = struct{}{}
	}
	return &CodeGenerator{taken: m}
}

// Next returns a fresh unique 4-digit code and marks it taken.
// Fails once the 9000-code space is exhausted rather than spinning forever.
func (g *CodeGenerator) Next() (string, error) {
	if len(g.taken) >= 9000 {
		return "", shared.NewDomainError("INVALID_STATE", "Item code space is exhausted")
	}
	for {
		code := GenerateItemCode()
		if _, exists := g.taken[code]; !exists {
			g.taken[code] = struct{}{}
			return code, nil
		}
	}
}
