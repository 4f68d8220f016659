package finance

import (
	"time"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense categories mirror the bookkeeping accounts used in the
// monthly profit report.
const (
	CategoryPurchase    = "仕入"
	CategoryRent        = "家賃"
	CategoryUtilities   = "水道光熱費"
	CategoryLabor       = "人件費"
	CategoryTransport   = "運送費"
	CategoryConsumables = "消耗品費"
	CategoryOther       = "その他"
)

// Expense is a single operating cost entry, optionally tied to a store.
type Expense struct {
	shared.BaseEntity
	StoreID     *uint           `gorm:"index" json:"store_id"`
	Category    string          `gorm:"size:50;not null" json:"category"`
	Description string          `gorm:"size:255" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	ExpenseDate time.Time       `gorm:"type:date;not null;index" json:"expense_date"`
	Note        string          `gorm:"type:text" json:"note"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates an expense entry.
func NewExpense(storeID *uint, category, description string, amount decimal.Decimal, date time.Time, note string) (*Expense, error) {
	if category == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense category is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense amount cannot be negative")
	}

	return &Expense{
		StoreID:     storeID,
		Category:    category,
		Description: description,
		Amount:      amount,
		ExpenseDate: date,
		Note:        note,
	}, nil
}
