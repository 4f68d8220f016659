package finance

import (
	"context"
	"time"

	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	shared.Filter
	StoreID  *uint
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
}

// ExpenseRepository defines the persistence interface for expenses.
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uint) (*Expense, error)
	FindAll(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	// SumByCategory totals expenses per category within [from, to],
	// optionally for one store.
	SumByCategory(ctx context.Context, from, to time.Time, storeID *uint) (map[string]decimal.Decimal, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uint) error
}
