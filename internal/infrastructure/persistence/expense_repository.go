package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/finance"
	"github.com/flower8718/backend/internal/domain/shared"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uint) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAll lists expenses matching the filter, newest first
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	query := r.db.WithContext(ctx).Model(&finance.Expense{})

	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.DateFrom != nil {
		query = query.Where("expense_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("expense_date <= ?", *filter.DateTo)
	}
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var expenses []finance.Expense
	if err := query.
		Order("expense_date desc, id desc").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// SumByCategory totals expenses per category within [from, to]
func (r *GormExpenseRepository) SumByCategory(ctx context.Context, from, to time.Time, storeID *uint) (map[string]decimal.Decimal, error) {
	type row struct {
		Category string
		Total    decimal.Decimal
	}
	query := r.db.WithContext(ctx).
		Model(&finance.Expense{}).
		Select("category AS category, COALESCE(SUM(amount), 0) AS total").
		Where("expense_date >= ? AND expense_date <= ?", from, to)
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var rows []row
	if err := query.Group("category").Scan(&rows).Error; err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		sums[r.Category] = r.Total
	}
	return sums, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&finance.Expense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
