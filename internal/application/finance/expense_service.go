package finance

import (
	"context"
	"time"

	"github.com/flower8718/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest registers one operating cost entry
type CreateExpenseRequest struct {
	StoreID     *uint           `json:"store_id"`
	Category    string          `json:"category" binding:"required,max=50"`
	Description string          `json:"description" binding:"max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate *time.Time      `json:"expense_date" time_format:"2006-01-02"`
	Note        string          `json:"note"`
}

// UpdateExpenseRequest represents a partial update; nil fields are untouched
type UpdateExpenseRequest struct {
	StoreID     *uint            `json:"store_id"`
	Category    *string          `json:"category" binding:"omitempty,max=50"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *time.Time       `json:"expense_date" time_format:"2006-01-02"`
	Note        *string          `json:"note"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uint            `json:"id"`
	StoreID     *uint           `json:"store_id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToExpenseResponse converts an expense to a response DTO
func ToExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		StoreID:     e.StoreID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ExpenseService handles operating cost entries
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// Create registers a new expense
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	date := time.Now()
	if req.ExpenseDate != nil {
		date = *req.ExpenseDate
	}

	expense, err := finance.NewExpense(req.StoreID, req.Category, req.Description, req.Amount, date, req.Note)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return ToExpenseResponse(expense), nil
}

// Get returns an expense by ID
func (s *ExpenseService) Get(ctx context.Context, id uint) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToExpenseResponse(expense), nil
}

// List returns expenses matching the filter
func (s *ExpenseService) List(ctx context.Context, filter finance.ExpenseFilter) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = *ToExpenseResponse(&expenses[i])
	}
	return responses, nil
}

// Update applies a partial update to an expense
func (s *ExpenseService) Update(ctx context.Context, id uint, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StoreID != nil {
		expense.StoreID = req.StoreID
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = *req.ExpenseDate
	}
	if req.Note != nil {
		expense.Note = *req.Note
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return ToExpenseResponse(expense), nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}
