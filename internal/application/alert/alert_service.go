package alert

import (
	"context"
	"time"

	"github.com/flower8718/backend/internal/domain/alert"
	"github.com/flower8718/backend/internal/domain/shared"
)

// AlertResponse represents an error alert in API responses
type AlertResponse struct {
	ID         uint       `json:"id"`
	Source     string     `json:"source"`
	Message    string     `json:"message"`
	Detail     string     `json:"detail"`
	Status     string     `json:"status"`
	ResolvedAt *time.Time `json:"resolved_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToAlertResponse converts an error alert to a response DTO
func ToAlertResponse(a *alert.ErrorAlert) *AlertResponse {
	return &AlertResponse{
		ID:         a.ID,
		Source:     a.Source,
		Message:    a.Message,
		Detail:     a.Detail,
		Status:     a.Status,
		ResolvedAt: a.ResolvedAt,
		CreatedAt:  a.CreatedAt,
	}
}

// AlertService records and resolves operational alerts
type AlertService struct {
	alertRepo alert.AlertRepository
}

// NewAlertService creates a new AlertService
func NewAlertService(alertRepo alert.AlertRepository) *AlertService {
	return &AlertService{alertRepo: alertRepo}
}

// Raise records a pending alert.
func (s *AlertService) Raise(ctx context.Context, source, message, detail string) error {
	a, err := alert.NewErrorAlert(source, message, detail)
	if err != nil {
		return err
	}
	return s.alertRepo.Save(ctx, a)
}

// List returns alerts, pending only unless includeResolved is set
func (s *AlertService) List(ctx context.Context, includeResolved bool) ([]AlertResponse, error) {
	var (
		alerts []alert.ErrorAlert
		err    error
	)
	filter := shared.DefaultFilter()
	if includeResolved {
		alerts, err = s.alertRepo.FindAll(ctx, filter)
	} else {
		alerts, err = s.alertRepo.FindPending(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]AlertResponse, len(alerts))
	for i := range alerts {
		responses[i] = *ToAlertResponse(&alerts[i])
	}
	return responses, nil
}

// PendingCount returns the number of unresolved alerts
func (s *AlertService) PendingCount(ctx context.Context) (int64, error) {
	return s.alertRepo.CountPending(ctx)
}

// Resolve marks an alert as handled
func (s *AlertService) Resolve(ctx context.Context, id uint) (*AlertResponse, error) {
	a, err := s.alertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Resolve(); err != nil {
		return nil, err
	}
	if err := s.alertRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	return ToAlertResponse(a), nil
}
