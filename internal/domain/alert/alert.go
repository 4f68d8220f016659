package alert

import (
	"time"

	"github.com/flower8718/backend/internal/domain/shared"
)

// Alert statuses
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
)

// ErrorAlert is a persisted operational notice, such as a CSV row that
// failed to import or a backup that could not be written.
type ErrorAlert struct {
	shared.BaseEntity
	Source     string     `gorm:"size:50;not null" json:"source"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	Detail     string     `gorm:"type:text" json:"detail"`
	Status     string     `gorm:"size:20;default:pending;index" json:"status"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

// TableName returns the table name for GORM
func (ErrorAlert) TableName() string {
	return "error_alerts"
}

// NewErrorAlert creates a pending alert.
func NewErrorAlert(source, message, detail string) (*ErrorAlert, error) {
	if source == "" || message == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Alert source and message are required")
	}
	return &ErrorAlert{
		Source:  source,
		Message: message,
		Detail:  detail,
		Status:  StatusPending,
	}, nil
}

// Resolve marks the alert as handled.
func (a *ErrorAlert) Resolve() error {
	if a.Status == StatusResolved {
		return shared.ErrInvalidState
	}
	now := time.Now()
	a.Status = StatusResolved
	a.ResolvedAt = &now
	return nil
}
