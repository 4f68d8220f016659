package alert

import (
	"context"

	"github.com/flower8718/backend/internal/domain/shared"
)

// AlertRepository defines the persistence interface for error alerts.
type AlertRepository interface {
	FindByID(ctx context.Context, id uint) (*ErrorAlert, error)
	FindPending(ctx context.Context, filter shared.Filter) ([]ErrorAlert, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ErrorAlert, error)
	CountPending(ctx context.Context) (int64, error)
	Save(ctx context.Context, alert *ErrorAlert) error
}
