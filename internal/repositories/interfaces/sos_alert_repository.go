package interfaces

import (
	"context"

	"safecity/internal/models"
)

type SOSAlertRepository interface {
	Create(ctx context.Context, alert *models.SOSAlert) error
	List(ctx context.Context, limit int64) ([]*models.SOSAlert, error)
}
