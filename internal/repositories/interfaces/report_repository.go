package interfaces

import (
	"context"

	"safecity/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error)
	GetByReportID(ctx context.Context, reportID string) (*models.Report, error)
	List(ctx context.Context, filter *models.ReportFilter) ([]*models.Report, error)
	ListWithCoordinates(ctx context.Context) ([]*models.Report, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReportStatus) error
	CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error)
}
