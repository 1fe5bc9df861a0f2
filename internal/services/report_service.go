package services

import (
	"context"
	"fmt"

	"safecity/internal/models"
	"safecity/internal/repositories/interfaces"
	"safecity/internal/utils"
	"safecity/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportService interface {
	CreateReport(ctx context.Context, report *models.Report) (*models.Report, error)
	GetReport(ctx context.Context, reportID string) (*models.Report, error)
	ListReports(ctx context.Context, filter *models.ReportFilter) ([]*models.Report, error)
	ListMapReports(ctx context.Context) ([]*models.Report, error)
	UpdateReportStatus(ctx context.Context, session *models.Session, id string, status models.ReportStatus) (*models.Report, error)
	CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error)
}

type reportService struct {
	reportRepo  interfaces.ReportRepository
	broadcaster Broadcaster
	logger      *logger.Logger
}

func NewReportService(reportRepo interfaces.ReportRepository, broadcaster Broadcaster, logger *logger.Logger) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *reportService) CreateReport(ctx context.Context, report *models.Report) (*models.Report, error) {
	if fields := validateReport(report); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	report.ReportID = utils.GenerateReportID()
	report.Status = models.ReportStatusPending
	report.Title = utils.SanitizeString(report.Title)
	report.Description = utils.SanitizeString(report.Description)
	report.Location = utils.SanitizeString(report.Location)

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.logger.WithReportID(report.ReportID).
		WithField("type", report.Type).
		Info("Report submitted")

	s.broadcaster.BroadcastEvent(utils.EventReportCreated, map[string]interface{}{
		"report_id": report.ReportID,
		"type":      report.Type,
		"title":     report.Title,
	})

	return report, nil
}

func (s *reportService) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	report, err := s.reportRepo.GetByReportID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", reportID, err)
	}

	return report, nil
}

// ListReports races the query against a fixed ceiling so a slow store
// surfaces as a timeout instead of hanging the dashboard.
func (s *reportService) ListReports(ctx context.Context, filter *models.ReportFilter) ([]*models.Report, error) {
	if filter != nil {
		if filter.Status != "" && !filter.Status.IsValid() {
			return nil, NewValidationError("status", "unknown report status")
		}
		if filter.Type != "" && !filter.Type.IsValid() {
			return nil, NewValidationError("type", "unknown report type")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, utils.ReportListTimeout)
	defer cancel()

	reports, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	return reports, nil
}

func (s *reportService) ListMapReports(ctx context.Context) ([]*models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.ReportListTimeout)
	defer cancel()

	reports, err := s.reportRepo.ListWithCoordinates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list map reports: %w", err)
	}

	return reports, nil
}

func (s *reportService) UpdateReportStatus(ctx context.Context, session *models.Session, id string, status models.ReportStatus) (*models.Report, error) {
	if session == nil || !session.Role.HasCapability(models.CapModerateReports) {
		return nil, ErrUnauthorized
	}

	if !status.IsValid() {
		return nil, NewValidationError("status", "unknown report status")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NewValidationError("id", "invalid report id")
	}

	report, err := s.reportRepo.GetByID(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}

	if err := s.reportRepo.UpdateStatus(ctx, report.ID, status); err != nil {
		return nil, fmt.Errorf("update report status: %w", err)
	}

	previous := report.Status
	report.Status = status

	s.logger.LogModerationEvent(report.ReportID, "status_change", map[string]interface{}{
		"from":         previous,
		"to":           status,
		"moderator_id": session.UserID.Hex(),
	})

	s.broadcaster.BroadcastEvent(utils.EventReportUpdated, map[string]interface{}{
		"report_id": report.ReportID,
		"status":    status,
	})

	return report, nil
}

func (s *reportService) CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error) {
	counts, err := s.reportRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	// every status appears in the dashboard, including empty ones
	for _, status := range []models.ReportStatus{
		models.ReportStatusPending,
		models.ReportStatusInProgress,
		models.ReportStatusResolved,
		models.ReportStatusDismissed,
	} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}

	return counts, nil
}

func validateReport(report *models.Report) map[string]string {
	fields := make(map[string]string)

	if report.Title == "" {
		fields["title"] = "title is required"
	}
	if report.Description == "" {
		fields["description"] = "description is required"
	}
	if report.Type == "" {
		fields["type"] = "report type is required"
	} else if !report.Type.IsValid() {
		fields["type"] = "unknown report type"
	}

	if report.Image != "" && !utils.IsValidURL(report.Image) {
		fields["image"] = "image must be a valid http(s) url"
	}

	// coordinates are optional but must arrive as a valid pair
	if (report.Latitude == nil) != (report.Longitude == nil) {
		fields["coordinates"] = "latitude and longitude must be provided together"
	} else if report.HasCoordinates() {
		if !utils.IsValidCoordinates(*report.Latitude, *report.Longitude) {
			fields["coordinates"] = "coordinates are out of range"
		}
	}

	return fields
}
