package handlers

import (
	"safecity/internal/models"
	"safecity/internal/services"
	"safecity/internal/utils"
	"safecity/internal/validators"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// CreateReport submits a new incident report
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var request validators.CreateReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if fields := validators.ValidateCreateReportRequest(&request); fields != nil {
		utils.ValidationErrorResponse(c, fields)
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), request.ToModel())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Report submitted successfully", report)
}

// GetReport retrieves a single report by its public identifier
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID := c.Param("id")

	report, err := h.reportService.GetReport(c.Request.Context(), reportID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Report retrieved successfully", report)
}

// ListReports lists reports, optionally filtered by status and type
func (h *ReportHandler) ListReports(c *gin.Context) {
	var filter models.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.BadRequestResponse(c, "Invalid filter: "+err.Error())
		return
	}

	reports, err := h.reportService.ListReports(c.Request.Context(), &filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Reports retrieved successfully", gin.H{
		"reports": reports,
		"count":   len(reports),
	})
}

// ListMapReports lists only reports that carry coordinates
func (h *ReportHandler) ListMapReports(c *gin.Context) {
	reports, err := h.reportService.ListMapReports(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Map reports retrieved successfully", gin.H{
		"reports": reports,
		"count":   len(reports),
	})
}

// UpdateReportStatus moves a report through the moderation workflow
func (h *ReportHandler) UpdateReportStatus(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if fields := validators.ValidateUpdateReportStatusRequest(&request); fields != nil {
		utils.ValidationErrorResponse(c, fields)
		return
	}

	report, err := h.reportService.UpdateReportStatus(c.Request.Context(), session, c.Param("id"), request.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Report status updated successfully", report)
}

// GetReportStats returns per-status report counts for the dashboard
func (h *ReportHandler) GetReportStats(c *gin.Context) {
	counts, err := h.reportService.CountByStatus(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Report statistics retrieved successfully", gin.H{
		"counts": counts,
	})
}
