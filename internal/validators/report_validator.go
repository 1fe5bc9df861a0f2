package validators

import "safecity/internal/models"

type CreateReportRequest struct {
	Type        models.ReportType `json:"type" validate:"required"`
	Title       string            `json:"title" validate:"required,min=3,max=200"`
	Description string            `json:"description" validate:"required,min=10,max=5000"`
	Location    string            `json:"location" validate:"omitempty,max=500"`
	Latitude    *float64          `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64          `json:"longitude" validate:"omitempty,longitude"`
	Image       string            `json:"image" validate:"omitempty,url"`
}

type UpdateReportStatusRequest struct {
	Status models.ReportStatus `json:"status" validate:"required"`
}

func ValidateCreateReportRequest(req *CreateReportRequest) map[string]string {
	fields := ValidateStruct(req)
	if fields == nil {
		fields = make(map[string]string)
	}

	if req.Type != "" && !req.Type.IsValid() {
		fields["type"] = "unknown report type"
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		fields["coordinates"] = "latitude and longitude must be provided together"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func ValidateUpdateReportStatusRequest(req *UpdateReportStatusRequest) map[string]string {
	fields := ValidateStruct(req)
	if fields == nil {
		fields = make(map[string]string)
	}

	if req.Status != "" && !req.Status.IsValid() {
		fields["status"] = "unknown report status"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (r *CreateReportRequest) ToModel() *models.Report {
	return &models.Report{
		Type:        r.Type,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Image:       r.Image,
	}
}
