package handlers

import (
	"strconv"

	"safecity/internal/models"
	"safecity/internal/services"
	"safecity/internal/utils"
	"safecity/internal/validators"

	"github.com/gin-gonic/gin"
)

type SOSHandler struct {
	sosService services.SOSService
}

func NewSOSHandler(sosService services.SOSService) *SOSHandler {
	return &SOSHandler{
		sosService: sosService,
	}
}

// TriggerSOS sends the emergency SMS to every configured contact and
// reports the per-recipient outcome
func (h *SOSHandler) TriggerSOS(c *gin.Context) {
	var request validators.TriggerSOSRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if fields := validators.ValidateTriggerSOSRequest(&request); fields != nil {
		utils.ValidationErrorResponse(c, fields)
		return
	}

	alert, err := h.sosService.TriggerSOS(c.Request.Context(), request.Latitude, request.Longitude)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sent := alert.ContactsNotified
	utils.SuccessResponse(c, "SOS alert dispatched", gin.H{
		"alert":  alert,
		"sent":   sent,
		"failed": len(alert.Recipients) - sent,
	})
}

// ListAlerts lists recent SOS alerts, newest first
func (h *SOSHandler) ListAlerts(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPageSize)), 10, 64)
	if err != nil || limit < 0 {
		utils.BadRequestResponse(c, "Invalid limit")
		return
	}
	if limit > utils.MaxPageSize {
		limit = utils.MaxPageSize
	}

	alerts, err := h.sosService.ListAlerts(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if alerts == nil {
		alerts = []*models.SOSAlert{}
	}

	utils.SuccessResponse(c, "SOS alerts retrieved successfully", gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
