package handlers

import (
	"strconv"

	"safecity/internal/services"
	"safecity/internal/utils"

	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	routeService services.RouteService
}

func NewRouteHandler(routeService services.RouteService) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
	}
}

// SafeRoute returns route alternatives scored by incident proximity
func (h *RouteHandler) SafeRoute(c *gin.Context) {
	var request services.SafeRouteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.routeService.SafeRoute(c.Request.Context(), &request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Safe routes computed successfully", response)
}

// Geocode resolves a free-text address to coordinates
func (h *RouteHandler) Geocode(c *gin.Context) {
	response, err := h.routeService.Geocode(c.Request.Context(), c.Query("address"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Address resolved successfully", response)
}

// ReverseGeocode resolves coordinates to the nearest address
func (h *RouteHandler) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		utils.BadRequestResponse(c, "lat and lng query parameters are required")
		return
	}

	response, err := h.routeService.ReverseGeocode(c.Request.Context(), lat, lng)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coordinates resolved successfully", response)
}
