package handlers

import (
	"errors"
	"net/http"

	"safecity/internal/repositories/interfaces"
	"safecity/internal/services"
	"safecity/internal/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError translates service and storage errors into the
// response envelope. Storage unavailability and timeouts get their own
// statuses so clients can distinguish "retry later" from "bad request".
func handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		utils.ValidationErrorResponse(c, validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", utils.ErrInvalidCredentials)
	case errors.Is(err, services.ErrEmailTaken):
		utils.ErrorResponse(c, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists")
	case errors.Is(err, services.ErrDispatchFailed):
		utils.ErrorResponse(c, http.StatusInternalServerError, "SOS_DISPATCH_FAILED", "Could not reach any emergency contact")
	case errors.Is(err, services.ErrNoRoute):
		utils.ErrorResponse(c, http.StatusNotFound, "NO_ROUTE", "No route found between the given points")
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, "Record")
	case errors.Is(err, interfaces.ErrUnavailable):
		utils.UnavailableResponse(c)
	case errors.Is(err, interfaces.ErrTimeout):
		utils.TimeoutResponse(c)
	default:
		utils.InternalServerErrorResponse(c)
	}
}
