package handlers

import (
	"safecity/internal/models"
	"safecity/internal/services"
	"safecity/internal/utils"
	"safecity/internal/validators"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// CreateContact adds a new emergency contact
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var request validators.CreateContactRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if fields := validators.ValidateCreateContactRequest(&request); fields != nil {
		utils.ValidationErrorResponse(c, fields)
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), request.ToModel())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Emergency contact added successfully", contact)
}

// ListContacts lists all emergency contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	contacts, err := h.contactService.ListContacts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Contacts retrieved successfully", gin.H{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

// DeleteContact removes an emergency contact
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.contactService.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Emergency contact removed successfully", nil)
}

// GetRelationshipSuggestions returns the suggested relationship labels
// for the contact form
func (h *ContactHandler) GetRelationshipSuggestions(c *gin.Context) {
	utils.SuccessResponse(c, "Relationship suggestions retrieved successfully", gin.H{
		"suggestions": models.RelationshipSuggestions,
	})
}
