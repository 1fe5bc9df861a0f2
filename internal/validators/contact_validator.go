package validators

import "safecity/internal/models"

type CreateContactRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	PhoneNumber  string `json:"phone_number" validate:"required,phone_number"`
	Relationship string `json:"relationship" validate:"required,max=50"`
}

func ValidateCreateContactRequest(req *CreateContactRequest) map[string]string {
	return ValidateStruct(req)
}

func (r *CreateContactRequest) ToModel() *models.Contact {
	return &models.Contact{
		Name:         r.Name,
		PhoneNumber:  r.PhoneNumber,
		Relationship: r.Relationship,
	}
}
