package validators

// TriggerSOSRequest carries the caller's live position. Pointers
// distinguish "not sent" from a legitimate zero coordinate.
type TriggerSOSRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func ValidateTriggerSOSRequest(req *TriggerSOSRequest) map[string]string {
	return ValidateStruct(req)
}
