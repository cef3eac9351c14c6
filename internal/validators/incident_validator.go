package validators

import (
	"strings"
)

// CreateIncidentRequest is bound from the multipart form; images arrive as
// file parts and are handled separately.
type CreateIncidentRequest struct {
	Type        string  `form:"type" validate:"required,oneof=medical fire police disaster"`
	Description string  `form:"description" validate:"required,min=10,max=2000"`
	Latitude    float64 `form:"latitude" validate:"latitude_range"`
	Longitude   float64 `form:"longitude" validate:"longitude_range"`
}

type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending assigned in_progress resolved cancelled"`
}

type ListIncidentsRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=pending assigned in_progress resolved cancelled"`
	Type   string `form:"type" validate:"omitempty,oneof=medical fire police disaster"`
}

func ValidateCreateIncident(req *CreateIncidentRequest) ValidationErrors {
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	req.Description = strings.TrimSpace(req.Description)
	return ValidateStruct(req)
}
