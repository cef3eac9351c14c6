package validators

import (
	"strings"
)

type CreateTeamRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6,max=128"`
	Phone       string  `json:"phone" validate:"omitempty,min=7,max=20"`
	Type        string  `json:"type" validate:"required,oneof=medical fire police disaster"`
	Latitude    float64 `json:"latitude" validate:"latitude_range"`
	Longitude   float64 `json:"longitude" validate:"longitude_range"`
	ServiceArea string  `json:"service_area" validate:"required,min=2,max=200"`
}

type UpdateTeamStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type UpdateAvailabilityRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive busy"`
}

type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude_range"`
	Longitude float64 `json:"longitude" validate:"longitude_range"`
}

type UpdateTeamProfileRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone       string `json:"phone" validate:"omitempty,min=7,max=20"`
	Type        string `json:"type" validate:"omitempty,oneof=medical fire police disaster"`
	ServiceArea string `json:"service_area" validate:"omitempty,min=2,max=200"`
}

type AssignTeamRequest struct {
	TeamID string `json:"team_id" validate:"required,uuid"`
}

type RespondAssignmentRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

func ValidateCreateTeam(req *CreateTeamRequest) ValidationErrors {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	return ValidateStruct(req)
}
