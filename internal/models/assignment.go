package models

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentStatus string

const (
	AssignmentStatusNotified AssignmentStatus = "notified"
	AssignmentStatusAccepted AssignmentStatus = "accepted"
	AssignmentStatusRejected AssignmentStatus = "rejected"
)

// Assignment links one incident to one candidate rescue team. A team can be
// assigned to an incident at most once, enforced by a unique constraint on
// (incident_id, team_id).
type Assignment struct {
	ID         uuid.UUID        `json:"id"`
	IncidentID uuid.UUID        `json:"incident_id"`
	TeamID     uuid.UUID        `json:"team_id"`
	Status     AssignmentStatus `json:"status"`
	TeamName   string           `json:"team_name,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
