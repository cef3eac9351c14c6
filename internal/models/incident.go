package models

import (
	"time"

	"github.com/google/uuid"
)

type IncidentStatus string

const (
	IncidentStatusPending    IncidentStatus = "pending"
	IncidentStatusAssigned   IncidentStatus = "assigned"
	IncidentStatusInProgress IncidentStatus = "in_progress"
	IncidentStatusResolved   IncidentStatus = "resolved"
	IncidentStatusCancelled  IncidentStatus = "cancelled"
)

type Incident struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	Type          TeamType       `json:"type"`
	Description   string         `json:"description"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	Status        IncidentStatus `json:"status"`
	ReporterName  string         `json:"reporter_name,omitempty"`
	Images        []string       `json:"images"`
	AssignedTeams []string       `json:"assigned_teams"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// incidentTransitions is the status lattice. Resolved and cancelled are
// terminal; cancellation is allowed from every non-terminal state.
var incidentTransitions = map[IncidentStatus][]IncidentStatus{
	IncidentStatusPending:    {IncidentStatusAssigned, IncidentStatusCancelled},
	IncidentStatusAssigned:   {IncidentStatusInProgress, IncidentStatusCancelled},
	IncidentStatusInProgress: {IncidentStatusResolved, IncidentStatusCancelled},
	IncidentStatusResolved:   {},
	IncidentStatusCancelled:  {},
}

// CanTransition reports whether moving an incident from one status to
// another is legal. Every endpoint that mutates incident status checks this
// before writing.
func CanTransition(from, to IncidentStatus) bool {
	for _, next := range incidentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status admits no further transitions.
func (s IncidentStatus) Terminal() bool {
	return len(incidentTransitions[s]) == 0
}

func ValidIncidentStatus(s string) bool {
	switch IncidentStatus(s) {
	case IncidentStatusPending, IncidentStatusAssigned, IncidentStatusInProgress,
		IncidentStatusResolved, IncidentStatusCancelled:
		return true
	}
	return false
}
