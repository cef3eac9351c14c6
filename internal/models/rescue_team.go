package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamStatus string
type TeamType string

const (
	TeamStatusActive   TeamStatus = "active"
	TeamStatusInactive TeamStatus = "inactive"
	TeamStatusBusy     TeamStatus = "busy"

	TeamTypeMedical  TeamType = "medical"
	TeamTypeFire     TeamType = "fire"
	TeamTypePolice   TeamType = "police"
	TeamTypeDisaster TeamType = "disaster"
)

// RescueTeam shares its ID with the user account it belongs to. Both rows
// are created in a single transaction, so the pairing cannot drift.
type RescueTeam struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Type        TeamType   `json:"type"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Status      TeamStatus `json:"status"`
	ServiceArea string     `json:"service_area"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TeamWithDistance is a matcher result row: a candidate team and its
// great-circle distance from the incident in kilometers.
type TeamWithDistance struct {
	RescueTeam
	DistanceKM float64 `json:"distance_km"`
}

// TeamCaseStats summarizes a team's assignment history for its profile view.
type TeamCaseStats struct {
	TotalCases    int `json:"total_cases"`
	ResolvedCases int `json:"resolved_cases"`
	ActiveCases   int `json:"active_cases"`
}

func ValidTeamType(t string) bool {
	switch TeamType(t) {
	case TeamTypeMedical, TeamTypeFire, TeamTypePolice, TeamTypeDisaster:
		return true
	}
	return false
}

func ValidTeamStatus(s string) bool {
	switch TeamStatus(s) {
	case TeamStatusActive, TeamStatusInactive, TeamStatusBusy:
		return true
	}
	return false
}
