package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeIncident   NotificationType = "incident"
	NotificationTypeAssignment NotificationType = "assignment"
	NotificationTypeStatus     NotificationType = "status"
	NotificationTypeGeneral    NotificationType = "general"
)

// Notification is an append-only message addressed to a user. Rows are never
// mutated after insert.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
}
