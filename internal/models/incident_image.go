package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentImage is the relational metadata for one uploaded image. The
// binary payload lives in whichever blob backend is configured; StorageKey
// locates it there and URL is what clients fetch.
type IncidentImage struct {
	ID          uuid.UUID `json:"id"`
	IncidentID  uuid.UUID `json:"incident_id"`
	StorageKey  string    `json:"-"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
