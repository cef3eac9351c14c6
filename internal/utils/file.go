package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[strings.ToLower(contentType)]
}

// GenerateImageKey builds a unique storage key for an uploaded incident
// image, keeping the original extension so static serving sets a sensible
// content type.
func GenerateImageKey(incidentID uuid.UUID, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("incidents/%s/%d%s", incidentID.String(), time.Now().UnixNano(), ext)
}
