package utils

import (
	"fmt"
	"strings"
	"time"

	"nhscribe-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

func GenerateSessionID() string {
	return uuid.New().String()
}

// GeneratePlaceholderPatientID returns an id for a patient the registry has
// not created yet. It must never be sent to the backend.
func GeneratePlaceholderPatientID() string {
	return constvars.PlaceholderPatientIDPrefix + uuid.New().String()
}

func IsPlaceholderPatientID(id string) bool {
	return strings.HasPrefix(id, constvars.PlaceholderPatientIDPrefix)
}

func GenerateArchiveObjectKey(letterID string, exportedAt time.Time) string {
	return fmt.Sprintf(constvars.ArchiveObjectKeyFormat, letterID, exportedAt.UTC().Format(constvars.ArchiveKeyLayout))
}

func GenerateLetterPDFFileName(letterID string) string {
	return fmt.Sprintf(constvars.LetterPDFFileNameFormat, letterID)
}
