package letters

import (
	"strings"

	"nhscribe-service/internal/app/models"
)

// ParseLetterStatus accepts any casing. Anything that is not Draft, Approved
// or Rejected becomes Unknown.
func ParseLetterStatus(raw string) models.LetterStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "draft":
		return models.LetterStatusDraft
	case "approved":
		return models.LetterStatusApproved
	case "rejected":
		return models.LetterStatusRejected
	}
	return models.LetterStatusUnknown
}

// NextStatus is the target of one click on the status control:
// Draft to Approved to Rejected and back to Draft. Unknown has no target.
func NextStatus(current models.LetterStatus) (models.LetterStatus, bool) {
	switch current {
	case models.LetterStatusDraft:
		return models.LetterStatusApproved, true
	case models.LetterStatusApproved:
		return models.LetterStatusRejected, true
	case models.LetterStatusRejected:
		return models.LetterStatusDraft, true
	}
	return "", false
}
