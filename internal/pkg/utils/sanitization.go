package utils

import (
	"strings"
	"unicode"

	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/dto/requests"
)

func capitalize(input string) string {
	if len(input) == 0 {
		return input
	}
	runes := []rune(input)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func trimPointer(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}

// NormalizeSex maps "m", "female", "OTHER" and friends onto M, F or Other.
// Anything else is returned trimmed so validation can reject it.
func NormalizeSex(input string) string {
	value := strings.TrimSpace(input)
	switch strings.ToLower(value) {
	case "m", "male":
		return constvars.SexMale
	case "f", "female":
		return constvars.SexFemale
	case "other", "o":
		return constvars.SexOther
	}
	return value
}

func SanitizePatientDraft(input *models.PatientDraft) {
	input.Name = strings.TrimSpace(input.Name)
	input.Sex = NormalizeSex(input.Sex)
	input.Address = strings.TrimSpace(input.Address)
	input.Conditions = strings.TrimSpace(input.Conditions)
}

func SanitizeStartDraftRequest(input *requests.StartDraft) {
	input.DoctorName = strings.TrimSpace(input.DoctorName)
	input.DataType = normalizeDataType(input.DataType)
	input.Urgency = capitalize(strings.TrimSpace(input.Urgency))
}

func SanitizeUpdateDraftRequest(input *requests.UpdateDraft) {
	trimPointer(input.Name)
	trimPointer(input.Address)
	trimPointer(input.Conditions)
	trimPointer(input.DoctorName)
	if input.Sex != nil {
		sex := NormalizeSex(*input.Sex)
		input.Sex = &sex
	}
	if input.DataType != nil {
		dataType := normalizeDataType(*input.DataType)
		input.DataType = &dataType
	}
	if input.Urgency != nil {
		urgency := capitalize(strings.TrimSpace(*input.Urgency))
		input.Urgency = &urgency
	}
}

func SanitizeOpenReviewRequest(input *requests.OpenReview) {
	input.LetterID = strings.TrimSpace(input.LetterID)
}

func normalizeDataType(input string) string {
	value := strings.TrimSpace(input)
	if strings.EqualFold(value, constvars.DataTypeCSV) {
		return constvars.DataTypeCSV
	}
	if strings.EqualFold(value, constvars.DataTypeText) {
		return constvars.DataTypeText
	}
	return value
}
