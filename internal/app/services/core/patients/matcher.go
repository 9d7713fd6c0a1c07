package patients

import (
	"strings"

	"nhscribe-service/internal/app/models"
)

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Match returns the first patient in snapshot order that satisfies every
// active filter of query. Name must be equal after normalization, age must be
// equal when the query has one and address must contain the query fragment
// when the fragment is not blank.
func Match(query models.PatientQuery, snapshot []models.Patient) (*models.Patient, bool) {
	name := normalize(query.Name)
	address := normalize(query.Address)

	for i := range snapshot {
		candidate := snapshot[i]
		if normalize(candidate.Name) != name {
			continue
		}
		if query.Age != nil && (candidate.Age == nil || *candidate.Age != *query.Age) {
			continue
		}
		if address != "" && !strings.Contains(normalize(candidate.Address), address) {
			continue
		}
		return &candidate, true
	}
	return nil, false
}

// HydrateForm copies a matched registry record into the working form.
// Registry values win, but a blank registry field keeps what the form holds.
func HydrateForm(form models.PatientForm, match *models.Patient) models.PatientForm {
	if match == nil {
		return form
	}

	form.PatientID = match.ID
	form.Name = firstNonBlank(match.Name, form.Name)
	form.Sex = firstNonBlank(match.Sex, form.Sex)
	form.Address = firstNonBlank(match.Address, form.Address)
	form.Conditions = firstNonBlank(match.Conditions, form.Conditions)
	if match.Age != nil {
		age := *match.Age
		form.Age = &age
	}
	return form
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
