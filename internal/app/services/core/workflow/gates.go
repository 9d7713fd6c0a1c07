package workflow

import (
	"strings"

	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"
)

func requireResolvedPatient(draft *models.DraftSession, step string) error {
	patientID := draft.Patient.PatientID.String()
	if patientID == "" {
		return exceptions.ErrPatientRequired(step)
	}
	if utils.IsPlaceholderPatientID(patientID) {
		return exceptions.ErrPatientPlaceholder(patientID)
	}
	return nil
}

// requireResults checks the results gate of the selected data type. CSV needs
// a non-empty batch, anything else needs non-blank free text.
func requireResults(draft *models.DraftSession) error {
	if draft.DataType == constvars.DataTypeCSV {
		if draft.Batch.IsEmpty() {
			return exceptions.ErrResultsRequired(constvars.ErrDevResultsRequiredForCSV)
		}
		return nil
	}
	if strings.TrimSpace(draft.RawData) == "" {
		return exceptions.ErrResultsRequired(constvars.ErrDevResultsRequiredForText)
	}
	return nil
}

func CanIngest(draft *models.DraftSession) bool {
	return requireResolvedPatient(draft, "") == nil
}

func CanGenerate(draft *models.DraftSession) bool {
	return CanIngest(draft) && requireResults(draft) == nil
}

func buildGenerateRequest(draft *models.DraftSession) *models.GenerateLetterRequest {
	form := draft.Patient
	request := &models.GenerateLetterRequest{
		Patient: models.Patient{
			ID:         form.PatientID,
			Name:       form.Name,
			Age:        form.Age,
			Sex:        form.Sex,
			Address:    form.Address,
			Conditions: form.Conditions,
		},
		DoctorName: draft.DoctorName,
		TestType:   draft.DataType,
		Urgency:    draft.Urgency,
		Notes:      draft.Notes,
		RawData:    draft.RawData,
	}
	if draft.DataType == constvars.DataTypeCSV && !draft.Batch.IsEmpty() {
		batch := draft.Batch.Clone()
		request.BatchID = batch.BatchID
		request.Results = batch.Results
	}
	return request
}

// BuildPreview derives the preview surface. A generated letter always wins;
// otherwise the form drives it, and an untouched form shows nothing.
func BuildPreview(draft *models.DraftSession) *models.Preview {
	if draft.Generated != nil {
		return &models.Preview{
			Kind:      models.PreviewKindGenerated,
			Generated: draft.Generated,
		}
	}
	if draft.DataType == "" && draft.RawData == "" && draft.Notes == "" {
		return &models.Preview{Kind: models.PreviewKindEmpty}
	}

	form := &models.FormPreview{
		PatientName:    draft.Patient.Name,
		TestType:       draft.DataType,
		Urgency:        draft.Urgency,
		ResultsSummary: draft.RawData,
		Notes:          draft.Notes,
	}
	if !utils.IsPlaceholderPatientID(draft.Patient.PatientID.String()) {
		form.PatientID = draft.Patient.PatientID.String()
	}
	return &models.Preview{
		Kind: models.PreviewKindForm,
		Form: form,
	}
}
