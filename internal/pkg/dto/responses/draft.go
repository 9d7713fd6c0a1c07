package responses

import (
	"time"

	"nhscribe-service/internal/app/models"
)

type Draft struct {
	ID           string                  `json:"id"`
	DoctorName   string                  `json:"doctor_name"`
	Patient      models.PatientForm      `json:"patient"`
	CheckStatus  string                  `json:"check_status,omitempty"`
	CheckMessage string                  `json:"check_message,omitempty"`
	DataType     string                  `json:"data_type"`
	RawData      string                  `json:"raw_data"`
	Urgency      string                  `json:"urgency"`
	Notes        string                  `json:"notes"`
	Batch        *models.ResultBatch     `json:"batch,omitempty"`
	Generated    *models.GeneratedLetter `json:"generated,omitempty"`
	CanIngest    bool                    `json:"can_ingest"`
	CanGenerate  bool                    `json:"can_generate"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

type PatientCheck struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Patient *models.Patient `json:"patient,omitempty"`
	Draft   *Draft          `json:"draft,omitempty"`
}
