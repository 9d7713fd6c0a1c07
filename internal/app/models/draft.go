package models

import "time"

// DraftSession is the state of one "create letter" flow.
type DraftSession struct {
	ID           string           `json:"id"`
	DoctorName   string           `json:"doctor_name"`
	Patient      PatientForm      `json:"patient"`
	CheckStatus  string           `json:"check_status,omitempty"`
	CheckMessage string           `json:"check_message,omitempty"`
	DataType     string           `json:"data_type"`
	RawData      string           `json:"raw_data"`
	Urgency      string           `json:"urgency"`
	Notes        string           `json:"notes"`
	Batch        *ResultBatch     `json:"batch,omitempty"`
	Generated    *GeneratedLetter `json:"generated,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// DraftUpdate carries the form fields the clinician edited. Nil fields are
// left untouched.
type DraftUpdate struct {
	Name       *string `json:"name,omitempty"`
	Age        *int    `json:"age,omitempty"`
	ClearAge   bool    `json:"clear_age,omitempty"`
	Sex        *string `json:"sex,omitempty"`
	Address    *string `json:"address,omitempty"`
	Conditions *string `json:"conditions,omitempty"`
	DataType   *string `json:"data_type,omitempty"`
	RawData    *string `json:"raw_data,omitempty"`
	Urgency    *string `json:"urgency,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	DoctorName *string `json:"doctor_name,omitempty"`
}

// FormPreview is the preview derived from the form fields.
type FormPreview struct {
	PatientName    string `json:"patient_name"`
	PatientID      string `json:"patient_id,omitempty"`
	TestType       string `json:"test_type"`
	Urgency        string `json:"urgency"`
	ResultsSummary string `json:"results_summary,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Preview is either empty, a form preview, or the generated artifact. Once a
// generated artifact exists it is the only thing shown.
type Preview struct {
	Kind      string           `json:"kind"`
	Form      *FormPreview     `json:"form,omitempty"`
	Generated *GeneratedLetter `json:"generated,omitempty"`
}

const (
	PreviewKindEmpty     = "empty"
	PreviewKindForm      = "form"
	PreviewKindGenerated = "generated"
)

// GenerateLetterRequest is the letterData sent to the generation service.
type GenerateLetterRequest struct {
	Patient    Patient     `json:"patient"`
	DoctorName string      `json:"doctorName,omitempty"`
	TestType   string      `json:"testType"`
	Urgency    string      `json:"urgency"`
	Notes      string      `json:"notes,omitempty"`
	RawData    string      `json:"rawData,omitempty"`
	BatchID    string      `json:"batchId,omitempty"`
	Results    []ResultRow `json:"results,omitempty"`
}
