package responses

import "nhscribe-service/internal/app/models"

type Review struct {
	ID          string      `json:"id"`
	LetterID    string      `json:"letterId"`
	PatientID   string      `json:"patientId"`
	PatientName string      `json:"patientName,omitempty"`
	DoctorName  string      `json:"doctorName"`
	Details     string      `json:"details"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	Status      string      `json:"status"`
	ApprovedAt  string      `json:"approvedAt,omitempty"`
	NextStatus  string      `json:"nextStatus,omitempty"`
	Content     string      `json:"content"`
	Persisted   string      `json:"persisted"`
	Dirty       bool        `json:"dirty"`
	SaveNotice  *SaveNotice `json:"saveNotice,omitempty"`
}

type SaveNotice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type BoardRow struct {
	models.LetterSummary
	NextStatus string `json:"nextStatus,omitempty"`
	InFlight   bool   `json:"inFlight"`
}
