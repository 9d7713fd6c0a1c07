package models

import "time"

type LetterStatus string

const (
	LetterStatusDraft    LetterStatus = "Draft"
	LetterStatusApproved LetterStatus = "Approved"
	LetterStatusRejected LetterStatus = "Rejected"
	LetterStatusUnknown  LetterStatus = "Unknown"
)

type Letter struct {
	ID          ExternalID `json:"id"`
	LetterUID   string     `json:"letterUid,omitempty"`
	PatientID   ExternalID `json:"patientId"`
	PatientName string     `json:"patientName,omitempty"`
	DoctorName  string     `json:"doctorName"`
	Details     string     `json:"details"`
	Status      string     `json:"status"`
	Content     string     `json:"content"`
	CreatedAt   string     `json:"createdAt,omitempty"`
	ApprovedAt  string     `json:"approvedAt,omitempty"`
}

// LetterSummary is one row of the recent letters list.
type LetterSummary struct {
	ID         ExternalID `json:"id"`
	PatientID  ExternalID `json:"patientId"`
	DoctorName string     `json:"doctorName"`
	Status     string     `json:"status"`
	Details    string     `json:"details"`
	Time       string     `json:"time"`
	Date       string     `json:"date"`
	ApprovedAt string     `json:"approvedAt,omitempty"`
}

// StatusSnapshot pairs status with approvedAt so both always change together.
type StatusSnapshot struct {
	Status     LetterStatus `json:"status"`
	ApprovedAt string       `json:"approvedAt,omitempty"`
}

// StatusTransition is one advance of a status machine. From is read under the
// same lock that applies To.
type StatusTransition struct {
	From StatusSnapshot
	To   StatusSnapshot
}

// StatusChange is the confirmed response of a status update.
type StatusChange struct {
	Status     string `json:"status"`
	ApprovedAt string `json:"approvedAt"`
}

// GeneratedLetter is the rendered artifact returned by letter generation.
type GeneratedLetter struct {
	PdfURL      string     `json:"pdfUrl"`
	LetterID    ExternalID `json:"letterId,omitempty"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// LetterPDF is an exported letter document.
type LetterPDF struct {
	LetterID    ExternalID
	FileName    string
	ContentType string
	Content     []byte
	ArchiveKey  string
}
