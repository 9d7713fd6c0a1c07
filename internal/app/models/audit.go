package models

import "time"

type AuditEntry struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	Action     string    `json:"action" bson:"action"`
	LetterID   string    `json:"letter_id,omitempty" bson:"letter_id,omitempty"`
	PatientID  string    `json:"patient_id,omitempty" bson:"patient_id,omitempty"`
	FromStatus string    `json:"from_status,omitempty" bson:"from_status,omitempty"`
	ToStatus   string    `json:"to_status,omitempty" bson:"to_status,omitempty"`
	ApprovedAt string    `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	ObjectKey  string    `json:"object_key,omitempty" bson:"object_key,omitempty"`
	RequestID  string    `json:"request_id,omitempty" bson:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}

// LetterEvent is published whenever a letter moves through the workflow.
type LetterEvent struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	LetterID   string    `json:"letter_id"`
	PatientID  string    `json:"patient_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	ApprovedAt string    `json:"approved_at,omitempty"`
	PdfURL     string    `json:"pdf_url,omitempty"`
	ObjectKey  string    `json:"object_key,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
