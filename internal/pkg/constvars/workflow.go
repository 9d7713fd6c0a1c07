package constvars

const (
	LetterStatusDraft    = "Draft"
	LetterStatusApproved = "Approved"
	LetterStatusRejected = "Rejected"
	LetterStatusUnknown  = "Unknown"
)

const (
	SexMale   = "M"
	SexFemale = "F"
	SexOther  = "Other"
)

const (
	DataTypeText = "Text"
	DataTypeCSV  = "CSV"
)

const (
	UrgencyRoutine = "Routine"
	UrgencyUrgent  = "Urgent"
)

const (
	CheckStatusFound    = "found"
	CheckStatusNotFound = "not_found"
	CheckStatusError    = "error"
)

const (
	SaveModeSilent   = "silent"
	SaveModeExplicit = "explicit"
)

const (
	SaveNoticeSuccess = "success"
	SaveNoticeError   = "error"

	SaveNoticeSuccessMessage = "✓ Saved successfully"
	SaveNoticeErrorMessage   = "✗ Save failed"
)

const (
	ApprovedAtLayout = "15:04"
	ArchiveKeyLayout = "20060102T150405Z"
)

const (
	AuditActionStatusTransition = "status_transition"
	AuditActionExplicitSave     = "explicit_save"
	AuditActionExport           = "export"
	AuditActionPatientCreated   = "patient_created"
	AuditActionLetterGenerated  = "letter_generated"
)

const (
	EventLetterGenerated     = "letter.generated"
	EventLetterStatusChanged = "letter.status_changed"
	EventLetterArchived      = "letter.archived"
)

const (
	PlaceholderPatientIDPrefix = "tmp-"
	ArchiveObjectKeyFormat     = "letters/%s/%s.pdf"
	LetterPDFFileNameFormat    = "letter-%s.pdf"
)
