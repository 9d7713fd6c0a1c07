package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Draft messages
	StartDraftSuccessMessage     = "draft successfully started"
	GetDraftSuccessMessage       = "get draft successfully"
	UpdateDraftSuccessMessage    = "draft successfully updated"
	CheckPatientFoundMessage     = "Patient found: %s (%s)"
	CheckPatientNotFoundMessage  = "No matching patient found. You can create a new one."
	CheckPatientErrorMessage     = "Error checking patient."
	CreatePatientSuccessMessage  = "New patient created: %s (%s)"
	IngestResultsSuccessMessage  = "results successfully ingested"
	LoadResultsSuccessMessage    = "get existing results successfully"
	GenerateLetterSuccessMessage = "letter successfully generated"
	GetPreviewSuccessMessage     = "get preview successfully"

	// Letter messages
	GetRecentLettersSuccessMessage = "get recent letters successfully"
	AdvanceStatusSuccessMessage    = "letter status successfully updated"
	GetLetterAuditSuccessMessage   = "get letter audit successfully"

	// Review messages
	OpenReviewSuccessMessage  = "review successfully opened"
	GetReviewSuccessMessage   = "get review successfully"
	EditContentSuccessMessage = "content change recorded"
	SaveContentSuccessMessage = "content successfully saved"
	CloseReviewSuccessMessage = "review successfully closed"
)
