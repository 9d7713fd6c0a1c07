package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "maximum at %s",
	"numeric":  "must be a number",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"uuid":     "must be a valid UUID",
	"sex":      "must be one of [M, F, Other]",
	"notblank": "must not be blank",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientPatientLookupFailed           = "Error checking patient."
	ErrClientPatientCreateFailed           = "failed to create the patient, please try again"
	ErrClientResultsIngestFailed           = "failed to upload the results file"
	ErrClientResultsLoadFailed             = "failed to load existing results"
	ErrClientLetterGenerateFailed          = "failed to generate the letter"
	ErrClientLetterFetchFailed             = "Letter not found"
	ErrClientLetterListFailed              = "failed to load recent letters"
	ErrClientStatusTransitionFailed        = "failed to update the letter status"
	ErrClientStatusTransitionInFlight      = "a status update for this letter is already in progress"
	ErrClientStatusUnknown                 = "the letter has an unrecognised status and cannot be transitioned"
	ErrClientSaveFailed                    = "✗ Save failed"
	ErrClientExportFailed                  = "Failed to download PDF"
	ErrClientPatientRequired               = "Check or create a patient first"
	ErrClientResultsRequired               = "Add results before generating the letter"
	ErrClientDraftNotFound                 = "draft not found or expired"
	ErrClientReviewNotFound                = "review session not found"
	ErrClientReviewClosed                  = "review session already closed"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevCannotBuildMultipartForm = "cannot build multipart form body"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevReadResponseBody         = "failed to read response body"
	ErrDevMissingRequestID         = "request ID missing from context"
	ErrDevTooManyRequests          = "rate limit exceeded"
	ErrDevRequestBodyTooLarge      = "request body exceeds the configured limit"

	// Backend messages
	ErrDevBackendUnexpectedStatus = "backend responded %d for %s"
	ErrDevBackendDecodeResponse   = "failed to decode %s response from backend"

	// Workflow messages
	ErrDevPatientLookup            = "failed to look up patient registry"
	ErrDevPatientCreate            = "failed to create patient in registry"
	ErrDevPatientMissingID         = "registry returned a patient without an id"
	ErrDevResultsIngest            = "failed to ingest results"
	ErrDevResultsLoad              = "failed to load existing results"
	ErrDevLetterGenerate           = "failed to generate letter"
	ErrDevLetterFetch              = "failed to fetch letter"
	ErrDevLetterList               = "failed to list recent letters"
	ErrDevStatusTransition         = "status transition %s -> %s not confirmed"
	ErrDevStatusTransitionInFlight = "status transition already in flight for letter %s"
	ErrDevStatusUnknown            = "letter %s has unknown status %q"
	ErrDevStatusUnconfirmed        = "backend answered with unrecognised status %q"
	ErrDevLetterNotOnBoard         = "letter %s is not on the recent letters board"
	ErrDevContentSave              = "failed to save letter content"
	ErrDevLetterExport             = "failed to export letter pdf"
	ErrDevPatientIDRequired        = "patient id is required before %s"
	ErrDevPatientPlaceholderID     = "patient id %s is an unsaved placeholder"
	ErrDevResultsRequiredForCSV    = "csv mode requires a non-empty result batch"
	ErrDevResultsRequiredForText   = "text mode requires non-empty free text"
	ErrDevResultsFileMissing       = "results file is missing"
	ErrDevResultsFileEmpty         = "results file %s is empty"
	ErrDevDraftNotFound            = "draft %s not found"
	ErrDevReviewNotFound           = "review session %s not found"
	ErrDevReviewClosed             = "review session %s closed"

	// Validation messages
	ErrDevValidationFailed      = "validation failed"
	ErrDevInvalidRequestPayload = "invalid request payload"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBFailedToCreateIndex      = "failed to create index on collection '%s'"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToCreateBucket = "failed to create bucket '%s' in minio storage"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue '%s'"
	ErrDevRabbitMQDeclareQueue   = "failed to declare queue '%s'"

	// Server messages
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerRecoveredPanic   = "recovered from panic"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
