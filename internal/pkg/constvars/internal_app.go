package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "NHSCRIBE_SVC_"
)

// Backend resources, relative to the backend base URL.
const (
	ResourcePatients        = "/patients"
	ResourcePatientResults  = "/patients/%s/results"
	ResourceUploadResults   = "/upload-results"
	ResourceLetterGenerate  = "/letters/generate"
	ResourceLettersRecent   = "/letters/recent"
	ResourceLetter          = "/letters/%s"
	ResourceLetterStatus    = "/letters/%s/status"
	ResourceLetterContent   = "/letters/%s/content"
	ResourceLetterPDF       = "/letters/%s/pdf"
	ResourceNamePatient     = "patient"
	ResourceNameResults     = "results"
	ResourceNameLetter      = "letter"
	ResourceNameLetterPDF   = "letter pdf"
	ResourceNameLetterState = "letter status"
)

const (
	MongoCollectionAuditEntries = "audit_entries"
)

const (
	RedisKeyRegistrySnapshot = "nhscribe:registry:snapshot"
	RedisKeyDraftFormat      = "nhscribe:draft:%s"
)
