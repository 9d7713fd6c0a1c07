package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingErrorTypeKey      = "error_type"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingOperationKey      = "operation"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingURLKey            = "url"

	LoggingPatientIDKey     = "patient_id"
	LoggingPatientCountKey  = "patient_count"
	LoggingLetterIDKey      = "letter_id"
	LoggingLetterCountKey   = "letter_count"
	LoggingDraftIDKey       = "draft_id"
	LoggingReviewIDKey      = "review_id"
	LoggingBatchIDKey       = "batch_id"
	LoggingResultCountKey   = "result_count"
	LoggingFileNameKey      = "file_name"
	LoggingFromStatusKey    = "from_status"
	LoggingToStatusKey      = "to_status"
	LoggingContentLengthKey = "content_length"
	LoggingSaveSequenceKey  = "save_sequence"
	LoggingSaveModeKey      = "save_mode"
	LoggingRedisKey         = "redis_key"
	LoggingBucketKey        = "bucket"
	LoggingObjectKey        = "object_key"
	LoggingQueueKey         = "queue"
	LoggingEventKey         = "event"
)
