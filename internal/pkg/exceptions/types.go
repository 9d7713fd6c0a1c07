package exceptions

import (
	"fmt"
	"nhscribe-service/internal/pkg/constvars"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatAllValidationErrors(err), constvars.ErrDevValidationFailed).withKind(KindValidation)
	}
	ErrFieldRequired = func(field, devMessage string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, fmt.Sprintf("%s %s", field, constvars.CustomValidationErrorMessages["required"]), devMessage).withKind(KindValidation)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON).withKind(KindInternal)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON).withKind(KindValidation)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm).withKind(KindValidation)
	}
	ErrCannotBuildMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotBuildMultipartForm).withKind(KindInternal)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded).withKind(KindInternal)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID).withKind(KindInternal)
	}
	ErrTooManyRequests = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevTooManyRequests)
	}
	ErrRequestBodyTooLarge = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusRequestEntityTooBig, constvars.ErrClientCannotProcessRequest, constvars.ErrDevRequestBodyTooLarge).withKind(KindValidation)
	}
	ErrRecoveredPanic = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerRecoveredPanic).withKind(KindInternal)
	}

	// HTTP
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientCannotProcessRequest, constvars.ErrDevSendHTTPRequest)
	}
	ErrReadResponseBody = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientCannotProcessRequest, constvars.ErrDevReadResponseBody)
	}
	ErrBackendUnexpectedStatus = func(statusCode int, resource, detail string) *CustomError {
		status := constvars.StatusBadGateway
		if statusCode == constvars.StatusNotFound {
			status = constvars.StatusNotFound
		}
		return BuildNewCustomError(fmt.Errorf("%s", detail), status, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevBackendUnexpectedStatus, statusCode, resource))
	}
	ErrDecodeResponse = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevBackendDecodeResponse, resource))
	}

	// Patient registry
	ErrPatientLookup = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientPatientLookupFailed, constvars.ErrDevPatientLookup).withKind(KindLookup)
	}
	ErrPatientCreate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientPatientCreateFailed, constvars.ErrDevPatientCreate).withKind(KindCreate)
	}

	// Results
	ErrResultsIngest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientResultsIngestFailed, constvars.ErrDevResultsIngest).withKind(KindIngest)
	}
	ErrResultsLoad = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientResultsLoadFailed, constvars.ErrDevResultsLoad).withKind(KindIngest)
	}
	ErrResultsFileMissing = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, fmt.Sprintf("%s %s", constvars.FormFieldFile, constvars.CustomValidationErrorMessages["required"]), constvars.ErrDevResultsFileMissing).withKind(KindValidation)
	}
	ErrResultsFileEmpty = func(fileName string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, fmt.Sprintf("%s %s", constvars.FormFieldFile, constvars.CustomValidationErrorMessages["notblank"]), fmt.Sprintf(constvars.ErrDevResultsFileEmpty, fileName)).withKind(KindValidation)
	}

	// Letters
	ErrLetterGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientLetterGenerateFailed, constvars.ErrDevLetterGenerate).withKind(KindGeneration)
	}
	ErrLetterFetch = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientLetterFetchFailed, constvars.ErrDevLetterFetch).withKind(KindFetch)
	}
	ErrLetterList = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientLetterListFailed, constvars.ErrDevLetterList).withKind(KindFetch)
	}
	ErrStatusTransition = func(err error, from, to string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientStatusTransitionFailed, fmt.Sprintf(constvars.ErrDevStatusTransition, from, to)).withKind(KindTransition)
	}
	ErrStatusTransitionInFlight = func(letterID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientStatusTransitionInFlight, fmt.Sprintf(constvars.ErrDevStatusTransitionInFlight, letterID)).withKind(KindTransition)
	}
	ErrStatusUnknown = func(letterID, status string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientStatusUnknown, fmt.Sprintf(constvars.ErrDevStatusUnknown, letterID, status)).withKind(KindTransition)
	}
	ErrLetterNotOnBoard = func(letterID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientLetterFetchFailed, fmt.Sprintf(constvars.ErrDevLetterNotOnBoard, letterID)).withKind(KindFetch)
	}
	ErrContentSave = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSaveFailed, constvars.ErrDevContentSave).withKind(KindSave)
	}
	ErrLetterExport = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientExportFailed, constvars.ErrDevLetterExport).withKind(KindExport)
	}

	// Workflow gates
	ErrPatientRequired = func(step string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientPatientRequired, fmt.Sprintf(constvars.ErrDevPatientIDRequired, step)).withKind(KindPrecondition)
	}
	ErrPatientPlaceholder = func(patientID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientPatientRequired, fmt.Sprintf(constvars.ErrDevPatientPlaceholderID, patientID)).withKind(KindPrecondition)
	}
	ErrResultsRequired = func(devMessage string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientResultsRequired, devMessage).withKind(KindPrecondition)
	}
	ErrDraftNotFound = func(draftID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientDraftNotFound, fmt.Sprintf(constvars.ErrDevDraftNotFound, draftID)).withKind(KindSession)
	}
	ErrReviewNotFound = func(reviewID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientReviewNotFound, fmt.Sprintf(constvars.ErrDevReviewNotFound, reviewID)).withKind(KindSession)
	}
	ErrReviewClosed = func(reviewID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusGone, constvars.ErrClientReviewClosed, fmt.Sprintf(constvars.ErrDevReviewClosed, reviewID)).withKind(KindSession)
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBCreateIndex = func(err error, collection string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevDBFailedToCreateIndex, collection))
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}
	ErrMinioCreateBucket = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateBucket, bucketName))
	}

	// Redis
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}
	ErrRabbitMQDeclareQueue = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQDeclareQueue, queueName))
	}
)
