package exceptions

import (
	"errors"
	"fmt"
	"nhscribe-service/internal/pkg/constvars"
	"runtime"
)

// Kind classifies an error by the workflow step that produced it.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindLookup       Kind = "lookup"
	KindCreate       Kind = "create"
	KindIngest       Kind = "ingest"
	KindGeneration   Kind = "generation"
	KindFetch        Kind = "fetch"
	KindTransition   Kind = "transition"
	KindSave         Kind = "save"
	KindExport       Kind = "export"
	KindSession      Kind = "session"
	KindPrecondition Kind = "precondition"
	KindInternal     Kind = "internal"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	Kind          Kind       `json:"kind,omitempty"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError wraps err with the caller location. When err already is a
// CustomError its locations are carried over so the trace keeps growing.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)
	customErr := &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{location},
		cause:         err,
	}
	if err == nil {
		return customErr
	}

	customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	var inner *CustomError
	if errors.As(err, &inner) {
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, inner.DevMessage)
		customErr.Locations = append(customErr.Locations, inner.Locations...)
	}
	return customErr
}

func (e *CustomError) withKind(kind Kind) *CustomError {
	e.Kind = kind
	return e
}

// IsKind reports whether any CustomError in err's chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	var customErr *CustomError
	for err != nil {
		if !errors.As(err, &customErr) {
			return false
		}
		if customErr.Kind == kind {
			return true
		}
		err = customErr.cause
	}
	return false
}

// KindOf returns the outermost kind found in err's chain.
func KindOf(err error) Kind {
	var customErr *CustomError
	for err != nil {
		if !errors.As(err, &customErr) {
			break
		}
		if customErr.Kind != "" {
			return customErr.Kind
		}
		err = customErr.cause
	}
	return KindInternal
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
