package utils

import (
	"errors"
	"io"
	"net/http"

	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// DecodeJSONBody decodes the request body into dst. An empty body leaves dst
// untouched; validation is left to the caller so it can sanitize first.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		if isBodyTooLarge(err) {
			return exceptions.ErrRequestBodyTooLarge(err)
		}
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

// ReadResultsFile pulls the uploaded results file out of a multipart form.
// A missing or empty file is a validation error.
func ReadResultsFile(r *http.Request, maxUploadBytes int64) (*models.ResultFile, error) {
	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil {
		if err == http.ErrNotMultipart || err == http.ErrMissingBoundary {
			return nil, exceptions.ErrResultsFileMissing()
		}
		if isBodyTooLarge(err) {
			return nil, exceptions.ErrRequestBodyTooLarge(err)
		}
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}

	file, header, err := r.FormFile(constvars.FormFieldFile)
	if err != nil {
		return nil, exceptions.ErrResultsFileMissing()
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}
	if len(content) == 0 {
		return nil, exceptions.ErrResultsFileEmpty(header.Filename)
	}

	contentType := header.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMETextCSV
	}
	return &models.ResultFile{
		FileName:    header.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
