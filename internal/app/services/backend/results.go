package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type resultsClient struct {
	client
}

type uploadResultsResponse struct {
	Status  string             `json:"status"`
	BatchID string             `json:"batch_id"`
	Results []models.ResultRow `json:"results"`
}

type patientResultsResponse struct {
	Results []models.ResultRow `json:"results"`
}

func NewResultsClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.ResultsClient {
	return &resultsClient{
		client: newClient(baseUrl, timeout, logger),
	}
}

func (c *resultsClient) UploadResults(ctx context.Context, patientID string, file *models.ResultFile) (*models.ResultBatch, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("resultsClient.UploadResults called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingFileNameKey, file.FileName),
	)

	body, contentType, err := buildResultsForm(patientID, file)
	if err != nil {
		c.Log.Error("resultsClient.UploadResults error building multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotBuildMultipartForm(err)
	}

	// The ingestion service reads patient_id from the query string as well.
	query := url.Values{}
	query.Set(constvars.FormFieldPatientID, patientID)

	var response uploadResultsResponse
	err = c.doJSON(ctx, "resultsClient.UploadResults", request{
		Method:      constvars.MethodPost,
		Path:        constvars.ResourceUploadResults + "?" + query.Encode(),
		Resource:    constvars.ResourceNameResults,
		ContentType: contentType,
		Body:        body,
	}, &response)
	if err != nil {
		return nil, err
	}

	batch := &models.ResultBatch{
		BatchID:    response.BatchID,
		SourceFile: file.FileName,
		Results:    response.Results,
	}
	if batch.Results == nil {
		batch.Results = []models.ResultRow{}
	}

	c.Log.Info("resultsClient.UploadResults succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBatchIDKey, batch.BatchID),
		zap.Int(constvars.LoggingResultCountKey, len(batch.Results)),
	)
	return batch, nil
}

func (c *resultsClient) FindResultsByPatientID(ctx context.Context, patientID string) ([]models.ResultRow, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("resultsClient.FindResultsByPatientID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	var response patientResultsResponse
	err := c.doJSON(ctx, "resultsClient.FindResultsByPatientID", request{
		Method:   constvars.MethodGet,
		Path:     resourcePath(constvars.ResourcePatientResults, url.PathEscape(patientID)),
		Resource: constvars.ResourceNameResults,
	}, &response)
	if err != nil {
		return nil, err
	}

	c.Log.Info("resultsClient.FindResultsByPatientID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(response.Results)),
	)
	return response.Results, nil
}

func buildResultsForm(patientID string, file *models.ResultFile) (*bytes.Buffer, string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	err := writer.WriteField(constvars.FormFieldPatientID, patientID)
	if err != nil {
		return nil, "", err
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = constvars.MIMETextCSV
	}
	header := make(textproto.MIMEHeader)
	header.Set(constvars.HeaderContentDisposition, fmt.Sprintf(`form-data; name=%q; filename=%q`, constvars.FormFieldFile, file.FileName))
	header.Set(constvars.HeaderContentType, contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	_, err = part.Write(file.Content)
	if err != nil {
		return nil, "", err
	}

	err = writer.Close()
	if err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
