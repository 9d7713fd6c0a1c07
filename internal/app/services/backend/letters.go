package backend

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type letterClient struct {
	client
}

type updateStatusRequest struct {
	Status models.LetterStatus `json:"status"`
}

type updateContentRequest struct {
	Content string `json:"content"`
}

func NewLetterClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.LetterClient {
	return &letterClient{
		client: newClient(baseUrl, timeout, logger),
	}
}

func (c *letterClient) GenerateLetter(ctx context.Context, letterData *models.GenerateLetterRequest) (*models.GeneratedLetter, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("letterClient.GenerateLetter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, letterData.Patient.ID.String()),
	)

	body, err := c.marshal(ctx, "letterClient.GenerateLetter", letterData)
	if err != nil {
		return nil, err
	}

	generated := new(models.GeneratedLetter)
	err = c.doJSON(ctx, "letterClient.GenerateLetter", request{
		Method:      constvars.MethodPost,
		Path:        constvars.ResourceLetterGenerate,
		Resource:    constvars.ResourceNameLetter,
		ContentType: constvars.MIMEApplicationJSON,
		Body:        body,
	}, generated)
	if err != nil {
		return nil, err
	}
	generated.GeneratedAt = time.Now()

	c.Log.Info("letterClient.GenerateLetter succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, generated.LetterID.String()),
	)
	return generated, nil
}

func (c *letterClient) FindRecentLetters(ctx context.Context) ([]models.LetterSummary, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("letterClient.FindRecentLetters called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var letters []models.LetterSummary
	err := c.doJSON(ctx, "letterClient.FindRecentLetters", request{
		Method:   constvars.MethodGet,
		Path:     constvars.ResourceLettersRecent,
		Resource: constvars.ResourceNameLetter,
	}, &letters)
	if err != nil {
		return nil, err
	}

	c.Log.Info("letterClient.FindRecentLetters succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingLetterCountKey, len(letters)),
	)
	return letters, nil
}

func (c *letterClient) FindLetterByID(ctx context.Context, letterID string) (*models.Letter, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("letterClient.FindLetterByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
	)

	letter := new(models.Letter)
	err := c.doJSON(ctx, "letterClient.FindLetterByID", request{
		Method:   constvars.MethodGet,
		Path:     resourcePath(constvars.ResourceLetter, url.PathEscape(letterID)),
		Resource: constvars.ResourceNameLetter,
	}, letter)
	if err != nil {
		return nil, err
	}
	if letter.ID.IsZero() {
		letter.ID = models.ExternalID(letterID)
	}

	c.Log.Info("letterClient.FindLetterByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
	)
	return letter, nil
}

func (c *letterClient) UpdateLetterStatus(ctx context.Context, letterID string, status models.LetterStatus) (*models.StatusChange, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("letterClient.UpdateLetterStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
		zap.String(constvars.LoggingToStatusKey, string(status)),
	)

	body, err := c.marshal(ctx, "letterClient.UpdateLetterStatus", updateStatusRequest{Status: status})
	if err != nil {
		return nil, err
	}

	change := new(models.StatusChange)
	err = c.doJSON(ctx, "letterClient.UpdateLetterStatus", request{
		Method:      constvars.MethodPatch,
		Path:        resourcePath(constvars.ResourceLetterStatus, url.PathEscape(letterID)),
		Resource:    constvars.ResourceNameLetterState,
		ContentType: constvars.MIMEApplicationJSON,
		Body:        body,
	}, change)
	if err != nil {
		return nil, err
	}

	c.Log.Info("letterClient.UpdateLetterStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
		zap.String(constvars.LoggingToStatusKey, change.Status),
	)
	return change, nil
}

func (c *letterClient) UpdateLetterContent(ctx context.Context, letterID, content string) (*models.Letter, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("letterClient.UpdateLetterContent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
		zap.Int(constvars.LoggingContentLengthKey, len(content)),
	)

	body, err := c.marshal(ctx, "letterClient.UpdateLetterContent", updateContentRequest{Content: content})
	if err != nil {
		return nil, err
	}

	letter := new(models.Letter)
	err = c.doJSON(ctx, "letterClient.UpdateLetterContent", request{
		Method:      constvars.MethodPut,
		Path:        resourcePath(constvars.ResourceLetterContent, url.PathEscape(letterID)),
		Resource:    constvars.ResourceNameLetter,
		ContentType: constvars.MIMEApplicationJSON,
		Body:        body,
	}, letter)
	if err != nil {
		return nil, err
	}

	c.Log.Info("letterClient.UpdateLetterContent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
	)
	return letter, nil
}

func (c *letterClient) DownloadLetterPDF(ctx context.Context, letterID string) (*models.LetterPDF, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("letterClient.DownloadLetterPDF called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
	)

	resp, err := c.do(ctx, "letterClient.DownloadLetterPDF", request{
		Method:   constvars.MethodGet,
		Path:     resourcePath(constvars.ResourceLetterPDF, url.PathEscape(letterID)),
		Resource: constvars.ResourceNameLetterPDF,
		Accept:   constvars.MIMEApplicationPDF,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("letterClient.DownloadLetterPDF error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrReadResponseBody(err)
	}

	contentType := resp.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEApplicationPDF
	}

	c.Log.Info("letterClient.DownloadLetterPDF succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
		zap.Int(constvars.LoggingContentLengthKey, len(content)),
	)
	return &models.LetterPDF{
		LetterID:    models.ExternalID(letterID),
		FileName:    utils.GenerateLetterPDFFileName(letterID),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (c *letterClient) marshal(ctx context.Context, caller string, payload interface{}) (*bytes.Reader, error) {
	requestJSON, err := json.Marshal(payload)
	if err != nil {
		c.Log.Error(caller+" error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return bytes.NewReader(requestJSON), nil
}
