package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// maxErrorBodyBytes bounds how much of a failed response is kept for logs.
const maxErrorBodyBytes = 2048

// client holds what every backend resource client shares.
type client struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func newClient(baseUrl string, timeout time.Duration, logger *zap.Logger) client {
	return client{
		BaseUrl:    baseUrl,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

type request struct {
	Method      string
	Path        string
	Resource    string
	ContentType string
	Accept      string
	Body        io.Reader
}

// do sends req and returns the response only when the backend answered 2xx.
// The caller owns the returned body.
func (c *client) do(ctx context.Context, caller string, req request) (*http.Response, error) {
	requestID := utils.GetRequestID(ctx)

	httpRequest, err := http.NewRequestWithContext(ctx, req.Method, c.BaseUrl+req.Path, req.Body)
	if err != nil {
		c.Log.Error(caller+" error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	if req.ContentType != "" {
		httpRequest.Header.Set(constvars.HeaderContentType, req.ContentType)
	}
	accept := req.Accept
	if accept == "" {
		accept = constvars.MIMEApplicationJSON
	}
	httpRequest.Header.Set(constvars.HeaderAccept, accept)
	if requestID != "" {
		httpRequest.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(httpRequest)
	if err != nil {
		c.Log.Error(caller+" error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, httpRequest.URL.String()),
			zap.Error(err),
		)
		if ctx.Err() == context.DeadlineExceeded {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if readErr != nil {
			c.Log.Error(caller+" error reading response body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(readErr),
			)
			return nil, exceptions.ErrReadResponseBody(readErr)
		}
		c.Log.Error(caller+" backend returned non-success status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, httpRequest.URL.String()),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingResponseKey, string(bodyBytes)),
		)
		return nil, exceptions.ErrBackendUnexpectedStatus(resp.StatusCode, req.Resource, string(bodyBytes))
	}

	return resp, nil
}

// doJSON sends req and decodes a 2xx JSON response into dst.
func (c *client) doJSON(ctx context.Context, caller string, req request, dst interface{}) error {
	resp, err := c.do(ctx, caller, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	err = json.NewDecoder(resp.Body).Decode(dst)
	if err != nil {
		c.Log.Error(caller+" error decoding response",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return exceptions.ErrDecodeResponse(err, req.Resource)
	}
	return nil
}

func resourcePath(format string, id string) string {
	return fmt.Sprintf(format, id)
}
