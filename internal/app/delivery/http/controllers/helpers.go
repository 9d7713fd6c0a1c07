package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/app/services/core/workflow"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/dto/responses"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

func requireRequestID(log *zap.Logger, w http.ResponseWriter, r *http.Request) (string, bool) {
	requestID := utils.GetRequestID(r.Context())
	if requestID == "" {
		log.Error("Request ID missing from context",
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	return requestID, true
}

func respondError(log *zap.Logger, w http.ResponseWriter, requestID, message string, start time.Time, err error) {
	log.Error(message,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingErrorTypeKey, string(exceptions.KindOf(err))),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		zap.Error(err),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func toDraftResponse(draft *models.DraftSession) *responses.Draft {
	return &responses.Draft{
		ID:           draft.ID,
		DoctorName:   draft.DoctorName,
		Patient:      draft.Patient,
		CheckStatus:  draft.CheckStatus,
		CheckMessage: draft.CheckMessage,
		DataType:     draft.DataType,
		RawData:      draft.RawData,
		Urgency:      draft.Urgency,
		Notes:        draft.Notes,
		Batch:        draft.Batch,
		Generated:    draft.Generated,
		CanIngest:    workflow.CanIngest(draft),
		CanGenerate:  workflow.CanGenerate(draft),
		UpdatedAt:    draft.UpdatedAt,
	}
}

func toReviewResponse(view *models.ReviewView) *responses.Review {
	review := &responses.Review{
		ID:          view.ID,
		LetterID:    view.Letter.ID.String(),
		PatientID:   view.Letter.PatientID.String(),
		PatientName: view.Letter.PatientName,
		DoctorName:  view.Letter.DoctorName,
		Details:     view.Letter.Details,
		CreatedAt:   view.Letter.CreatedAt,
		Status:      string(view.Snapshot.Status),
		ApprovedAt:  view.Snapshot.ApprovedAt,
		NextStatus:  string(view.NextStatus),
		Content:     view.Content,
		Persisted:   view.Persisted,
		Dirty:       view.Dirty(),
	}
	if view.Notice != nil {
		review.SaveNotice = &responses.SaveNotice{
			Kind:    view.Notice.Kind,
			Message: view.Notice.Message,
		}
	}
	return review
}

func toBoardRowResponse(row models.BoardRow) responses.BoardRow {
	return responses.BoardRow{
		LetterSummary: row.Summary,
		NextStatus:    string(row.NextStatus),
		InFlight:      row.InFlight,
	}
}

func toBoardResponse(rows []models.BoardRow) []responses.BoardRow {
	board := make([]responses.BoardRow, 0, len(rows))
	for _, row := range rows {
		board = append(board, toBoardRowResponse(row))
	}
	return board
}
