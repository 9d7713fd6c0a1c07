package controllers

import (
	"context"
	"net/http"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/dto/requests"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewController struct {
	Log           *zap.Logger
	ReviewUsecase contracts.ReviewUsecase
	Timeout       time.Duration
}

func NewReviewController(logger *zap.Logger, reviewUsecase contracts.ReviewUsecase, timeout time.Duration) *ReviewController {
	return &ReviewController{
		Log:           logger,
		ReviewUsecase: reviewUsecase,
		Timeout:       timeout,
	}
}

func (ctrl *ReviewController) OpenReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.OpenReview)
	err := utils.DecodeJSONBody(r, request)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to parse request body", start, err)
		return
	}
	utils.SanitizeOpenReviewRequest(request)
	err = utils.ValidateStruct(request)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Invalid open review request", start, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Debug("Opening review",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, request.LetterID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	view, err := ctrl.ReviewUsecase.OpenReview(ctx, request.LetterID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to open review", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "review_opened", requestID,
		zap.String(constvars.LoggingReviewIDKey, view.ID),
		zap.String(constvars.LoggingLetterIDKey, request.LetterID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.OpenReviewSuccessMessage, toReviewResponse(view))
}

func (ctrl *ReviewController) GetReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	reviewID := chi.URLParam(r, constvars.URLParamReviewID)

	view, err := ctrl.ReviewUsecase.GetReview(r.Context(), reviewID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to get review", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetReviewSuccessMessage, toReviewResponse(view))
}

// EditContent records the editor buffer. Persisting happens on the debounce.
func (ctrl *ReviewController) EditContent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	reviewID := chi.URLParam(r, constvars.URLParamReviewID)

	request := new(requests.EditContent)
	err := utils.DecodeJSONBody(r, request)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to parse request body", start, err)
		return
	}

	view, err := ctrl.ReviewUsecase.EditContent(r.Context(), reviewID, request.Content)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to edit content", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.EditContentSuccessMessage, toReviewResponse(view))
}

func (ctrl *ReviewController) SaveContent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	reviewID := chi.URLParam(r, constvars.URLParamReviewID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	view, err := ctrl.ReviewUsecase.SaveContent(ctx, reviewID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to save content", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SaveContentSuccessMessage, toReviewResponse(view))
}

func (ctrl *ReviewController) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	reviewID := chi.URLParam(r, constvars.URLParamReviewID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	view, err := ctrl.ReviewUsecase.AdvanceStatus(ctx, reviewID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to advance review status", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AdvanceStatusSuccessMessage, toReviewResponse(view))
}

func (ctrl *ReviewController) ExportPDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	reviewID := chi.URLParam(r, constvars.URLParamReviewID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	pdf, err := ctrl.ReviewUsecase.ExportPDF(ctx, reviewID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to export letter", start, err)
		return
	}

	ctrl.Log.Info("Letter exported",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, pdf.LetterID.String()),
		zap.String(constvars.LoggingObjectKey, pdf.ArchiveKey),
		zap.Int(constvars.LoggingResponseLengthKey, len(pdf.Content)),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	if pdf.ArchiveKey != "" {
		w.Header().Set(constvars.HeaderXArchiveObjectKey, pdf.ArchiveKey)
	}
	utils.BuildFileResponse(w, pdf.ContentType, pdf.FileName, pdf.Content)
}

func (ctrl *ReviewController) CloseReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	reviewID := chi.URLParam(r, constvars.URLParamReviewID)

	err := ctrl.ReviewUsecase.CloseReview(r.Context(), reviewID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to close review", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CloseReviewSuccessMessage, nil)
}
