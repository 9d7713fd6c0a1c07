package controllers

import (
	"context"
	"net/http"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/dto/requests"
	"nhscribe-service/internal/pkg/dto/responses"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DraftController struct {
	Log            *zap.Logger
	DraftUsecase   contracts.DraftUsecase
	Timeout        time.Duration
	MaxUploadBytes int64
}

func NewDraftController(logger *zap.Logger, draftUsecase contracts.DraftUsecase, timeout time.Duration, maxUploadBytes int64) *DraftController {
	return &DraftController{
		Log:            logger,
		DraftUsecase:   draftUsecase,
		Timeout:        timeout,
		MaxUploadBytes: maxUploadBytes,
	}
}

func (ctrl *DraftController) StartDraft(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.StartDraft)
	err := utils.DecodeJSONBody(r, request)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to parse request body", start, err)
		return
	}
	utils.SanitizeStartDraftRequest(request)
	err = utils.ValidateStruct(request)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Invalid start draft request", start, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	draft, err := ctrl.DraftUsecase.StartDraft(ctx, request.DoctorName, request.DataType, request.Urgency)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to start draft", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "draft_started", requestID,
		zap.String(constvars.LoggingDraftIDKey, draft.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.StartDraftSuccessMessage, toDraftResponse(draft))
}

func (ctrl *DraftController) GetDraft(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	draft, err := ctrl.DraftUsecase.GetDraft(ctx, draftID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to get draft", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDraftSuccessMessage, toDraftResponse(draft))
}

func (ctrl *DraftController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	request := new(requests.UpdateDraft)
	err := utils.DecodeJSONBody(r, request)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to parse request body", start, err)
		return
	}
	utils.SanitizeUpdateDraftRequest(request)
	err = utils.ValidateStruct(request)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Invalid update draft request", start, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	draft, err := ctrl.DraftUsecase.UpdateDraft(ctx, draftID, &models.DraftUpdate{
		Name:       request.Name,
		Age:        request.Age,
		ClearAge:   request.ClearAge,
		Sex:        request.Sex,
		Address:    request.Address,
		Conditions: request.Conditions,
		DataType:   request.DataType,
		RawData:    request.RawData,
		Urgency:    request.Urgency,
		Notes:      request.Notes,
		DoctorName: request.DoctorName,
	})
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to update draft", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateDraftSuccessMessage, toDraftResponse(draft))
}

func (ctrl *DraftController) CheckPatient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	draft, outcome, err := ctrl.DraftUsecase.CheckPatient(ctx, draftID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to check patient", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patient_checked", requestID,
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.Bool("found", outcome.Found),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, draft.CheckMessage, &responses.PatientCheck{
		Status:  draft.CheckStatus,
		Message: draft.CheckMessage,
		Patient: outcome.Patient,
		Draft:   toDraftResponse(draft),
	})
}

func (ctrl *DraftController) CreatePatient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	draft, patient, err := ctrl.DraftUsecase.CreatePatient(ctx, draftID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to create patient", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, draft.CheckMessage, &responses.PatientCheck{
		Status:  draft.CheckStatus,
		Message: draft.CheckMessage,
		Patient: patient,
		Draft:   toDraftResponse(draft),
	})
}

func (ctrl *DraftController) IngestText(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	request := new(requests.IngestText)
	err := utils.DecodeJSONBody(r, request)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to parse request body", start, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	draft, err := ctrl.DraftUsecase.IngestText(ctx, draftID, request.RawData)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to ingest text results", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.IngestResultsSuccessMessage, toDraftResponse(draft))
}

func (ctrl *DraftController) IngestCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	file, err := utils.ReadResultsFile(r, ctrl.MaxUploadBytes)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to read results file", start, err)
		return
	}
	ctrl.Log.Debug("Results file received",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, file.FileName),
		zap.Int(constvars.LoggingContentLengthKey, len(file.Content)),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	draft, err := ctrl.DraftUsecase.IngestCSV(ctx, draftID, file)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to ingest csv results", start, err)
		return
	}

	if draft.Batch != nil {
		utils.LogBusinessEvent(ctrl.Log, "results_ingested", requestID,
			zap.String(constvars.LoggingDraftIDKey, draftID),
			zap.String(constvars.LoggingBatchIDKey, draft.Batch.BatchID),
			zap.Int(constvars.LoggingResultCountKey, len(draft.Batch.Results)),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		)
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.IngestResultsSuccessMessage, toDraftResponse(draft))
}

func (ctrl *DraftController) LoadExistingResults(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	draft, err := ctrl.DraftUsecase.LoadExistingResults(ctx, draftID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to load existing results", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoadResultsSuccessMessage, toDraftResponse(draft))
}

func (ctrl *DraftController) Generate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	draft, err := ctrl.DraftUsecase.Generate(ctx, draftID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to generate letter", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GenerateLetterSuccessMessage, toDraftResponse(draft))
}

func (ctrl *DraftController) Preview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	preview, err := ctrl.DraftUsecase.Preview(ctx, draftID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to build preview", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPreviewSuccessMessage, preview)
}
