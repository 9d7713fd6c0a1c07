package controllers

import (
	"context"
	"net/http"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LetterController struct {
	Log          *zap.Logger
	BoardUsecase contracts.BoardUsecase
	Timeout      time.Duration
}

func NewLetterController(logger *zap.Logger, boardUsecase contracts.BoardUsecase, timeout time.Duration) *LetterController {
	return &LetterController{
		Log:          logger,
		BoardUsecase: boardUsecase,
		Timeout:      timeout,
	}
}

func (ctrl *LetterController) RecentLetters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	rows, err := ctrl.BoardUsecase.RecentLetters(ctx)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to list recent letters", start, err)
		return
	}

	ctrl.Log.Debug("Recent letters listed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingLetterCountKey, len(rows)),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetRecentLettersSuccessMessage, toBoardResponse(rows))
}

func (ctrl *LetterController) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	letterID := chi.URLParam(r, constvars.URLParamLetterID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	row, err := ctrl.BoardUsecase.AdvanceLetterStatus(ctx, letterID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to advance letter status", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AdvanceStatusSuccessMessage, toBoardRowResponse(*row))
}

func (ctrl *LetterController) LetterAudit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requireRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}
	letterID := chi.URLParam(r, constvars.URLParamLetterID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	entries, err := ctrl.BoardUsecase.LetterAudit(ctx, letterID)
	if err != nil {
		respondError(ctrl.Log, w, requestID, "Failed to get letter audit", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetLetterAuditSuccessMessage, entries)
}
