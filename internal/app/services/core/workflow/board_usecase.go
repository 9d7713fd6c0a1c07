package workflow

import (
	"context"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/app/services/core/letters"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type boardUsecase struct {
	Board   *letters.Board
	Journal *Journal
	Log     *zap.Logger
}

func NewBoardUsecase(board *letters.Board, journal *Journal, logger *zap.Logger) contracts.BoardUsecase {
	return &boardUsecase{
		Board:   board,
		Journal: journal,
		Log:     logger,
	}
}

func (uc *boardUsecase) RecentLetters(ctx context.Context) ([]models.BoardRow, error) {
	return uc.Board.Refresh(ctx)
}

func (uc *boardUsecase) AdvanceLetterStatus(ctx context.Context, letterID string) (*models.BoardRow, error) {
	row, transition, err := uc.Board.Advance(ctx, letterID)
	if err != nil {
		return row, err
	}

	recordTransition(ctx, uc.Journal, letterID, row.Summary.PatientID.String(), transition)
	utils.LogBusinessEvent(uc.Log, constvars.EventLetterStatusChanged, utils.GetRequestID(ctx),
		zap.String(constvars.LoggingLetterIDKey, letterID),
		zap.String(constvars.LoggingToStatusKey, string(transition.To.Status)),
	)
	return row, nil
}

func (uc *boardUsecase) LetterAudit(ctx context.Context, letterID string) ([]models.AuditEntry, error) {
	requestID := utils.GetRequestID(ctx)
	entries, err := uc.Journal.History(ctx, letterID)
	if err != nil {
		uc.Log.Error("boardUsecase.LetterAudit error reading audit journal",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLetterIDKey, letterID),
			zap.Error(err),
		)
		return nil, err
	}
	return entries, nil
}
