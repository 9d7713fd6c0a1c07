package contracts

import (
	"context"
	"time"

	"nhscribe-service/internal/app/models"
)

type DraftStore interface {
	SaveDraft(ctx context.Context, draft *models.DraftSession) error
	FindDraftByID(ctx context.Context, draftID string) (*models.DraftSession, error)
}

type DraftUsecase interface {
	StartDraft(ctx context.Context, doctorName, dataType, urgency string) (*models.DraftSession, error)
	GetDraft(ctx context.Context, draftID string) (*models.DraftSession, error)
	UpdateDraft(ctx context.Context, draftID string, update *models.DraftUpdate) (*models.DraftSession, error)
	CheckPatient(ctx context.Context, draftID string) (*models.DraftSession, *models.MatchOutcome, error)
	CreatePatient(ctx context.Context, draftID string) (*models.DraftSession, *models.Patient, error)
	IngestText(ctx context.Context, draftID, raw string) (*models.DraftSession, error)
	IngestCSV(ctx context.Context, draftID string, file *models.ResultFile) (*models.DraftSession, error)
	LoadExistingResults(ctx context.Context, draftID string) (*models.DraftSession, error)
	Generate(ctx context.Context, draftID string) (*models.DraftSession, error)
	Preview(ctx context.Context, draftID string) (*models.Preview, error)
}

type ReviewUsecase interface {
	OpenReview(ctx context.Context, letterID string) (*models.ReviewView, error)
	GetReview(ctx context.Context, reviewID string) (*models.ReviewView, error)
	EditContent(ctx context.Context, reviewID, content string) (*models.ReviewView, error)
	SaveContent(ctx context.Context, reviewID string) (*models.ReviewView, error)
	AdvanceStatus(ctx context.Context, reviewID string) (*models.ReviewView, error)
	ExportPDF(ctx context.Context, reviewID string) (*models.LetterPDF, error)
	CloseReview(ctx context.Context, reviewID string) error
	CloseAll()
	ExpireIdle(now time.Time) int
}

type BoardUsecase interface {
	RecentLetters(ctx context.Context) ([]models.BoardRow, error)
	AdvanceLetterStatus(ctx context.Context, letterID string) (*models.BoardRow, error)
	LetterAudit(ctx context.Context, letterID string) ([]models.AuditEntry, error)
}
