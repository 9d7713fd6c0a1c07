package contracts

import (
	"context"

	"nhscribe-service/internal/app/models"
)

type LetterStatusUpdater interface {
	UpdateLetterStatus(ctx context.Context, letterID string, status models.LetterStatus) (*models.StatusChange, error)
}

type LetterContentSaver interface {
	UpdateLetterContent(ctx context.Context, letterID, content string) (*models.Letter, error)
}

type LetterClient interface {
	LetterStatusUpdater
	LetterContentSaver
	GenerateLetter(ctx context.Context, request *models.GenerateLetterRequest) (*models.GeneratedLetter, error)
	FindRecentLetters(ctx context.Context) ([]models.LetterSummary, error)
	FindLetterByID(ctx context.Context, letterID string) (*models.Letter, error)
	DownloadLetterPDF(ctx context.Context, letterID string) (*models.LetterPDF, error)
}
