package contracts

import (
	"context"

	"nhscribe-service/internal/app/models"
)

type LetterArchive interface {
	ArchiveLetterPDF(ctx context.Context, pdf *models.LetterPDF) (string, error)
	EnsureBucket(ctx context.Context) error
}
