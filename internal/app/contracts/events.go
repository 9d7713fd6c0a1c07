package contracts

import (
	"context"

	"nhscribe-service/internal/app/models"
)

type LetterEventPublisher interface {
	PublishLetterEvent(ctx context.Context, event *models.LetterEvent) error
}

type AuditRepository interface {
	InsertEntry(ctx context.Context, entry *models.AuditEntry) error
	FindEntriesByLetterID(ctx context.Context, letterID string) ([]models.AuditEntry, error)
	EnsureIndexes(ctx context.Context) error
}
