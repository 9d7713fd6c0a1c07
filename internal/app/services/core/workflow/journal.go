package workflow

import (
	"context"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Journal records workflow side effects in the audit store and on the event
// queue. Both are best effort: a failure is logged and never fails the step
// that produced it. Either sink may be nil.
type Journal struct {
	Audit  contracts.AuditRepository
	Events contracts.LetterEventPublisher
	Log    *zap.Logger
	now    func() time.Time
}

func NewJournal(audit contracts.AuditRepository, events contracts.LetterEventPublisher, logger *zap.Logger) *Journal {
	return &Journal{
		Audit:  audit,
		Events: events,
		Log:    logger,
		now:    time.Now,
	}
}

func (j *Journal) Record(ctx context.Context, entry *models.AuditEntry, event *models.LetterEvent) {
	if j == nil {
		return
	}
	requestID := utils.GetRequestID(ctx)
	occurredAt := j.now().UTC()

	if entry != nil && j.Audit != nil {
		entry.RequestID = requestID
		entry.OccurredAt = occurredAt
		err := j.Audit.InsertEntry(ctx, entry)
		if err != nil {
			j.Log.Warn("Journal.Record error inserting audit entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingLetterIDKey, entry.LetterID),
				zap.Error(err),
			)
		}
	}

	if event != nil && j.Events != nil {
		event.ID = uuid.New().String()
		event.OccurredAt = occurredAt
		err := j.Events.PublishLetterEvent(ctx, event)
		if err != nil {
			j.Log.Warn("Journal.Record error publishing letter event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingLetterIDKey, event.LetterID),
				zap.String(constvars.LoggingEventKey, event.Event),
				zap.Error(err),
			)
		}
	}
}

func (j *Journal) History(ctx context.Context, letterID string) ([]models.AuditEntry, error) {
	if j == nil || j.Audit == nil {
		return []models.AuditEntry{}, nil
	}
	return j.Audit.FindEntriesByLetterID(ctx, letterID)
}
