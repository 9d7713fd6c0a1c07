package letters

import (
	"context"
	"sync"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type boardEntry struct {
	summary models.LetterSummary
	machine *StatusMachine
}

// Board is the recent letters list. Every row owns its own StatusMachine, so a
// transition on one row never blocks or alters another.
type Board struct {
	client contracts.LetterClient
	log    *zap.Logger

	mu      sync.RWMutex
	order   []string
	entries map[string]*boardEntry
}

func NewBoard(client contracts.LetterClient, logger *zap.Logger) *Board {
	return &Board{
		client:  client,
		log:     logger,
		entries: make(map[string]*boardEntry),
	}
}

// Refresh reloads the list from the backend. Rows whose transition is still in
// flight keep their current snapshot.
func (b *Board) Refresh(ctx context.Context) ([]models.BoardRow, error) {
	requestID := utils.GetRequestID(ctx)
	b.log.Info("Board.Refresh called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	summaries, err := b.client.FindRecentLetters(ctx)
	if err != nil {
		b.log.Error("Board.Refresh error fetching recent letters",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrLetterList(err)
	}

	b.mu.Lock()
	order := make([]string, 0, len(summaries))
	entries := make(map[string]*boardEntry, len(summaries))
	for _, summary := range summaries {
		id := summary.ID.String()
		if _, dup := entries[id]; dup {
			continue
		}
		snapshot := models.StatusSnapshot{
			Status:     ParseLetterStatus(summary.Status),
			ApprovedAt: summary.ApprovedAt,
		}
		entry, ok := b.entries[id]
		if ok {
			entry.summary = summary
			if !entry.machine.Reseed(snapshot) {
				b.log.Debug("Board.Refresh kept in-flight row",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingLetterIDKey, id),
				)
			}
		} else {
			entry = &boardEntry{
				summary: summary,
				machine: NewStatusMachine(id, snapshot, b.client, b.log),
			}
		}
		order = append(order, id)
		entries[id] = entry
	}
	b.order = order
	b.entries = entries
	b.mu.Unlock()

	rows := b.Rows()
	b.log.Info("Board.Refresh succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingLetterCountKey, len(rows)),
	)
	return rows, nil
}

func (b *Board) Rows() []models.BoardRow {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rows := make([]models.BoardRow, 0, len(b.order))
	for _, id := range b.order {
		rows = append(rows, b.entries[id].row())
	}
	return rows
}

// Advance clicks the status control of a single row. The transition carries
// the snapshots the machine itself moved between; the row may already show a
// later reseed.
func (b *Board) Advance(ctx context.Context, letterID string) (*models.BoardRow, models.StatusTransition, error) {
	b.mu.RLock()
	entry, ok := b.entries[letterID]
	b.mu.RUnlock()
	if !ok {
		return nil, models.StatusTransition{}, exceptions.ErrLetterNotOnBoard(letterID)
	}

	transition, err := entry.machine.Advance(ctx)

	b.mu.RLock()
	row := entry.row()
	b.mu.RUnlock()
	return &row, transition, err
}

func (e *boardEntry) row() models.BoardRow {
	snapshot := e.machine.Snapshot()
	summary := e.summary
	summary.Status = string(snapshot.Status)
	summary.ApprovedAt = snapshot.ApprovedAt
	next, _ := NextStatus(snapshot.Status)
	return models.BoardRow{
		Summary:    summary,
		Snapshot:   snapshot,
		NextStatus: next,
		InFlight:   e.machine.InFlight(),
	}
}
