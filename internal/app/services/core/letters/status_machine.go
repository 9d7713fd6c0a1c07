package letters

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// StatusMachine owns the status of one letter. The status and approval time
// live in one immutable snapshot that is replaced as a whole, and only after
// the backend confirmed the transition.
type StatusMachine struct {
	letterID string
	updater  contracts.LetterStatusUpdater
	log      *zap.Logger
	now      func() time.Time

	// mu is held for the whole round trip of Advance.
	mu       sync.Mutex
	snapshot atomic.Pointer[models.StatusSnapshot]
}

func NewStatusMachine(letterID string, initial models.StatusSnapshot, updater contracts.LetterStatusUpdater, logger *zap.Logger) *StatusMachine {
	machine := &StatusMachine{
		letterID: letterID,
		updater:  updater,
		log:      logger,
		now:      time.Now,
	}
	machine.snapshot.Store(&initial)
	return machine
}

func (m *StatusMachine) LetterID() string {
	return m.letterID
}

func (m *StatusMachine) Snapshot() models.StatusSnapshot {
	return *m.snapshot.Load()
}

func (m *StatusMachine) InFlight() bool {
	if m.mu.TryLock() {
		m.mu.Unlock()
		return false
	}
	return true
}

// Reseed replaces the snapshot with fresh data from the backend. It refuses
// while a transition is in flight and reports whether it applied.
func (m *StatusMachine) Reseed(snapshot models.StatusSnapshot) bool {
	if !m.mu.TryLock() {
		return false
	}
	defer m.mu.Unlock()
	m.snapshot.Store(&snapshot)
	return true
}

// Advance requests the next status in the cycle. A second call while one is
// in flight is rejected without touching the network. No retries. On failure
// From and To are both the unchanged snapshot.
func (m *StatusMachine) Advance(ctx context.Context) (models.StatusTransition, error) {
	requestID := utils.GetRequestID(ctx)

	if !m.mu.TryLock() {
		snapshot := m.Snapshot()
		return models.StatusTransition{From: snapshot, To: snapshot}, exceptions.ErrStatusTransitionInFlight(m.letterID)
	}
	defer m.mu.Unlock()

	current := m.Snapshot()
	unchanged := models.StatusTransition{From: current, To: current}
	target, ok := NextStatus(current.Status)
	if !ok {
		return unchanged, exceptions.ErrStatusUnknown(m.letterID, string(current.Status))
	}

	m.log.Info("StatusMachine.Advance called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, m.letterID),
		zap.String(constvars.LoggingFromStatusKey, string(current.Status)),
		zap.String(constvars.LoggingToStatusKey, string(target)),
	)

	change, err := m.updater.UpdateLetterStatus(ctx, m.letterID, target)
	if err != nil {
		m.log.Error("StatusMachine.Advance error updating status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLetterIDKey, m.letterID),
			zap.Error(err),
		)
		return unchanged, exceptions.ErrStatusTransition(err, string(current.Status), string(target))
	}

	confirmed := target
	if strings.TrimSpace(change.Status) != "" {
		confirmed = ParseLetterStatus(change.Status)
	}
	if confirmed == models.LetterStatusUnknown {
		err = fmt.Errorf(constvars.ErrDevStatusUnconfirmed, change.Status)
		return unchanged, exceptions.ErrStatusTransition(err, string(current.Status), string(target))
	}

	next := models.StatusSnapshot{
		Status:     confirmed,
		ApprovedAt: current.ApprovedAt,
	}
	switch {
	case change.ApprovedAt != "":
		next.ApprovedAt = change.ApprovedAt
	case confirmed == models.LetterStatusApproved && current.Status != models.LetterStatusApproved:
		next.ApprovedAt = m.now().Format(constvars.ApprovedAtLayout)
	}
	m.snapshot.Store(&next)

	m.log.Info("StatusMachine.Advance succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, m.letterID),
		zap.String(constvars.LoggingToStatusKey, string(next.Status)),
	)
	return models.StatusTransition{From: current, To: next}, nil
}
