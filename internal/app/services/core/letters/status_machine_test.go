package letters

import (
	"context"
	"errors"
	"testing"
	"time"

	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStatusUpdater struct {
	mock.Mock
}

func (m *MockStatusUpdater) UpdateLetterStatus(ctx context.Context, letterID string, status models.LetterStatus) (*models.StatusChange, error) {
	args := m.Called(ctx, letterID, status)
	change, _ := args.Get(0).(*models.StatusChange)
	return change, args.Error(1)
}

// blockingUpdater holds every call until release is closed.
type blockingUpdater struct {
	entered chan struct{}
	release chan struct{}
	calls int
}

func (u *blockingUpdater) UpdateLetterStatus(ctx context.Context, letterID string, status models.LetterStatus) (*models.StatusChange, error) {
	u.calls++
	u.entered <- struct{}{}
	<-u.release
	return &models.StatusChange{Status: string(status)}, nil
}

func fixedClock(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 3, 1, hour, minute, 0, 0, time.Local)
	}
}

func TestParseLetterStatus(t *testing.T) {
	assert.Equal(t, models.LetterStatusDraft, ParseLetterStatus("draft"))
	assert.Equal(t, models.LetterStatusApproved, ParseLetterStatus(" APPROVED "))
	assert.Equal(t, models.LetterStatusRejected, ParseLetterStatus("Rejected"))
	assert.Equal(t, models.LetterStatusUnknown, ParseLetterStatus("sent"))
	assert.Equal(t, models.LetterStatusUnknown, ParseLetterStatus(""))
}

func TestNextStatusCycle(t *testing.T) {
	status := models.LetterStatusDraft
	visited := []models.LetterStatus{status}
	for i := 0; i < 3; i++ {
		next, ok := NextStatus(status)
		require.True(t, ok)
		status = next
		visited = append(visited, status)
	}
	assert.Equal(t, []models.LetterStatus{
		models.LetterStatusDraft,
		models.LetterStatusApproved,
		models.LetterStatusRejected,
		models.LetterStatusDraft,
	}, visited)

	next, ok := NextStatus(models.LetterStatusUnknown)
	assert.False(t, ok)
	assert.Empty(t, next)
}

func TestStatusMachineAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft to Approved stamps the server time then requests Rejected", func(t *testing.T) {
		updater := new(MockStatusUpdater)
		updater.On("UpdateLetterStatus", ctx, "42", models.LetterStatusApproved).
			Return(&models.StatusChange{Status: "Approved", ApprovedAt: "10:20"}, nil).Once()
		updater.On("UpdateLetterStatus", ctx, "42", models.LetterStatusRejected).
			Return(&models.StatusChange{Status: "Rejected"}, nil).Once()

		machine := NewStatusMachine("42", models.StatusSnapshot{Status: models.LetterStatusDraft}, updater, zap.NewNop())

		transition, err := machine.Advance(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSnapshot{Status: models.LetterStatusDraft}, transition.From)
		assert.Equal(t, models.StatusSnapshot{Status: models.LetterStatusApproved, ApprovedAt: "10:20"}, transition.To)

		transition, err = machine.Advance(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.LetterStatusApproved, transition.From.Status)
		assert.Equal(t, models.LetterStatusRejected, transition.To.Status)
		assert.Equal(t, "10:20", transition.To.ApprovedAt)
		updater.AssertExpectations(t)
	})

	t.Run("Missing approval time is stamped locally as HH:MM", func(t *testing.T) {
		updater := new(MockStatusUpdater)
		updater.On("UpdateLetterStatus", ctx, "7", models.LetterStatusApproved).
			Return(&models.StatusChange{}, nil).Once()

		machine := NewStatusMachine("7", models.StatusSnapshot{Status: models.LetterStatusDraft}, updater, zap.NewNop())
		machine.now = fixedClock(9, 5)

		transition, err := machine.Advance(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.LetterStatusApproved, transition.To.Status)
		assert.Equal(t, "09:05", transition.To.ApprovedAt)
	})

	t.Run("Failure leaves the snapshot untouched", func(t *testing.T) {
		updater := new(MockStatusUpdater)
		updater.On("UpdateLetterStatus", ctx, "42", models.LetterStatusDraft).
			Return(nil, errors.New("boom")).Once()

		initial := models.StatusSnapshot{Status: models.LetterStatusRejected, ApprovedAt: "08:00"}
		machine := NewStatusMachine("42", initial, updater, zap.NewNop())

		transition, err := machine.Advance(ctx)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindTransition))
		assert.Equal(t, models.StatusTransition{From: initial, To: initial}, transition)
		assert.Equal(t, initial, machine.Snapshot())
		assert.False(t, machine.InFlight())
	})

	t.Run("Unrecognised confirmation is a failure", func(t *testing.T) {
		updater := new(MockStatusUpdater)
		updater.On("UpdateLetterStatus", ctx, "42", models.LetterStatusApproved).
			Return(&models.StatusChange{Status: "Archived"}, nil).Once()

		initial := models.StatusSnapshot{Status: models.LetterStatusDraft}
		machine := NewStatusMachine("42", initial, updater, zap.NewNop())

		_, err := machine.Advance(ctx)
		require.Error(t, err)
		assert.Equal(t, initial, machine.Snapshot())
	})

	t.Run("Unknown status never reaches the backend", func(t *testing.T) {
		updater := new(MockStatusUpdater)
		machine := NewStatusMachine("42", models.StatusSnapshot{Status: models.LetterStatusUnknown}, updater, zap.NewNop())

		_, err := machine.Advance(ctx)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindTransition))
		updater.AssertNotCalled(t, "UpdateLetterStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Server status wins over the requested one", func(t *testing.T) {
		updater := new(MockStatusUpdater)
		updater.On("UpdateLetterStatus", ctx, "42", models.LetterStatusApproved).
			Return(&models.StatusChange{Status: "rejected"}, nil).Once()

		machine := NewStatusMachine("42", models.StatusSnapshot{Status: models.LetterStatusDraft}, updater, zap.NewNop())

		transition, err := machine.Advance(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.LetterStatusRejected, transition.To.Status)
		assert.Empty(t, transition.To.ApprovedAt)
	})

	t.Run("Transition starts from the reseeded snapshot", func(t *testing.T) {
		updater := new(MockStatusUpdater)
		updater.On("UpdateLetterStatus", ctx, "42", models.LetterStatusRejected).
			Return(&models.StatusChange{Status: "Rejected"}, nil).Once()

		machine := NewStatusMachine("42", models.StatusSnapshot{Status: models.LetterStatusDraft}, updater, zap.NewNop())
		require.True(t, machine.Reseed(models.StatusSnapshot{Status: models.LetterStatusApproved, ApprovedAt: "07:30"}))

		transition, err := machine.Advance(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSnapshot{Status: models.LetterStatusApproved, ApprovedAt: "07:30"}, transition.From)
		assert.Equal(t, models.StatusSnapshot{Status: models.LetterStatusRejected, ApprovedAt: "07:30"}, transition.To)
	})
}

func TestStatusMachineInFlight(t *testing.T) {
	updater := &blockingUpdater{entered: make(chan struct{}, 1), release: make(chan struct{})}
	machine := NewStatusMachine("42", models.StatusSnapshot{Status: models.LetterStatusDraft}, updater, zap.NewNop())
	machine.now = fixedClock(10, 20)

	done := make(chan error, 1)
	go func() {
		_, err := machine.Advance(context.Background())
		done <- err
	}()
	<-updater.entered

	assert.True(t, machine.InFlight())

	_, err := machine.Advance(context.Background())
	require.Error(t, err)
	assert.Equal(t, 409, err.(*exceptions.CustomError).StatusCode)

	assert.False(t, machine.Reseed(models.StatusSnapshot{Status: models.LetterStatusRejected}))
	assert.Equal(t, models.LetterStatusDraft, machine.Snapshot().Status)

	close(updater.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, updater.calls)
	assert.False(t, machine.InFlight())
	assert.Equal(t, models.StatusSnapshot{Status: models.LetterStatusApproved, ApprovedAt: "10:20"}, machine.Snapshot())
}
