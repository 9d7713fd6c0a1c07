package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

var errControllerClosed = errors.New("autosave controller is closed")

type Options struct {
	Debounce       time.Duration
	NoticeDuration time.Duration
	Scheduler      Scheduler
}

// Controller keeps the editor content of one letter in sync with the backend.
// Edits are debounced into silent saves; Save is the explicit save button.
type Controller struct {
	letterID string
	saver    contracts.LetterContentSaver
	log      *zap.Logger

	debounce       time.Duration
	noticeDuration time.Duration
	scheduler      Scheduler
	now            func() time.Time

	mu         sync.Mutex
	content    string
	persisted  string
	pending    Timer
	generation uint64
	issued     uint64
	applied    uint64
	notice     *models.SaveNotice
	noticeTick Timer
	closed     bool
}

func NewController(letterID, persisted string, saver contracts.LetterContentSaver, logger *zap.Logger, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = NewRealScheduler()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = 3 * time.Second
	}
	return &Controller{
		letterID:       letterID,
		saver:          saver,
		log:            logger,
		debounce:       opts.Debounce,
		noticeDuration: opts.NoticeDuration,
		scheduler:      opts.Scheduler,
		now:            time.Now,
		content:        persisted,
		persisted:      persisted,
	}
}

// Edit records the editor value. A value that differs from the persisted one
// restarts the debounce window with that value; an equal value cancels it.
func (c *Controller) Edit(ctx context.Context, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.content = content
	c.cancelPendingLocked()
	if content == c.persisted {
		return
	}
	c.scheduleLocked(ctx, content)
}

func (c *Controller) scheduleLocked(ctx context.Context, content string) {
	generation := c.generation
	saveCtx := utils.DetachedContext(ctx)
	c.pending = c.scheduler.AfterFunc(c.debounce, func() {
		c.fire(saveCtx, generation, content)
	})
}

func (c *Controller) fire(ctx context.Context, generation uint64, snapshot string) {
	c.mu.Lock()
	if c.closed || generation != c.generation {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.issued++
	sequence := c.issued
	c.mu.Unlock()

	// Silent saves never surface an error to the editor.
	_ = c.save(ctx, sequence, snapshot, constvars.SaveModeSilent)
}

// Save persists the current content immediately and sets the save notice.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return exceptions.ErrContentSave(errControllerClosed)
	}
	c.cancelPendingLocked()
	c.issued++
	sequence := c.issued
	snapshot := c.content
	c.mu.Unlock()

	return c.save(ctx, sequence, snapshot, constvars.SaveModeExplicit)
}

func (c *Controller) save(ctx context.Context, sequence uint64, snapshot, mode string) error {
	requestID := utils.GetRequestID(ctx)
	c.log.Info("Controller.save called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, c.letterID),
		zap.String(constvars.LoggingSaveModeKey, mode),
		zap.Uint64(constvars.LoggingSaveSequenceKey, sequence),
		zap.Int(constvars.LoggingContentLengthKey, len(snapshot)),
	)

	_, err := c.saver.UpdateLetterContent(ctx, c.letterID, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()

	explicit := mode == constvars.SaveModeExplicit
	if err != nil {
		c.log.Error("Controller.save error updating letter content",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLetterIDKey, c.letterID),
			zap.String(constvars.LoggingSaveModeKey, mode),
			zap.Uint64(constvars.LoggingSaveSequenceKey, sequence),
			zap.Error(err),
		)
		if explicit {
			c.setNoticeLocked(constvars.SaveNoticeError, constvars.SaveNoticeErrorMessage)
		}
		return exceptions.ErrContentSave(err)
	}

	if sequence > c.applied {
		c.applied = sequence
		c.persisted = snapshot
	} else {
		c.log.Debug("Controller.save ignored stale completion",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLetterIDKey, c.letterID),
			zap.Uint64(constvars.LoggingSaveSequenceKey, sequence),
		)
	}
	if explicit && !c.closed {
		c.setNoticeLocked(constvars.SaveNoticeSuccess, constvars.SaveNoticeSuccessMessage)
	}

	// An edit made while this save was in flight may have been compared
	// against the old persisted value. Once no newer save is outstanding the
	// editor must match the backend again.
	if !c.closed && c.pending == nil && sequence == c.issued && c.content != c.persisted {
		c.log.Debug("Controller.save rescheduling diverged content",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLetterIDKey, c.letterID),
			zap.Uint64(constvars.LoggingSaveSequenceKey, sequence),
		)
		c.scheduleLocked(ctx, c.content)
	}

	c.log.Info("Controller.save succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, c.letterID),
		zap.String(constvars.LoggingSaveModeKey, mode),
		zap.Uint64(constvars.LoggingSaveSequenceKey, sequence),
	)
	return nil
}

func (c *Controller) setNoticeLocked(kind, message string) {
	if c.noticeTick != nil {
		c.noticeTick.Stop()
	}
	notice := &models.SaveNotice{
		Kind:      kind,
		Message:   message,
		ExpiresAt: c.now().Add(c.noticeDuration),
	}
	c.notice = notice
	c.noticeTick = c.scheduler.AfterFunc(c.noticeDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.notice == notice {
			c.notice = nil
			c.noticeTick = nil
		}
	})
}

func (c *Controller) cancelPendingLocked() {
	c.generation++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// Close abandons the pending window. Saves already in flight may still land.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancelPendingLocked()
	if c.noticeTick != nil {
		c.noticeTick.Stop()
		c.noticeTick = nil
	}
	c.notice = nil
}

func (c *Controller) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

func (c *Controller) Persisted() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persisted
}

func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

func (c *Controller) Notice() *models.SaveNotice {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notice == nil {
		return nil
	}
	notice := *c.notice
	return &notice
}

func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
