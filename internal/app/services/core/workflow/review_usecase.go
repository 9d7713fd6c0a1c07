package workflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/app/services/core/autosave"
	"nhscribe-service/internal/app/services/core/letters"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const defaultReviewIdleTTL = 30 * time.Minute

// ReviewOptions configures review sessions. IdleTTL bounds both how long an
// untouched session stays open and how long its closed tombstone answers 410.
type ReviewOptions struct {
	AutosaveDebounce   time.Duration
	SaveNoticeDuration time.Duration
	IdleTTL            time.Duration
	Scheduler          autosave.Scheduler
	Now                func() time.Time
}

// reviewSession exists only after the letter was fetched. The status machine
// and the autosave controller share nothing, so status clicks and edits
// interleave freely.
type reviewSession struct {
	id       string
	letter   models.Letter
	status   *letters.StatusMachine
	autosave *autosave.Controller
	lastSeen atomic.Int64
}

type reviewUsecase struct {
	Letters contracts.LetterClient
	Archive contracts.LetterArchive
	Journal *Journal
	Options ReviewOptions
	Log     *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*reviewSession
	closed   map[string]time.Time
}

func NewReviewUsecase(letterClient contracts.LetterClient, archive contracts.LetterArchive, journal *Journal, opts ReviewOptions, logger *zap.Logger) contracts.ReviewUsecase {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = defaultReviewIdleTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &reviewUsecase{
		Letters:  letterClient,
		Archive:  archive,
		Journal:  journal,
		Options:  opts,
		Log:      logger,
		sessions: make(map[string]*reviewSession),
		closed:   make(map[string]time.Time),
	}
}

func (uc *reviewUsecase) OpenReview(ctx context.Context, letterID string) (*models.ReviewView, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reviewUsecase.OpenReview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
	)

	letter, err := uc.Letters.FindLetterByID(ctx, letterID)
	if err != nil {
		uc.Log.Error("reviewUsecase.OpenReview error fetching letter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLetterIDKey, letterID),
			zap.Error(err),
		)
		return nil, letterFetchError(err)
	}

	id := letter.ID.String()
	snapshot := models.StatusSnapshot{
		Status:     letters.ParseLetterStatus(letter.Status),
		ApprovedAt: letter.ApprovedAt,
	}
	session := &reviewSession{
		id:     utils.GenerateSessionID(),
		letter: *letter,
		status: letters.NewStatusMachine(id, snapshot, uc.Letters, uc.Log),
		autosave: autosave.NewController(id, letter.Content, uc.Letters, uc.Log, autosave.Options{
			Debounce:       uc.Options.AutosaveDebounce,
			NoticeDuration: uc.Options.SaveNoticeDuration,
			Scheduler:      uc.Options.Scheduler,
		}),
	}
	session.touch(uc.Options.Now())

	uc.mu.Lock()
	uc.sessions[session.id] = session
	uc.mu.Unlock()

	uc.Log.Info("reviewUsecase.OpenReview succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReviewIDKey, session.id),
		zap.String(constvars.LoggingLetterIDKey, id),
	)
	return session.view(), nil
}

func (uc *reviewUsecase) GetReview(ctx context.Context, reviewID string) (*models.ReviewView, error) {
	session, err := uc.session(reviewID)
	if err != nil {
		return nil, err
	}
	return session.view(), nil
}

func (uc *reviewUsecase) EditContent(ctx context.Context, reviewID, content string) (*models.ReviewView, error) {
	session, err := uc.session(reviewID)
	if err != nil {
		return nil, err
	}
	session.autosave.Edit(ctx, content)
	return session.view(), nil
}

func (uc *reviewUsecase) SaveContent(ctx context.Context, reviewID string) (*models.ReviewView, error) {
	session, err := uc.session(reviewID)
	if err != nil {
		return nil, err
	}

	err = session.autosave.Save(ctx)
	if err != nil {
		return session.view(), err
	}

	uc.Journal.Record(ctx, &models.AuditEntry{
		Action:    constvars.AuditActionExplicitSave,
		LetterID:  session.status.LetterID(),
		PatientID: session.letter.PatientID.String(),
	}, nil)
	return session.view(), nil
}

func (uc *reviewUsecase) AdvanceStatus(ctx context.Context, reviewID string) (*models.ReviewView, error) {
	session, err := uc.session(reviewID)
	if err != nil {
		return nil, err
	}

	transition, err := session.status.Advance(ctx)
	if err != nil {
		return session.view(), err
	}

	recordTransition(ctx, uc.Journal, session.status.LetterID(), session.letter.PatientID.String(), transition)
	return session.view(), nil
}

// ExportPDF downloads the rendered letter and archives a copy. The archive is
// best effort; the clinician still gets the document when it fails.
func (uc *reviewUsecase) ExportPDF(ctx context.Context, reviewID string) (*models.LetterPDF, error) {
	requestID := utils.GetRequestID(ctx)
	session, err := uc.session(reviewID)
	if err != nil {
		return nil, err
	}
	letterID := session.status.LetterID()

	uc.Log.Info("reviewUsecase.ExportPDF called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
	)

	pdf, err := uc.Letters.DownloadLetterPDF(ctx, letterID)
	if err != nil {
		uc.Log.Error("reviewUsecase.ExportPDF error downloading pdf",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLetterIDKey, letterID),
			zap.Error(err),
		)
		return nil, exceptions.ErrLetterExport(err)
	}

	if uc.Archive != nil {
		key, err := uc.Archive.ArchiveLetterPDF(ctx, pdf)
		if err != nil {
			uc.Log.Warn("reviewUsecase.ExportPDF error archiving pdf",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingLetterIDKey, letterID),
				zap.Error(err),
			)
		} else {
			pdf.ArchiveKey = key
		}
	}

	var event *models.LetterEvent
	if pdf.ArchiveKey != "" {
		event = &models.LetterEvent{
			Event:     constvars.EventLetterArchived,
			LetterID:  letterID,
			PatientID: session.letter.PatientID.String(),
			ObjectKey: pdf.ArchiveKey,
		}
	}
	uc.Journal.Record(ctx, &models.AuditEntry{
		Action:    constvars.AuditActionExport,
		LetterID:  letterID,
		PatientID: session.letter.PatientID.String(),
		ObjectKey: pdf.ArchiveKey,
	}, event)

	uc.Log.Info("reviewUsecase.ExportPDF succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLetterIDKey, letterID),
		zap.String(constvars.LoggingObjectKey, pdf.ArchiveKey),
	)
	return pdf, nil
}

// CloseReview abandons any pending autosave window of the session.
func (uc *reviewUsecase) CloseReview(ctx context.Context, reviewID string) error {
	uc.mu.Lock()
	session, ok := uc.sessions[reviewID]
	if ok {
		delete(uc.sessions, reviewID)
		uc.closed[reviewID] = uc.Options.Now()
	}
	_, wasClosed := uc.closed[reviewID]
	uc.mu.Unlock()

	if !ok {
		if wasClosed {
			return exceptions.ErrReviewClosed(reviewID)
		}
		return exceptions.ErrReviewNotFound(reviewID)
	}

	session.autosave.Close()
	uc.Log.Info("reviewUsecase.CloseReview succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingReviewIDKey, reviewID),
	)
	return nil
}

func (uc *reviewUsecase) CloseAll() {
	uc.mu.Lock()
	sessions := uc.sessions
	uc.sessions = make(map[string]*reviewSession)
	now := uc.Options.Now()
	for id := range sessions {
		uc.closed[id] = now
	}
	uc.mu.Unlock()

	for _, session := range sessions {
		session.autosave.Close()
	}
}

// ExpireIdle closes sessions untouched for longer than the idle TTL and
// forgets tombstones of the same age. Sessions with an autosave window still
// open are left for the next sweep. It returns the number of sessions closed.
func (uc *reviewUsecase) ExpireIdle(now time.Time) int {
	cutoff := now.Add(-uc.Options.IdleTTL)

	uc.mu.Lock()
	var expired []*reviewSession
	for id, session := range uc.sessions {
		if session.idleSince().After(cutoff) || session.autosave.Pending() {
			continue
		}
		delete(uc.sessions, id)
		uc.closed[id] = now
		expired = append(expired, session)
	}
	pruned := 0
	for id, closedAt := range uc.closed {
		if closedAt.Before(cutoff) {
			delete(uc.closed, id)
			pruned++
		}
	}
	open := len(uc.sessions)
	uc.mu.Unlock()

	for _, session := range expired {
		session.autosave.Close()
	}
	if len(expired) > 0 || pruned > 0 {
		uc.Log.Info("reviewUsecase.ExpireIdle succeeded",
			zap.Int("expired", len(expired)),
			zap.Int("pruned_tombstones", pruned),
			zap.Int("open", open),
		)
	}
	return len(expired)
}

func (uc *reviewUsecase) session(reviewID string) (*reviewSession, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	session, ok := uc.sessions[reviewID]
	if ok {
		session.touch(uc.Options.Now())
		return session, nil
	}
	if _, closed := uc.closed[reviewID]; closed {
		return nil, exceptions.ErrReviewClosed(reviewID)
	}
	return nil, exceptions.ErrReviewNotFound(reviewID)
}

func (s *reviewSession) touch(at time.Time) {
	s.lastSeen.Store(at.UnixNano())
}

func (s *reviewSession) idleSince() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *reviewSession) view() *models.ReviewView {
	snapshot := s.status.Snapshot()
	content := s.autosave.Content()
	persisted := s.autosave.Persisted()

	letter := s.letter
	letter.Status = string(snapshot.Status)
	letter.ApprovedAt = snapshot.ApprovedAt
	letter.Content = persisted

	next, _ := letters.NextStatus(snapshot.Status)
	return &models.ReviewView{
		ID:         s.id,
		Letter:     letter,
		Snapshot:   snapshot,
		NextStatus: next,
		Content:    content,
		Persisted:  persisted,
		Notice:     s.autosave.Notice(),
	}
}

func letterFetchError(err error) error {
	customErr := exceptions.ErrLetterFetch(err)
	if isNotFound(err) {
		customErr.StatusCode = constvars.StatusNotFound
	}
	return customErr
}

func isNotFound(err error) bool {
	var customErr *exceptions.CustomError
	return errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusNotFound
}

func recordTransition(ctx context.Context, journal *Journal, letterID, patientID string, transition models.StatusTransition) {
	from, to := transition.From, transition.To
	journal.Record(ctx, &models.AuditEntry{
		Action:     constvars.AuditActionStatusTransition,
		LetterID:   letterID,
		PatientID:  patientID,
		FromStatus: string(from.Status),
		ToStatus:   string(to.Status),
		ApprovedAt: to.ApprovedAt,
	}, &models.LetterEvent{
		Event:      constvars.EventLetterStatusChanged,
		LetterID:   letterID,
		PatientID:  patientID,
		Status:     string(to.Status),
		ApprovedAt: to.ApprovedAt,
	})
}
