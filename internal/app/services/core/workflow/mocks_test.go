package workflow

import (
	"context"
	"sort"
	"sync"
	"time"

	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/app/services/core/autosave"
	"nhscribe-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/mock"
)

type MockPatientUsecase struct {
	mock.Mock
}

func (m *MockPatientUsecase) CheckPatient(ctx context.Context, query models.PatientQuery) (*models.MatchOutcome, error) {
	args := m.Called(ctx, query)
	outcome, _ := args.Get(0).(*models.MatchOutcome)
	return outcome, args.Error(1)
}

func (m *MockPatientUsecase) CreatePatient(ctx context.Context, draft models.PatientDraft) (*models.Patient, error) {
	args := m.Called(ctx, draft)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

type MockResultsUsecase struct {
	mock.Mock
}

func (m *MockResultsUsecase) IngestText(raw string) models.IngestedResults {
	args := m.Called(raw)
	return args.Get(0).(models.IngestedResults)
}

func (m *MockResultsUsecase) IngestCSV(ctx context.Context, patientID string, file *models.ResultFile) (*models.ResultBatch, error) {
	args := m.Called(ctx, patientID, file)
	batch, _ := args.Get(0).(*models.ResultBatch)
	return batch, args.Error(1)
}

func (m *MockResultsUsecase) LoadExisting(ctx context.Context, patientID string) (*models.ResultBatch, error) {
	args := m.Called(ctx, patientID)
	batch, _ := args.Get(0).(*models.ResultBatch)
	return batch, args.Error(1)
}

type MockLetterClient struct {
	mock.Mock
}

func (m *MockLetterClient) UpdateLetterStatus(ctx context.Context, letterID string, status models.LetterStatus) (*models.StatusChange, error) {
	args := m.Called(ctx, letterID, status)
	change, _ := args.Get(0).(*models.StatusChange)
	return change, args.Error(1)
}

func (m *MockLetterClient) UpdateLetterContent(ctx context.Context, letterID, content string) (*models.Letter, error) {
	args := m.Called(ctx, letterID, content)
	letter, _ := args.Get(0).(*models.Letter)
	return letter, args.Error(1)
}

func (m *MockLetterClient) GenerateLetter(ctx context.Context, request *models.GenerateLetterRequest) (*models.GeneratedLetter, error) {
	args := m.Called(ctx, request)
	generated, _ := args.Get(0).(*models.GeneratedLetter)
	return generated, args.Error(1)
}

func (m *MockLetterClient) FindRecentLetters(ctx context.Context) ([]models.LetterSummary, error) {
	args := m.Called(ctx)
	summaries, _ := args.Get(0).([]models.LetterSummary)
	return summaries, args.Error(1)
}

func (m *MockLetterClient) FindLetterByID(ctx context.Context, letterID string) (*models.Letter, error) {
	args := m.Called(ctx, letterID)
	letter, _ := args.Get(0).(*models.Letter)
	return letter, args.Error(1)
}

func (m *MockLetterClient) DownloadLetterPDF(ctx context.Context, letterID string) (*models.LetterPDF, error) {
	args := m.Called(ctx, letterID)
	pdf, _ := args.Get(0).(*models.LetterPDF)
	return pdf, args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) InsertEntry(ctx context.Context, entry *models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) FindEntriesByLetterID(ctx context.Context, letterID string) ([]models.AuditEntry, error) {
	args := m.Called(ctx, letterID)
	entries, _ := args.Get(0).([]models.AuditEntry)
	return entries, args.Error(1)
}

func (m *MockAuditRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLetterEvent(ctx context.Context, event *models.LetterEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockLetterArchive struct {
	mock.Mock
}

func (m *MockLetterArchive) ArchiveLetterPDF(ctx context.Context, pdf *models.LetterPDF) (string, error) {
	args := m.Called(ctx, pdf)
	return args.String(0), args.Error(1)
}

func (m *MockLetterArchive) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// memoryDraftStore stores deep-enough copies so tests see what was persisted.
type memoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]models.DraftSession
	saves  int
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{drafts: make(map[string]models.DraftSession)}
}

func (s *memoryDraftStore) SaveDraft(ctx context.Context, draft *models.DraftSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *draft
	copied.Batch = draft.Batch.Clone()
	s.drafts[draft.ID] = copied
	s.saves++
	return nil
}

func (s *memoryDraftStore) FindDraftByID(ctx context.Context, draftID string) (*models.DraftSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[draftID]
	if !ok {
		return nil, exceptions.ErrDraftNotFound(draftID)
	}
	draft.Batch = draft.Batch.Clone()
	return &draft, nil
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

var _ autosave.Scheduler = (*manualClock)(nil)

func (c *manualClock) AfterFunc(d time.Duration, f func()) autosave.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &manualTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired && timer.at <= c.now {
			timer.fired = true
			due = append(due, timer)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, timer := range due {
		timer.fn()
	}
}
