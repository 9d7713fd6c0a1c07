package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nhscribe-service/internal/app/config"
	"nhscribe-service/internal/app/delivery/http/controllers"
	"nhscribe-service/internal/app/delivery/http/middlewares"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/dto/responses"
	"nhscribe-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockDraftUsecase struct {
	mock.Mock
}

func (m *MockDraftUsecase) StartDraft(ctx context.Context, doctorName, dataType, urgency string) (*models.DraftSession, error) {
	args := m.Called(ctx, doctorName, dataType, urgency)
	draft, _ := args.Get(0).(*models.DraftSession)
	return draft, args.Error(1)
}

func (m *MockDraftUsecase) GetDraft(ctx context.Context, draftID string) (*models.DraftSession, error) {
	args := m.Called(ctx, draftID)
	draft, _ := args.Get(0).(*models.DraftSession)
	return draft, args.Error(1)
}

func (m *MockDraftUsecase) UpdateDraft(ctx context.Context, draftID string, update *models.DraftUpdate) (*models.DraftSession, error) {
	args := m.Called(ctx, draftID, update)
	draft, _ := args.Get(0).(*models.DraftSession)
	return draft, args.Error(1)
}

func (m *MockDraftUsecase) CheckPatient(ctx context.Context, draftID string) (*models.DraftSession, *models.MatchOutcome, error) {
	args := m.Called(ctx, draftID)
	draft, _ := args.Get(0).(*models.DraftSession)
	outcome, _ := args.Get(1).(*models.MatchOutcome)
	return draft, outcome, args.Error(2)
}

func (m *MockDraftUsecase) CreatePatient(ctx context.Context, draftID string) (*models.DraftSession, *models.Patient, error) {
	args := m.Called(ctx, draftID)
	draft, _ := args.Get(0).(*models.DraftSession)
	patient, _ := args.Get(1).(*models.Patient)
	return draft, patient, args.Error(2)
}

func (m *MockDraftUsecase) IngestText(ctx context.Context, draftID, raw string) (*models.DraftSession, error) {
	args := m.Called(ctx, draftID, raw)
	draft, _ := args.Get(0).(*models.DraftSession)
	return draft, args.Error(1)
}

func (m *MockDraftUsecase) IngestCSV(ctx context.Context, draftID string, file *models.ResultFile) (*models.DraftSession, error) {
	args := m.Called(ctx, draftID, file)
	draft, _ := args.Get(0).(*models.DraftSession)
	return draft, args.Error(1)
}

func (m *MockDraftUsecase) LoadExistingResults(ctx context.Context, draftID string) (*models.DraftSession, error) {
	args := m.Called(ctx, draftID)
	draft, _ := args.Get(0).(*models.DraftSession)
	return draft, args.Error(1)
}

func (m *MockDraftUsecase) Generate(ctx context.Context, draftID string) (*models.DraftSession, error) {
	args := m.Called(ctx, draftID)
	draft, _ := args.Get(0).(*models.DraftSession)
	return draft, args.Error(1)
}

func (m *MockDraftUsecase) Preview(ctx context.Context, draftID string) (*models.Preview, error) {
	args := m.Called(ctx, draftID)
	preview, _ := args.Get(0).(*models.Preview)
	return preview, args.Error(1)
}

type MockReviewUsecase struct {
	mock.Mock
}

func (m *MockReviewUsecase) OpenReview(ctx context.Context, letterID string) (*models.ReviewView, error) {
	args := m.Called(ctx, letterID)
	view, _ := args.Get(0).(*models.ReviewView)
	return view, args.Error(1)
}

func (m *MockReviewUsecase) GetReview(ctx context.Context, reviewID string) (*models.ReviewView, error) {
	args := m.Called(ctx, reviewID)
	view, _ := args.Get(0).(*models.ReviewView)
	return view, args.Error(1)
}

func (m *MockReviewUsecase) EditContent(ctx context.Context, reviewID, content string) (*models.ReviewView, error) {
	args := m.Called(ctx, reviewID, content)
	view, _ := args.Get(0).(*models.ReviewView)
	return view, args.Error(1)
}

func (m *MockReviewUsecase) SaveContent(ctx context.Context, reviewID string) (*models.ReviewView, error) {
	args := m.Called(ctx, reviewID)
	view, _ := args.Get(0).(*models.ReviewView)
	return view, args.Error(1)
}

func (m *MockReviewUsecase) AdvanceStatus(ctx context.Context, reviewID string) (*models.ReviewView, error) {
	args := m.Called(ctx, reviewID)
	view, _ := args.Get(0).(*models.ReviewView)
	return view, args.Error(1)
}

func (m *MockReviewUsecase) ExportPDF(ctx context.Context, reviewID string) (*models.LetterPDF, error) {
	args := m.Called(ctx, reviewID)
	pdf, _ := args.Get(0).(*models.LetterPDF)
	return pdf, args.Error(1)
}

func (m *MockReviewUsecase) CloseReview(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockReviewUsecase) CloseAll() {
	m.Called()
}

func (m *MockReviewUsecase) ExpireIdle(now time.Time) int {
	args := m.Called(now)
	return args.Int(0)
}

type MockBoardUsecase struct {
	mock.Mock
}

func (m *MockBoardUsecase) RecentLetters(ctx context.Context) ([]models.BoardRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]models.BoardRow)
	return rows, args.Error(1)
}

func (m *MockBoardUsecase) AdvanceLetterStatus(ctx context.Context, letterID string) (*models.BoardRow, error) {
	args := m.Called(ctx, letterID)
	row, _ := args.Get(0).(*models.BoardRow)
	return row, args.Error(1)
}

func (m *MockBoardUsecase) LetterAudit(ctx context.Context, letterID string) ([]models.AuditEntry, error) {
	args := m.Called(ctx, letterID)
	entries, _ := args.Get(0).([]models.AuditEntry)
	return entries, args.Error(1)
}

type testServer struct {
	router  *chi.Mux
	drafts  *MockDraftUsecase
	reviews *MockReviewUsecase
	board   *MockBoardUsecase
}

func newTestServer(t *testing.T, generateBurst int) *testServer {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "/api/v1",
			AllowedOrigins:             "http://localhost:5173",
			MaxRequests:                1000,
			MaxTimeRequestsPerSeconds:  5,
			RequestBodyLimitInMegabyte: 1,
			MaxUploadSizeInMegabyte:    1,
		},
	}

	server := &testServer{
		router:  chi.NewRouter(),
		drafts:  new(MockDraftUsecase),
		reviews: new(MockReviewUsecase),
		board:   new(MockBoardUsecase),
	}
	timeout := 5 * time.Second
	SetupRoutes(
		server.router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		middlewares.NewRateLimiter(1, generateBurst, time.Minute, logger),
		controllers.NewDraftController(logger, server.drafts, timeout, 1<<20),
		controllers.NewReviewController(logger, server.reviews, timeout),
		controllers.NewLetterController(logger, server.board, timeout),
	)
	return server
}

func (s *testServer) do(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestDraftRoutes(t *testing.T) {
	t.Run("start draft returns created draft with request id", func(t *testing.T) {
		server := newTestServer(t, 5)
		draft := &models.DraftSession{
			ID:         "draft-1",
			DoctorName: "Dr. Smith",
			Patient:    models.PatientForm{PatientID: "tmp-1"},
			Urgency:    constvars.UrgencyRoutine,
		}
		server.drafts.On("StartDraft", mock.Anything, "Dr. Smith", "", "").Return(draft, nil).Once()

		rr := server.do(http.MethodPost, "/api/v1/drafts/", []byte(`{"doctor_name":"  Dr. Smith "}`))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
		body := decodeEnvelope(t, rr)
		assert.True(t, body.Success)

		var payload responses.Draft
		require.NoError(t, json.Unmarshal(body.Data, &payload))
		assert.Equal(t, "draft-1", payload.ID)
		assert.False(t, payload.CanIngest)
		assert.False(t, payload.CanGenerate)
		server.drafts.AssertExpectations(t)
	})

	t.Run("start draft rejects unknown data type", func(t *testing.T) {
		server := newTestServer(t, 5)

		rr := server.do(http.MethodPost, "/api/v1/drafts/", []byte(`{"data_type":"XML"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, decodeEnvelope(t, rr).Success)
		server.drafts.AssertNotCalled(t, "StartDraft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing draft is 404", func(t *testing.T) {
		server := newTestServer(t, 5)
		server.drafts.On("GetDraft", mock.Anything, "nope").Return(nil, exceptions.ErrDraftNotFound("nope")).Once()

		rr := server.do(http.MethodGet, "/api/v1/drafts/nope", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("client request id is echoed", func(t *testing.T) {
		server := newTestServer(t, 5)
		server.drafts.On("Preview", mock.Anything, "draft-1").Return(&models.Preview{Kind: models.PreviewKindEmpty}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/drafts/draft-1/preview", nil)
		req.Header.Set(constvars.HeaderXRequestID, "req-42")
		rr := httptest.NewRecorder()
		server.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "req-42", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("ingest before patient resolved is a conflict", func(t *testing.T) {
		server := newTestServer(t, 5)
		server.drafts.On("IngestText", mock.Anything, "draft-1", "Hb 120").
			Return(nil, exceptions.ErrPatientPlaceholder("tmp-1")).Once()

		rr := server.do(http.MethodPut, "/api/v1/drafts/draft-1/results/text", []byte(`{"raw_data":"Hb 120"}`))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("csv upload without file is rejected", func(t *testing.T) {
		server := newTestServer(t, 5)

		rr := server.do(http.MethodPost, "/api/v1/drafts/draft-1/results/csv", []byte(`{}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		server.drafts.AssertNotCalled(t, "IngestCSV", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("generate is rate limited per client", func(t *testing.T) {
		server := newTestServer(t, 1)
		server.drafts.On("Generate", mock.Anything, "draft-1").
			Return(&models.DraftSession{ID: "draft-1"}, nil).Once()

		first := server.do(http.MethodPost, "/api/v1/drafts/draft-1/generate", nil)
		second := server.do(http.MethodPost, "/api/v1/drafts/draft-1/generate", nil)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		server.drafts.AssertNumberOfCalls(t, "Generate", 1)
	})
}

func TestReviewRoutes(t *testing.T) {
	view := &models.ReviewView{
		ID: "review-1",
		Letter: models.Letter{
			ID:         "L1",
			PatientID:  "7",
			DoctorName: "Dr. Smith",
			Content:    "Dear colleague",
		},
		Snapshot:   models.StatusSnapshot{Status: models.LetterStatusDraft},
		NextStatus: models.LetterStatusApproved,
		Content:    "Dear colleague",
		Persisted:  "Dear colleague",
	}

	t.Run("open review", func(t *testing.T) {
		server := newTestServer(t, 5)
		server.reviews.On("OpenReview", mock.Anything, "L1").Return(view, nil).Once()

		rr := server.do(http.MethodPost, "/api/v1/reviews/", []byte(`{"letterId":" L1 "}`))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var payload responses.Review
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &payload))
		assert.Equal(t, "review-1", payload.ID)
		assert.Equal(t, "Draft", payload.Status)
		assert.Equal(t, "Approved", payload.NextStatus)
		assert.False(t, payload.Dirty)
	})

	t.Run("open review requires letter id", func(t *testing.T) {
		server := newTestServer(t, 5)

		rr := server.do(http.MethodPost, "/api/v1/reviews/", []byte(`{}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		server.reviews.AssertNotCalled(t, "OpenReview", mock.Anything, mock.Anything)
	})

	t.Run("edit is accepted and reported dirty", func(t *testing.T) {
		server := newTestServer(t, 5)
		edited := *view
		edited.Content = "Dear colleague, updated"
		server.reviews.On("EditContent", mock.Anything, "review-1", "Dear colleague, updated").Return(&edited, nil).Once()

		rr := server.do(http.MethodPut, "/api/v1/reviews/review-1/content", []byte(`{"content":"Dear colleague, updated"}`))

		assert.Equal(t, http.StatusAccepted, rr.Code)
		var payload responses.Review
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &payload))
		assert.True(t, payload.Dirty)
	})

	t.Run("export streams pdf with archive key", func(t *testing.T) {
		server := newTestServer(t, 5)
		server.reviews.On("ExportPDF", mock.Anything, "review-1").Return(&models.LetterPDF{
			LetterID:    "L1",
			FileName:    "letter-L1.pdf",
			ContentType: constvars.MIMEApplicationPDF,
			Content:     []byte("%PDF-1.4"),
			ArchiveKey:  "letters/L1/20261016.pdf",
		}, nil).Once()

		rr := server.do(http.MethodGet, "/api/v1/reviews/review-1/pdf", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.MIMEApplicationPDF, rr.Header().Get(constvars.HeaderContentType))
		assert.Equal(t, "letters/L1/20261016.pdf", rr.Header().Get(constvars.HeaderXArchiveObjectKey))
		assert.Contains(t, rr.Header().Get(constvars.HeaderContentDisposition), "letter-L1.pdf")
		assert.Equal(t, "%PDF-1.4", rr.Body.String())
	})

	t.Run("closed review is gone", func(t *testing.T) {
		server := newTestServer(t, 5)
		server.reviews.On("CloseReview", mock.Anything, "review-1").Return(exceptions.ErrReviewClosed("review-1")).Once()

		rr := server.do(http.MethodDelete, "/api/v1/reviews/review-1", nil)

		assert.Equal(t, http.StatusGone, rr.Code)
	})
}

func TestLetterRoutes(t *testing.T) {
	t.Run("recent letters carry next status", func(t *testing.T) {
		server := newTestServer(t, 5)
		server.board.On("RecentLetters", mock.Anything).Return([]models.BoardRow{
			{
				Summary:    models.LetterSummary{ID: "L1", Status: "Approved", ApprovedAt: "10:20"},
				Snapshot:   models.StatusSnapshot{Status: models.LetterStatusApproved, ApprovedAt: "10:20"},
				NextStatus: models.LetterStatusRejected,
			},
		}, nil).Once()

		rr := server.do(http.MethodGet, "/api/v1/letters/recent", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		var rows []responses.BoardRow
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "Rejected", rows[0].NextStatus)
		assert.Equal(t, "10:20", rows[0].ApprovedAt)
	})

	t.Run("advance while in flight is a conflict", func(t *testing.T) {
		server := newTestServer(t, 5)
		server.board.On("AdvanceLetterStatus", mock.Anything, "L1").
			Return(nil, exceptions.ErrStatusTransitionInFlight("L1")).Once()

		rr := server.do(http.MethodPost, "/api/v1/letters/L1/status/advance", nil)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("audit history", func(t *testing.T) {
		server := newTestServer(t, 5)
		server.board.On("LetterAudit", mock.Anything, "L1").Return([]models.AuditEntry{{LetterID: "L1"}}, nil).Once()

		rr := server.do(http.MethodGet, "/api/v1/letters/L1/audit", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		server.board.AssertExpectations(t)
	})
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, allowedOrigins(" http://a , http://b ,"))
	assert.Equal(t, []string{"*"}, allowedOrigins(""))
}
