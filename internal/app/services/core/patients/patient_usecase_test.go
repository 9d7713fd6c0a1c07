package patients

import (
	"context"
	"errors"
	"testing"
	"time"

	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) FindAllPatients(ctx context.Context) ([]models.Patient, error) {
	args := m.Called(ctx)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *MockRegistryClient) CreatePatient(ctx context.Context, draft *models.PatientDraft) (*models.Patient, error) {
	args := m.Called(ctx, draft)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func newUsecase(registry *MockRegistryClient, redis *MockRedisRepository) *patientUsecase {
	logger := zap.NewNop()
	var cache *registrySnapshotCache
	if redis != nil {
		cache = NewRegistrySnapshotCache(registry, redis, time.Minute, logger).(*registrySnapshotCache)
	} else {
		cache = NewRegistrySnapshotCache(registry, nil, 0, logger).(*registrySnapshotCache)
	}
	return NewPatientUsecase(registry, cache, logger).(*patientUsecase)
}

func TestCheckPatient(t *testing.T) {
	ctx := context.Background()
	registry := []models.Patient{{ID: "1", Name: "jane smith", Age: intPtr(54), Address: "10 Main St"}}

	t.Run("Found", func(t *testing.T) {
		client := new(MockRegistryClient)
		client.On("FindAllPatients", mock.Anything).Return(registry, nil).Once()

		outcome, err := newUsecase(client, nil).CheckPatient(ctx, models.PatientQuery{Name: "Jane Smith", Age: intPtr(54)})

		require.NoError(t, err)
		assert.True(t, outcome.Found)
		assert.Equal(t, models.ExternalID("1"), outcome.Patient.ID)
		client.AssertExpectations(t)
	})

	t.Run("Not found is an outcome", func(t *testing.T) {
		client := new(MockRegistryClient)
		client.On("FindAllPatients", mock.Anything).Return(registry, nil).Once()

		outcome, err := newUsecase(client, nil).CheckPatient(ctx, models.PatientQuery{Name: "Jane Smith", Age: intPtr(55)})

		require.NoError(t, err)
		assert.False(t, outcome.Found)
		assert.Nil(t, outcome.Patient)
	})

	t.Run("Registry failure is a lookup error, not a miss", func(t *testing.T) {
		client := new(MockRegistryClient)
		client.On("FindAllPatients", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		outcome, err := newUsecase(client, nil).CheckPatient(ctx, models.PatientQuery{Name: "Jane Smith"})

		assert.Nil(t, outcome)
		assert.True(t, exceptions.IsKind(err, exceptions.KindLookup))
	})

	t.Run("Blank name never reaches the registry", func(t *testing.T) {
		client := new(MockRegistryClient)

		_, err := newUsecase(client, nil).CheckPatient(ctx, models.PatientQuery{Name: "  "})

		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
		client.AssertNotCalled(t, "FindAllPatients", mock.Anything)
	})
}

func TestCheckPatient_RegistryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache hit skips the registry", func(t *testing.T) {
		client := new(MockRegistryClient)
		redis := new(MockRedisRepository)
		redis.On("Get", mock.Anything, constvars.RedisKeyRegistrySnapshot).Return(`[{"id":1,"name":"Jane Smith"}]`, nil)

		outcome, err := newUsecase(client, redis).CheckPatient(ctx, models.PatientQuery{Name: "jane smith"})

		require.NoError(t, err)
		assert.True(t, outcome.Found)
		client.AssertNotCalled(t, "FindAllPatients", mock.Anything)
	})

	t.Run("Redis failure falls back to the registry", func(t *testing.T) {
		client := new(MockRegistryClient)
		client.On("FindAllPatients", mock.Anything).Return([]models.Patient{{ID: "9", Name: "Jane Smith"}}, nil).Once()
		redis := new(MockRedisRepository)
		redis.On("Get", mock.Anything, constvars.RedisKeyRegistrySnapshot).Return("", errors.New("redis down"))
		redis.On("Set", mock.Anything, constvars.RedisKeyRegistrySnapshot, mock.Anything, time.Minute).Return(errors.New("redis down"))

		outcome, err := newUsecase(client, redis).CheckPatient(ctx, models.PatientQuery{Name: "Jane Smith"})

		require.NoError(t, err)
		assert.Equal(t, models.ExternalID("9"), outcome.Patient.ID)
		client.AssertExpectations(t)
	})
}

func TestCreatePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing name or sex never calls the registry", func(t *testing.T) {
		drafts := []models.PatientDraft{
			{Name: "", Sex: "F"},
			{Name: "   ", Sex: "M"},
			{Name: "Jane Smith", Sex: ""},
			{Name: "Jane Smith", Sex: "unknown"},
			{Name: "Jane Smith", Sex: "F", Age: intPtr(-1)},
		}
		for _, draft := range drafts {
			client := new(MockRegistryClient)

			patient, err := newUsecase(client, nil).CreatePatient(ctx, draft)

			assert.Nil(t, patient)
			assert.True(t, exceptions.IsKind(err, exceptions.KindValidation), "draft %+v", draft)
			client.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
		}
	})

	t.Run("Validation error names the field", func(t *testing.T) {
		_, err := newUsecase(new(MockRegistryClient), nil).CreatePatient(ctx, models.PatientDraft{Sex: "F"})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Contains(t, customErr.ClientMessage, "name")
	})

	t.Run("Valid draft always calls the registry and invalidates the cache", func(t *testing.T) {
		client := new(MockRegistryClient)
		client.On("CreatePatient", mock.Anything, mock.MatchedBy(func(draft *models.PatientDraft) bool {
			return draft.Name == "Jane Smith" && draft.Sex == "F"
		})).Return(&models.Patient{ID: "12", Name: "Jane Smith", Sex: "F"}, nil).Once()
		redis := new(MockRedisRepository)
		redis.On("Delete", mock.Anything, constvars.RedisKeyRegistrySnapshot).Return(nil).Once()

		patient, err := newUsecase(client, redis).CreatePatient(ctx, models.PatientDraft{Name: " Jane Smith ", Sex: "f"})

		require.NoError(t, err)
		assert.Equal(t, models.ExternalID("12"), patient.ID)
		client.AssertExpectations(t)
		redis.AssertExpectations(t)
	})

	t.Run("Registry failure is a create error", func(t *testing.T) {
		client := new(MockRegistryClient)
		client.On("CreatePatient", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

		_, err := newUsecase(client, nil).CreatePatient(ctx, models.PatientDraft{Name: "Jane", Sex: "Other"})

		assert.True(t, exceptions.IsKind(err, exceptions.KindCreate))
	})

	t.Run("Registry record without id is rejected", func(t *testing.T) {
		client := new(MockRegistryClient)
		client.On("CreatePatient", mock.Anything, mock.Anything).Return(&models.Patient{Name: "Jane"}, nil).Once()

		_, err := newUsecase(client, nil).CreatePatient(ctx, models.PatientDraft{Name: "Jane", Sex: "M"})

		assert.True(t, exceptions.IsKind(err, exceptions.KindCreate))
	})
}
