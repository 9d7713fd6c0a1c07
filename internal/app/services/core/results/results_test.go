package results

import (
	"context"
	"errors"
	"testing"

	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockResultsClient struct {
	mock.Mock
}

func (m *MockResultsClient) UploadResults(ctx context.Context, patientID string, file *models.ResultFile) (*models.ResultBatch, error) {
	args := m.Called(ctx, patientID, file)
	batch, _ := args.Get(0).(*models.ResultBatch)
	return batch, args.Error(1)
}

func (m *MockResultsClient) FindResultsByPatientID(ctx context.Context, patientID string) ([]models.ResultRow, error) {
	args := m.Called(ctx, patientID)
	rows, _ := args.Get(0).([]models.ResultRow)
	return rows, args.Error(1)
}

func TestSummarizeBatch(t *testing.T) {
	batch := &models.ResultBatch{
		BatchID: "b-1",
		Results: []models.ResultRow{
			{TestName: "Haemoglobin", Value: "110", Unit: "g/L", ReferenceLow: "115", ReferenceHigh: "165", Flag: "L"},
			{TestName: "WBC", Value: "6.1", Unit: "10^9/L"},
			{TestName: "CRP", Value: "<5", ReferenceHigh: "5"},
			{TestName: "Comment", Value: "haemolysed"},
		},
	}

	expected := "Haemoglobin: 110 g/L (Ref: 115-165) [L]\n" +
		"WBC: 6.1 10^9/L\n" +
		"CRP: <5\n" +
		"Comment: haemolysed"
	assert.Equal(t, expected, SummarizeBatch(batch))
	assert.Equal(t, "", SummarizeBatch(nil))
	assert.Equal(t, "", SummarizeBatch(&models.ResultBatch{Results: []models.ResultRow{}}))
}

func TestSeedFreeText(t *testing.T) {
	batch := &models.ResultBatch{Results: []models.ResultRow{{TestName: "Na", Value: "140", Unit: "mmol/L"}}}

	t.Run("Blank field is seeded", func(t *testing.T) {
		seeded, ok := SeedFreeText("  \n", batch)
		assert.True(t, ok)
		assert.Equal(t, "Na: 140 mmol/L", seeded)
	})

	t.Run("Clinician text is never overwritten", func(t *testing.T) {
		seeded, ok := SeedFreeText("Sodium normal", batch)
		assert.False(t, ok)
		assert.Equal(t, "Sodium normal", seeded)
	})

	t.Run("Empty batch seeds nothing", func(t *testing.T) {
		seeded, ok := SeedFreeText("", &models.ResultBatch{Results: []models.ResultRow{}})
		assert.False(t, ok)
		assert.Equal(t, "", seeded)
	})
}

func TestIngestText(t *testing.T) {
	uc := NewResultsUsecase(new(MockResultsClient), zap.NewNop())
	raw := "  Hb 110 (low)\n\tferritin pending  "

	ingested := uc.IngestText(raw)

	assert.Equal(t, constvars.DataTypeText, ingested.DataType)
	assert.Equal(t, raw, ingested.FreeText)
	assert.Nil(t, ingested.Batch)
}

func TestIngestCSV(t *testing.T) {
	ctx := context.Background()
	file := &models.ResultFile{FileName: "fbc.csv", Content: []byte("Test Name,Result\nHb,110\n")}

	t.Run("Local preconditions never reach the network", func(t *testing.T) {
		client := new(MockResultsClient)
		uc := NewResultsUsecase(client, zap.NewNop())

		_, err := uc.IngestCSV(ctx, "", file)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))

		_, err = uc.IngestCSV(ctx, "7", nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))

		_, err = uc.IngestCSV(ctx, "7", &models.ResultFile{FileName: "empty.csv"})
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))

		_, err = uc.IngestCSV(ctx, "tmp-123", file)
		assert.True(t, exceptions.IsKind(err, exceptions.KindPrecondition))

		client.AssertNotCalled(t, "UploadResults", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Returns a copy of the batch", func(t *testing.T) {
		returned := &models.ResultBatch{BatchID: "b-1", Results: []models.ResultRow{{TestName: "Hb", Value: "110"}}}
		client := new(MockResultsClient)
		client.On("UploadResults", mock.Anything, "7", file).Return(returned, nil).Once()
		uc := NewResultsUsecase(client, zap.NewNop())

		batch, err := uc.IngestCSV(ctx, "7", file)

		require.NoError(t, err)
		assert.Equal(t, returned, batch)
		batch.Results[0].Value = "changed"
		assert.Equal(t, "110", returned.Results[0].Value)
	})

	t.Run("Upload failure is an ingest error", func(t *testing.T) {
		client := new(MockResultsClient)
		client.On("UploadResults", mock.Anything, "7", file).Return(nil, errors.New("503")).Once()
		uc := NewResultsUsecase(client, zap.NewNop())

		_, err := uc.IngestCSV(ctx, "7", file)

		assert.True(t, exceptions.IsKind(err, exceptions.KindIngest))
	})
}

func TestLoadExisting(t *testing.T) {
	ctx := context.Background()

	t.Run("Not found is an empty batch", func(t *testing.T) {
		client := new(MockResultsClient)
		client.On("FindResultsByPatientID", mock.Anything, "7").
			Return(nil, exceptions.ErrBackendUnexpectedStatus(constvars.StatusNotFound, "results", "")).Once()
		uc := NewResultsUsecase(client, zap.NewNop())

		batch, err := uc.LoadExisting(ctx, "7")

		require.NoError(t, err)
		assert.True(t, batch.IsEmpty())
	})

	t.Run("Empty list is an empty batch", func(t *testing.T) {
		client := new(MockResultsClient)
		client.On("FindResultsByPatientID", mock.Anything, "7").Return([]models.ResultRow{}, nil).Once()
		uc := NewResultsUsecase(client, zap.NewNop())

		batch, err := uc.LoadExisting(ctx, "7")

		require.NoError(t, err)
		assert.True(t, batch.IsEmpty())
	})

	t.Run("Rows carry their batch label", func(t *testing.T) {
		client := new(MockResultsClient)
		client.On("FindResultsByPatientID", mock.Anything, "7").Return([]models.ResultRow{
			{TestName: "Hb", Value: "110", BatchID: "b-2", SourceFile: "fbc.csv"},
		}, nil).Once()
		uc := NewResultsUsecase(client, zap.NewNop())

		batch, err := uc.LoadExisting(ctx, "7")

		require.NoError(t, err)
		assert.Equal(t, "b-2", batch.BatchID)
		assert.Equal(t, "fbc.csv", batch.SourceFile)
		assert.Len(t, batch.Results, 1)
	})

	t.Run("Other failures are surfaced", func(t *testing.T) {
		client := new(MockResultsClient)
		client.On("FindResultsByPatientID", mock.Anything, "7").
			Return(nil, exceptions.ErrBackendUnexpectedStatus(constvars.StatusInternalServerError, "results", "boom")).Once()
		uc := NewResultsUsecase(client, zap.NewNop())

		_, err := uc.LoadExisting(ctx, "7")

		assert.True(t, exceptions.IsKind(err, exceptions.KindIngest))
	})
}
