package contracts

import (
	"context"

	"nhscribe-service/internal/app/models"
)

type ResultsClient interface {
	UploadResults(ctx context.Context, patientID string, file *models.ResultFile) (*models.ResultBatch, error)
	FindResultsByPatientID(ctx context.Context, patientID string) ([]models.ResultRow, error)
}

type ResultsUsecase interface {
	IngestText(raw string) models.IngestedResults
	IngestCSV(ctx context.Context, patientID string, file *models.ResultFile) (*models.ResultBatch, error)
	LoadExisting(ctx context.Context, patientID string) (*models.ResultBatch, error)
}
