package results

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type resultsUsecase struct {
	ResultsClient contracts.ResultsClient
	Log           *zap.Logger
	now           func() time.Time
}

func NewResultsUsecase(resultsClient contracts.ResultsClient, logger *zap.Logger) contracts.ResultsUsecase {
	return &resultsUsecase{
		ResultsClient: resultsClient,
		Log:           logger,
		now:           time.Now,
	}
}

// IngestText keeps clinician free text exactly as typed.
func (uc *resultsUsecase) IngestText(raw string) models.IngestedResults {
	return models.IngestedResults{
		DataType:   constvars.DataTypeText,
		FreeText:   raw,
		IngestedAt: uc.now(),
	}
}

// IngestCSV hands the file to the ingestion service; parsing happens there.
func (uc *resultsUsecase) IngestCSV(ctx context.Context, patientID string, file *models.ResultFile) (*models.ResultBatch, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("resultsUsecase.IngestCSV called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if strings.TrimSpace(patientID) == "" {
		return nil, exceptions.ErrFieldRequired(constvars.FormFieldPatientID, fmt.Sprintf(constvars.ErrDevPatientIDRequired, "results ingestion"))
	}
	if utils.IsPlaceholderPatientID(patientID) {
		return nil, exceptions.ErrPatientPlaceholder(patientID)
	}
	if file == nil {
		return nil, exceptions.ErrResultsFileMissing()
	}
	if len(file.Content) == 0 {
		return nil, exceptions.ErrResultsFileEmpty(file.FileName)
	}

	batch, err := uc.ResultsClient.UploadResults(ctx, patientID, file)
	if err != nil {
		uc.Log.Error("resultsUsecase.IngestCSV error uploading results",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrResultsIngest(err)
	}

	uc.Log.Info("resultsUsecase.IngestCSV succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBatchIDKey, batch.BatchID),
		zap.Int(constvars.LoggingResultCountKey, len(batch.Results)),
	)
	return batch.Clone(), nil
}

// LoadExisting returns the stored results of a patient. A patient without
// results yields an empty batch.
func (uc *resultsUsecase) LoadExisting(ctx context.Context, patientID string) (*models.ResultBatch, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("resultsUsecase.LoadExisting called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if strings.TrimSpace(patientID) == "" {
		return nil, exceptions.ErrFieldRequired(constvars.FormFieldPatientID, fmt.Sprintf(constvars.ErrDevPatientIDRequired, "loading results"))
	}
	if utils.IsPlaceholderPatientID(patientID) {
		return nil, exceptions.ErrPatientPlaceholder(patientID)
	}

	rows, err := uc.ResultsClient.FindResultsByPatientID(ctx, patientID)
	if err != nil {
		if isNotFound(err) {
			uc.Log.Info("resultsUsecase.LoadExisting no stored results",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return &models.ResultBatch{Results: []models.ResultRow{}}, nil
		}
		uc.Log.Error("resultsUsecase.LoadExisting error fetching results",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrResultsLoad(err)
	}

	batch := &models.ResultBatch{Results: append([]models.ResultRow{}, rows...)}
	if len(rows) > 0 {
		batch.BatchID = rows[len(rows)-1].BatchID
		batch.SourceFile = rows[len(rows)-1].SourceFile
	}

	uc.Log.Info("resultsUsecase.LoadExisting succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(batch.Results)),
	)
	return batch, nil
}

func isNotFound(err error) bool {
	var customErr *exceptions.CustomError
	return errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusNotFound
}
