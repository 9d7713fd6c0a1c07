package patients

import (
	"context"
	"errors"
	"strings"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type patientUsecase struct {
	Registry contracts.PatientRegistryClient
	Snapshot contracts.RegistrySnapshotSource
	Log      *zap.Logger
}

func NewPatientUsecase(registry contracts.PatientRegistryClient, snapshot contracts.RegistrySnapshotSource, logger *zap.Logger) contracts.PatientUsecase {
	return &patientUsecase{
		Registry: registry,
		Snapshot: snapshot,
		Log:      logger,
	}
}

// CheckPatient resolves query against the registry. NotFound is reported as
// Found=false; it is never produced by a failed lookup.
func (uc *patientUsecase) CheckPatient(ctx context.Context, query models.PatientQuery) (*models.MatchOutcome, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.CheckPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if strings.TrimSpace(query.Name) == "" {
		return nil, exceptions.ErrFieldRequired(constvars.FormFieldName, constvars.ErrDevValidationFailed)
	}

	snapshot, err := uc.Snapshot.Snapshot(ctx)
	if err != nil {
		uc.Log.Error("patientUsecase.CheckPatient error loading registry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPatientLookup(err)
	}

	patient, found := Match(query, snapshot)
	if !found {
		uc.Log.Info("patientUsecase.CheckPatient no match",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingPatientCountKey, len(snapshot)),
		)
		return &models.MatchOutcome{Found: false}, nil
	}

	uc.Log.Info("patientUsecase.CheckPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID.String()),
	)
	return &models.MatchOutcome{Found: true, Patient: patient}, nil
}

// CreatePatient validates draft locally and only then registers it.
func (uc *patientUsecase) CreatePatient(ctx context.Context, draft models.PatientDraft) (*models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientUsecase.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	utils.SanitizePatientDraft(&draft)
	err := utils.ValidateStruct(&draft)
	if err != nil {
		uc.Log.Info("patientUsecase.CreatePatient rejected draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	patient, err := uc.Registry.CreatePatient(ctx, &draft)
	if err != nil {
		uc.Log.Error("patientUsecase.CreatePatient error registering patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPatientCreate(err)
	}
	if patient.ID.IsZero() {
		return nil, exceptions.ErrPatientCreate(errors.New(constvars.ErrDevPatientMissingID))
	}

	uc.Snapshot.Invalidate(ctx)

	utils.LogBusinessEvent(uc.Log, constvars.AuditActionPatientCreated, requestID,
		zap.String(constvars.LoggingPatientIDKey, patient.ID.String()),
	)
	return patient, nil
}
