package contracts

import (
	"context"

	"nhscribe-service/internal/app/models"
)

type PatientRegistryClient interface {
	FindAllPatients(ctx context.Context) ([]models.Patient, error)
	CreatePatient(ctx context.Context, draft *models.PatientDraft) (*models.Patient, error)
}

type RegistrySnapshotSource interface {
	Snapshot(ctx context.Context) ([]models.Patient, error)
	Invalidate(ctx context.Context)
}

type PatientUsecase interface {
	CheckPatient(ctx context.Context, query models.PatientQuery) (*models.MatchOutcome, error)
	CreatePatient(ctx context.Context, draft models.PatientDraft) (*models.Patient, error)
}
