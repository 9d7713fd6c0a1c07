package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/app/services/core/patients"
	"nhscribe-service/internal/app/services/core/results"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type draftUsecase struct {
	Store             contracts.DraftStore
	Patients          contracts.PatientUsecase
	Results           contracts.ResultsUsecase
	Letters           contracts.LetterClient
	Journal           *Journal
	DefaultDoctorName string
	Log               *zap.Logger
	locks             keyedMutex
	now               func() time.Time
}

func NewDraftUsecase(
	store contracts.DraftStore,
	patientUsecase contracts.PatientUsecase,
	resultsUsecase contracts.ResultsUsecase,
	letterClient contracts.LetterClient,
	journal *Journal,
	defaultDoctorName string,
	logger *zap.Logger,
) contracts.DraftUsecase {
	return &draftUsecase{
		Store:             store,
		Patients:          patientUsecase,
		Results:           resultsUsecase,
		Letters:           letterClient,
		Journal:           journal,
		DefaultDoctorName: defaultDoctorName,
		Log:               logger,
		now:               time.Now,
	}
}

// StartDraft opens a new create-letter flow. The patient carries a placeholder
// id until the registry resolves one.
func (uc *draftUsecase) StartDraft(ctx context.Context, doctorName, dataType, urgency string) (*models.DraftSession, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("draftUsecase.StartDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if strings.TrimSpace(doctorName) == "" {
		doctorName = uc.DefaultDoctorName
	}
	if urgency == "" {
		urgency = constvars.UrgencyRoutine
	}

	now := uc.now().UTC()
	draft := &models.DraftSession{
		ID:         utils.GenerateSessionID(),
		DoctorName: doctorName,
		Patient:    models.PatientForm{PatientID: models.ExternalID(utils.GeneratePlaceholderPatientID())},
		DataType:   dataType,
		Urgency:    urgency,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.Store.SaveDraft(ctx, draft)
	if err != nil {
		uc.Log.Error("draftUsecase.StartDraft error saving draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("draftUsecase.StartDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draft.ID),
	)
	return draft, nil
}

func (uc *draftUsecase) GetDraft(ctx context.Context, draftID string) (*models.DraftSession, error) {
	return uc.Store.FindDraftByID(ctx, draftID)
}

// UpdateDraft applies form edits. Editing an identity field after a patient
// was resolved drops the resolution, so a letter can never be generated for a
// patient the form no longer describes.
func (uc *draftUsecase) UpdateDraft(ctx context.Context, draftID string, update *models.DraftUpdate) (*models.DraftSession, error) {
	unlock := uc.locks.Lock(draftID)
	defer unlock()

	draft, err := uc.Store.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	form := &draft.Patient
	identityChanged := false
	if update.Name != nil && *update.Name != form.Name {
		form.Name = *update.Name
		identityChanged = true
	}
	if update.ClearAge {
		identityChanged = identityChanged || form.Age != nil
		form.Age = nil
	} else if update.Age != nil && (form.Age == nil || *form.Age != *update.Age) {
		age := *update.Age
		form.Age = &age
		identityChanged = true
	}
	if update.Address != nil && *update.Address != form.Address {
		form.Address = *update.Address
		identityChanged = true
	}
	if update.Sex != nil {
		form.Sex = *update.Sex
	}
	if update.Conditions != nil {
		form.Conditions = *update.Conditions
	}
	if identityChanged && !utils.IsPlaceholderPatientID(form.PatientID.String()) {
		form.PatientID = models.ExternalID(utils.GeneratePlaceholderPatientID())
		draft.CheckStatus = ""
		draft.CheckMessage = ""
	}

	if update.DataType != nil {
		draft.DataType = *update.DataType
	}
	if update.RawData != nil {
		draft.RawData = *update.RawData
	}
	if update.Urgency != nil {
		draft.Urgency = *update.Urgency
	}
	if update.Notes != nil {
		draft.Notes = *update.Notes
	}
	if update.DoctorName != nil {
		draft.DoctorName = *update.DoctorName
	}

	return draft, uc.save(ctx, draft, "draftUsecase.UpdateDraft")
}

// CheckPatient looks the form up in the registry and hydrates it on a match.
func (uc *draftUsecase) CheckPatient(ctx context.Context, draftID string) (*models.DraftSession, *models.MatchOutcome, error) {
	requestID := utils.GetRequestID(ctx)
	unlock := uc.locks.Lock(draftID)
	defer unlock()

	draft, err := uc.Store.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := uc.Patients.CheckPatient(ctx, draft.Patient.Query())
	if err != nil {
		if exceptions.IsKind(err, exceptions.KindValidation) {
			return draft, nil, err
		}
		draft.CheckStatus = constvars.CheckStatusError
		draft.CheckMessage = constvars.CheckPatientErrorMessage
		saveErr := uc.save(ctx, draft, "draftUsecase.CheckPatient")
		if saveErr != nil {
			uc.Log.Warn("draftUsecase.CheckPatient error saving lookup failure",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(saveErr),
			)
		}
		return draft, nil, err
	}

	if outcome.Found {
		draft.Patient = patients.HydrateForm(draft.Patient, outcome.Patient)
		draft.CheckStatus = constvars.CheckStatusFound
		draft.CheckMessage = fmt.Sprintf(constvars.CheckPatientFoundMessage, outcome.Patient.Name, outcome.Patient.ID)
	} else {
		draft.CheckStatus = constvars.CheckStatusNotFound
		draft.CheckMessage = constvars.CheckPatientNotFoundMessage
	}

	err = uc.save(ctx, draft, "draftUsecase.CheckPatient")
	if err != nil {
		return nil, nil, err
	}
	return draft, outcome, nil
}

func (uc *draftUsecase) CreatePatient(ctx context.Context, draftID string) (*models.DraftSession, *models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	unlock := uc.locks.Lock(draftID)
	defer unlock()

	draft, err := uc.Store.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, nil, err
	}

	patient, err := uc.Patients.CreatePatient(ctx, draft.Patient.Draft())
	if err != nil {
		return draft, nil, err
	}

	draft.Patient = patients.HydrateForm(draft.Patient, patient)
	draft.CheckStatus = constvars.CheckStatusFound
	draft.CheckMessage = fmt.Sprintf(constvars.CreatePatientSuccessMessage, patient.Name, patient.ID)

	uc.Journal.Record(ctx, &models.AuditEntry{
		Action:    constvars.AuditActionPatientCreated,
		PatientID: patient.ID.String(),
	}, nil)

	err = uc.save(ctx, draft, "draftUsecase.CreatePatient")
	if err != nil {
		uc.Log.Error("draftUsecase.CreatePatient error saving draft after registry create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID.String()),
			zap.Error(err),
		)
		return nil, nil, err
	}
	return draft, patient, nil
}

func (uc *draftUsecase) IngestText(ctx context.Context, draftID, raw string) (*models.DraftSession, error) {
	unlock := uc.locks.Lock(draftID)
	defer unlock()

	draft, err := uc.Store.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	err = requireResolvedPatient(draft, "results ingestion")
	if err != nil {
		return nil, err
	}

	ingested := uc.Results.IngestText(raw)
	draft.RawData = ingested.FreeText
	if draft.DataType == "" {
		draft.DataType = ingested.DataType
	}

	return draft, uc.save(ctx, draft, "draftUsecase.IngestText")
}

func (uc *draftUsecase) IngestCSV(ctx context.Context, draftID string, file *models.ResultFile) (*models.DraftSession, error) {
	unlock := uc.locks.Lock(draftID)
	defer unlock()

	draft, err := uc.Store.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	err = requireResolvedPatient(draft, "results ingestion")
	if err != nil {
		return nil, err
	}

	batch, err := uc.Results.IngestCSV(ctx, draft.Patient.PatientID.String(), file)
	if err != nil {
		return nil, err
	}
	uc.applyBatch(draft, batch)
	draft.DataType = constvars.DataTypeCSV

	return draft, uc.save(ctx, draft, "draftUsecase.IngestCSV")
}

func (uc *draftUsecase) LoadExistingResults(ctx context.Context, draftID string) (*models.DraftSession, error) {
	unlock := uc.locks.Lock(draftID)
	defer unlock()

	draft, err := uc.Store.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	err = requireResolvedPatient(draft, "loading results")
	if err != nil {
		return nil, err
	}

	batch, err := uc.Results.LoadExisting(ctx, draft.Patient.PatientID.String())
	if err != nil {
		return nil, err
	}
	uc.applyBatch(draft, batch)

	return draft, uc.save(ctx, draft, "draftUsecase.LoadExistingResults")
}

// applyBatch stores the batch and seeds the free text only when the clinician
// has not typed anything.
func (uc *draftUsecase) applyBatch(draft *models.DraftSession, batch *models.ResultBatch) {
	draft.Batch = batch
	seeded, ok := results.SeedFreeText(draft.RawData, batch)
	if ok {
		draft.RawData = seeded
	}
}

// Generate asks the backend to render the letter. On success the generated
// artifact becomes the preview.
func (uc *draftUsecase) Generate(ctx context.Context, draftID string) (*models.DraftSession, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("draftUsecase.Generate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	unlock := uc.locks.Lock(draftID)
	defer unlock()

	draft, err := uc.Store.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	err = requireResolvedPatient(draft, "letter generation")
	if err != nil {
		return nil, err
	}
	err = requireResults(draft)
	if err != nil {
		return nil, err
	}

	generated, err := uc.Letters.GenerateLetter(ctx, buildGenerateRequest(draft))
	if err != nil {
		uc.Log.Error("draftUsecase.Generate error generating letter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDraftIDKey, draftID),
			zap.Error(err),
		)
		return nil, exceptions.ErrLetterGenerate(err)
	}
	draft.Generated = generated

	uc.Journal.Record(ctx, &models.AuditEntry{
		Action:    constvars.AuditActionLetterGenerated,
		LetterID:  generated.LetterID.String(),
		PatientID: draft.Patient.PatientID.String(),
	}, &models.LetterEvent{
		Event:     constvars.EventLetterGenerated,
		LetterID:  generated.LetterID.String(),
		PatientID: draft.Patient.PatientID.String(),
		PdfURL:    generated.PdfURL,
	})

	err = uc.save(ctx, draft, "draftUsecase.Generate")
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, constvars.EventLetterGenerated, requestID,
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.String(constvars.LoggingPatientIDKey, draft.Patient.PatientID.String()),
	)
	return draft, nil
}

func (uc *draftUsecase) Preview(ctx context.Context, draftID string) (*models.Preview, error) {
	draft, err := uc.Store.FindDraftByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return BuildPreview(draft), nil
}

func (uc *draftUsecase) save(ctx context.Context, draft *models.DraftSession, caller string) error {
	draft.UpdatedAt = uc.now().UTC()
	err := uc.Store.SaveDraft(ctx, draft)
	if err != nil {
		uc.Log.Error(caller+" error saving draft",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingDraftIDKey, draft.ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
