package backend

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type patientRegistryClient struct {
	client
}

func NewPatientRegistryClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.PatientRegistryClient {
	return &patientRegistryClient{
		client: newClient(baseUrl, timeout, logger),
	}
}

func (c *patientRegistryClient) FindAllPatients(ctx context.Context) ([]models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("patientRegistryClient.FindAllPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var patients []models.Patient
	err := c.doJSON(ctx, "patientRegistryClient.FindAllPatients", request{
		Method:   constvars.MethodGet,
		Path:     constvars.ResourcePatients,
		Resource: constvars.ResourceNamePatient,
	}, &patients)
	if err != nil {
		return nil, err
	}

	c.Log.Info("patientRegistryClient.FindAllPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(patients)),
	)
	return patients, nil
}

func (c *patientRegistryClient) CreatePatient(ctx context.Context, draft *models.PatientDraft) (*models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("patientRegistryClient.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	form := url.Values{}
	form.Set(constvars.FormFieldName, draft.Name)
	form.Set(constvars.FormFieldSex, draft.Sex)
	if draft.Age != nil {
		form.Set(constvars.FormFieldAge, strconv.Itoa(*draft.Age))
	}
	if draft.Address != "" {
		form.Set(constvars.FormFieldAddress, draft.Address)
	}
	if draft.Conditions != "" {
		form.Set(constvars.FormFieldConditions, draft.Conditions)
	}

	patient := new(models.Patient)
	err := c.doJSON(ctx, "patientRegistryClient.CreatePatient", request{
		Method:      constvars.MethodPost,
		Path:        constvars.ResourcePatients,
		Resource:    constvars.ResourceNamePatient,
		ContentType: constvars.MIMEApplicationForm,
		Body:        strings.NewReader(form.Encode()),
	}, patient)
	if err != nil {
		return nil, err
	}

	c.Log.Info("patientRegistryClient.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID.String()),
	)
	return patient, nil
}
