package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"vitalwatch/internal/models"
)

// ListPatients fetches all patients. On fallback it substitutes a small
// generated roster so list views stay populated in demo mode.
func (c *Client) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var env models.PatientListEnvelope
	if apiErr := c.call(ctx, "ListPatients", http.MethodGet, "/patients", nil, nil, &env); apiErr != nil {
		if c.fallback {
			c.useMock("ListPatients", apiErr)
			return c.gen.Patients(5), nil
		}
		return nil, c.surface(ctx, apiErr)
	}
	return env.Patients, nil
}

// GetPatient fetches one patient record.
func (c *Client) GetPatient(ctx context.Context, patientID string) (models.Patient, error) {
	var env models.PatientEnvelope
	if apiErr := c.call(ctx, "GetPatient", http.MethodGet, "/patients/"+patientID, nil, nil, &env); apiErr != nil {
		if c.fallback {
			c.useMock("GetPatient", apiErr)
			return c.gen.Patient(patientID), nil
		}
		return models.Patient{}, c.surface(ctx, apiErr)
	}
	return env.Patient, nil
}

// CreatePatient registers a patient and returns the new id.
func (c *Client) CreatePatient(ctx context.Context, payload models.PatientCreate) (string, error) {
	var env models.PatientCreatedEnvelope
	if apiErr := c.call(ctx, "CreatePatient", http.MethodPost, "/patients", nil, payload, &env); apiErr != nil {
		if c.fallback {
			c.useMock("CreatePatient", apiErr)
			return uuid.New().String(), nil
		}
		return "", c.surface(ctx, apiErr)
	}
	return env.PatientID, nil
}

// UpdatePatient applies a partial update to a patient record.
func (c *Client) UpdatePatient(ctx context.Context, patientID string, payload models.PatientUpdate) error {
	var env models.Envelope
	if apiErr := c.call(ctx, "UpdatePatient", http.MethodPut, "/patients/"+patientID, nil, payload, &env); apiErr != nil {
		if c.fallback {
			c.useMock("UpdatePatient", apiErr)
			return nil
		}
		return c.surface(ctx, apiErr)
	}
	return nil
}

// GetVitals fetches a patient's vitals, optionally bounded by start and end
// time. Zero times are omitted from the query.
func (c *Client) GetVitals(ctx context.Context, patientID string, start, end time.Time) ([]models.VitalSign, error) {
	query := url.Values{}
	if !start.IsZero() {
		query.Set("start_time", start.UTC().Format(time.RFC3339))
	}
	if !end.IsZero() {
		query.Set("end_time", end.UTC().Format(time.RFC3339))
	}

	var env models.VitalsEnvelope
	if apiErr := c.call(ctx, "GetVitals", http.MethodGet, "/patients/"+patientID+"/vitals", query, nil, &env); apiErr != nil {
		if c.fallback {
			c.useMock("GetVitals", apiErr)
			return c.gen.Vitals(patientID), nil
		}
		return nil, c.surface(ctx, apiErr)
	}
	return env.Vitals, nil
}

// RecordVitals submits a new vitals observation for a patient.
func (c *Client) RecordVitals(ctx context.Context, patientID string, reading models.VitalSign) error {
	var env models.Envelope
	if apiErr := c.call(ctx, "RecordVitals", http.MethodPost, "/patients/"+patientID+"/vitals", nil, reading, &env); apiErr != nil {
		if c.fallback {
			c.useMock("RecordVitals", apiErr)
			return nil
		}
		return c.surface(ctx, apiErr)
	}
	return nil
}

// GetAnalytics fetches derived per-period vitals averages. Empty region or
// period and non-positive limit are omitted from the query.
func (c *Client) GetAnalytics(ctx context.Context, patientID, region, period string, limit int) ([]models.Analytics, error) {
	query := url.Values{}
	if region != "" {
		query.Set("region", region)
	}
	if period != "" {
		query.Set("period", period)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var env models.AnalyticsEnvelope
	if apiErr := c.call(ctx, "GetAnalytics", http.MethodGet, "/patients/"+patientID+"/analytics", query, nil, &env); apiErr != nil {
		if c.fallback {
			c.useMock("GetAnalytics", apiErr)
			return c.gen.Analytics(patientID, region, period, limit), nil
		}
		return nil, c.surface(ctx, apiErr)
	}
	return env.Analytics, nil
}

// GetAlerts fetches the patient's alerts.
func (c *Client) GetAlerts(ctx context.Context, patientID string) ([]models.Alert, error) {
	var env models.AlertsEnvelope
	if apiErr := c.call(ctx, "GetAlerts", http.MethodGet, "/patients/"+patientID+"/alerts", nil, nil, &env); apiErr != nil {
		if c.fallback {
			c.useMock("GetAlerts", apiErr)
			return c.gen.Alerts(patientID), nil
		}
		return nil, c.surface(ctx, apiErr)
	}
	return env.Alerts, nil
}

// ResolveAlert marks an alert resolved. Resolution is terminal.
func (c *Client) ResolveAlert(ctx context.Context, alertID string) error {
	var env models.Envelope
	if apiErr := c.call(ctx, "ResolveAlert", http.MethodPost, "/alerts/"+alertID+"/resolve", nil, nil, &env); apiErr != nil {
		if c.fallback {
			c.useMock("ResolveAlert", apiErr)
			return nil
		}
		return c.surface(ctx, apiErr)
	}
	return nil
}

// GetPatientDoctors fetches the care team assigned to a patient.
func (c *Client) GetPatientDoctors(ctx context.Context, patientID string) ([]models.PatientDoctorRelationship, error) {
	var env models.PatientDoctorsEnvelope
	if apiErr := c.call(ctx, "GetPatientDoctors", http.MethodGet, "/patients/"+patientID+"/doctors", nil, nil, &env); apiErr != nil {
		if c.fallback {
			c.useMock("GetPatientDoctors", apiErr)
			return c.gen.Doctors(), nil
		}
		return nil, c.surface(ctx, apiErr)
	}
	return env.Doctors, nil
}
