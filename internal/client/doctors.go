package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"vitalwatch/internal/models"
)

// CreateDoctor registers a doctor and returns the new id.
func (c *Client) CreateDoctor(ctx context.Context, payload models.DoctorCreate) (string, error) {
	var env models.DoctorCreatedEnvelope
	if apiErr := c.call(ctx, "CreateDoctor", http.MethodPost, "/doctors", nil, payload, &env); apiErr != nil {
		if c.fallback {
			c.useMock("CreateDoctor", apiErr)
			return uuid.New().String(), nil
		}
		return "", c.surface(ctx, apiErr)
	}
	return env.DoctorID, nil
}

// GetDoctorPatients fetches the patients assigned to a doctor.
func (c *Client) GetDoctorPatients(ctx context.Context, doctorID string) ([]models.DoctorPatientRelationship, error) {
	var env models.DoctorPatientsEnvelope
	if apiErr := c.call(ctx, "GetDoctorPatients", http.MethodGet, "/doctors/"+doctorID+"/patients", nil, nil, &env); apiErr != nil {
		if c.fallback {
			c.useMock("GetDoctorPatients", apiErr)
			return c.gen.DoctorPatients(doctorID, 3), nil
		}
		return nil, c.surface(ctx, apiErr)
	}
	return env.Patients, nil
}

// AssignPatient links a patient to a doctor with a care role. A repeated
// assignment for the same pair replaces the previous role.
func (c *Client) AssignPatient(ctx context.Context, doctorID, patientID, relationshipType string) error {
	body := map[string]string{"relationship_type": relationshipType}
	var env models.Envelope
	if apiErr := c.call(ctx, "AssignPatient", http.MethodPost, "/doctors/"+doctorID+"/patients/"+patientID, nil, body, &env); apiErr != nil {
		if c.fallback {
			c.useMock("AssignPatient", apiErr)
			return nil
		}
		return c.surface(ctx, apiErr)
	}
	return nil
}
