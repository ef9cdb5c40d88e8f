package models

import "time"

// MedicalHistory summarizes a patient's known conditions and allergies.
type MedicalHistory struct {
	Conditions []string `json:"conditions"`
	Allergies  []string `json:"allergies"`
	Surgeries  int      `json:"surgeries"`
}

// Patient is the canonical patient record. Immutable once handed to a caller;
// updates go through the backend, never through shared state.
type Patient struct {
	ID             string         `json:"_id"`
	Name           string         `json:"name"`
	Age            int            `json:"age,omitempty"`
	Gender         string         `json:"gender,omitempty"`
	BloodType      string         `json:"blood_type,omitempty"`
	Region         string         `json:"region,omitempty"`
	MedicalHistory MedicalHistory `json:"medical_history"`
	CreatedAt      time.Time      `json:"created_at,omitempty"`
	UpdatedAt      time.Time      `json:"updated_at,omitempty"`
}

// PatientCreate is the input payload for registering a patient.
type PatientCreate struct {
	Name           string         `json:"name" binding:"required"`
	Age            int            `json:"age" binding:"required"`
	Gender         string         `json:"gender" binding:"required"`
	BloodType      string         `json:"blood_type,omitempty"`
	Region         string         `json:"region,omitempty"`
	MedicalHistory MedicalHistory `json:"medical_history,omitempty"`
}

// PatientUpdate carries the mutable fields for PUT /patients/{id}.
type PatientUpdate struct {
	Name           string          `json:"name,omitempty"`
	Age            *int            `json:"age,omitempty"`
	Gender         string          `json:"gender,omitempty"`
	BloodType      string          `json:"blood_type,omitempty"`
	Region         string          `json:"region,omitempty"`
	MedicalHistory *MedicalHistory `json:"medical_history,omitempty"`
}
