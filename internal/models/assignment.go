package models

import "time"

// Relationship types for a doctor-patient assignment.
const (
	RelationshipPrimaryCare = "PRIMARY_CARE"
	RelationshipSpecialist  = "SPECIALIST"
	RelationshipConsulting  = "CONSULTING"
)

// ValidRelationshipType reports whether t is one of the known care roles.
func ValidRelationshipType(t string) bool {
	switch t {
	case RelationshipPrimaryCare, RelationshipSpecialist, RelationshipConsulting:
		return true
	}
	return false
}

// Assignment links a doctor to a patient with a care role. A given
// (patient, doctor) pair holds exactly one relationship type at a time;
// assigning again replaces the role.
type Assignment struct {
	PatientID        string    `json:"patient_id"`
	DoctorID         string    `json:"doctor_id"`
	RelationshipType string    `json:"relationship_type"`
	Since            time.Time `json:"since"`
}

// PatientDoctorRelationship is the doctor-side view returned by
// GET /patients/{id}/doctors.
type PatientDoctorRelationship struct {
	DoctorID         string    `json:"doctor_id"`
	DoctorName       string    `json:"doctor_name"`
	Specialization   string    `json:"specialization"`
	RelationshipType string    `json:"relationship_type"`
	Since            time.Time `json:"since"`
}

// DoctorPatientRelationship is the patient-side view returned by
// GET /doctors/{id}/patients.
type DoctorPatientRelationship struct {
	PatientID        string    `json:"patient_id"`
	PatientName      string    `json:"patient_name"`
	RelationshipType string    `json:"relationship_type"`
	Since            time.Time `json:"since"`
}
