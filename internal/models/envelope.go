package models

// Envelope is the response convention shared by every endpoint:
// {success: bool, error?: string, ...resource fields}. The live decode path,
// the mock generator, and the simulator all produce the same envelope types,
// so a caller cannot tell from the shape where a response came from.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OK reports whether the backend marked the response successful.
func (e Envelope) OK() bool { return e.Success }

// ErrMessage returns the backend's error string, empty on success.
func (e Envelope) ErrMessage() string { return e.Error }

type PatientEnvelope struct {
	Envelope
	Patient Patient `json:"patient"`
}

type PatientListEnvelope struct {
	Envelope
	Patients []Patient `json:"patients"`
}

type PatientCreatedEnvelope struct {
	Envelope
	PatientID string `json:"patient_id"`
}

type VitalsEnvelope struct {
	Envelope
	Vitals []VitalSign `json:"vitals"`
}

type AlertsEnvelope struct {
	Envelope
	Alerts []Alert `json:"alerts"`
}

type AnalyticsEnvelope struct {
	Envelope
	Analytics []Analytics `json:"analytics"`
}

type PatientDoctorsEnvelope struct {
	Envelope
	Doctors []PatientDoctorRelationship `json:"doctors"`
}

type DoctorCreatedEnvelope struct {
	Envelope
	DoctorID string `json:"doctor_id"`
}

type DoctorPatientsEnvelope struct {
	Envelope
	Patients []DoctorPatientRelationship `json:"patients"`
}
