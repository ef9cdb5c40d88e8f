package models

import "time"

// Analytics is a derived per-period average of a patient's vitals. Read-only:
// recomputed by the backend, never mutated here.
type Analytics struct {
	Region         string    `json:"region"`
	PatientID      string    `json:"patient_id"`
	Timestamp      time.Time `json:"timestamp"`
	HeartRateAvg   *float64  `json:"heart_rate_avg,omitempty"`
	BPSystolicAvg  *float64  `json:"blood_pressure_systolic_avg,omitempty"`
	BPDiastolicAvg *float64  `json:"blood_pressure_diastolic_avg,omitempty"`
	TemperatureAvg *float64  `json:"temperature_avg,omitempty"`
	OxygenLevelAvg *float64  `json:"oxygen_level_avg,omitempty"`
	AnalysisPeriod string    `json:"analysis_period"`
}
