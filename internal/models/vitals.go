package models

import "time"

// Vital sign kinds as they appear on the wire.
const (
	VitalHeartRate   = "heart_rate"
	VitalBPSystolic  = "blood_pressure_systolic"
	VitalBPDiastolic = "blood_pressure_diastolic"
	VitalTemperature = "temperature"
	VitalOxygenLevel = "oxygen_level"
)

// VitalSign is one observation event for a patient. Every measurement is
// independently optional: a nil pointer means the vital was not taken, which
// is not the same as a zero reading.
type VitalSign struct {
	PatientID   string    `json:"patient_id"`
	Timestamp   time.Time `json:"timestamp"`
	Region      string    `json:"region,omitempty"`
	HeartRate   *float64  `json:"heart_rate,omitempty"`
	BPSystolic  *float64  `json:"blood_pressure_systolic,omitempty"`
	BPDiastolic *float64  `json:"blood_pressure_diastolic,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	OxygenLevel *float64  `json:"oxygen_level,omitempty"`
}

// Measurements returns the present readings as (kind, value) pairs in wire
// order, skipping absent vitals.
func (v VitalSign) Measurements() []Measurement {
	var out []Measurement
	add := func(kind string, val *float64) {
		if val != nil {
			out = append(out, Measurement{Kind: kind, Value: *val})
		}
	}
	add(VitalHeartRate, v.HeartRate)
	add(VitalBPSystolic, v.BPSystolic)
	add(VitalBPDiastolic, v.BPDiastolic)
	add(VitalTemperature, v.Temperature)
	add(VitalOxygenLevel, v.OxygenLevel)
	return out
}

// Measurement is a single present reading extracted from a VitalSign.
type Measurement struct {
	Kind  string
	Value float64
}
