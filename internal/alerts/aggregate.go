// Package alerts turns abnormal vital readings into alert records and tracks
// the active alert set through its new -> resolved lifecycle.
package alerts

import (
	"time"

	"vitalwatch/internal/models"
	"vitalwatch/internal/vitals"
)

// Aggregate classifies each reading of one observation event and batches the
// abnormal ones into a single Alert. Entries keep the input order. If nothing
// is abnormal there is no alert and Aggregate returns nil.
func Aggregate(patientID, patientName string, at time.Time, readings []models.Measurement) *models.Alert {
	var entries []models.AlertEntry
	for _, m := range readings {
		if vitals.Classify(m.Kind, m.Value) != vitals.Abnormal {
			continue
		}
		r, _ := vitals.AlertThresholds.Lookup(m.Kind)
		r = r.Reported()
		entries = append(entries, models.AlertEntry{
			Vital:        m.Kind,
			Value:        m.Value,
			ThresholdMin: r.Min,
			ThresholdMax: r.Max,
			Timestamp:    at,
		})
	}
	if len(entries) == 0 {
		return nil
	}
	return &models.Alert{
		PatientID:   patientID,
		PatientName: patientName,
		Entries:     entries,
		Status:      models.AlertStatusNew,
		CreatedAt:   time.Now().UTC(),
	}
}

// FromVitalSign aggregates the present measurements of a recorded vital sign.
func FromVitalSign(patientName string, v models.VitalSign) *models.Alert {
	return Aggregate(v.PatientID, patientName, v.Timestamp, v.Measurements())
}
