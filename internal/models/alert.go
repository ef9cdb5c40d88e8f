package models

import "time"

// Alert lifecycle states. new -> resolved is terminal; there is no reopen.
const (
	AlertStatusNew      = "new"
	AlertStatusResolved = "resolved"
)

// AlertEntry is one abnormal reading inside an Alert, carrying the value that
// tripped the threshold and the normal range it violated.
type AlertEntry struct {
	Vital        string    `json:"vital"`
	Value        float64   `json:"value"`
	ThresholdMin float64   `json:"threshold_min"`
	ThresholdMax float64   `json:"threshold_max"`
	Timestamp    time.Time `json:"timestamp"`
}

// Alert batches every simultaneously abnormal vital of one observation event
// for one patient into a single record.
type Alert struct {
	ID          string       `json:"alert_id,omitempty"`
	PatientID   string       `json:"patient_id"`
	PatientName string       `json:"patient_name"`
	Entries     []AlertEntry `json:"alerts"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
}
