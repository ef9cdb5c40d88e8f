package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitalwatch/internal/models"
)

func TestAggregateEmptyBatch(t *testing.T) {
	assert.Nil(t, Aggregate("p1", "Test Patient", time.Now(), nil))
	assert.Nil(t, Aggregate("p1", "Test Patient", time.Now(), []models.Measurement{}))
}

func TestAggregateAllNormal(t *testing.T) {
	readings := []models.Measurement{
		{Kind: models.VitalHeartRate, Value: 72},
		{Kind: models.VitalTemperature, Value: 36.8},
		{Kind: models.VitalOxygenLevel, Value: 98},
	}
	assert.Nil(t, Aggregate("p1", "Test Patient", time.Now(), readings))
}

func TestAggregateLowOxygen(t *testing.T) {
	at := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	alert := Aggregate("p1", "Test Patient", at, []models.Measurement{
		{Kind: models.VitalOxygenLevel, Value: 87},
	})
	require.NotNil(t, alert)
	require.Len(t, alert.Entries, 1)
	assert.Equal(t, models.AlertStatusNew, alert.Status)
	assert.Equal(t, "p1", alert.PatientID)

	entry := alert.Entries[0]
	assert.Equal(t, models.VitalOxygenLevel, entry.Vital)
	assert.Equal(t, 87.0, entry.Value)
	assert.Equal(t, 95.0, entry.ThresholdMin)
	assert.Equal(t, 100.0, entry.ThresholdMax)
	assert.Equal(t, at, entry.Timestamp)
}

func TestAggregateHighOxygenNotFlagged(t *testing.T) {
	// Saturation has no upper alert bound.
	assert.Nil(t, Aggregate("p1", "Test Patient", time.Now(), []models.Measurement{
		{Kind: models.VitalOxygenLevel, Value: 100.5},
	}))
}

func TestAggregateKeepsInputOrder(t *testing.T) {
	readings := []models.Measurement{
		{Kind: models.VitalTemperature, Value: 39.5},
		{Kind: models.VitalHeartRate, Value: 45},
		{Kind: models.VitalOxygenLevel, Value: 99}, // normal, dropped
		{Kind: models.VitalBPDiastolic, Value: 95},
	}
	alert := Aggregate("p1", "Test Patient", time.Now(), readings)
	require.NotNil(t, alert)
	require.Len(t, alert.Entries, 3)
	assert.Equal(t, models.VitalTemperature, alert.Entries[0].Vital)
	assert.Equal(t, models.VitalHeartRate, alert.Entries[1].Vital)
	assert.Equal(t, models.VitalBPDiastolic, alert.Entries[2].Vital)
}

func TestFromVitalSignSkipsAbsentReadings(t *testing.T) {
	hr := 130.0
	v := models.VitalSign{
		PatientID: "p1",
		Timestamp: time.Now().UTC(),
		HeartRate: &hr,
		// everything else absent: never flagged
	}
	alert := FromVitalSign("Test Patient", v)
	require.NotNil(t, alert)
	require.Len(t, alert.Entries, 1)
	assert.Equal(t, models.VitalHeartRate, alert.Entries[0].Vital)

	assert.Nil(t, FromVitalSign("Test Patient", models.VitalSign{PatientID: "p1", Timestamp: time.Now()}))
}
