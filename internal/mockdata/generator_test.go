package mockdata

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitalwatch/internal/models"
)

func fixedClock() func() time.Time {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestPatientShape(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)))
	p := g.Patient("x")

	assert.Equal(t, "x", p.ID)
	assert.NotEmpty(t, p.Name)
	assert.GreaterOrEqual(t, p.Age, 18)
	assert.NotEmpty(t, p.Gender)
	assert.NotEmpty(t, p.BloodType)
	assert.NotEmpty(t, p.Region)
	assert.NotEmpty(t, p.MedicalHistory.Conditions)
	assert.NotEmpty(t, p.MedicalHistory.Allergies)
	assert.GreaterOrEqual(t, p.MedicalHistory.Surgeries, 0)
}

func TestSeededGenerationIsDeterministic(t *testing.T) {
	g1 := New(rand.New(rand.NewSource(42)))
	g1.SetClock(fixedClock())
	g2 := New(rand.New(rand.NewSource(42)))
	g2.SetClock(fixedClock())

	assert.Equal(t, g1.Patient("p1"), g2.Patient("p1"))
	assert.Equal(t, g1.Vitals("p1"), g2.Vitals("p1"))
}

func TestVitalsTwentyFourHourlySamples(t *testing.T) {
	g := New(rand.New(rand.NewSource(7)))
	g.SetClock(fixedClock())

	readings := g.Vitals("p1")
	require.Len(t, readings, 24)

	now := fixedClock()()
	for i, v := range readings {
		assert.Equal(t, "p1", v.PatientID)
		assert.Equal(t, now.Add(-time.Duration(i)*time.Hour), v.Timestamp, "sample %d", i)
		require.NotNil(t, v.HeartRate)
		require.NotNil(t, v.BPSystolic)
		require.NotNil(t, v.BPDiastolic)
		require.NotNil(t, v.Temperature)
		require.NotNil(t, v.OxygenLevel)
	}

	// Strictly decreasing by exactly one hour per step.
	for i := 1; i < len(readings); i++ {
		assert.Equal(t, time.Hour, readings[i-1].Timestamp.Sub(readings[i].Timestamp))
	}
}

func TestVitalsValueRanges(t *testing.T) {
	g := New(rand.New(rand.NewSource(3)))
	// Generator ranges, not alert ranges: most values sit inside normal bounds.
	for _, v := range g.Vitals("p1") {
		assert.InDelta(t, 80, *v.HeartRate, 20)
		assert.InDelta(t, 130, *v.BPSystolic, 20)
		assert.InDelta(t, 80, *v.BPDiastolic, 10)
		assert.InDelta(t, 37.0, *v.Temperature, 0.5)
		assert.InDelta(t, 96, *v.OxygenLevel, 4)
	}
}

func TestAlertsSingleNewEntry(t *testing.T) {
	g := New(rand.New(rand.NewSource(5)))
	list := g.Alerts("p1")
	require.Len(t, list, 1)

	a := list[0]
	assert.Equal(t, "p1", a.PatientID)
	assert.Equal(t, models.AlertStatusNew, a.Status)
	require.Len(t, a.Entries, 1)
	assert.Equal(t, models.VitalHeartRate, a.Entries[0].Vital)
	assert.Equal(t, 130.0, a.Entries[0].Value)
	assert.Equal(t, 60.0, a.Entries[0].ThresholdMin)
	assert.Equal(t, 100.0, a.Entries[0].ThresholdMax)
}

func TestDoctorsPair(t *testing.T) {
	g := New(rand.New(rand.NewSource(5)))
	docs := g.Doctors()
	require.Len(t, docs, 2)
	assert.Equal(t, models.RelationshipPrimaryCare, docs[0].RelationshipType)
	assert.Equal(t, models.RelationshipSpecialist, docs[1].RelationshipType)
}

func TestAnalyticsDefaults(t *testing.T) {
	g := New(rand.New(rand.NewSource(9)))
	rows := g.Analytics("p1", "", "", 0)
	require.Len(t, rows, 24)
	assert.Equal(t, "hourly", rows[0].AnalysisPeriod)
	require.NotNil(t, rows[0].HeartRateAvg)

	daily := g.Analytics("p1", "North", "daily", 7)
	require.Len(t, daily, 7)
	assert.Equal(t, "North", daily[0].Region)
	assert.Equal(t, "daily", daily[0].AnalysisPeriod)
}
