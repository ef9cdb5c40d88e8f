// Package mockdata generates structurally valid synthetic healthcare
// entities. It backs the client facade when the live backend is unavailable
// and seeds the simulator's initial state. Generation never fails.
package mockdata

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"vitalwatch/internal/models"
)

// Fixed enumeration pools for generated entities.
var (
	firstNames  = []string{"James", "Mary", "Robert", "Patricia", "John", "Linda", "Michael", "Elizabeth", "David", "Susan"}
	lastNames   = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Wilson", "Taylor"}
	bloodTypes  = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	regions     = []string{"North", "South", "East", "West", "Central"}
	conditions  = []string{"Hypertension", "Diabetes", "Asthma", "Arrhythmia", "COPD", "Hyperlipidemia"}
	allergens   = []string{"Penicillin", "Latex", "Peanuts", "Sulfa", "Aspirin"}
	specialties = []string{"Cardiology", "Neurology", "Pulmonology", "Endocrinology", "General Practice"}
)

// Generator produces randomized entities from a caller-supplied random
// source. Seed the source in tests for deterministic output. Safe for
// concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New returns a Generator drawing from rng. A nil rng gets a time-seeded one.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, now: time.Now}
}

// SetClock overrides the time source; tests pin "now" with it.
func (g *Generator) SetClock(now func() time.Time) { g.now = now }

func (g *Generator) pick(pool []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return pool[g.rng.Intn(len(pool))]
}

func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func (g *Generator) between(lo, hi float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return lo + g.rng.Float64()*(hi-lo)
}

// Patient builds a synthetic patient for the requested id.
func (g *Generator) Patient(patientID string) models.Patient {
	now := g.now().UTC()
	return models.Patient{
		ID:        patientID,
		Name:      fmt.Sprintf("%s %s", g.pick(firstNames), g.pick(lastNames)),
		Age:       18 + g.intn(72),
		Gender:    g.pick([]string{"Female", "Male"}),
		BloodType: g.pick(bloodTypes),
		Region:    g.pick(regions),
		MedicalHistory: models.MedicalHistory{
			Conditions: []string{g.pick(conditions), g.pick(conditions)},
			Allergies:  []string{g.pick(allergens)},
			Surgeries:  g.intn(3),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Patients builds n synthetic patients with fresh ids.
func (g *Generator) Patients(n int) []models.Patient {
	out := make([]models.Patient, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Patient(uuid.New().String()))
	}
	return out
}

// Vitals produces exactly 24 hourly-spaced samples ending at now, newest
// first, each timestamp one hour earlier than the previous. Values land in
// generator ranges that mostly sit inside normal clinical bounds; they are
// not clamped to the alert thresholds.
func (g *Generator) Vitals(patientID string) []models.VitalSign {
	now := g.now().UTC()
	region := g.pick(regions)
	out := make([]models.VitalSign, 0, 24)
	for i := 0; i < 24; i++ {
		hr := float64(int(g.between(60, 100)))
		sys := float64(int(g.between(110, 150)))
		dia := float64(int(g.between(70, 90)))
		temp := float64(int(g.between(36.5, 37.5)*10)) / 10
		oxy := float64(int(g.between(92, 100)))
		out = append(out, models.VitalSign{
			PatientID:   patientID,
			Timestamp:   now.Add(-time.Duration(i) * time.Hour),
			Region:      region,
			HeartRate:   &hr,
			BPSystolic:  &sys,
			BPDiastolic: &dia,
			Temperature: &temp,
			OxygenLevel: &oxy,
		})
	}
	return out
}

// Alerts produces one new alert for the patient: an elevated heart rate
// against the 60-100 normal range.
func (g *Generator) Alerts(patientID string) []models.Alert {
	now := g.now().UTC()
	return []models.Alert{
		{
			ID:          uuid.New().String(),
			PatientID:   patientID,
			PatientName: PatientName(patientID),
			Entries: []models.AlertEntry{
				{
					Vital:        models.VitalHeartRate,
					Value:        130,
					ThresholdMin: 60,
					ThresholdMax: 100,
					Timestamp:    now,
				},
			},
			Status:    models.AlertStatusNew,
			CreatedAt: now,
		},
	}
}

// Doctors produces the synthetic care team returned for any patient.
func (g *Generator) Doctors() []models.PatientDoctorRelationship {
	now := g.now().UTC()
	return []models.PatientDoctorRelationship{
		{
			DoctorID:         "doc1",
			DoctorName:       "Dr. Smith",
			Specialization:   "Cardiology",
			RelationshipType: models.RelationshipPrimaryCare,
			Since:            now,
		},
		{
			DoctorID:         "doc2",
			DoctorName:       "Dr. Johnson",
			Specialization:   "Neurology",
			RelationshipType: models.RelationshipSpecialist,
			Since:            now,
		},
	}
}

// Doctor builds a synthetic doctor for the requested id.
func (g *Generator) Doctor(doctorID string) models.Doctor {
	now := g.now().UTC()
	return models.Doctor{
		ID:             doctorID,
		Name:           fmt.Sprintf("Dr. %s", g.pick(lastNames)),
		Specialization: g.pick(specialties),
		Region:         g.pick(regions),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// DoctorPatients produces a synthetic patient roster for a doctor.
func (g *Generator) DoctorPatients(doctorID string, n int) []models.DoctorPatientRelationship {
	now := g.now().UTC()
	out := make([]models.DoctorPatientRelationship, 0, n)
	types := []string{models.RelationshipPrimaryCare, models.RelationshipSpecialist, models.RelationshipConsulting}
	for i := 0; i < n; i++ {
		out = append(out, models.DoctorPatientRelationship{
			PatientID:        uuid.New().String(),
			PatientName:      fmt.Sprintf("%s %s", g.pick(firstNames), g.pick(lastNames)),
			RelationshipType: types[g.intn(len(types))],
			Since:            now,
		})
	}
	return out
}

// Analytics produces per-period vitals averages, one row per period step
// back from now.
func (g *Generator) Analytics(patientID, region, period string, limit int) []models.Analytics {
	if region == "" {
		region = g.pick(regions)
	}
	if period == "" {
		period = "hourly"
	}
	if limit <= 0 {
		limit = 24
	}
	step := time.Hour
	if period == "daily" {
		step = 24 * time.Hour
	}
	now := g.now().UTC()
	out := make([]models.Analytics, 0, limit)
	for i := 0; i < limit; i++ {
		hr := g.between(65, 95)
		sys := g.between(110, 140)
		dia := g.between(70, 88)
		temp := g.between(36.5, 37.4)
		oxy := g.between(94, 99)
		out = append(out, models.Analytics{
			Region:         region,
			PatientID:      patientID,
			Timestamp:      now.Add(-time.Duration(i) * step),
			HeartRateAvg:   &hr,
			BPSystolicAvg:  &sys,
			BPDiastolicAvg: &dia,
			TemperatureAvg: &temp,
			OxygenLevelAvg: &oxy,
			AnalysisPeriod: period,
		})
	}
	return out
}

// PatientName is the synthetic display name used when only an id is known.
func PatientName(patientID string) string {
	return fmt.Sprintf("Test Patient %s", shortID(patientID))
}

func shortID(id string) string {
	if len(id) > 5 {
		return id[:5]
	}
	return id
}
