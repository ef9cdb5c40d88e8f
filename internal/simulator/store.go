// Package simulator serves the telemetry REST surface from in-memory state,
// standing in for the real backend during development and tests.
package simulator

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vitalwatch/internal/alerts"
	"vitalwatch/internal/mockdata"
	"vitalwatch/internal/models"
)

// Store is the simulator's in-memory state. Everything lives and dies with
// the process; persistence is out of scope.
type Store struct {
	mu          sync.RWMutex
	patients    map[string]models.Patient
	patientIDs  []string
	doctors     map[string]models.Doctor
	doctorIDs   []string
	assignments map[string]models.Assignment // key: patientID + "/" + doctorID
	vitals      map[string][]models.VitalSign
	alertStore  *alerts.Store
}

func NewStore() *Store {
	return &Store{
		patients:    make(map[string]models.Patient),
		doctors:     make(map[string]models.Doctor),
		assignments: make(map[string]models.Assignment),
		vitals:      make(map[string][]models.VitalSign),
		alertStore:  alerts.NewStore(),
	}
}

// Seed resets the store and fills it with generated demo data: patients with
// a day of vitals each, a couple of doctors with primary-care assignments,
// and one open alert.
func (s *Store) Seed(gen *mockdata.Generator, patientCount int) {
	s.mu.Lock()
	s.patients = make(map[string]models.Patient)
	s.patientIDs = nil
	s.doctors = make(map[string]models.Doctor)
	s.doctorIDs = nil
	s.assignments = make(map[string]models.Assignment)
	s.vitals = make(map[string][]models.VitalSign)
	s.alertStore = alerts.NewStore()
	s.mu.Unlock()

	for _, p := range gen.Patients(patientCount) {
		s.PutPatient(p)
		s.mu.Lock()
		s.vitals[p.ID] = gen.Vitals(p.ID)
		s.mu.Unlock()
	}

	for i := 0; i < 2; i++ {
		d := gen.Doctor(uuid.New().String())
		s.PutDoctor(d)
	}

	s.mu.RLock()
	patientIDs := append([]string(nil), s.patientIDs...)
	doctorIDs := append([]string(nil), s.doctorIDs...)
	s.mu.RUnlock()

	now := time.Now().UTC()
	for i, pid := range patientIDs {
		did := doctorIDs[i%len(doctorIDs)]
		s.Assign(models.Assignment{
			PatientID:        pid,
			DoctorID:         did,
			RelationshipType: models.RelationshipPrimaryCare,
			Since:            now,
		})
	}

	if len(patientIDs) > 0 {
		for _, a := range gen.Alerts(patientIDs[0]) {
			if p, ok := s.GetPatient(patientIDs[0]); ok {
				a.PatientName = p.Name
			}
			s.Alerts().Add(a)
		}
	}
}

// Alerts returns the current alert store. Seed swaps it out, so callers
// should not hold the result across a reseed.
func (s *Store) Alerts() *alerts.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alertStore
}

func (s *Store) PutPatient(p models.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.patients[p.ID]; !exists {
		s.patientIDs = append(s.patientIDs, p.ID)
	}
	s.patients[p.ID] = p
}

func (s *Store) GetPatient(id string) (models.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[id]
	return p, ok
}

func (s *Store) Patients() []models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Patient, 0, len(s.patientIDs))
	for _, id := range s.patientIDs {
		out = append(out, s.patients[id])
	}
	return out
}

func (s *Store) PutDoctor(d models.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.doctors[d.ID]; !exists {
		s.doctorIDs = append(s.doctorIDs, d.ID)
	}
	s.doctors[d.ID] = d
}

func (s *Store) GetDoctor(id string) (models.Doctor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors[id]
	return d, ok
}

// Assign records a doctor-patient relationship. A pair holds one role at a
// time: assigning again overwrites the previous role.
func (s *Store) Assign(a models.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[a.PatientID+"/"+a.DoctorID] = a
}

// DoctorsForPatient returns the patient's care team, joined with doctor
// records, ordered by doctor registration.
func (s *Store) DoctorsForPatient(patientID string) []models.PatientDoctorRelationship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.PatientDoctorRelationship{}
	for _, did := range s.doctorIDs {
		a, ok := s.assignments[patientID+"/"+did]
		if !ok {
			continue
		}
		d := s.doctors[did]
		out = append(out, models.PatientDoctorRelationship{
			DoctorID:         did,
			DoctorName:       d.Name,
			Specialization:   d.Specialization,
			RelationshipType: a.RelationshipType,
			Since:            a.Since,
		})
	}
	return out
}

// PatientsForDoctor returns the doctor's roster, joined with patient records.
func (s *Store) PatientsForDoctor(doctorID string) []models.DoctorPatientRelationship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.DoctorPatientRelationship{}
	for _, pid := range s.patientIDs {
		a, ok := s.assignments[pid+"/"+doctorID]
		if !ok {
			continue
		}
		p := s.patients[pid]
		out = append(out, models.DoctorPatientRelationship{
			PatientID:        pid,
			PatientName:      p.Name,
			RelationshipType: a.RelationshipType,
			Since:            a.Since,
		})
	}
	return out
}

// AddVitals appends an observation. Timestamps are not unique; readings are
// kept in arrival order.
func (s *Store) AddVitals(v models.VitalSign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vitals[v.PatientID] = append(s.vitals[v.PatientID], v)
}

// Vitals returns the patient's readings inside [start, end], newest first.
// Zero bounds are open.
func (s *Store) Vitals(patientID string, start, end time.Time) []models.VitalSign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.VitalSign{}
	for _, v := range s.vitals[patientID] {
		if !start.IsZero() && v.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && v.Timestamp.After(end) {
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// Analytics averages the patient's stored vitals per period bucket, newest
// bucket first, at most limit rows.
func (s *Store) Analytics(patientID, region, period string, limit int) []models.Analytics {
	if period == "" {
		period = "hourly"
	}
	if limit <= 0 {
		limit = 24
	}
	trunc := time.Hour
	if period == "daily" {
		trunc = 24 * time.Hour
	}

	s.mu.RLock()
	readings := append([]models.VitalSign(nil), s.vitals[patientID]...)
	s.mu.RUnlock()

	type acc struct {
		sum   map[string]float64
		count map[string]int
	}
	buckets := make(map[time.Time]*acc)
	var order []time.Time
	for _, v := range readings {
		if region != "" && v.Region != region {
			continue
		}
		key := v.Timestamp.Truncate(trunc)
		b, ok := buckets[key]
		if !ok {
			b = &acc{sum: map[string]float64{}, count: map[string]int{}}
			buckets[key] = b
			order = append(order, key)
		}
		for _, m := range v.Measurements() {
			b.sum[m.Kind] += m.Value
			b.count[m.Kind]++
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].After(order[j]) })
	if len(order) > limit {
		order = order[:limit]
	}

	out := make([]models.Analytics, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		avg := func(kind string) *float64 {
			n := b.count[kind]
			if n == 0 {
				return nil
			}
			v := b.sum[kind] / float64(n)
			return &v
		}
		out = append(out, models.Analytics{
			Region:         region,
			PatientID:      patientID,
			Timestamp:      key,
			HeartRateAvg:   avg(models.VitalHeartRate),
			BPSystolicAvg:  avg(models.VitalBPSystolic),
			BPDiastolicAvg: avg(models.VitalBPDiastolic),
			TemperatureAvg: avg(models.VitalTemperature),
			OxygenLevelAvg: avg(models.VitalOxygenLevel),
			AnalysisPeriod: period,
		})
	}
	return out
}
