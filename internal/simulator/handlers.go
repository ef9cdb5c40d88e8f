package simulator

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vitalwatch/internal/alerts"
	"vitalwatch/internal/models"
)

func (s *Server) ListPatients(c *gin.Context) {
	patients := s.store.Patients()
	s.logger.Infof("Retrieved %d patients", len(patients))
	c.JSON(http.StatusOK, models.PatientListEnvelope{
		Envelope: models.Envelope{Success: true},
		Patients: patients,
	})
}

func (s *Server) GetPatient(c *gin.Context) {
	id := c.Param("id")
	p, ok := s.store.GetPatient(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, models.PatientEnvelope{
		Envelope: models.Envelope{Success: true},
		Patient:  p,
	})
}

func (s *Server) CreatePatient(c *gin.Context) {
	var in models.PatientCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		s.logger.Errorf("Invalid request body for patient: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	now := time.Now().UTC()
	p := models.Patient{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Age:            in.Age,
		Gender:         in.Gender,
		BloodType:      in.BloodType,
		Region:         in.Region,
		MedicalHistory: in.MedicalHistory,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.store.PutPatient(p)
	s.logger.Infof("Created patient: %s", p.ID)
	c.JSON(http.StatusCreated, models.PatientCreatedEnvelope{
		Envelope:  models.Envelope{Success: true},
		PatientID: p.ID,
	})
}

func (s *Server) UpdatePatient(c *gin.Context) {
	id := c.Param("id")
	p, ok := s.store.GetPatient(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Patient not found"})
		return
	}
	var in models.PatientUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		s.logger.Errorf("Invalid request body for patient update: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Gender != "" {
		p.Gender = in.Gender
	}
	if in.BloodType != "" {
		p.BloodType = in.BloodType
	}
	if in.Region != "" {
		p.Region = in.Region
	}
	if in.MedicalHistory != nil {
		p.MedicalHistory = *in.MedicalHistory
	}
	p.UpdatedAt = time.Now().UTC()
	s.store.PutPatient(p)
	s.logger.Infof("Updated patient: %s", id)
	c.JSON(http.StatusOK, models.Envelope{Success: true})
}

func (s *Server) GetVitals(c *gin.Context) {
	id := c.Param("id")
	var start, end time.Time
	if v := c.Query("start_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid start_time"})
			return
		}
		start = t
	}
	if v := c.Query("end_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid end_time"})
			return
		}
		end = t
	}
	c.JSON(http.StatusOK, models.VitalsEnvelope{
		Envelope: models.Envelope{Success: true},
		Vitals:   s.store.Vitals(id, start, end),
	})
}

// RecordVitals stores an observation and, when any reading is abnormal,
// creates one alert batching the abnormal entries. The new reading is also
// pushed to WebSocket subscribers.
func (s *Server) RecordVitals(c *gin.Context) {
	id := c.Param("id")
	var v models.VitalSign
	if err := c.ShouldBindJSON(&v); err != nil {
		s.logger.Errorf("Invalid request body for vitals: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	v.PatientID = id
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now().UTC()
	}
	s.store.AddVitals(v)

	name := id
	if p, ok := s.store.GetPatient(id); ok {
		name = p.Name
	}
	if alert := alerts.FromVitalSign(name, v); alert != nil {
		stored := s.store.Alerts().Add(*alert)
		s.logger.Infof("Created alert %s for patient %s (%d abnormal)", stored.ID, id, len(stored.Entries))
	}
	s.hub.Broadcast(id, v)

	c.JSON(http.StatusCreated, models.Envelope{Success: true})
}

func (s *Server) GetAnalytics(c *gin.Context) {
	id := c.Param("id")
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid limit"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, models.AnalyticsEnvelope{
		Envelope:  models.Envelope{Success: true},
		Analytics: s.store.Analytics(id, c.Query("region"), c.Query("period"), limit),
	})
}

func (s *Server) GetAlerts(c *gin.Context) {
	id := c.Param("id")
	active := s.store.Alerts().ActiveForPatient(id)
	s.logger.Infof("Retrieved %d alerts for patient %s", len(active), id)
	c.JSON(http.StatusOK, models.AlertsEnvelope{
		Envelope: models.Envelope{Success: true},
		Alerts:   active,
	})
}

// ResolveAlert is idempotent: resolving an already resolved alert succeeds
// without changing anything. Unknown ids are an application error.
func (s *Server) ResolveAlert(c *gin.Context) {
	id := c.Param("id")
	if !s.store.Alerts().Resolve(id) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Alert not found"})
		return
	}
	s.logger.Infof("Resolved alert: %s", id)
	c.JSON(http.StatusOK, models.Envelope{Success: true})
}

func (s *Server) GetPatientDoctors(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, models.PatientDoctorsEnvelope{
		Envelope: models.Envelope{Success: true},
		Doctors:  s.store.DoctorsForPatient(id),
	})
}

func (s *Server) CreateDoctor(c *gin.Context) {
	var in models.DoctorCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		s.logger.Errorf("Invalid request body for doctor: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	now := time.Now().UTC()
	d := models.Doctor{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Specialization: in.Specialization,
		Region:         in.Region,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.store.PutDoctor(d)
	s.logger.Infof("Created doctor: %s", d.ID)
	c.JSON(http.StatusCreated, models.DoctorCreatedEnvelope{
		Envelope: models.Envelope{Success: true},
		DoctorID: d.ID,
	})
}

func (s *Server) GetDoctorPatients(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.store.GetDoctor(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Doctor not found"})
		return
	}
	c.JSON(http.StatusOK, models.DoctorPatientsEnvelope{
		Envelope: models.Envelope{Success: true},
		Patients: s.store.PatientsForDoctor(id),
	})
}

func (s *Server) AssignPatient(c *gin.Context) {
	doctorID := c.Param("id")
	patientID := c.Param("patientId")

	var in struct {
		RelationshipType string `json:"relationship_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if !models.ValidRelationshipType(in.RelationshipType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid relationship_type"})
		return
	}
	if _, ok := s.store.GetDoctor(doctorID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Doctor not found"})
		return
	}
	if _, ok := s.store.GetPatient(patientID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Patient not found"})
		return
	}

	s.store.Assign(models.Assignment{
		PatientID:        patientID,
		DoctorID:         doctorID,
		RelationshipType: in.RelationshipType,
		Since:            time.Now().UTC(),
	})
	s.logger.Infof("Assigned patient %s to doctor %s as %s", patientID, doctorID, in.RelationshipType)
	c.JSON(http.StatusOK, models.Envelope{Success: true})
}

// SimulateData reseeds the demo data set.
func (s *Server) SimulateData(c *gin.Context) {
	s.store.Seed(s.gen, 5)
	s.logger.Info("Reseeded simulated data")
	c.JSON(http.StatusOK, models.Envelope{Success: true})
}

// SimulateFailure toggles the simulated node failure on and off. The CAS
// loop keeps concurrent toggles from collapsing into one.
func (s *Server) SimulateFailure(c *gin.Context) {
	var failing bool
	for {
		old := s.failing.Load()
		if s.failing.CompareAndSwap(old, !old) {
			failing = !old
			break
		}
	}
	s.logger.Infof("Simulated failure mode: %v", failing)
	c.JSON(http.StatusOK, models.Envelope{Success: true})
}
