package simulator

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vitalwatch/internal/mockdata"
	"vitalwatch/internal/ws"
)

// Server wires the simulated backend: in-memory store, mock generator, and
// the vitals stream hub.
type Server struct {
	store          *Store
	gen            *mockdata.Generator
	logger         *logrus.Logger
	hub            *ws.Hub
	failing        atomic.Bool
	streamInterval time.Duration
}

func NewServer(store *Store, gen *mockdata.Generator, logger *logrus.Logger) *Server {
	return &Server{
		store:          store,
		gen:            gen,
		logger:         logger,
		hub:            ws.NewHub(logger),
		streamInterval: 2 * time.Second,
	}
}

// SetStreamInterval overrides the WebSocket push cadence; tests shorten it.
func (s *Server) SetStreamInterval(d time.Duration) { s.streamInterval = d }

// Failing reports whether the simulated node failure is active.
func (s *Server) Failing() bool { return s.failing.Load() }

// Router builds the gin engine with the full REST surface under basePath.
// Simulation triggers stay reachable while the failure mode is on; every
// data endpoint answers 500 until it is toggled off again.
func (s *Server) Router(basePath string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(s.logger))

	api := r.Group(basePath)
	api.Use(s.failureMiddleware())
	{
		// Patients
		api.GET("/patients", s.ListPatients)
		api.GET("/patients/:id", s.GetPatient)
		api.POST("/patients", s.CreatePatient)
		api.PUT("/patients/:id", s.UpdatePatient)

		// Vitals and derived data
		api.GET("/patients/:id/vitals", s.GetVitals)
		api.POST("/patients/:id/vitals", s.RecordVitals)
		api.GET("/patients/:id/analytics", s.GetAnalytics)

		// Alerts
		api.GET("/patients/:id/alerts", s.GetAlerts)
		api.POST("/alerts/:id/resolve", s.ResolveAlert)

		// Relationships
		api.GET("/patients/:id/doctors", s.GetPatientDoctors)
		api.POST("/doctors", s.CreateDoctor)
		api.GET("/doctors/:id/patients", s.GetDoctorPatients)
		api.POST("/doctors/:id/patients/:patientId", s.AssignPatient)

		// Simulation triggers
		api.POST("/simulate/data", s.SimulateData)
		api.POST("/simulate/failure", s.SimulateFailure)

		// Live vitals stream
		api.GET("/ws/patients/:id/vitals", s.StreamVitals)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// failureMiddleware makes every data endpoint fail while the simulated node
// failure is active. The simulate endpoints are exempt so the failure can be
// toggled back off.
func (s *Server) failureMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.failing.Load() && !strings.Contains(c.FullPath(), "/simulate/") {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "simulated node failure",
			})
			return
		}
		c.Next()
	}
}
