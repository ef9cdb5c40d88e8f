package alerts

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"vitalwatch/internal/models"
)

// Store holds the active alert set in memory. Resolved alerts leave the
// active set but remain retrievable by id.
type Store struct {
	mu     sync.RWMutex
	byID   map[string]*models.Alert
	active []string
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*models.Alert)}
}

// Add registers a new alert, assigning an id when it has none, and returns
// the stored copy.
func (s *Store) Add(a models.Alert) models.Alert {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := a
	s.byID[a.ID] = &stored
	if a.Status == models.AlertStatusNew {
		s.active = append(s.active, a.ID)
	}
	return stored
}

// Get returns the alert with the given id, resolved or not.
func (s *Store) Get(id string) (models.Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return models.Alert{}, false
	}
	return *a, true
}

// Active snapshots the unresolved alerts in insertion order.
func (s *Store) Active() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Alert, 0, len(s.active))
	for _, id := range s.active {
		out = append(out, *s.byID[id])
	}
	return out
}

// ActiveForPatient snapshots the unresolved alerts for one patient.
func (s *Store) ActiveForPatient(patientID string) []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Alert{}
	for _, id := range s.active {
		if a := s.byID[id]; a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out
}

// Resolve marks the alert resolved and drops it from the active set.
// Resolving an unknown id reports false; resolving twice is a no-op the
// second time, so the caller-visible effect is idempotent.
func (s *Store) Resolve(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return false
	}
	if a.Status == models.AlertStatusResolved {
		return true
	}
	now := time.Now().UTC()
	a.Status = models.AlertStatusResolved
	a.ResolvedAt = &now
	for i, activeID := range s.active {
		if activeID == id {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
	return true
}
