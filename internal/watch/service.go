// Package watch polls patient vitals through the client facade, aggregates
// abnormal readings into alerts, and hands fresh alerts to the notifier.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"vitalwatch/internal/alerts"
	"vitalwatch/internal/client"
	"vitalwatch/internal/models"
	"vitalwatch/internal/notify"
)

// Service runs the polling loop.
type Service struct {
	client   *client.Client
	store    *alerts.Store
	notifier *notify.Service
	logger   *logrus.Logger
	interval time.Duration
	patients []string
	ctx      context.Context
	cancel   context.CancelFunc

	mu       sync.Mutex
	lastSeen map[string]time.Time // newest reading already evaluated, per patient
}

func New(c *client.Client, store *alerts.Store, notifier *notify.Service, logger *logrus.Logger, interval time.Duration, patients []string) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		client:   c,
		store:    store,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		patients: patients,
		ctx:      ctx,
		cancel:   cancel,
		lastSeen: make(map[string]time.Time),
	}
}

// Start launches the poll loop. An immediate sweep runs before the first
// tick so a fresh process reports existing problems right away.
func (s *Service) Start(wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Sweep(s.ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				s.logger.Info("Watch service stopped")
				return
			case <-ticker.C:
				s.Sweep(s.ctx)
			}
		}
	}()
}

// Stop cancels the poll loop.
func (s *Service) Stop() {
	s.cancel()
}

// Sweep evaluates the newest reading of every tracked patient once.
func (s *Service) Sweep(ctx context.Context) {
	for _, patientID := range s.patients {
		if err := s.checkPatient(ctx, patientID); err != nil {
			s.logger.Errorf("Check failed for patient %s: %v", patientID, err)
		}
	}
}

func (s *Service) checkPatient(ctx context.Context, patientID string) error {
	readings, err := s.client.GetVitals(ctx, patientID, time.Time{}, time.Time{})
	if err != nil {
		return fmt.Errorf("fetch vitals: %w", err)
	}
	if len(readings) == 0 {
		return nil
	}
	latest := newest(readings)

	s.mu.Lock()
	seen := s.lastSeen[patientID]
	if !latest.Timestamp.After(seen) {
		s.mu.Unlock()
		return nil
	}
	s.lastSeen[patientID] = latest.Timestamp
	s.mu.Unlock()

	name := patientID
	if p, err := s.client.GetPatient(ctx, patientID); err == nil {
		name = p.Name
	}

	alert := alerts.FromVitalSign(name, latest)
	if alert == nil {
		return nil
	}
	stored := s.store.Add(*alert)
	s.logger.Warnf("Alert %s: patient %s has %d abnormal reading(s)", stored.ID, patientID, len(stored.Entries))

	s.notifier.Queue(notify.Task{
		Subject:     fmt.Sprintf("Abnormal vitals: %s", name),
		Body:        fmt.Sprintf("%d abnormal reading(s) at %s", len(stored.Entries), latest.Timestamp.Format(time.RFC3339)),
		AlertID:     stored.ID,
		PatientID:   patientID,
		PatientName: name,
		Entries:     stored.Entries,
		CreatedAt:   stored.CreatedAt,
	})
	return nil
}

func newest(readings []models.VitalSign) models.VitalSign {
	latest := readings[0]
	for _, r := range readings[1:] {
		if r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	return latest
}
