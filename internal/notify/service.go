// Package notify dispatches user-visible notifications for alerts and
// unrecoverable API errors through a worker pool and pluggable providers.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"vitalwatch/internal/config"
	"vitalwatch/internal/models"
)

// Task is one notification to deliver.
type Task struct {
	Subject     string
	Body        string
	AlertID     string
	PatientID   string
	PatientName string
	Entries     []models.AlertEntry
	CreatedAt   time.Time
}

// Provider delivers a Task over one channel (telegram, email, ...).
type Provider func(ctx context.Context, task Task) error

// Service fans queued tasks out to every configured provider.
type Service struct {
	logger    *logrus.Logger
	config    config.Config
	tasks     chan Task
	ctx       context.Context
	cancel    context.CancelFunc
	wg        *sync.WaitGroup
	providers map[string]Provider
}

// New constructs a Service. Providers are registered for every channel the
// config carries credentials for; with none configured, tasks are logged and
// dropped.
func New(logger *logrus.Logger, cfg config.Config) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &Service{
		logger:    logger,
		config:    cfg,
		tasks:     make(chan Task, cfg.Watch.QueueSize),
		ctx:       ctx,
		cancel:    cancel,
		providers: map[string]Provider{},
	}
	if cfg.Telegram.BotToken != "" {
		svc.providers["telegram"] = func(ctx context.Context, task Task) error {
			return SendTelegram(ctx, task, cfg, logger)
		}
	}
	if cfg.Email.SMTPServer != "" {
		svc.providers["email"] = func(ctx context.Context, task Task) error {
			return SendEmail(ctx, task, cfg)
		}
	}
	return svc
}

// Start launches the worker pool.
func (s *Service) Start(wg *sync.WaitGroup) {
	s.wg = wg
	for i := 0; i < s.config.Watch.MaxWorkers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

// Stop cancels the workers; pair with wg.Wait at shutdown.
func (s *Service) Stop() {
	s.cancel()
}

// Queue enqueues a Task for delivery. A full queue drops the task.
func (s *Service) Queue(task Task) {
	select {
	case s.tasks <- task:
		s.logger.Infof("Queued notification: %s", task.Subject)
	default:
		s.logger.Errorf("Queue full, dropping notification: %s", task.Subject)
	}
}

// Notify satisfies the client facade's Notifier interface.
func (s *Service) Notify(ctx context.Context, subject, body string) {
	s.Queue(Task{Subject: subject, Body: body, CreatedAt: time.Now().UTC()})
}

// worker processes Tasks until the service is stopped.
func (s *Service) worker(id int) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Infof("Worker %d stopped", id)
			return
		case task := <-s.tasks:
			s.handleTask(task)
		}
	}
}

// handleTask dispatches one task through every configured provider.
func (s *Service) handleTask(task Task) {
	if len(s.providers) == 0 {
		s.logger.Infof("Notification (no provider configured): %s - %s", task.Subject, task.Body)
		return
	}
	for name, provider := range s.providers {
		if err := provider(s.ctx, task); err != nil {
			s.logger.Errorf("Dispatch error via %s: %v", name, err)
			continue
		}
		s.logger.Infof("Dispatched %q via %s", task.Subject, name)
	}
}
