package persistence

import (
	"context"
	"sync"
	"time"

	"gentil/internal/providers"
	"gentil/internal/services"
	"gentil/internal/structures"

	"github.com/roylee0704/gron"
)

// Scheduler runs the periodic jobs: draft snapshots and reminder dispatch.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	drafts      services.DraftServiceInterface
	reminders   services.ReminderServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.save(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting drafts: %s", err)
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted drafts to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(s.config.Reminder.TickInterval), func() {
		s.Dispatch()
	})

	s.cron.Start()
}

// Dispatch fires due reminders. Overlapping ticks are skipped by the hub's
// once-per-day guard.
func (s *Scheduler) Dispatch() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Reminder.TickInterval)
	defer cancel()

	res := s.reminders.Dispatch(ctx)
	if res.Sent > 0 || res.Failed > 0 {
		s.logger.Infof(providers.TypeReminder, "Dispatched reminders: sent=%d failed=%d", res.Sent, res.Failed)
	}
}

func (s *Scheduler) save() error {
	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.metrics.SetDraftsTotal(s.drafts.Count())
	return err
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads drafts from disk and re-arms every user's reminders.
func (s *Scheduler) Restore() error {
	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	s.metrics.SetDraftsTotal(s.drafts.Count())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err = s.reminders.RestoreAll(ctx); err != nil {
		s.logger.Errorf(providers.TypeReminder, "Error while restoring reminders: %s", err)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting drafts to file...")
	err := s.save()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting drafts: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, drafts services.DraftServiceInterface, reminders services.ReminderServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		drafts:      drafts,
		reminders:   reminders,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
